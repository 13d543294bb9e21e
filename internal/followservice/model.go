package followservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"inkpost/internal/common"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyFollowing = errors.New("already following this user")
)

func newFollowModel(db *sql.DB) *FollowModel {
	return &FollowModel{db: db}
}

// usersExist reports whether every given user id resolves to a row. The ids
// must be distinct.
func (m *FollowModel) usersExist(ctx context.Context, ids []int) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ANY($1)`, pq.Array(ids)).Scan(&count)
	if err != nil {
		return false, err
	}

	return count == len(ids), nil
}

// toggle flips the follow edge in one atomic unit. A concurrent create for
// the same pair loses the race on the primary key and surfaces as
// ErrAlreadyFollowing.
func (m *FollowModel) toggle(ctx context.Context, followerID, followingID int) (common.ToggleAction, error) {
	action, err := common.ToggleEdge(ctx, m.db,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		`INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)`,
		followerID, followingID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEdgeExists):
			return "", ErrAlreadyFollowing
		case common.ForeignKeyViolation(err, "follows_follower_id_fkey"),
			common.ForeignKeyViolation(err, "follows_following_id_fkey"):
			return "", ErrUserNotFound
		default:
			return "", err
		}
	}

	return action, nil
}

func (m *FollowModel) countFollowers(ctx context.Context, userID int) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID).Scan(&count)
	return count, err
}

// listFollowers returns one page of the users following userID, ordered by
// when they followed so pages stay stable between calls.
func (m *FollowModel) listFollowers(ctx context.Context, userID, limit, offset int) ([]FollowUser, error) {
	query := `
		SELECT u.id, u.username
		FROM follows f
		JOIN users u ON f.follower_id = u.id
		WHERE f.following_id = $1
		ORDER BY f.created_at, u.id
		LIMIT $2 OFFSET $3`

	return m.listUsers(ctx, query, userID, limit, offset)
}

func (m *FollowModel) countFollowing(ctx context.Context, userID int) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID).Scan(&count)
	return count, err
}

func (m *FollowModel) listFollowing(ctx context.Context, userID, limit, offset int) ([]FollowUser, error) {
	query := `
		SELECT u.id, u.username
		FROM follows f
		JOIN users u ON f.following_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at, u.id
		LIMIT $2 OFFSET $3`

	return m.listUsers(ctx, query, userID, limit, offset)
}

func (m *FollowModel) listUsers(ctx context.Context, query string, args ...any) ([]FollowUser, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []FollowUser
	for rows.Next() {
		var u FollowUser
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
