package engageservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inkpost/internal/common"
)

var (
	ErrBlogNotFound    = errors.New("blog not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyLiked    = errors.New("already liked")
)

func newEngageModel(db *sql.DB) *EngageModel {
	return &EngageModel{db: db}
}

// blogOwnedBy reports whether the blog exists and is authored by userID. Like
// operations are gated on authorship, so a blog someone else wrote looks
// absent here.
func (m *EngageModel) blogOwnedBy(ctx context.Context, blogID, userID int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1 AND user_id = $2)`, blogID, userID).Scan(&exists)
	return exists, err
}

// publishedBlogOwnedBy additionally requires the blog to be published.
func (m *EngageModel) publishedBlogOwnedBy(ctx context.Context, blogID, userID int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1 AND user_id = $2 AND published = true)`, blogID, userID).Scan(&exists)
	return exists, err
}

func (m *EngageModel) blogExists(ctx context.Context, blogID int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1)`, blogID).Scan(&exists)
	return exists, err
}

// commentInBlogBy reports whether the comment exists inside the given blog
// and was written by userID. Comments outside the blog in the path are
// treated as absent.
func (m *EngageModel) commentInBlogBy(ctx context.Context, commentID, blogID, userID int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1 AND blog_id = $2 AND user_id = $3)`, commentID, blogID, userID).Scan(&exists)
	return exists, err
}

func (m *EngageModel) insertComment(ctx context.Context, body string, blogID, userID int) (int, error) {
	query := `
		INSERT INTO comments (body, blog_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, body, blogID, userID).Scan(&id)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "comments_blog_id_fkey"):
			return 0, ErrBlogNotFound
		default:
			return 0, err
		}
	}

	return id, nil
}

func (m *EngageModel) listComments(ctx context.Context, blogID int) ([]Comment, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT id, body FROM comments WHERE blog_id = $1 ORDER BY id`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Body); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *EngageModel) deleteComment(ctx context.Context, commentID int) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrCommentNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *EngageModel) toggleBlogLike(ctx context.Context, userID, blogID int) (common.ToggleAction, error) {
	action, err := common.ToggleEdge(ctx, m.db,
		`DELETE FROM blog_likes WHERE user_id = $1 AND blog_id = $2`,
		`INSERT INTO blog_likes (user_id, blog_id) VALUES ($1, $2)`,
		userID, blogID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEdgeExists):
			return "", ErrAlreadyLiked
		case common.ForeignKeyViolation(err, "blog_likes_blog_id_fkey"):
			return "", ErrBlogNotFound
		default:
			return "", err
		}
	}

	return action, nil
}

func (m *EngageModel) toggleCommentLike(ctx context.Context, userID, commentID int) (common.ToggleAction, error) {
	action, err := common.ToggleEdge(ctx, m.db,
		`DELETE FROM comment_likes WHERE user_id = $1 AND comment_id = $2`,
		`INSERT INTO comment_likes (user_id, comment_id) VALUES ($1, $2)`,
		userID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEdgeExists):
			return "", ErrAlreadyLiked
		case common.ForeignKeyViolation(err, "comment_likes_comment_id_fkey"):
			return "", ErrCommentNotFound
		default:
			return "", err
		}
	}

	return action, nil
}

func (m *EngageModel) listBlogLikes(ctx context.Context, blogID int) (*LikeList, error) {
	query := `
		SELECT u.username, bl.created_at
		FROM blog_likes bl
		JOIN users u ON bl.user_id = u.id
		WHERE bl.blog_id = $1
		ORDER BY bl.created_at, u.id`

	return m.listLikes(ctx, query, blogID)
}

func (m *EngageModel) listCommentLikes(ctx context.Context, commentID int) (*LikeList, error) {
	query := `
		SELECT u.username, cl.created_at
		FROM comment_likes cl
		JOIN users u ON cl.user_id = u.id
		WHERE cl.comment_id = $1
		ORDER BY cl.created_at, u.id`

	return m.listLikes(ctx, query, commentID)
}

func (m *EngageModel) listLikes(ctx context.Context, query string, id int) (*LikeList, error) {
	rows, err := m.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := &LikeList{Likes: []Like{}}
	for rows.Next() {
		var l Like
		if err := rows.Scan(&l.Username, &l.CreatedAt); err != nil {
			return nil, err
		}
		list.Likes = append(list.Likes, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	list.TotalLikes = len(list.Likes)
	return list, nil
}
