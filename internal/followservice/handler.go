package followservice

import (
	"context"
	"database/sql"

	"inkpost/internal/common"
)

func NewFollowService(db *sql.DB) *FollowService {
	return &FollowService{m: newFollowModel(db)}
}

// ToggleFollow flips the follow relationship from follower to following.
// Calling it twice with the same pair restores the original state. Users
// cannot follow themselves.
func (s *FollowService) ToggleFollow(ctx context.Context, followerID, followingID int) (common.ToggleAction, error) {
	v := common.NewValidator()
	v.Check(followerID > 0, "follower_id", "must be a positive integer")
	v.Check(followingID > 0, "following_id", "must be a positive integer")
	if v.Valid() {
		v.Check(followerID != followingID, "following_id", "you cannot follow yourself")
	}
	if !v.Valid() {
		return "", v.ValidationError()
	}

	ok, err := s.m.usersExist(ctx, []int{followerID, followingID})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUserNotFound
	}

	return s.m.toggle(ctx, followerID, followingID)
}

// ListFollowers returns one page of the users following userID. Page
// numbering starts at 1; the page size is fixed at FollowPageSize.
func (s *FollowService) ListFollowers(ctx context.Context, userID, page int) ([]FollowUser, *common.Page, error) {
	v := common.NewValidator()
	v.Check(userID > 0, "id", "must be a positive integer")
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	ok, err := s.m.usersExist(ctx, []int{userID})
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrUserNotFound
	}

	total, err := s.m.countFollowers(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	meta, offset, err := common.NewPage(page, FollowPageSize, total)
	if err != nil {
		return nil, nil, err
	}

	users, err := s.m.listFollowers(ctx, userID, FollowPageSize, offset)
	if err != nil {
		return nil, nil, err
	}

	return users, meta, nil
}

// ListFollowing returns one page of the users that userID follows. Page
// numbering starts at 1; the page size is fixed at FollowPageSize.
func (s *FollowService) ListFollowing(ctx context.Context, userID, page int) ([]FollowUser, *common.Page, error) {
	v := common.NewValidator()
	v.Check(userID > 0, "id", "must be a positive integer")
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	ok, err := s.m.usersExist(ctx, []int{userID})
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrUserNotFound
	}

	total, err := s.m.countFollowing(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	meta, offset, err := common.NewPage(page, FollowPageSize, total)
	if err != nil {
		return nil, nil, err
	}

	users, err := s.m.listFollowing(ctx, userID, FollowPageSize, offset)
	if err != nil {
		return nil, nil, err
	}

	return users, meta, nil
}
