package engageservice

import (
	"context"
	"database/sql"

	"inkpost/internal/common"
)

func NewEngageService(db *sql.DB) *EngageService {
	return &EngageService{m: newEngageModel(db)}
}

func validateID(v *common.Validator, id int, field string) {
	v.Check(id > 0, field, "must be a positive integer")
}

// AddComment stores a comment on a blog and returns its id. The blog must be
// published and authored by the caller; any other blog is reported as not
// found.
func (s *EngageService) AddComment(ctx context.Context, callerID, blogID int, body string) (int, error) {
	v := common.NewValidator()
	validateID(v, callerID, "user_id")
	validateID(v, blogID, "blog_id")
	v.Check(body != "", "comment", "must be provided")
	v.Check(v.CheckStringLength(body, 1, 1000), "comment", "must be between 1 and 1000 characters")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	ok, err := s.m.publishedBlogOwnedBy(ctx, blogID, callerID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrBlogNotFound
	}

	return s.m.insertComment(ctx, body, blogID, callerID)
}

// ListComments returns every comment on a blog, oldest first.
func (s *EngageService) ListComments(ctx context.Context, blogID int) ([]Comment, error) {
	v := common.NewValidator()
	validateID(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	ok, err := s.m.blogExists(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBlogNotFound
	}

	return s.m.listComments(ctx, blogID)
}

// DeleteComment deletes a comment. The comment must belong to the blog in the
// path and be authored by the caller.
func (s *EngageService) DeleteComment(ctx context.Context, callerID, blogID, commentID int) error {
	v := common.NewValidator()
	validateID(v, callerID, "user_id")
	validateID(v, blogID, "blog_id")
	validateID(v, commentID, "comment_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	ok, err := s.m.blogExists(ctx, blogID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBlogNotFound
	}

	ok, err = s.m.commentInBlogBy(ctx, commentID, blogID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCommentNotFound
	}

	return s.m.deleteComment(ctx, commentID)
}

// ToggleBlogLike flips the caller's like on a blog they authored. Calling it
// twice restores the original state.
func (s *EngageService) ToggleBlogLike(ctx context.Context, callerID, blogID int) (common.ToggleAction, error) {
	v := common.NewValidator()
	validateID(v, callerID, "user_id")
	validateID(v, blogID, "blog_id")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	ok, err := s.m.blogOwnedBy(ctx, blogID, callerID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrBlogNotFound
	}

	return s.m.toggleBlogLike(ctx, callerID, blogID)
}

// ListBlogLikes returns who liked a blog and when, plus the total. The same
// authorship guard applies as for toggling.
func (s *EngageService) ListBlogLikes(ctx context.Context, callerID, blogID int) (*LikeList, error) {
	v := common.NewValidator()
	validateID(v, callerID, "user_id")
	validateID(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	ok, err := s.m.blogOwnedBy(ctx, blogID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBlogNotFound
	}

	return s.m.listBlogLikes(ctx, blogID)
}

// ToggleCommentLike flips the caller's like on a comment. The blog must be
// authored by the caller and the comment must sit in that blog and be
// authored by the caller as well.
func (s *EngageService) ToggleCommentLike(ctx context.Context, callerID, blogID, commentID int) (common.ToggleAction, error) {
	v := common.NewValidator()
	validateID(v, callerID, "user_id")
	validateID(v, blogID, "blog_id")
	validateID(v, commentID, "comment_id")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	if err := s.guardComment(ctx, callerID, blogID, commentID); err != nil {
		return "", err
	}

	return s.m.toggleCommentLike(ctx, callerID, commentID)
}

// ListCommentLikes returns who liked a comment and when, plus the total,
// under the same guard as ToggleCommentLike.
func (s *EngageService) ListCommentLikes(ctx context.Context, callerID, blogID, commentID int) (*LikeList, error) {
	v := common.NewValidator()
	validateID(v, callerID, "user_id")
	validateID(v, blogID, "blog_id")
	validateID(v, commentID, "comment_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.guardComment(ctx, callerID, blogID, commentID); err != nil {
		return nil, err
	}

	return s.m.listCommentLikes(ctx, commentID)
}

func (s *EngageService) guardComment(ctx context.Context, callerID, blogID, commentID int) error {
	ok, err := s.m.blogOwnedBy(ctx, blogID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBlogNotFound
	}

	ok, err = s.m.commentInBlogBy(ctx, commentID, blogID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCommentNotFound
	}

	return nil
}
