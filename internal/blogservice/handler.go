package blogservice

import (
	"context"
	"database/sql"
	"strings"

	"inkpost/internal/common"
)

// BlogPageSize is the fixed page size of the public listing.
const BlogPageSize = 10

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
	UserID  int    `json:"user_id"`
}

func (s *BlogService) validateCreate(req *CreateBlogRequest) error {
	req.Tag = strings.ToLower(req.Tag)

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateTag(v, req.Tag)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

// SaveDraft stores a new unpublished blog and returns its id.
func (s *BlogService) SaveDraft(ctx context.Context, req *CreateBlogRequest) (int, error) {
	if err := s.validateCreate(req); err != nil {
		return 0, err
	}

	return s.m.insert(ctx, req.Title, req.Content, req.Tag, req.UserID, false)
}

// PublishBlog stores a new blog directly in the published state and returns
// its id.
func (s *BlogService) PublishBlog(ctx context.Context, req *CreateBlogRequest) (int, error) {
	if err := s.validateCreate(req); err != nil {
		return 0, err
	}

	return s.m.insert(ctx, req.Title, req.Content, req.Tag, req.UserID, true)
}

// GetBlog returns a published blog with its rendered content and comments.
func (s *BlogService) GetBlog(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyBlog(id)
	if cached, ok := s.c.Get(key); ok {
		return cached.(*Blog), nil
	}

	blog, err := s.m.getPublishedBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	blog.ContentHTML = renderMarkdown(blog.Content)
	s.c.Set(key, blog)

	return blog, nil
}

// UpdateBlog updates a blog's title, content and tag. Only the author can
// update it.
func (s *BlogService) UpdateBlog(ctx context.Context, title, content, tag string, blogID, userID int) error {
	tag = strings.ToLower(tag)

	v := common.NewValidator()
	validateTitle(v, title)
	validateContent(v, content)
	validateTag(v, tag)
	validateInt(v, blogID, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.updateBlog(ctx, title, content, tag, blogID, userID); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(blogID))
	return nil
}

// PublishDraft publishes an unpublished blog owned by the caller.
func (s *BlogService) PublishDraft(ctx context.Context, blogID, userID int) error {
	v := common.NewValidator()
	validateInt(v, blogID, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.publishDraft(ctx, blogID, userID); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(blogID))
	return nil
}

// DeleteBlog deletes a blog. Only the author can delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, blogID, userID int) error {
	v := common.NewValidator()
	validateInt(v, blogID, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deleteBlog(ctx, blogID, userID); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(blogID))
	return nil
}

// ListDrafts returns the caller's unpublished blogs, newest first.
func (s *BlogService) ListDrafts(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getDraftsByUserID(ctx, userID)
}

// SearchBlogs returns the published blogs matching the query in their title,
// content or tag.
func (s *BlogService) SearchBlogs(ctx context.Context, q string) ([]BlogListItem, error) {
	v := common.NewValidator()
	v.Check(q != "", "q", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.searchBlogs(ctx, q)
}

// ListBlogs returns one page of the public listing plus its navigation
// metadata. Page numbering starts at 1; the page size is fixed at
// BlogPageSize.
func (s *BlogService) ListBlogs(ctx context.Context, page int) ([]BlogListItem, *common.Page, error) {
	total, err := s.m.countPublished(ctx)
	if err != nil {
		return nil, nil, err
	}

	meta, offset, err := common.NewPage(page, BlogPageSize, total)
	if err != nil {
		return nil, nil, err
	}

	blogs, err := s.m.listPublished(ctx, BlogPageSize, offset)
	if err != nil {
		return nil, nil, err
	}

	return blogs, meta, nil
}
