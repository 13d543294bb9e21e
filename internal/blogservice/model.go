package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inkpost/internal/common"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) insert(ctx context.Context, title, content, tag string, userID int, published bool) (int, error) {
	query := `
		INSERT INTO blogs (title, content, tag, user_id, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, title, content, tag, userID, published).Scan(&id)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "blogs_user_id_fkey"):
			return 0, ErrUserForeignKey
		default:
			return 0, err
		}
	}

	return id, nil
}

// getPublishedBlog returns a published blog with its author name and
// comments. Drafts are invisible here regardless of the caller.
func (m *BlogModel) getPublishedBlog(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.content, b.tag, b.published, b.user_id, b.created_at, b.updated_at, b.version, u.username
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1 AND b.published = true`

	var blog Blog
	err := m.db.QueryRowContext(ctx, query, id).Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Tag, &blog.Published, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &blog.Author)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	rows, err := m.db.QueryContext(ctx, `SELECT id, body FROM comments WHERE blog_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c BlogComment
		if err := rows.Scan(&c.ID, &c.Body); err != nil {
			return nil, err
		}
		blog.Comments = append(blog.Comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &blog, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, title, content, tag string, blogID, userID int) error {
	query := `
		UPDATE blogs
		SET title = $1, content = $2, tag = $3, updated_at = NOW(), version = version + 1
		WHERE id = $4 AND user_id = $5`

	res, err := m.db.ExecContext(ctx, query, title, content, tag, blogID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// publishDraft flips an unpublished blog to published. The creation time is
// refreshed so the post surfaces at the top of the listing.
func (m *BlogModel) publishDraft(ctx context.Context, blogID, userID int) error {
	query := `
		UPDATE blogs
		SET published = true, created_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND user_id = $2 AND published = false`

	res, err := m.db.ExecContext(ctx, query, blogID, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, blogID, userID int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, blogID, userID)
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
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *BlogModel) getDraftsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	query := `
		SELECT id, title, content, tag, published, user_id, created_at, updated_at, version
		FROM blogs
		WHERE user_id = $1 AND published = false
		ORDER BY created_at DESC, id DESC`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Tag, &blog.Published, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// searchBlogs matches published blogs whose title, content or tag contains
// the query, case-insensitively.
func (m *BlogModel) searchBlogs(ctx context.Context, q string) ([]BlogListItem, error) {
	query := `
		SELECT b.id, b.title, b.content, b.tag, b.created_at, u.username
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.published = true
		AND (b.title ILIKE $1 OR b.content ILIKE $1 OR b.tag ILIKE $1)
		ORDER BY b.id DESC`

	rows, err := m.db.QueryContext(ctx, query, "%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []BlogListItem
	for rows.Next() {
		var blog BlogListItem
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Tag, &blog.CreatedAt, &blog.Author)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) countPublished(ctx context.Context) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs WHERE published = true`).Scan(&count)
	return count, err
}

// listPublished returns one page of published blogs, newest first, with
// their like and comment counts. Ordering by id keeps pages stable between
// calls.
func (m *BlogModel) listPublished(ctx context.Context, limit, offset int) ([]BlogListItem, error) {
	query := `
		SELECT b.id, b.title, b.content, b.tag, b.created_at, u.username,
			(SELECT COUNT(*) FROM blog_likes bl WHERE bl.blog_id = b.id),
			(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.id)
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.published = true
		ORDER BY b.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []BlogListItem
	for rows.Next() {
		var blog BlogListItem
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Tag, &blog.CreatedAt, &blog.Author, &blog.TotalLikes, &blog.TotalComments)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
