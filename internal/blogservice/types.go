package blogservice

import (
	"database/sql"
	"time"

	"inkpost/internal/common"
)

type Blog struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Content is stored in Markdown format.
	Content string `json:"content"`
	// ContentHTML is the sanitized rendering of Content, only populated on
	// the detail view.
	ContentHTML string        `json:"content_html,omitempty"`
	Tag         string        `json:"tag"`
	Published   bool          `json:"published"`
	Author      string        `json:"author,omitempty"`
	UserID      int           `json:"user_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Version     int           `json:"version"`
	Comments    []BlogComment `json:"comments,omitempty"`
}

// BlogComment is the comment view embedded in a blog detail response.
type BlogComment struct {
	ID   int    `json:"id"`
	Body string `json:"comment"`
}

// BlogListItem is one row of the paginated public listing.
type BlogListItem struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Tag           string    `json:"tag"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	TotalLikes    int       `json:"totalLikes"`
	TotalComments int       `json:"totalComments"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
