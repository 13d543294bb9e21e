package engageservice

import (
	"context"
	"crypto/rand"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"inkpost/internal/common"
)

func setupTestUser(db *sql.DB, username string) (int, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int
	err = db.QueryRow(query, username, username+"@example.com", randomBytes).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func setupTestBlog(db *sql.DB, userID int, published bool) (int, error) {
	query := `
		INSERT INTO blogs (title, content, user_id, published)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int
	err := db.QueryRow(query, "Test Blog", "This is a test blog.", userID, published).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func setupTestEnvironment(t *testing.T) (*EngageService, *sql.DB) {
	db := common.TestDB(t, "file://../../migrations")
	return NewEngageService(db), db
}

func TestAddComment(t *testing.T) {
	s, db := setupTestEnvironment(t)

	author, err := setupTestUser(db, "author")
	assert.NoError(t, err)

	other, err := setupTestUser(db, "other")
	assert.NoError(t, err)

	published, err := setupTestBlog(db, author, true)
	assert.NoError(t, err)

	draft, err := setupTestBlog(db, author, false)
	assert.NoError(t, err)

	t.Run("author comments on own published blog", func(t *testing.T) {
		id, err := s.AddComment(context.Background(), author, published, "Nice write-up.")
		assert.NoError(t, err)
		assert.NotZero(t, id)
	})

	t.Run("someone else's blog looks absent", func(t *testing.T) {
		_, err := s.AddComment(context.Background(), other, published, "Nice write-up.")
		assert.ErrorIs(t, err, ErrBlogNotFound)
	})

	t.Run("drafts cannot be commented on", func(t *testing.T) {
		_, err := s.AddComment(context.Background(), author, draft, "Too early.")
		assert.ErrorIs(t, err, ErrBlogNotFound)
	})

	t.Run("empty comment", func(t *testing.T) {
		_, err := s.AddComment(context.Background(), author, published, "")
		assert.IsType(t, common.ValidationError{}, err)
	})
}

func TestListComments(t *testing.T) {
	s, db := setupTestEnvironment(t)

	author, err := setupTestUser(db, "author")
	assert.NoError(t, err)

	blog, err := setupTestBlog(db, author, true)
	assert.NoError(t, err)

	t.Run("no comments yet", func(t *testing.T) {
		comments, err := s.ListComments(context.Background(), blog)
		assert.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("comments come back oldest first", func(t *testing.T) {
		first, err := s.AddComment(context.Background(), author, blog, "first")
		assert.NoError(t, err)

		second, err := s.AddComment(context.Background(), author, blog, "second")
		assert.NoError(t, err)

		comments, err := s.ListComments(context.Background(), blog)
		assert.NoError(t, err)
		assert.Equal(t, []Comment{{ID: first, Body: "first"}, {ID: second, Body: "second"}}, comments)
	})

	t.Run("unknown blog", func(t *testing.T) {
		_, err := s.ListComments(context.Background(), 999999)
		assert.ErrorIs(t, err, ErrBlogNotFound)
	})
}

func TestDeleteComment(t *testing.T) {
	s, db := setupTestEnvironment(t)

	author, err := setupTestUser(db, "author")
	assert.NoError(t, err)

	other, err := setupTestUser(db, "other")
	assert.NoError(t, err)

	blog, err := setupTestBlog(db, author, true)
	assert.NoError(t, err)

	otherBlog, err := setupTestBlog(db, other, true)
	assert.NoError(t, err)

	comment, err := s.AddComment(context.Background(), author, blog, "disposable")
	assert.NoError(t, err)

	t.Run("comment addressed through the wrong blog", func(t *testing.T) {
		err := s.DeleteComment(context.Background(), author, otherBlog, comment)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("only the comment author can delete", func(t *testing.T) {
		err := s.DeleteComment(context.Background(), other, blog, comment)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("author deletes own comment", func(t *testing.T) {
		err := s.DeleteComment(context.Background(), author, blog, comment)
		assert.NoError(t, err)

		comments, err := s.ListComments(context.Background(), blog)
		assert.NoError(t, err)
		assert.Empty(t, comments)
	})
}

func TestToggleBlogLike(t *testing.T) {
	s, db := setupTestEnvironment(t)

	author, err := setupTestUser(db, "author")
	assert.NoError(t, err)

	other, err := setupTestUser(db, "other")
	assert.NoError(t, err)

	blog, err := setupTestBlog(db, author, true)
	assert.NoError(t, err)

	t.Run("toggle twice restores the original state", func(t *testing.T) {
		action, err := s.ToggleBlogLike(context.Background(), author, blog)
		assert.NoError(t, err)
		assert.Equal(t, common.ToggleAdded, action)

		list, err := s.ListBlogLikes(context.Background(), author, blog)
		assert.NoError(t, err)
		assert.Equal(t, 1, list.TotalLikes)
		assert.Equal(t, "author", list.Likes[0].Username)

		action, err = s.ToggleBlogLike(context.Background(), author, blog)
		assert.NoError(t, err)
		assert.Equal(t, common.ToggleRemoved, action)

		list, err = s.ListBlogLikes(context.Background(), author, blog)
		assert.NoError(t, err)
		assert.Equal(t, 0, list.TotalLikes)
		assert.Empty(t, list.Likes)
	})

	t.Run("someone else's blog looks absent", func(t *testing.T) {
		_, err := s.ToggleBlogLike(context.Background(), other, blog)
		assert.ErrorIs(t, err, ErrBlogNotFound)

		_, err = s.ListBlogLikes(context.Background(), other, blog)
		assert.ErrorIs(t, err, ErrBlogNotFound)
	})

	t.Run("unknown blog", func(t *testing.T) {
		_, err := s.ToggleBlogLike(context.Background(), author, 999999)
		assert.ErrorIs(t, err, ErrBlogNotFound)
	})
}

func TestToggleCommentLike(t *testing.T) {
	s, db := setupTestEnvironment(t)

	author, err := setupTestUser(db, "author")
	assert.NoError(t, err)

	other, err := setupTestUser(db, "other")
	assert.NoError(t, err)

	blog, err := setupTestBlog(db, author, true)
	assert.NoError(t, err)

	otherBlog, err := setupTestBlog(db, other, true)
	assert.NoError(t, err)

	comment, err := s.AddComment(context.Background(), author, blog, "self-liked")
	assert.NoError(t, err)

	t.Run("toggle twice restores the original state", func(t *testing.T) {
		action, err := s.ToggleCommentLike(context.Background(), author, blog, comment)
		assert.NoError(t, err)
		assert.Equal(t, common.ToggleAdded, action)

		list, err := s.ListCommentLikes(context.Background(), author, blog, comment)
		assert.NoError(t, err)
		assert.Equal(t, 1, list.TotalLikes)

		action, err = s.ToggleCommentLike(context.Background(), author, blog, comment)
		assert.NoError(t, err)
		assert.Equal(t, common.ToggleRemoved, action)

		list, err = s.ListCommentLikes(context.Background(), author, blog, comment)
		assert.NoError(t, err)
		assert.Equal(t, 0, list.TotalLikes)
	})

	t.Run("comment addressed through the wrong blog", func(t *testing.T) {
		_, err := s.ToggleCommentLike(context.Background(), other, otherBlog, comment)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("someone else's blog looks absent", func(t *testing.T) {
		_, err := s.ToggleCommentLike(context.Background(), other, blog, comment)
		assert.ErrorIs(t, err, ErrBlogNotFound)
	})

	t.Run("unknown comment", func(t *testing.T) {
		_, err := s.ToggleCommentLike(context.Background(), author, blog, 999999)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}
