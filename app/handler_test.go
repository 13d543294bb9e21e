package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// registerActivatedUser walks a user through register, activate and login and
// returns their access token.
func registerActivatedUser(t *testing.T, ts *testServer, username string) string {
	status, _, env := ts.post(t, "/v1/users/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "TestPassword123!",
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	var registerData struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &registerData))
	assert.Len(t, registerData.Token, 26)

	status, _, _ = ts.put(t, "/v1/users/activate", map[string]string{"token": registerData.Token}, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _, env = ts.post(t, "/v1/users/login", map[string]string{
		"username": username,
		"password": "TestPassword123!",
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	var loginData struct {
		Token struct {
			AccessToken string `json:"access_token"`
		} `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &loginData))
	assert.Len(t, loginData.Token.AccessToken, 26)

	return loginData.Token.AccessToken
}

func TestUserLifecycle(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerActivatedUser(t, ts, "alice")

	t.Run("duplicate username", func(t *testing.T) {
		status, _, env := ts.post(t, "/v1/users/register", map[string]string{
			"username": "alice",
			"email":    "alice2@example.com",
			"password": "TestPassword123!",
		}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.False(t, env.Success)
	})

	t.Run("wrong password", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/users/login", map[string]string{
			"username": "alice",
			"password": "WrongPassword123!",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/users/logout", nil, &token)
		assert.Equal(t, http.StatusOK, status)

		status, _, _ = ts.get(t, "/v1/drafts", &token)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestBlogLifecycle(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token := registerActivatedUser(t, ts, "author")

	t.Run("anonymous cannot publish", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/blogs", map[string]string{
			"title":   "Not Allowed",
			"content": "nope",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	var blogID int

	t.Run("publish a blog", func(t *testing.T) {
		status, _, env := ts.post(t, "/v1/blogs", map[string]string{
			"title":   "First Post",
			"content": "# Hello\n\nWelcome to my blog.",
			"tag":     "intro",
		}, &token)
		assert.Equal(t, http.StatusCreated, status)

		var data struct {
			ID int `json:"id"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		blogID = data.ID
	})

	t.Run("read it back rendered", func(t *testing.T) {
		status, _, env := ts.get(t, fmt.Sprintf("/v1/blogs/%d", blogID), nil)
		assert.Equal(t, http.StatusOK, status)

		var data struct {
			Blog struct {
				Title       string `json:"title"`
				ContentHTML string `json:"content_html"`
				Author      string `json:"author"`
			} `json:"blog"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "First Post", data.Blog.Title)
		assert.Equal(t, "author", data.Blog.Author)
		assert.Contains(t, data.Blog.ContentHTML, "<h1>Hello</h1>")
	})

	t.Run("listing pagination boundaries", func(t *testing.T) {
		status, _, _ := ts.get(t, "/v1/feed/1", &token)
		assert.Equal(t, http.StatusOK, status)

		status, _, env := ts.get(t, "/v1/feed/2", &token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Final Page Number is 1", env.Message)

		status, _, env = ts.get(t, "/v1/feed/0", &token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Starting Page Number is 1", env.Message)
	})

	t.Run("drafts stay private", func(t *testing.T) {
		status, _, env := ts.post(t, "/v1/drafts", map[string]string{
			"title":   "Secret Draft",
			"content": "wip",
		}, &token)
		assert.Equal(t, http.StatusCreated, status)

		var data struct {
			ID int `json:"id"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))

		status, _, env = ts.get(t, fmt.Sprintf("/v1/blogs/%d", data.ID), nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Blog Not Found", env.Message)

		status, _, _ = ts.put(t, fmt.Sprintf("/v1/blogs/%d/publish", data.ID), nil, &token)
		assert.Equal(t, http.StatusOK, status)

		status, _, _ = ts.get(t, fmt.Sprintf("/v1/blogs/%d", data.ID), nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("update and delete are author scoped", func(t *testing.T) {
		other := registerActivatedUser(t, ts, "intruder")

		status, _, env := ts.put(t, fmt.Sprintf("/v1/blogs/%d", blogID), map[string]string{
			"title":   "Hijacked",
			"content": "mine now",
		}, &other)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Blog Not Found", env.Message)

		status, _, _ = ts.delete(t, fmt.Sprintf("/v1/blogs/%d", blogID), &other)
		assert.Equal(t, http.StatusNotFound, status)

		status, _, _ = ts.delete(t, fmt.Sprintf("/v1/blogs/%d", blogID), &token)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestFollowEndpoints(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	reader := registerActivatedUser(t, ts, "reader")
	registerActivatedUser(t, ts, "writer")

	var writerID int
	assert.NoError(t, db.QueryRow("SELECT id FROM users WHERE username = 'writer'").Scan(&writerID))

	var readerID int
	assert.NoError(t, db.QueryRow("SELECT id FROM users WHERE username = 'reader'").Scan(&readerID))

	t.Run("follow then unfollow", func(t *testing.T) {
		status, _, env := ts.post(t, fmt.Sprintf("/v1/follow/%d", writerID), nil, &reader)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "You're now following this author", env.Message)

		status, _, env = ts.post(t, fmt.Sprintf("/v1/follow/%d", writerID), nil, &reader)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Unfollowed", env.Message)
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		status, _, env := ts.post(t, fmt.Sprintf("/v1/follow/%d", readerID), nil, &reader)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "You cannot follow yourself", env.Message)
	})

	t.Run("unknown target", func(t *testing.T) {
		status, _, env := ts.post(t, "/v1/follow/999999", nil, &reader)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "User Not Found", env.Message)
	})

	t.Run("follow listings", func(t *testing.T) {
		status, _, _ := ts.post(t, fmt.Sprintf("/v1/follow/%d", writerID), nil, &reader)
		assert.Equal(t, http.StatusCreated, status)

		status, _, env := ts.get(t, "/v1/follow/following/1", &reader)
		assert.Equal(t, http.StatusOK, status)

		var data struct {
			Following []struct {
				Username string `json:"username"`
			} `json:"following"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data.Following, 1)
		assert.Equal(t, "writer", data.Following[0].Username)

		status, _, env = ts.get(t, "/v1/follow/followers/1", &reader)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "No followers found", env.Message)

		status, _, env = ts.get(t, "/v1/follow/following/0", &reader)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Starting Page is 1", env.Message)
	})
}

func TestEngagementEndpoints(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	author := registerActivatedUser(t, ts, "author")
	other := registerActivatedUser(t, ts, "other")

	status, _, env := ts.post(t, "/v1/blogs", map[string]string{
		"title":   "Engagement Test",
		"content": "like and comment away",
	}, &author)
	assert.Equal(t, http.StatusCreated, status)

	var blog struct {
		ID int `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &blog))

	var commentID int

	t.Run("comment on own blog", func(t *testing.T) {
		status, _, env := ts.post(t, fmt.Sprintf("/v1/blogs/%d/comments", blog.ID), map[string]string{
			"comment": "first!",
		}, &author)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "Comment added successfully", env.Message)

		var data struct {
			CommentID int `json:"commentId"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		commentID = data.CommentID
	})

	t.Run("someone else's blog looks absent", func(t *testing.T) {
		status, _, env := ts.post(t, fmt.Sprintf("/v1/blogs/%d/comments", blog.ID), map[string]string{
			"comment": "me too",
		}, &other)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Invalid Blog ID", env.Message)

		status, _, env = ts.post(t, fmt.Sprintf("/v1/blogs/%d/likes", blog.ID), nil, &other)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Blog Not Found", env.Message)
	})

	t.Run("blog like toggle", func(t *testing.T) {
		status, _, env := ts.post(t, fmt.Sprintf("/v1/blogs/%d/likes", blog.ID), nil, &author)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "You've Liked this Blog", env.Message)

		status, _, env = ts.get(t, fmt.Sprintf("/v1/blogs/%d/likes", blog.ID), &author)
		assert.Equal(t, http.StatusOK, status)

		var data struct {
			Likes []struct {
				Username string `json:"username"`
			} `json:"likes"`
			TotalLikes int `json:"totalLikes"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 1, data.TotalLikes)
		assert.Equal(t, "author", data.Likes[0].Username)

		status, _, env = ts.post(t, fmt.Sprintf("/v1/blogs/%d/likes", blog.ID), nil, &author)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Like Removed", env.Message)
	})

	t.Run("comment like toggle", func(t *testing.T) {
		path := fmt.Sprintf("/v1/blogs/%d/comments/%d/likes", blog.ID, commentID)

		status, _, env := ts.post(t, path, nil, &author)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "You've Liked this Comment", env.Message)

		status, _, env = ts.post(t, path, nil, &author)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Like Removed", env.Message)

		status, _, env = ts.get(t, path, &author)
		assert.Equal(t, http.StatusOK, status)

		var data struct {
			TotalLikes int `json:"totalLikes"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 0, data.TotalLikes)
	})

	t.Run("delete comment", func(t *testing.T) {
		path := fmt.Sprintf("/v1/blogs/%d/comments/%d", blog.ID, commentID)

		status, _, env := ts.delete(t, path, &other)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Comment Not Found", env.Message)

		status, _, env = ts.delete(t, path, &author)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Comment Deleted Successfully", env.Message)

		status, _, env = ts.get(t, fmt.Sprintf("/v1/blogs/%d/comments", blog.ID), nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "No Comments under this Blog", env.Message)
	})
}
