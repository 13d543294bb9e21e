package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"inkpost/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// user service
	router.HandlerFunc(http.MethodPost, "/v1/users/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/activate", app.activateUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/logout", app.requireAuthUser(app.logoutUserHandler))

	// follow service
	router.HandlerFunc(http.MethodPost, "/v1/follow/:id", app.requireActivatedUser(app.toggleFollowHandler))
	router.HandlerFunc(http.MethodGet, "/v1/follow/followers/:page", app.requireAuthUser(app.listFollowersHandler))
	router.HandlerFunc(http.MethodGet, "/v1/follow/following/:page", app.requireAuthUser(app.listFollowingHandler))

	// blog service. The listing, search and drafts collections live on their
	// own prefixes because httprouter refuses static segments next to the
	// :id wildcard under /v1/blogs.
	router.HandlerFunc(http.MethodGet, "/v1/feed/:page", app.requireAuthUser(app.listBlogsHandler))
	router.HandlerFunc(http.MethodGet, "/v1/search", app.requireAuthUser(app.searchBlogsHandler))
	router.HandlerFunc(http.MethodGet, "/v1/drafts", app.requireActivatedUser(app.listDraftsHandler))
	router.HandlerFunc(http.MethodPost, "/v1/drafts", app.requirePermission(app.saveDraftHandler, userservice.PermissionWriteBlog))
	router.HandlerFunc(http.MethodPost, "/v1/blogs", app.requirePermission(app.publishBlogHandler, userservice.PermissionWriteBlog))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id", app.requireAuthUser(app.getBlogHandler))
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:id", app.requirePermission(app.updateBlogHandler, userservice.PermissionWriteBlog))
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:id/publish", app.requirePermission(app.publishDraftHandler, userservice.PermissionWriteBlog))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:id", app.requirePermission(app.deleteBlogHandler, userservice.PermissionWriteBlog))

	// engage service
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:id/comments", app.requireActivatedUser(app.addCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id/comments", app.requireAuthUser(app.listCommentsHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:id/comments/:commentId", app.requireActivatedUser(app.deleteCommentHandler))
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:id/likes", app.requireActivatedUser(app.toggleBlogLikeHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id/likes", app.requireAuthUser(app.listBlogLikesHandler))
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:id/comments/:commentId/likes", app.requireActivatedUser(app.toggleCommentLikeHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id/comments/:commentId/likes", app.requireAuthUser(app.listCommentLikesHandler))

	return app.recoverPanic(app.enableCORS(app.rateLimit(app.logRequest(app.authenticate(router)))))
}
