package main

import (
	"errors"
	"net/http"

	"inkpost/internal/common"
	"inkpost/internal/engageservice"
)

type addCommentRequest struct {
	Comment string `json:"comment"`
}

func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input addCommentRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	id, err := app.engageService.AddComment(r.Context(), user.ID, blogID, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, engageservice.ErrBlogNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "Invalid Blog ID")
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err.(common.ValidationError).Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSuccess(w, r, http.StatusCreated, map[string]any{"commentId": id}, "Comment added successfully")
}

func (app *application) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comments, err := app.engageService.ListComments(r.Context(), blogID)
	if err != nil {
		switch {
		case errors.Is(err, engageservice.ErrBlogNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "Invalid Blog ID")
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err.(common.ValidationError).Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	message := "All Comments"
	if len(comments) == 0 {
		message = "No Comments under this Blog"
	}

	app.writeSuccess(w, r, http.StatusOK, map[string]any{"comments": comments}, message)
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	commentID, err := app.readIDParam(r, "commentId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	err = app.engageService.DeleteComment(r.Context(), user.ID, blogID, commentID)
	if err != nil {
		app.engageError(w, r, err)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, map[string]any{"commentId": commentID}, "Comment Deleted Successfully")
}

func (app *application) toggleBlogLikeHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	action, err := app.engageService.ToggleBlogLike(r.Context(), user.ID, blogID)
	if err != nil {
		app.engageError(w, r, err)
		return
	}

	switch action {
	case common.ToggleAdded:
		app.writeSuccess(w, r, http.StatusCreated, nil, "You've Liked this Blog")
	case common.ToggleRemoved:
		app.writeSuccess(w, r, http.StatusOK, nil, "Like Removed")
	}
}

func (app *application) listBlogLikesHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	likes, err := app.engageService.ListBlogLikes(r.Context(), user.ID, blogID)
	if err != nil {
		app.engageError(w, r, err)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, likes, "")
}

func (app *application) toggleCommentLikeHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	commentID, err := app.readIDParam(r, "commentId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	action, err := app.engageService.ToggleCommentLike(r.Context(), user.ID, blogID, commentID)
	if err != nil {
		app.engageError(w, r, err)
		return
	}

	switch action {
	case common.ToggleAdded:
		app.writeSuccess(w, r, http.StatusCreated, nil, "You've Liked this Comment")
	case common.ToggleRemoved:
		app.writeSuccess(w, r, http.StatusOK, nil, "Like Removed")
	}
}

func (app *application) listCommentLikesHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	commentID, err := app.readIDParam(r, "commentId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	likes, err := app.engageService.ListCommentLikes(r.Context(), user.ID, blogID, commentID)
	if err != nil {
		app.engageError(w, r, err)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, likes, "")
}

func (app *application) engageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, engageservice.ErrBlogNotFound):
		app.writeErrorResponse(w, r, http.StatusNotFound, "Blog Not Found")
	case errors.Is(err, engageservice.ErrCommentNotFound):
		app.writeErrorResponse(w, r, http.StatusNotFound, "Comment Not Found")
	case errors.Is(err, engageservice.ErrAlreadyLiked):
		// a concurrent toggle won the race; the end state is what the caller
		// asked for
		app.writeSuccess(w, r, http.StatusOK, nil, "Already Liked")
	case errors.As(err, &common.ValidationError{}):
		app.failedValidationErrorResponse(w, r, err.(common.ValidationError).Errors)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
