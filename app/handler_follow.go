package main

import (
	"errors"
	"fmt"
	"net/http"

	"inkpost/internal/common"
	"inkpost/internal/followservice"
)

func (app *application) toggleFollowHandler(w http.ResponseWriter, r *http.Request) {
	targetID, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	action, err := app.followService.ToggleFollow(r.Context(), user.ID, targetID)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			if validationErr.Errors["following_id"] == "you cannot follow yourself" {
				app.writeErrorResponse(w, r, http.StatusBadRequest, "You cannot follow yourself")
				return
			}
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, followservice.ErrUserNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "User Not Found")
		case errors.Is(err, followservice.ErrAlreadyFollowing):
			// a concurrent toggle won the race; the end state is what the
			// caller asked for
			app.writeSuccess(w, r, http.StatusOK, nil, "Already following")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	switch action {
	case common.ToggleAdded:
		app.writeSuccess(w, r, http.StatusCreated, nil, "You're now following this author")
	case common.ToggleRemoved:
		app.writeSuccess(w, r, http.StatusOK, nil, "Unfollowed")
	}
}

func (app *application) listFollowersHandler(w http.ResponseWriter, r *http.Request) {
	page, err := app.readIDParam(r, "page")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	followers, meta, err := app.followService.ListFollowers(r.Context(), user.ID, page)
	if err != nil {
		app.followListError(w, r, err, "No followers found")
		return
	}

	app.writeSuccess(w, r, http.StatusOK, map[string]any{"followers": followers, "page": meta}, "")
}

func (app *application) listFollowingHandler(w http.ResponseWriter, r *http.Request) {
	page, err := app.readIDParam(r, "page")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	following, meta, err := app.followService.ListFollowing(r.Context(), user.ID, page)
	if err != nil {
		app.followListError(w, r, err, "You are not following anyone")
		return
	}

	app.writeSuccess(w, r, http.StatusOK, map[string]any{"following": following, "page": meta}, "")
}

func (app *application) followListError(w http.ResponseWriter, r *http.Request, err error, emptyMessage string) {
	var pageErr common.PageOutOfRangeError
	switch {
	case errors.Is(err, common.ErrPageTooLow):
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Starting Page is 1")
	case errors.Is(err, common.ErrNoResults):
		app.writeErrorResponse(w, r, http.StatusBadRequest, emptyMessage)
	case errors.As(err, &pageErr):
		app.writeErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Final Page is %d", pageErr.FinalPage))
	case errors.Is(err, followservice.ErrUserNotFound):
		app.writeErrorResponse(w, r, http.StatusNotFound, "User Not Found")
	default:
		app.serverErrorResponse(w, r, err)
	}
}
