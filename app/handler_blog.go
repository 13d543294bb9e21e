package main

import (
	"errors"
	"fmt"
	"net/http"

	"inkpost/internal/blogservice"
	"inkpost/internal/common"
)

type createBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
}

func (app *application) saveDraftHandler(w http.ResponseWriter, r *http.Request) {
	var input createBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	id, err := app.blogService.SaveDraft(r.Context(), &blogservice.CreateBlogRequest{
		Title:   input.Title,
		Content: input.Content,
		Tag:     input.Tag,
		UserID:  user.ID,
	})
	if err != nil {
		app.blogWriteError(w, r, err)
		return
	}

	app.writeSuccess(w, r, http.StatusCreated, map[string]any{"id": id}, "draft saved")
}

func (app *application) publishBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input createBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	id, err := app.blogService.PublishBlog(r.Context(), &blogservice.CreateBlogRequest{
		Title:   input.Title,
		Content: input.Content,
		Tag:     input.Tag,
		UserID:  user.ID,
	})
	if err != nil {
		app.blogWriteError(w, r, err)
		return
	}

	app.writeSuccess(w, r, http.StatusCreated, map[string]any{"id": id}, "blog published")
}

func (app *application) blogWriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.As(err, &common.ValidationError{}):
		app.failedValidationErrorResponse(w, r, err.(common.ValidationError).Errors)
	case errors.Is(err, blogservice.ErrUserForeignKey):
		app.unAuthorizedErrorResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.GetBlog(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "Blog Not Found")
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err.(common.ValidationError).Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSuccess(w, r, http.StatusOK, map[string]any{"blog": blog}, "")
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input createBlogRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	err = app.blogService.UpdateBlog(r.Context(), input.Title, input.Content, input.Tag, id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "Blog Not Found")
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err.(common.ValidationError).Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSuccess(w, r, http.StatusOK, nil, "blog updated")
}

func (app *application) publishDraftHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	err = app.blogService.PublishDraft(r.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "Blog Not Found")
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err.(common.ValidationError).Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSuccess(w, r, http.StatusOK, nil, "blog published")
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	err = app.blogService.DeleteBlog(r.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "Blog Not Found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSuccess(w, r, http.StatusOK, nil, "blog deleted")
}

func (app *application) listDraftsHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	drafts, err := app.blogService.ListDrafts(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeSuccess(w, r, http.StatusOK, map[string]any{"drafts": drafts}, "")
}

func (app *application) searchBlogsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := app.readStringParam(r, "q")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, err := app.blogService.SearchBlogs(r.Context(), q)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			app.failedValidationErrorResponse(w, r, err.(common.ValidationError).Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSuccess(w, r, http.StatusOK, map[string]any{"blogs": blogs}, "")
}

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := app.readIDParam(r, "page")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blogs, meta, err := app.blogService.ListBlogs(r.Context(), page)
	if err != nil {
		var pageErr common.PageOutOfRangeError
		switch {
		case errors.Is(err, common.ErrPageTooLow):
			app.writeErrorResponse(w, r, http.StatusBadRequest, "Starting Page Number is 1")
		case errors.Is(err, common.ErrNoResults):
			app.writeErrorResponse(w, r, http.StatusBadRequest, "No Blogs Found")
		case errors.As(err, &pageErr):
			app.writeErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Final Page Number is %d", pageErr.FinalPage))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSuccess(w, r, http.StatusOK, map[string]any{"blogs": blogs, "page": meta}, "")
}
