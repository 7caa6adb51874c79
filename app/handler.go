package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/inkwell/internal/blogservice"
	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/mailservice"
	"github.com/sushihentaime/inkwell/internal/userservice"
)

type signupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var input signupRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	res, err := app.userService.SignUp(r.Context(), input.Fullname, input.Email, input.Password)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr)
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.serverErrorMessageResponse(w, r, err, "Email Already Exists")
		case errors.Is(err, userservice.ErrDuplicateUsername):
			app.serverErrorMessageResponse(w, r, err, "Username Already Exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeAuthResponse(w, r, res)
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) signinHandler(w http.ResponseWriter, r *http.Request) {
	var input signinRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	res, err := app.userService.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr)
		case errors.Is(err, userservice.ErrNotFound):
			app.forbiddenErrorResponse(w, r, "Email not found")
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.forbiddenErrorResponse(w, r, "Incorrect password")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeAuthResponse(w, r, res)
}

func (app *application) writeAuthResponse(w http.ResponseWriter, r *http.Request, res *userservice.AuthResponse) {
	env := envelope{
		"access_token": res.AccessToken,
		"profile_img":  res.ProfileImg,
		"username":     res.Username,
		"fullname":     res.Fullname,
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) latestBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.ListLatestPublished(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.UpsertBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	id, err := app.blogService.UpsertBlog(r.Context(), userID(r), &input)
	if err != nil {
		var verr common.ValidationError
		switch {
		case errors.As(err, &verr):
			app.failedValidationErrorResponse(w, r, verr)
		case errors.Is(err, blogservice.ErrNotFoundOrUnauthorized):
			app.writeErrorResponse(w, r, http.StatusNotFound, "Blog not found or you are not authorized to edit it")
		case errors.Is(err, blogservice.ErrOwnerLink):
			app.serverErrorMessageResponse(w, r, err, "Failed to update total posts number")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"id": id}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.GetBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	v := common.NewValidator()
	v.Check(input.BlogID != "", "blog_id", "Blog id must be provided")
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.ValidationError().(common.ValidationError))
		return
	}

	blog, err := app.blogService.FetchForRead(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrDraftAccess):
			app.serverErrorMessageResponse(w, r, err, "you can not access draft blogs")
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.serverErrorMessageResponse(w, r, err, "blog not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.DeleteBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.blogService.DeleteOwnedBlog(r.Context(), input.BlogID, userID(r))
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrNotFoundOrUnauthorized):
			app.writeErrorResponse(w, r, http.StatusNotFound, "Blog not found or you are not authorized to delete it")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Blog deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) uploadURLHandler(w http.ResponseWriter, r *http.Request) {
	upload, err := app.uploadService.GenerateUploadURL(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"uploadURL": upload.URL}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) submitFormHandler(w http.ResponseWriter, r *http.Request) {
	var input mailservice.ContactMessage

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.mailService.SendContactMessage(r.Context(), input)
	if err != nil {
		app.logError(r, err)
		app.writeEnvelopeResponse(w, r, http.StatusInternalServerError, envelope{"success": false, "error": "Internal Server Error"})
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
