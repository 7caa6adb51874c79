package main

import (
	"log/slog"
	"net/http"

	"github.com/sushihentaime/inkwell/internal/common"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url), slog.String("request_id", requestID(r)))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	app.writeEnvelopeResponse(w, r, status, envelope{"error": message})
}

func (app *application) writeEnvelopeResponse(w http.ResponseWriter, r *http.Request, status int, env envelope) {
	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

// serverErrorMessageResponse logs err and answers 500 with a caller-facing message.
func (app *application) serverErrorMessageResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	app.logError(r, err)
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "resource not found")
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// failedValidationErrorResponse answers 403 with the first failure as the error and every
// failure under fields.
func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, verr common.ValidationError) {
	app.writeEnvelopeResponse(w, r, http.StatusForbidden, envelope{"error": verr.Message(), "fields": verr.Errors})
}

func (app *application) forbiddenErrorResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.writeErrorResponse(w, r, http.StatusForbidden, message)
}

func (app *application) missingTokenResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "no access token")
}

func (app *application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusForbidden, "access token is invalid")
}
