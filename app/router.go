package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)
	// preflight requests are answered by enableCORS
	router.HandleOPTIONS = false

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// user service
	router.HandlerFunc(http.MethodPost, "/signup", app.signupHandler)
	router.HandlerFunc(http.MethodPost, "/signin", app.signinHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/latest-blogs", app.latestBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/create-blog", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodPost, "/get-blog", app.getBlogHandler)
	router.HandlerFunc(http.MethodPost, "/delete-blog", app.requireAuthUser(app.deleteBlogHandler))

	// upload and mail services
	router.HandlerFunc(http.MethodGet, "/get-upload-url", app.uploadURLHandler)
	router.HandlerFunc(http.MethodPost, "/submit-form", app.submitFormHandler)

	return app.recoverPanic(app.logRequest(app.enableCORS(router)))
}
