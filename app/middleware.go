package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/sushihentaime/inkwell/internal/userservice"
)

const requestIDHeader = "X-Request-ID"

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		r = withRequestID(r, id)

		var (
			ip     = r.RemoteAddr
			method = r.Method
			proto  = r.Proto
			uri    = r.URL.RequestURI()
		)

		app.logger.Info("request from", slog.String("method", method), slog.String("uri", uri), slog.String("remote_addr", ip), slog.String("proto", proto), slog.String("request_id", id))

		next.ServeHTTP(w, r)
	})
}

// enableCORS allows every origin unless TRUSTED_ORIGINS narrows it.
func (app *application) enableCORS(next http.Handler) http.Handler {
	origins := app.config.TrustedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}).Handler(next)
}

// requireAuthUser verifies the bearer token and stores the caller's user id in the request
// context.
func (app *application) requireAuthUser(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		userID, err := app.userService.VerifyToken(bearerToken(r))
		if err != nil {
			switch {
			case errors.Is(err, userservice.ErrMissingToken):
				app.missingTokenResponse(w, r)
			default:
				app.invalidAuthenticationTokenResponse(w, r)
			}
			return
		}

		next.ServeHTTP(w, withUserID(r, userID))
	})
}
