package main

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDContextKey    = contextKey("user_id")
	requestIDContextKey = contextKey("request_id")
)

func withUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDContextKey, userID)
	return r.WithContext(ctx)
}

// userID panics when called outside requireAuthUser.
func userID(r *http.Request) string {
	id, ok := r.Context().Value(userIDContextKey).(string)
	if !ok {
		panic("missing user id in request context")
	}
	return id
}

func withRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}
