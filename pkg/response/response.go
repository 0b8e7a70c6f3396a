// Package response writes the storefront's JSON envelope:
//
//	{"status": 200, "message": "...", "data": ..., "errors": {...}}
//
// Fail is the single place where errors become HTTP responses.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Page is the data payload of a paginated response.
type Page struct {
	Items      any            `json:"items"`
	Pagination orm.Pagination `json:"pagination"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with a message and optional data.
func Created(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Message: message, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// Paginated sends a 200 response with items and pagination metadata.
func Paginated(w http.ResponseWriter, items any, p orm.Pagination) {
	Success(w, Page{Items: items, Pagination: p})
}

// Fail translates err into the matching status and client-safe message.
// Causes of Internal and Upstream errors are logged with the request id
// and never written to the client.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	body := envelope{Status: kind.Status(), Message: kind.Message()}

	if e, ok := apperr.As(err); ok {
		if e.Message != "" {
			body.Message = e.Message
		}
		if len(e.Fields) > 0 {
			body.Errors = e.Fields
		}
	}

	log := logger.WithCtx(r.Context())
	switch kind {
	case apperr.Internal, apperr.Upstream:
		log.Error("request failed", "kind", kind.String(), "error", err)
	default:
		log.Debug("request rejected", "kind", kind.String(), "error", err)
	}

	write(w, body.Status, body)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, apperr.NotFound.Message())
}
