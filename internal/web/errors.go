package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and the request id, then
// mapped through core.MapError to a message the user can act on. API
// routes answer with JSON; pages re-render with an inline alert. The
// status code is derived from the error with errors.Is, so handlers only
// need to wrap with %w.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/logging"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/viz"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/web/templates"
)

var (
	errNoFile       = errors.New("no file provided")
	errFileTooLarge = errors.New("file too large")
	errRateLimited  = errors.New("rate limit exceeded")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor maps an error to the HTTP status it is reported with.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, core.ErrInvalidSelection), errors.Is(err, errNoFile):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNoUpload):
		return http.StatusNotFound
	case errors.Is(err, errFileTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, core.ErrEncoding),
		errors.Is(err, core.ErrInvalidCSV),
		errors.Is(err, core.ErrInvalidWorkbook),
		errors.Is(err, viz.ErrNoValues),
		errors.Is(err, viz.ErrNotNumeric),
		errors.Is(err, viz.ErrUnknownColumn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrBusy), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// logError records the technical error. Client errors log at warn.
func logError(r *http.Request, err error, status int, msg core.UserMessage) {
	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", args...)
		return
	}
	logger.Warn("request error", args...)
}

// respondError handles error responses with user-friendly messages.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)
	logError(r, err, status, msg)

	if wantsJSON(r) {
		respondErrorJSON(w, msg, status)
		return
	}
	s.renderPage(w, r, status, templates.PageData{Alert: &msg})
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}

	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
