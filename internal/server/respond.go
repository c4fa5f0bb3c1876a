package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// writeError answers with the JSON form of err. Errors without a code are
// logged and reported as INTERNAL_ERROR without their details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	msg := apperrors.UserMessage(err)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code, msg = apperrors.ErrCodeInternal, "request cancelled"
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Code: code, Message: msg})
		return
	case code == "" || code == apperrors.ErrCodeInternal:
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		code, msg = apperrors.ErrCodeInternal, "internal error"
	}
	writeJSON(w, statusFor(code), errorResponse{Code: code, Message: msg})
}
