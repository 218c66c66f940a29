package server

import (
	"encoding/json"
	"net/http"

	"github.com/jverhoef/cardrail/pkg/errors"
)

// errorEnvelope is the JSON body of every error response.
type errorEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)

	var env errorEnvelope
	env.Error.Code = string(code)
	env.Error.Message = err.Error()
	env.Error.RequestID = RequestID(r.Context())

	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err, "request_id", env.Error.RequestID)
	}
	respondJSON(w, status, env)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCard, errors.ErrCodeInvalidViewport,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidProgress:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeCategoryNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStore, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
