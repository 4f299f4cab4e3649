package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ecolink/ecolink/internal/ai"
	"github.com/ecolink/ecolink/internal/waste"
)

var (
	errUnknownCompany  = errors.New("company not found")
	errUnknownCategory = errors.New("unknown category")
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps an error onto a status code and a JSON body. Classifier
// failures keep their kind in the code so clients can tell them apart.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: err.Error()}})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ai.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, errUnknownCategory), errors.Is(err, waste.ErrUnknownTag):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, errUnknownCompany):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ai.ErrParse):
		return http.StatusUnprocessableEntity, "classifier_parse_error"
	case errors.Is(err, ai.ErrEmptyResult):
		return http.StatusUnprocessableEntity, "classifier_empty_result"
	case errors.Is(err, ai.ErrTransport):
		return http.StatusBadGateway, "classifier_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
