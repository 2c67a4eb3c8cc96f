package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/logger"
	"github.com/straye-as/fieldservice-api/internal/service"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.ErrorResponse{
		Error: message,
		Type:  getErrorType(status),
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeValidation
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusRequestEntityTooLarge:
		return domain.ErrorTypeBadRequest
	default:
		return domain.ErrorTypeInternal
	}
}

// handleServiceError maps service error kinds to status codes. Unexpected
// errors are logged and answered without detail.
func handleServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		logger.FromContext(r.Context(), log).Error("request failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody decodes a JSON body into target leniently. An empty body leaves
// target untouched, a syntax error is logged and treated as an empty payload,
// and a type mismatch keeps the fields that did decode. It returns false after
// writing a response when the body cannot be read.
func decodeBody(w http.ResponseWriter, r *http.Request, log *zap.Logger, target interface{}) bool {
	if r.Body == nil {
		return true
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		handleServiceError(w, r, log, fmt.Errorf("failed to read request body: %w", err))
		return false
	}
	if len(raw) == 0 {
		return true
	}

	if err := json.Unmarshal(raw, target); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			logger.FromContext(r.Context(), log).Debug("malformed JSON body treated as empty payload",
				zap.ByteString("raw", raw),
				zap.Int64("offset", syntaxErr.Offset))
		case errors.As(err, &typeErr):
			logger.FromContext(r.Context(), log).Debug("JSON body field has unexpected type",
				zap.String("field", typeErr.Field),
				zap.String("value", typeErr.Value))
		default:
			logger.FromContext(r.Context(), log).Debug("JSON body could not be decoded", zap.Error(err))
		}
	}
	return true
}

// NotFound answers unmatched method and path combinations
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "route not found")
}
