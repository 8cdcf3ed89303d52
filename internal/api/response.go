package api

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	jsoniter "github.com/json-iterator/go"

	"github.com/tripnest/inputguard/pkg/bodyguard"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

var responseJSON = jsoniter.Config{
	EscapeHTML:  true,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// Envelope is the body of every /v1 response.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = responseJSON.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, Envelope{Data: v})
}

// writeError maps err onto a status code and error code.
func writeError(w http.ResponseWriter, err error) {
	status, detail := errorToDetail(err)
	writeJSON(w, status, Envelope{Error: detail})
}

func errorToDetail(err error) (int, *ErrorDetail) {
	var (
		valErrs   validation.Errors
		fieldErrs sanitizer.FieldErrors
	)
	switch {
	case errors.As(err, &valErrs):
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "validation_error",
			Message: "request validation failed",
			Details: flattenValidation("", valErrs),
		}
	case errors.As(err, &fieldErrs):
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "policy_violation",
			Message: sanitizer.ErrPolicyViolation.Error(),
			Details: fieldErrs,
		}
	case errors.Is(err, bodyguard.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, &ErrorDetail{Code: "body_too_large", Message: err.Error()}
	case errors.Is(err, bodyguard.ErrMalformedJSON), errors.Is(err, bodyguard.ErrNotObject):
		return http.StatusBadRequest, &ErrorDetail{Code: "bad_request", Message: err.Error()}
	default:
		return http.StatusInternalServerError, &ErrorDetail{Code: "internal_error", Message: http.StatusText(http.StatusInternalServerError)}
	}
}

// flattenValidation turns nested ozzo errors into dotted field paths.
func flattenValidation(prefix string, errs validation.Errors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for field, err := range errs {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(err, &nested) {
			for k, v := range flattenValidation(key, nested) {
				out[k] = v
			}
			continue
		}
		out[key] = []string{err.Error()}
	}
	return out
}
