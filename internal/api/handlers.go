package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/tripnest/inputguard/pkg/bodyguard"
	"github.com/tripnest/inputguard/pkg/logger"
	"github.com/tripnest/inputguard/pkg/requestid"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

type handlers struct {
	engine      *sanitizer.Sanitizer
	log         *slog.Logger
	metrics     *Metrics
	maxBodySize int64
}

// engineFor binds the request id to the sanitizer's security events.
func (h *handlers) engineFor(r *http.Request) *sanitizer.Sanitizer {
	return h.engine.WithLogger(requestid.Logger(r.Context(), h.log))
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := errorToDetail(err)
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed", logger.Error(err))
	}
	writeJSON(w, status, Envelope{Error: detail})
}

func (h *handlers) validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeRequest(w, r, h.maxBodySize, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res := h.engineFor(r).ValidateAndSanitize(*req.Input, sanitizer.WithOptions(req.Options))
	h.metrics.observeValidation(req.Options.Type, res)
	writeData(w, res)
}

func (h *handlers) detect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := decodeRequest(w, r, h.maxBodySize, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	engine := h.engineFor(r)
	writeData(w, DetectResponse{
		XSS: engine.ContainsXSS(*req.Input),
		SQL: engine.ContainsSQLInjection(*req.Input),
	})
}

// sanitized writes the body prepared by the bodyguard middleware.
func (h *handlers) sanitized(w http.ResponseWriter, r *http.Request) {
	body, ok := bodyguard.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnsupportedMediaType, Envelope{Error: &ErrorDetail{
			Code:    "unsupported_media_type",
			Message: "expected a non-empty application/json object",
		}})
		return
	}
	writeData(w, body)
}

func (h *handlers) notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, Envelope{Error: &ErrorDetail{Code: "not_found", Message: http.StatusText(http.StatusNotFound)}})
}

func (h *handlers) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, Envelope{Error: &ErrorDetail{Code: "method_not_allowed", Message: http.StatusText(http.StatusMethodNotAllowed)}})
}

// fieldsFromQuery reads the allowlist from ?fields=a,b (repeatable).
// Without the parameter every field is kept; "?fields=" keeps none.
func fieldsFromQuery(r *http.Request) []string {
	values, present := r.URL.Query()["fields"]
	if !present {
		return nil
	}
	fields := []string{}
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}
	return fields
}
