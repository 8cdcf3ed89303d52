package bodyguard

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/tripnest/inputguard/pkg/logger"
	"github.com/tripnest/inputguard/pkg/requestid"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

// bodyJSON keeps numbers as json.Number so large ids survive the round trip.
var bodyJSON = jsoniter.Config{
	EscapeHTML:             false,
	UseNumber:              true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// ErrorResponse is the body written for rejected requests.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// New returns middleware that sanitizes JSON request bodies before they
// reach the handler. The sanitized object is available through FromContext
// and as the new request body. Requests without a JSON body pass through.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{maxBodySize: DefaultMaxBodySize, onError: DefaultErrorHandler}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasJSONBody(r) {
				next.ServeHTTP(w, r)
				return
			}

			log := requestid.Logger(r.Context(), o.log).With(logger.Component("bodyguard"))
			engine := o.sanitizer
			if engine == nil {
				engine = sanitizer.Default()
			}
			engine = engine.WithLogger(log)

			body, err := decode(w, r, o.maxBodySize)
			if err != nil {
				log.Warn("request body rejected", logger.Error(err))
				o.onError(w, r, err)
				return
			}

			clean, err := o.apply(engine, body, r)
			if err != nil {
				var fieldErrs sanitizer.FieldErrors
				errors.As(err, &fieldErrs)
				log.Warn("request body violates policy",
					slog.Int("fields", len(fieldErrs)))
				o.onError(w, r, err)
				return
			}

			encoded, err := bodyJSON.Marshal(clean)
			if err != nil {
				log.Error("failed to encode sanitized body", logger.Error(err))
				o.onError(w, r, errors.Join(sanitizer.ErrSanitizationFailed, err))
				return
			}

			r = r.WithContext(withBody(r.Context(), clean))
			r.Body = io.NopCloser(bytes.NewReader(encoded))
			r.ContentLength = int64(len(encoded))
			r.Header.Set("Content-Length", strconv.Itoa(len(encoded)))
			next.ServeHTTP(w, r)
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func (o options) apply(engine *sanitizer.Sanitizer, body map[string]any, r *http.Request) (map[string]any, error) {
	if o.policy != nil {
		return engine.ApplyPolicy(o.policy, body)
	}
	allowed := o.allowed
	if o.allowedFunc != nil {
		allowed = o.allowedFunc(r)
	}
	return engine.SanitizeRequestBody(body, allowed), nil
}

func hasJSONBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return false
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func decode(w http.ResponseWriter, r *http.Request, limit int64) (map[string]any, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, errors.Join(ErrMalformedJSON, err)
	}

	var v any
	if err := bodyJSON.Unmarshal(data, &v); err != nil {
		return nil, ErrMalformedJSON
	}
	body, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return body, nil
}

// DefaultErrorHandler writes an ErrorResponse with 413 for oversized bodies,
// 422 for policy violations, 400 for undecodable bodies and 500 otherwise.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var fieldErrs sanitizer.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeError(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  sanitizer.ErrPolicyViolation.Error(),
			Fields: fieldErrs,
		})
	case errors.Is(err, ErrBodyTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrBodyTooLarge.Error()})
	case errors.Is(err, ErrMalformedJSON):
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: ErrMalformedJSON.Error()})
	case errors.Is(err, ErrNotObject):
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: ErrNotObject.Error()})
	default:
		writeError(w, http.StatusInternalServerError, ErrorResponse{Error: sanitizer.ErrSanitizationFailed.Error()})
	}
}

func writeError(w http.ResponseWriter, code int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = bodyJSON.NewEncoder(w).Encode(body)
}
