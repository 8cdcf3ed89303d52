package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripnest/inputguard/internal/api"
	"github.com/tripnest/inputguard/pkg/logger"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

type envelope struct {
	Data  jsoniter.RawMessage `json:"data"`
	Error *api.ErrorDetail    `json:"error"`
}

func newRouter(t *testing.T, mutate ...func(*api.Config)) (http.Handler, *api.Metrics) {
	t.Helper()
	m := api.NewMetrics()
	cfg := api.Config{
		Sanitizer: sanitizer.New(
			sanitizer.WithLogger(logger.Discard()),
			sanitizer.WithDetectionHook(m.DetectionHook()),
		),
		Metrics: m,
		Logger:  logger.Discard(),
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	return api.NewRouter(cfg), m
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t)

	tests := []struct {
		name string
		body string
		want sanitizer.Result
	}{
		{
			name: "plain text",
			body: `{"input":"  <b>Hello</b> world  "}`,
			want: sanitizer.Result{Valid: true, Sanitized: "Hello world", Errors: []string{}},
		},
		{
			name: "xss rejected",
			body: `{"input":"<script>alert(1)</script>"}`,
			want: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{sanitizer.MsgXSSDetected}},
		},
		{
			name: "typed email",
			body: `{"input":"Guest@Hotel.COM","options":{"type":"email"}}`,
			want: sanitizer.Result{Valid: true, Sanitized: "guest@hotel.com", Errors: []string{}},
		},
		{
			name: "length",
			body: `{"input":"abcdef","options":{"maxLength":3}}`,
			want: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Input exceeds maximum length of 3"}},
		},
		{
			name: "sql check disabled",
			body: `{"input":"1 OR 1=1","options":{"checkSql":false}}`,
			want: sanitizer.Result{Valid: true, Sanitized: "1 OR 1=1", Errors: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := do(t, h, http.MethodPost, "/v1/validate", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Nil(t, env.Error)

			var got sanitizer.Result
			require.NoError(t, jsoniter.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateEndpoint_BadRequests(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t, func(c *api.Config) { c.MaxBodySize = 64 })

	tests := []struct {
		name    string
		body    string
		status  int
		code    string
		details map[string][]string
	}{
		{name: "missing input", body: `{}`, status: http.StatusUnprocessableEntity, code: "validation_error",
			details: map[string][]string{"input": {"is required"}}},
		{name: "unknown context", body: `{"input":"x","options":{"type":"zip"}}`, status: http.StatusUnprocessableEntity, code: "validation_error",
			details: map[string][]string{"options.type": {"must be a known context"}}},
		{name: "negative length", body: `{"input":"x","options":{"maxLength":-1}}`, status: http.StatusUnprocessableEntity, code: "validation_error",
			details: map[string][]string{"options.maxLength": {"must be no less than 0"}}},
		{name: "malformed", body: `{"input":`, status: http.StatusBadRequest, code: "bad_request"},
		{name: "too large", body: `{"input":"` + strings.Repeat("a", 100) + `"}`, status: http.StatusRequestEntityTooLarge, code: "body_too_large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := do(t, h, http.MethodPost, "/v1/validate", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			if tt.details != nil {
				assert.Equal(t, tt.details, env.Error.Details)
			}
		})
	}
}

func TestDetectEndpoint(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t)

	tests := []struct {
		input string
		want  api.DetectResponse
	}{
		{input: "Hello", want: api.DetectResponse{}},
		{input: "<img src=x onerror=alert(1)>", want: api.DetectResponse{XSS: true}},
		{input: "' OR '1'='1", want: api.DetectResponse{SQL: true}},
		{input: "<script>x</script>; DROP TABLE users --", want: api.DetectResponse{XSS: true, SQL: true}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			body, err := jsoniter.MarshalToString(map[string]string{"input": tt.input})
			require.NoError(t, err)

			rec, env := do(t, h, http.MethodPost, "/v1/detect", body)
			require.Equal(t, http.StatusOK, rec.Code)

			var got api.DetectResponse
			require.NoError(t, jsoniter.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeEndpoint(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t)
	body := `{"name":"<b>Ana</b>","password":"secret","nested":{"note":"<i>hi</i>"}}`

	tests := []struct {
		name   string
		target string
		want   map[string]any
	}{
		{name: "no allowlist", target: "/v1/sanitize", want: map[string]any{
			"name": "Ana", "password": "secret", "nested": map[string]any{"note": "hi"},
		}},
		{name: "allowlist", target: "/v1/sanitize?fields=name,nested", want: map[string]any{
			"name": "Ana", "nested": map[string]any{"note": "hi"},
		}},
		{name: "empty allowlist", target: "/v1/sanitize?fields=", want: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := do(t, h, http.MethodPost, tt.target, body)
			require.Equal(t, http.StatusOK, rec.Code)

			var got map[string]any
			require.NoError(t, jsoniter.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("not json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/v1/sanitize", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("array body", func(t *testing.T) {
		t.Parallel()
		rec, env := do(t, h, http.MethodPost, "/v1/sanitize", `["a"]`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "bad_request", env.Error.Code)
	})
}

func TestPolicyEndpoint(t *testing.T) {
	t.Parallel()

	policy, err := sanitizer.ParsePolicy([]byte("fields:\n  email:\n    type: email\n    required: true\n"))
	require.NoError(t, err)

	withPolicy, _ := newRouter(t, func(c *api.Config) { c.Policy = policy })
	rec, env := do(t, withPolicy, http.MethodPost, "/v1/policy/apply", `{"email":"A@B.io","extra":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@b.io"}`, string(env.Data))

	rec, env = do(t, withPolicy, http.MethodPost, "/v1/policy/apply", `{"extra":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "policy_violation", env.Error.Code)
	assert.Equal(t, map[string][]string{"email": {sanitizer.MsgFieldRequired}}, env.Error.Details)

	without, _ := newRouter(t)
	rec, env = do(t, without, http.MethodPost, "/v1/policy/apply", `{"email":"a@b.io"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t)

	rec, _ := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"alive"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	_, _ = do(t, h, http.MethodPost, "/v1/detect", `{"input":"<iframe src=x>"}`)

	rec, _ = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `inputguard_detections_total{detector="xss",pattern="(?i)<iframe"} 1`)
	assert.Contains(t, out, `inputguard_http_requests_total{method="POST",route="/v1/detect",status="200"} 1`)

	rec, env := do(t, h, http.MethodDelete, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", env.Error.Code)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	h, m := newRouter(t, func(c *api.Config) { c.RateLimitRPM = 2 })

	for range 2 {
		rec, _ := do(t, h, http.MethodPost, "/v1/detect", `{"input":"hi"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, env := do(t, h, http.MethodPost, "/v1/detect", `{"input":"hi"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limited", env.Error.Code)
	assert.Equal(t, 1.0, counterValue(t, m.RateLimitedHits))

	rec, _ = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code, "health is not rate limited")
}

func TestRateLimit_TrustedProxyHeader(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t, func(c *api.Config) {
		c.RateLimitRPM = 1
		c.IPHeaders = []string{"X-Forwarded-For"}
	})

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/detect", strings.NewReader(`{"input":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"), "separate clients behind one proxy")
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
}

func TestCORS(t *testing.T) {
	t.Parallel()
	h, _ := newRouter(t, func(c *api.Config) { c.CORSOrigins = []string{"https://booking.example.com"} })

	req := httptest.NewRequest(http.MethodOptions, "/v1/validate", nil)
	req.Header.Set("Origin", "https://booking.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://booking.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
