package requestid

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/tripnest/inputguard/pkg/logger"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type options struct {
	trustHeader bool
	generate    func() string
	log         *slog.Logger
}

// Option configures the middleware returned by New.
type Option func(*options)

// WithTrustHeader controls whether a client-supplied X-Request-ID is reused.
// Edge services facing untrusted clients can turn it off. Default: true.
func WithTrustHeader(trust bool) Option {
	return func(o *options) { o.trustHeader = trust }
}

// WithGenerator replaces the UUIDv4 generator. Nil is ignored.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generate = fn
		}
	}
}

// WithLogger logs rejected client-supplied ids at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New returns middleware that attaches a request id to the request context
// and echoes it in the response header. A client-supplied id is reused only
// when trusted and well-formed; anything else is replaced.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{trustHeader: true, generate: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !o.trustHeader || !isValidRequestID(id) {
				if id != "" && o.log != nil {
					o.log.DebugContext(r.Context(), "client request id replaced",
						logger.Truncated("client_request_id", id))
				}
				id = o.generate()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func isValidRequestID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
