// Package requestid attaches a correlation id to every HTTP request.
//
// The middleware reuses a well-formed client "X-Request-ID" header
// (letters, digits, '-' and '_', at most 128 bytes) or generates a UUIDv4,
// stores the id in the request context and echoes it in the response.
//
//	r := chi.NewRouter()
//	r.Use(requestid.New(requestid.WithTrustHeader(false)))
//
// LoggerExtractor plugs the id into loggers built with pkg/logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.InfoContext(r.Context(), "booking created") // carries request_id
//
// Logger binds the id to a logger for code that logs without a context.
package requestid
