// Package clientip resolves the client address of HTTP requests.
//
// Forwarding headers are only honored when explicitly configured, since
// anyone can send them. Behind a single trusted proxy:
//
//	ips := clientip.New("X-Forwarded-For")
//	r.Use(ips.Middleware)
//	r.Use(httprate.Limit(100, time.Minute, httprate.WithKeyFuncs(ips.Key)))
//
// LoggerExtractor adds the stored address to context-aware log records.
package clientip
