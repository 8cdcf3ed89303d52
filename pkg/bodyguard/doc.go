// Package bodyguard is HTTP middleware that sanitizes JSON request bodies
// before they reach booking handlers.
//
// For requests with an application/json (or +json) body the middleware:
//
//   - reads at most the configured size, answering 413 beyond it;
//   - decodes a JSON object, answering 400 for malformed JSON or any other
//     top-level value;
//   - runs sanitizer.SanitizeRequestBody with the configured allowlist, or
//     the configured sanitizer.Policy, answering 422 with per-field messages
//     when the policy rejects the body;
//   - replaces r.Body with the re-encoded sanitized object and stores the
//     object in the request context.
//
//	r.With(bodyguard.New(
//		bodyguard.WithAllowedFields("guestName", "email", "checkIn"),
//		bodyguard.WithLogger(log),
//	)).Post("/bookings", createBooking)
//
//	func createBooking(w http.ResponseWriter, r *http.Request) {
//		body, _ := bodyguard.FromContext(r.Context())
//		...
//	}
//
// Detector hits are logged by the sanitizer at the SECURITY level with the
// request id attached.
package bodyguard
