package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Resolver extracts the client address of a request. Proxy headers are
// attacker-controlled unless a trusted proxy sets them, so a Resolver only
// reads the headers it was configured with.
type Resolver struct {
	headers []string
}

// New returns a Resolver that consults headers in order before falling back
// to RemoteAddr. With no headers only RemoteAddr is used.
//
//	clientip.New("CF-Connecting-IP", "X-Forwarded-For")
func New(headers ...string) *Resolver {
	clean := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			clean = append(clean, http.CanonicalHeaderKey(h))
		}
	}
	return &Resolver{headers: clean}
}

// IP returns the normalized client IP, or "" when nothing valid is found.
// For X-Forwarded-For the rightmost valid entry wins: it is the one the
// nearest trusted proxy appended, while entries to its left are client supplied.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if h == "X-Forwarded-For" {
			parts := strings.Split(v, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				if ip := parseIP(parts[i]); ip != "" {
					return ip
				}
			}
			continue
		}
		if ip := parseIP(v); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Key is IP in the signature rate limiters expect for key functions.
func (res *Resolver) Key(r *http.Request) (string, error) {
	return res.IP(r), nil
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
