package gate

import (
	"io"
	"net/http"
	"strings"
	"time"
)

// Custom header names carrying the caller's credentials.
const (
	HeaderClientID     = "X-Client-Id"
	HeaderSessionToken = "X-Session-Token"
)

// malformedRemoteAddrMarker is the literal value our nginx deployment leaves
// in the remote address slot when the upstream address is mangled.
// TODO: confirm the marker against the production proxy config.
const malformedRemoteAddrMarker = "b''"

// Normalize extracts request metadata into a fresh RequestContext. This is
// pure extraction: an unreadable body or absent header never fails here, the
// downstream checks report whatever is missing.
func Normalize(route Route, r *http.Request, now time.Time) *RequestContext {
	rc := &RequestContext{
		Timestamp:    now.Unix(),
		ClientIP:     clientIP(r),
		Method:       r.Method,
		Route:        route,
		URL:          r.URL.Path,
		ContentType:  r.Header.Get("Content-Type"),
		UserAgent:    r.Header.Get("User-Agent"),
		ClientID:     r.Header.Get(HeaderClientID),
		SessionToken: r.Header.Get(HeaderSessionToken),
	}

	if r.Body != nil {
		// Read errors leave Body empty; syntax validation will flag it.
		body, err := io.ReadAll(r.Body)
		if err == nil {
			rc.Body = body
		}
	}

	return rc
}

// clientIP extracts the client address, handling proxies and load balancers.
func clientIP(r *http.Request) string {
	addr := r.RemoteAddr

	// Misconfigured intermediaries can mangle the remote address; fall back
	// to the forwarded headers they do populate.
	if addr == "" || addr == malformedRemoteAddrMarker {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// First entry is the original client.
			if idx := strings.Index(xff, ","); idx != -1 {
				return strings.TrimSpace(xff[:idx])
			}
			return strings.TrimSpace(xff)
		}
		if ra := r.Header.Get("Remote-Addr"); ra != "" {
			return strings.TrimSpace(ra)
		}
		return "unknown"
	}

	// RemoteAddr is "ip:port" for IPv4 and "[::1]:port" for IPv6.
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		host := addr[:idx]
		host = strings.TrimPrefix(host, "[")
		host = strings.TrimSuffix(host, "]")
		return host
	}
	return addr
}
