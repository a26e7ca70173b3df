package tenant

import (
	"net"
	"net/http"
	"strconv"
	"strings"
)

// URL builds "{protocol}://{slug}.{baseDomain}[:port][/path]".
// The port is omitted when it is zero or the protocol's default (80 for http, 443 for https).
func URL(slug, baseDomain, protocol string, port int, path string) string {
	if protocol == "" {
		protocol = "https"
	}

	var b strings.Builder
	b.WriteString(protocol)
	b.WriteString("://")
	b.WriteString(slug)
	b.WriteByte('.')
	b.WriteString(baseDomain)

	if port > 0 && !isDefaultPort(protocol, port) {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(port))
	}

	if path = strings.TrimLeft(path, "/"); path != "" {
		b.WriteByte('/')
		b.WriteString(path)
	}

	return b.String()
}

func isDefaultPort(protocol string, port int) bool {
	switch protocol {
	case "http":
		return port == 80
	case "https":
		return port == 443
	}
	return false
}

// RequestOrigin returns the protocol and port the client used to reach the server.
// X-Forwarded-Proto wins over TLS state; a missing port resolves to the protocol default.
func RequestOrigin(r *http.Request) (protocol string, port int) {
	protocol = "http"
	if r.TLS != nil {
		protocol = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		protocol = strings.ToLower(strings.TrimSpace(strings.Split(fwd, ",")[0]))
	}

	if _, p, err := net.SplitHostPort(r.Host); err == nil {
		if n, err := strconv.Atoi(p); err == nil {
			return protocol, n
		}
	}

	if protocol == "https" {
		return protocol, 443
	}
	return protocol, 80
}
