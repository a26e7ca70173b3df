package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are consulted in order before RemoteAddr.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Extractor finds the client address of a request.
// Headers are only meaningful behind a proxy that overwrites them.
type Extractor struct {
	headers []string
}

// New creates an Extractor trusting headers in order. No headers means
// DefaultHeaders; pass an empty slice through NewDirect to trust none.
func New(headers ...string) *Extractor {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	return &Extractor{headers: headers}
}

// NewDirect uses RemoteAddr only.
func NewDirect() *Extractor {
	return &Extractor{}
}

// IP returns the normalized client address, or "" when none is valid.
func (e *Extractor) IP(r *http.Request) string {
	for _, h := range e.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		// X-Forwarded-For style lists: first valid entry is the client.
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
