package tenant

import (
	"net"
	"strings"
)

// HostResult is the outcome of parsing a request host against the base domain.
// An empty Identifier means no subdomain.
type HostResult struct {
	Identifier string
}

// HasSubdomain reports whether the host carried a tenant candidate.
func (h HostResult) HasSubdomain() bool {
	return h.Identifier != ""
}

// NoSubdomain is the result for the base domain and unrelated hosts.
var NoSubdomain = HostResult{}

// ParseHost extracts the tenant candidate from host.
// "acme.shop.test" against "shop.test" yields "acme"; the base domain itself,
// unrelated domains and IP addresses yield NoSubdomain. Everything before the
// first ".{baseDomain}" is returned verbatim, so "foo.bar.shop.test" yields
// "foo.bar"; deciding whether that is a legal slug is left to the resolver.
func ParseHost(host, baseDomain string) HostResult {
	if host == "" || baseDomain == "" || host == baseDomain {
		return NoSubdomain
	}

	suffix := "." + baseDomain
	if !strings.HasSuffix(host, suffix) {
		return NoSubdomain
	}

	idx := strings.Index(host, suffix)
	if idx <= 0 {
		return NoSubdomain
	}

	return HostResult{Identifier: host[:idx]}
}

// NormalizeHost lowercases a Host header value and strips the port and a trailing dot.
func NormalizeHost(hostport string) string {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	return strings.ToLower(host)
}
