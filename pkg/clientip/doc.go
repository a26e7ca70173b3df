// Package clientip determines the client address of an HTTP request from
// trusted proxy headers, falling back to RemoteAddr, and carries it in the
// request context for rate limiting and logging.
//
//	ips := clientip.New("X-Forwarded-For")
//	r.Use(ips.Middleware)
//	...
//	ip := clientip.FromContext(ctx)
package clientip
