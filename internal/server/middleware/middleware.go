// Package middleware holds the HTTP handler wrappers used by the API
// server.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain wraps h so that the first middleware runs outermost.
func Chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}
