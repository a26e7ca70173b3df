package rbac

import (
	"errors"
	"net/http"
)

// SubjectFunc extracts the subject from a request.
type SubjectFunc func(r *http.Request) Subject

// ErrorHandler renders an authorization failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler answers 401 for missing authentication and 403 otherwise.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	if errors.Is(err, ErrUnauthenticated) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// Require guards a route with a gate ability check.
func Require(g *Gate, ability string, subject SubjectFunc, onError ErrorHandler) func(http.Handler) http.Handler {
	if onError == nil {
		onError = DefaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.Check(r.Context(), subject(r), ability, nil); err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
