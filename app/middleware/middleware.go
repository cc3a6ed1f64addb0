package middleware

import (
	"context"
	"net/http"
	"time"

	"quill/app/models"
	"quill/app/services"

	"go.uber.org/zap"
)

type contextKey string

const userKey contextKey = "currentUser"

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "quill_session"

// Logger logs information about each request
func Logger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}

// Recoverer recovers from panics and logs the error
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate resolves the session cookie to a viewer identity and puts
// it on the request context. Requests without a valid session proceed
// anonymously; the services decide what anonymous viewers may do.
func Authenticate(users *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				if user, err := users.CurrentUser(cookie.Value); err == nil {
					r = WithUser(r, user)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser returns the authenticated viewer, or nil for anonymous
// requests.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// WithUser attaches a viewer identity to the request.
func WithUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}
