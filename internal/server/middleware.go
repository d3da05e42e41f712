package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/example/ctcourse/pkg/models"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

type contextKey string

const userKey contextKey = "user"

// currentUser returns the authenticated user placed on the context by
// requireAuth.
func currentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// requireAuth resolves the session cookie to a user and rejects
// unauthenticated requests with a typed 401 result.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			token = cookie.Value
		}

		user, err := s.auth.UserFromToken(r.Context(), token)
		if err != nil {
			respondFailure(w, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// requireAdmin gates administrator-only routes. Composed after requireAuth.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user := currentUser(r.Context()); user == nil || !user.IsAdmin {
			respondError(w, http.StatusForbidden, "administrator access required")
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
