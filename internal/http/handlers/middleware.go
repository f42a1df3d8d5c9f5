package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"starborg-web/internal/apperr"
	"starborg-web/internal/auth"
	"starborg-web/internal/models"
	"starborg-web/internal/security"
)

// MsgLoginRequired is flashed when an anonymous user opens a protected page.
const MsgLoginRequired = "Please log in to access this page."

type contextKey int

const userKey contextKey = iota

// currentUser returns the user stored by RequireAuth.
func currentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}

// SessionUser resolves the user of the request's session.
// It returns an Unauthorized error when there is no valid session.
func SessionUser(r *http.Request, sessions *security.SessionStore, users *auth.Service) (*models.User, error) {
	sess, err := sessions.GetSession(r)
	if err != nil {
		return nil, err
	}
	return users.User(r.Context(), sess.UserID)
}

// RequireAuth only lets requests with a valid session through and makes the
// user available to the next handler.
// Anonymous requests are redirected to the index page, or get a 401 JSON
// error when jsonAPI is true.
func RequireAuth(sessions *security.SessionStore, users *auth.Service, jsonAPI bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := SessionUser(r, sessions, users)
			if err != nil {
				if apperr.CodeOf(err) != apperr.CodeUnauthorized {
					serverError(w, r, err)
					return
				}
				if jsonAPI {
					writeJSONError(w, http.StatusUnauthorized, MsgLoginRequired)
					return
				}
				redirectWithFlash(w, r, sessions, "/", MsgLoginRequired)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LogRequests logs every request after it has been served.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
