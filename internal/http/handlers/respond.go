package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"starborg-web/internal/apperr"
	"starborg-web/internal/auth"
	"starborg-web/internal/http/views"
	"starborg-web/internal/security"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write JSON response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// redirectWithFlash queues message and redirects to url.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, sessions *security.SessionStore, url, message string) {
	if err := sessions.AddFlash(w, r, message); err != nil {
		slog.Error("Failed to add flash", "error", err)
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// renderPage renders a page including any pending flash messages.
func renderPage(w http.ResponseWriter, r *http.Request, v *views.Renderer, sessions *security.SessionStore, name string, data views.Page) {
	data.Flashes = append(sessions.Flashes(w, r), data.Flashes...)
	if err := v.Render(w, http.StatusOK, name, data); err != nil {
		serverError(w, r, err)
	}
}

// failPage answers an error on an HTML route.
func failPage(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.CodeOf(err) {
	case apperr.CodeInternal:
		serverError(w, r, err)
	case apperr.CodeNotFound:
		http.NotFound(w, r)
	case apperr.CodeForbidden:
		http.Error(w, auth.MsgAccessDenied, http.StatusForbidden)
	default:
		http.Error(w, apperr.MessageOf(err), apperr.HTTPStatus(err))
	}
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
