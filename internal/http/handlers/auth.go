package handlers

import (
	"net/http"

	"starborg-web/internal/apperr"
	"starborg-web/internal/auth"
	"starborg-web/internal/http/views"
	"starborg-web/internal/security"
)

type AuthHandler struct {
	auth  *auth.Service
	sec   *security.SessionStore
	views *views.Renderer
}

func NewAuthHandler(authService *auth.Service, sec *security.SessionStore, v *views.Renderer) *AuthHandler {
	return &AuthHandler{
		auth:  authService,
		sec:   sec,
		views: v,
	}
}

// Index sends logged in users to their dashboard and shows the login page to everyone else.
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	if _, err := SessionUser(r, h.sec, h.auth); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	renderPage(w, r, h.views, h.sec, views.PageIndex, views.Page{})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.auth.Register(r.Context(), username, password)
	if err != nil {
		h.failAuth(w, r, err)
		return
	}
	if err := h.sec.CreateSession(w, r, user.ID); err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		h.failAuth(w, r, err)
		return
	}
	if err := h.sec.CreateSession(w, r, user.ID); err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sec.DestroySession(w, r); err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// failAuth flashes user facing errors and sends the user back to the index page.
func (h *AuthHandler) failAuth(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.CodeOf(err) {
	case apperr.CodeConflict, apperr.CodeUnauthorized, apperr.CodeInvalidInput:
		redirectWithFlash(w, r, h.sec, "/", apperr.MessageOf(err))
	default:
		serverError(w, r, err)
	}
}
