package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"starborg-web/internal/auth"
	"starborg-web/internal/db"
	"starborg-web/internal/game"
	"starborg-web/internal/http/handlers"
	"starborg-web/internal/http/views"
	"starborg-web/internal/security"
)

// Deps holds everything the routes need.
type Deps struct {
	DB          *db.DB
	Sessions    *security.SessionStore
	Auth        *auth.Service
	Game        *game.Service
	Views       *views.Renderer
	AuthLimiter *security.RateLimiter
}

func Setup(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(handlers.LogRequests)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d.Auth, d.Sessions, d.Views)
	charHandler := handlers.NewCharacterHandler(d.Game, d.Sessions, d.Views)
	rollHandler := handlers.NewRollHandler(d.Game)

	page := handlers.RequireAuth(d.Sessions, d.Auth, false)
	api := handlers.RequireAuth(d.Sessions, d.Auth, true)
	limited := func(h http.HandlerFunc) http.Handler {
		if d.AuthLimiter == nil {
			return h
		}
		return d.AuthLimiter.Middleware(h)
	}

	r.HandleFunc("/", authHandler.Index).Methods("GET")
	r.Handle("/register", limited(authHandler.Register)).Methods("POST")
	r.Handle("/login", limited(authHandler.Login)).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	r.Handle("/dashboard", page(http.HandlerFunc(charHandler.Dashboard))).Methods("GET")
	r.Handle("/create_char", page(http.HandlerFunc(charHandler.CreateCharacterForm))).Methods("GET")
	r.Handle("/create_char", page(http.HandlerFunc(charHandler.CreateCharacter))).Methods("POST")
	r.Handle("/sheet/{char_id:[0-9]+}", page(http.HandlerFunc(charHandler.Sheet))).Methods("GET")
	r.Handle("/sheet/{char_id:[0-9]+}", page(http.HandlerFunc(charHandler.SaveSheet))).Methods("POST")
	r.Handle("/delete_char/{char_id:[0-9]+}", page(http.HandlerFunc(charHandler.DeleteCharacter))).Methods("GET")

	r.Handle("/roll_api", api(http.HandlerFunc(rollHandler.RollAPI))).Methods("POST")
	r.HandleFunc("/get_logs", rollHandler.GetLogs).Methods("GET")

	r.HandleFunc("/healthz", handlers.Health(d.DB)).Methods("GET")

	return r
}
