package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tabcorehq/directoryd/internal/directory/service"
	"github.com/tabcorehq/directoryd/internal/directory/store"
	"github.com/tabcorehq/directoryd/pkg/httpx"
	"github.com/tabcorehq/directoryd/pkg/jwtx"
	"github.com/tabcorehq/directoryd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        *store.Store

	TokenService *service.TokenService
	UserService  *service.UserService
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st *store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
	}

	// Set default middleware chain. Identity binds the acting user from
	// any bearer token so audit stamps work even on unprotected routes.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Identity(r.codec),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/login", loginHandler)

	refreshHandler := &RefreshHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/auth/refresh", refreshHandler)
}

func (r *Router) registerUsers() {
	usersHandler := &UsersHandler{UserService: r.UserService}
	requireAccess := httpx.RequireAccess(r.codec)

	protect := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, requireAccess)
	}

	r.Mux.Handle("GET /v1/users", protect(usersHandler.HandleList))
	r.Mux.Handle("POST /v1/users", protect(usersHandler.HandleCreate))
	r.Mux.Handle("GET /v1/users/{id}", protect(usersHandler.HandleGet))
	r.Mux.Handle("PUT /v1/users/{id}", protect(usersHandler.HandlePut))
	r.Mux.Handle("PATCH /v1/users/{id}", protect(usersHandler.HandlePatch))
	r.Mux.Handle("DELETE /v1/users/{id}", protect(usersHandler.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
