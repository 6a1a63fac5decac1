/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package httpserver assembles the route table and owns the http.Server
// lifecycle.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"connecto/internal/config"
	"connecto/internal/handler"
	"connecto/internal/logging"
	"connecto/internal/middleware"
	"connecto/internal/realtime"
	"connecto/internal/repository"
)

// Everything the route table needs. The cookie store is nil when no
// SESSION_SECRET is configured; the server still boots but no session can be
// issued or resolved.
type Deps struct {
	Users       repository.UserRepository
	CookieStore *sessions.CookieStore

	Auth     *handler.AuthHandler
	Messages *handler.MessageHandler
	Admin    *handler.AdminHandler
	Aura     *handler.AuraHandler

	Hub *realtime.Hub
}

type Server struct {
	server *http.Server
	log    zerolog.Logger
}

func New(cfg *config.Config, deps Deps) *Server {
	r := mux.NewRouter()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	requireAuth := middleware.RequireAuth(deps.CookieStore, deps.Users)

	api := r.PathPrefix("/api").Subrouter()

	// Authentication routes
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", deps.Auth.Signup).Methods("POST")
	auth.HandleFunc("/login", deps.Auth.Login).Methods("POST")
	auth.HandleFunc("/logout", deps.Auth.Logout).Methods("POST")
	auth.HandleFunc("/validate-referral", deps.Auth.ValidateReferral).Methods("POST")

	authSession := auth.NewRoute().Subrouter()
	authSession.Use(requireAuth)
	authSession.HandleFunc("/check", deps.Auth.Check).Methods("GET")
	authSession.HandleFunc("/update-profile", deps.Auth.UpdateProfile).Methods("PUT")
	authSession.HandleFunc("/request-verification", deps.Auth.RequestVerification).Methods("POST")
	authSession.HandleFunc("/generate-referral", deps.Auth.GenerateReferral).Methods("POST")

	// Messaging routes: sidebar contacts, DMs and group chats
	messages := api.PathPrefix("/messages").Subrouter()
	messages.Use(requireAuth)
	messages.HandleFunc("/users", deps.Messages.GetContacts).Methods("GET")
	messages.HandleFunc("/therapists", deps.Messages.GetTherapists).Methods("GET")
	messages.HandleFunc("/groups", deps.Messages.GetGroups).Methods("GET")
	messages.HandleFunc("/group/{id}", deps.Messages.GetGroupMessages).Methods("GET")
	messages.HandleFunc("/join-group/{id}", deps.Messages.JoinGroup).Methods("POST")
	messages.HandleFunc("/send-group/{id}", deps.Messages.SendGroupMessage).Methods("POST")
	messages.HandleFunc("/{id}", deps.Messages.GetConversation).Methods("GET")
	messages.HandleFunc("/send/{id}", deps.Messages.SendMessage).Methods("POST")

	// Admin console
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(requireAuth, middleware.RequireAdmin)
	admin.HandleFunc("/users", deps.Admin.GetUsers).Methods("GET")
	admin.HandleFunc("/pending-users", deps.Admin.GetPendingUsers).Methods("GET")
	admin.HandleFunc("/verify-user/{id}", deps.Admin.VerifyUser).Methods("POST")
	admin.HandleFunc("/reject-user/{id}", deps.Admin.RejectUser).Methods("POST")
	admin.HandleFunc("/delete-user/{id}", deps.Admin.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/create-group", deps.Admin.CreateGroup).Methods("POST")
	admin.HandleFunc("/groups", deps.Admin.GetGroups).Methods("GET")

	// AI companion
	chats := api.PathPrefix("/chats").Subrouter()
	chats.Use(requireAuth)
	chats.HandleFunc("", deps.Aura.CreateChat).Methods("POST")
	chats.HandleFunc("", deps.Aura.GetChats).Methods("GET")
	chats.HandleFunc("/{id}", deps.Aura.GetMessages).Methods("GET")
	chats.HandleFunc("/{id}", deps.Aura.SendMessage).Methods("PUT")
	chats.HandleFunc("/{id}", deps.Aura.DeleteChat).Methods("DELETE")

	// Websocket endpoint. No read/write timeouts on the outer server would
	// kill long-lived sockets, so the hub manages its own deadlines.
	r.HandleFunc("/ws", deps.Hub.ServeWS).Methods("GET")

	return &Server{
		server: &http.Server{
			Addr:           fmt.Sprintf(":%d", cfg.Port),
			Handler:        r,
			ReadTimeout:    0, // websocket connections stay open
			WriteTimeout:   0,
			IdleTimeout:    120 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		log: logging.With("http-server"),
	}
}

// Run serves until the context is canceled, then drains in-flight requests
// with a 10 second grace period.
func (s *Server) Run(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("received stop signal, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("error during shutdown")
		}
		close(done)
	}()

	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}

// NewCookieStore builds the session store the way the SPA expects: HTTP-only,
// lax same-site, one week lifetime. Returns nil when the secret is empty.
func NewCookieStore(secret string) *sessions.CookieStore {
	if secret == "" {
		return nil
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(7 * 24 * time.Hour.Seconds()),
	}
	return store
}
