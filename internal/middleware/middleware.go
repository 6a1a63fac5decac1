/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package middleware holds the cross-cutting HTTP layers: CORS, session
// authentication and admin gating.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"connecto/internal/entity"
	"connecto/internal/repository"
)

// Name of the session cookie issued at login.
const SessionName = "auth-session"

type contextKey string

const userKey contextKey = "user"

// UserFrom returns the authenticated user stored by RequireAuth.
func UserFrom(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userKey).(*entity.User)
	return user, ok
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// RequireAuth resolves the session cookie to a full user record and stores it
// in the request context. Requests without a valid session get a 401; the
// session is authenticated but the account may still be stale, so the user is
// re-read from the store on every request.
func RequireAuth(store *sessions.CookieStore, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				// No SESSION_SECRET configured: no session can ever have been
				// issued, so nothing to resolve.
				writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
				return
			}

			session, err := store.Get(r, SessionName)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized - invalid session")
				return
			}

			userUUID, ok := session.Values["user_uuid"].(string)
			if !ok || userUUID == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
				return
			}

			user, err := users.GetByUUID(userUUID)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized - user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route on the admin role. Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized - no session provided")
			return
		}
		if user.Role != entity.RoleAdmin {
			writeMessage(w, http.StatusForbidden, "Forbidden - admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORS allows the configured SPA origins, with credentials so the session
// cookie survives cross-origin requests. Preflights are answered here and
// never reach the router.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin == "" {
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowed[origin]; ok {
					w.Header().Add("Vary", "Origin")
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Max-Age", "86400")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
