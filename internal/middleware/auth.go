// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"blogapi/internal/models"
	"blogapi/internal/store"
	"blogapi/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// ActorKey is the context key for the authenticated user.
	ActorKey contextKey = "actor"
)

// Authenticator verifies the bearer token on every request and loads the
// actor into the request context. It does NOT enforce authentication —
// RequireAuth does that. A token for a missing or soft-deleted user is
// treated the same as no token.
func Authenticator(tokens *token.Service, users *store.UserStore, perms *store.PermissionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Verify(raw, token.TypeAccess)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := users.FindByID(claims.UserID)
			if err != nil || actor == nil {
				next.ServeHTTP(w, r)
				return
			}

			// Attach grants so the authorization rules can check them
			// without another round trip.
			grants, err := perms.ListForUser(actor.ID)
			if err == nil {
				actor.Permissions = grants
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not resolve to an actor.
// Must be applied after Authenticator in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromCtx(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication credentials were not provided or are invalid."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ActorFromCtx extracts the authenticated user from the request context.
// Returns nil if the request is unauthenticated.
func ActorFromCtx(ctx context.Context) *models.User {
	actor, _ := ctx.Value(ActorKey).(*models.User)
	return actor
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
