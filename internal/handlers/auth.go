package handlers

import (
	"log/slog"
	"net/http"

	"blogapi/internal/apperr"
	"blogapi/internal/store"
	"blogapi/internal/token"
	"blogapi/internal/tokenstore"
)

// Auth groups the token-issuance HTTP handlers.
type Auth struct {
	users   *store.UserStore
	tokens  *token.Service
	refresh *tokenstore.Store
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *token.Service, refresh *tokenstore.Store) *Auth {
	return &Auth{
		users:   users,
		tokens:  tokens,
		refresh: refresh,
	}
}

type tokenObtainRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type tokenRefreshRequest struct {
	Refresh string `json:"refresh"`
}

type tokenAccessResponse struct {
	Access string `json:"access"`
}

// TokenObtain exchanges a username/password pair for access and refresh
// tokens. Soft-deleted users cannot authenticate: the lookup already
// filters them out, so their credentials fail like any other bad login.
func (a *Auth) TokenObtain(w http.ResponseWriter, r *http.Request) {
	var req tokenObtainRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, apperr.Validation("Username and password are required."))
		return
	}

	user, err := a.users.FindByUsername(req.Username)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	access, err := a.tokens.IssueAccess(user)
	if err != nil {
		respondError(w, err)
		return
	}
	refresh, jti, expiresAt, err := a.tokens.IssueRefresh(user)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := a.refresh.Save(r.Context(), jti, user.ID.String(), expiresAt); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("token pair issued", "user", user.Username)
	respondJSON(w, http.StatusOK, tokenPairResponse{Access: access, Refresh: refresh})
}

// TokenRefresh exchanges a valid refresh token for a new access token.
// The refresh token must verify AND its jti must still be recorded in
// the refresh-token store; revocation and expiry both end the session.
func (a *Auth) TokenRefresh(w http.ResponseWriter, r *http.Request) {
	var req tokenRefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Refresh == "" {
		respondError(w, apperr.Validation("Refresh token is required."))
		return
	}

	claims, err := a.tokens.Verify(req.Refresh, token.TypeRefresh)
	if err != nil {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	ok, err := a.refresh.Valid(r.Context(), claims.JTI)
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	user, err := a.users.FindByID(claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		// User was soft-deleted after the token was issued.
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	access, err := a.tokens.IssueAccess(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenAccessResponse{Access: access})
}
