// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogapi/internal/apperr"
	"blogapi/internal/authz"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/store"
	"blogapi/internal/tokenstore"
)

// Users groups the user management HTTP handlers.
type Users struct {
	users   *store.UserStore
	perms   *store.PermissionStore
	refresh *tokenstore.Store
}

// NewUsers creates a new Users handler group.
func NewUsers(users *store.UserStore, perms *store.PermissionStore, refresh *tokenstore.Store) *Users {
	return &Users{users: users, perms: perms, refresh: refresh}
}

// userSummary is the list view: no phone fields, never the hash.
type userSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// userDetail is the get/update view: summary plus phone fields.
type userDetail struct {
	userSummary
	PhoneCode   string `json:"phone_code"`
	PhoneNumber string `json:"phone_number"`
}

func summaryView(u *models.User) userSummary {
	return userSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func detailView(u *models.User) userDetail {
	return userDetail{
		userSummary: summaryView(u),
		PhoneCode:   u.PhoneCode,
		PhoneNumber: u.PhoneNumber,
	}
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneCode   string `json:"phone_code"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
}

// registerResponse wraps the created user with a confirmation message.
type registerResponse struct {
	User    userDetail `json:"user"`
	Message string     `json:"message"`
}

// Register creates a new user. Staff only.
func (h *Users) Register(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanCreateUser(actor) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateRegistration(req); err != nil {
		respondError(w, err)
		return
	}

	u := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneCode:   req.PhoneCode,
		PhoneNumber: req.PhoneNumber,
	}
	created, err := h.users.Create(u, req.Password)
	if errors.Is(err, store.ErrDuplicateUsername) {
		respondError(w, apperr.Validation("Username already taken."))
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, registerResponse{
		User:    detailView(created),
		Message: "User created successfully.",
	})
}

// List returns all active users in the summary view.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		respondError(w, err)
		return
	}

	views := make([]userSummary, 0, len(users))
	for i := range users {
		views = append(views, summaryView(&users[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// Get returns a single active user in the detail view.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detailView(target))
}

// userUpdateRequest uses pointers so absent fields keep their stored
// values. id and username are not updatable and are simply ignored if sent.
type userUpdateRequest struct {
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneCode   *string `json:"phone_code"`
	PhoneNumber *string `json:"phone_number"`
	Password    *string `json:"password"`
	Password2   *string `json:"password2"`
}

// Update partially updates a user. Staff or the user themselves.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanWriteUser(actor, target) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	var req userUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	newPassword := ""
	if req.Password != nil {
		if req.Password2 == nil || *req.Password != *req.Password2 {
			respondError(w, apperr.Validation("Password fields didn't match."))
			return
		}
		if *req.Password == "" {
			respondError(w, apperr.Validation("Password must not be empty."))
			return
		}
		newPassword = *req.Password
	}

	if req.Email != nil {
		target.Email = *req.Email
	}
	if req.FirstName != nil {
		target.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		target.LastName = *req.LastName
	}
	if req.PhoneCode != nil {
		target.PhoneCode = *req.PhoneCode
	}
	if req.PhoneNumber != nil {
		target.PhoneNumber = *req.PhoneNumber
	}

	if err := validateUserUpdate(target); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.users.Update(target, newPassword)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		respondError(w, apperr.ErrNotFound)
		return
	}
	respondJSON(w, http.StatusOK, detailView(updated))
}

// Delete soft-deletes a user. Staff or the user themselves.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanWriteUser(actor, target) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	if err := h.users.SoftDelete(target.ID); err != nil {
		respondError(w, err)
		return
	}

	// End the user's refresh sessions. Best effort: the refresh endpoint
	// re-checks the user row, so a failure here cannot resurrect access.
	if err := h.refresh.RevokeAllForUser(r.Context(), target.ID.String()); err != nil {
		slog.Warn("failed to revoke refresh tokens", "user", target.ID, "error", err)
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully."})
}

// permissionListResponse carries the target user's granted codenames.
type permissionListResponse struct {
	Permissions []string `json:"permissions"`
}

// PermissionsGet lists a user's permission codenames. Staff only.
func (h *Users) PermissionsGet(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanManagePermissions(actor) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}

	codenames, err := h.perms.ListForUser(target.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if codenames == nil {
		codenames = []string{}
	}
	respondJSON(w, http.StatusOK, permissionListResponse{Permissions: codenames})
}

// permissionUpdateRequest carries exactly one grant change.
type permissionUpdateRequest struct {
	Permission string `json:"permission"`
	Action     string `json:"action"`
}

// PermissionsUpdate adds or removes a single permission grant. Staff
// only. Both operations are idempotent at the store level.
func (h *Users) PermissionsUpdate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanManagePermissions(actor) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req permissionUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Permission == "" || req.Action == "" {
		respondError(w, apperr.Validation("Permission and action fields are required."))
		return
	}

	// The permission is resolved before the action keyword is checked, so
	// an unknown codename reads as 404 even alongside a bad action.
	perm, err := h.perms.FindByCodename(req.Permission)
	if err != nil {
		respondError(w, err)
		return
	}
	if perm == nil {
		respondError(w, apperr.NotFound("Permission not found."))
		return
	}

	if req.Action != "add" && req.Action != "remove" {
		respondError(w, apperr.Validation("Invalid action. Use 'add' or 'remove'."))
		return
	}

	var message string
	switch req.Action {
	case "add":
		err = h.perms.Grant(target.ID, perm.ID)
		message = "Permission added successfully."
	case "remove":
		err = h.perms.Revoke(target.ID, perm.ID)
		message = "Permission removed successfully."
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: message})
}

// resolveTarget parses the {id} URL parameter and loads the active user
// it names. A malformed id behaves like a missing user.
func (h *Users) resolveTarget(r *http.Request) (*models.User, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	target, err := h.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.ErrNotFound
	}
	return target, nil
}
