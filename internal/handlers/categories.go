// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogapi/internal/apperr"
	"blogapi/internal/authz"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/store"
)

// Categories groups the category HTTP handlers.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List returns all active categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	respondJSON(w, http.StatusOK, items)
}

type categoryRequest struct {
	Name string `json:"name"`
}

// Create adds a new category. Staff, or actors holding add_category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanCreateCategory(actor) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateCategoryName(req.Name); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.categories.Create(req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Get returns a single active category.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, target)
}

// Update modifies a category. Staff only — categories have no author,
// so there is no ownership override.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanWriteCategory(actor) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateCategoryName(req.Name); err != nil {
		respondError(w, err)
		return
	}

	target.Name = req.Name
	updated, err := h.categories.Update(target)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		respondError(w, apperr.ErrNotFound)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete soft-deletes a category. Staff only. Posts referencing the
// category stay visible.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanWriteCategory(actor) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	if err := h.categories.SoftDelete(target.ID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Category deleted successfully."})
}

// resolveTarget parses the {id} URL parameter and loads the active
// category it names.
func (h *Categories) resolveTarget(r *http.Request) (*models.Category, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	target, err := h.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.ErrNotFound
	}
	return target, nil
}
