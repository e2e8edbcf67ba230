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

// Blogs groups the blog post HTTP handlers.
type Blogs struct {
	blogs      *store.BlogStore
	categories *store.CategoryStore
}

// NewBlogs creates a new Blogs handler group.
func NewBlogs(blogs *store.BlogStore, categories *store.CategoryStore) *Blogs {
	return &Blogs{blogs: blogs, categories: categories}
}

// List returns all active blog posts, newest first.
func (h *Blogs) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.blogs.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Blog{}
	}
	respondJSON(w, http.StatusOK, items)
}

type blogCreateRequest struct {
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	Keywords         string    `json:"keywords"`
	CategoryID       uuid.UUID `json:"category_id"`
}

// Create adds a new blog post. Staff, or actors holding add_blog. The
// author is always the requesting actor, regardless of the payload.
func (h *Blogs) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanCreateBlog(actor) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	var req blogCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBlogFields(req.Title, req.ShortDescription, req.Keywords); err != nil {
		respondError(w, err)
		return
	}
	if err := h.resolveCategory(req.CategoryID); err != nil {
		respondError(w, err)
		return
	}

	b := &models.Blog{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Keywords:         req.Keywords,
		CategoryID:       req.CategoryID,
		AuthorID:         actor.ID,
	}
	created, err := h.blogs.Create(b)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Get returns a single active blog post.
func (h *Blogs) Get(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, target)
}

// blogUpdateRequest uses pointers so absent fields keep their stored
// values. id and author_id are not updatable and are ignored if sent.
type blogUpdateRequest struct {
	Title            *string    `json:"title"`
	ShortDescription *string    `json:"short_description"`
	Description      *string    `json:"description"`
	Keywords         *string    `json:"keywords"`
	CategoryID       *uuid.UUID `json:"category_id"`
}

// Update partially updates a blog post. Staff, or the post's author.
func (h *Blogs) Update(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanWriteBlog(actor, target) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	var req blogUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.Title != nil {
		target.Title = *req.Title
	}
	if req.ShortDescription != nil {
		target.ShortDescription = *req.ShortDescription
	}
	if req.Description != nil {
		target.Description = *req.Description
	}
	if req.Keywords != nil {
		target.Keywords = *req.Keywords
	}
	if req.CategoryID != nil {
		if err := h.resolveCategory(*req.CategoryID); err != nil {
			respondError(w, err)
			return
		}
		target.CategoryID = *req.CategoryID
	}

	if err := validateBlogFields(target.Title, target.ShortDescription, target.Keywords); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.blogs.Update(target)
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

// Delete soft-deletes a blog post. Staff, or the post's author.
func (h *Blogs) Delete(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTarget(r)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !authz.CanWriteBlog(actor, target) {
		respondError(w, apperr.ErrForbidden)
		return
	}

	if err := h.blogs.SoftDelete(target.ID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Blog deleted successfully."})
}

// resolveCategory checks that a blog's category reference names an
// existing, currently-active category.
func (h *Blogs) resolveCategory(id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.Validation("Category is required.")
	}
	cat, err := h.categories.FindByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperr.Validation("Category does not exist or is inactive.")
	}
	return nil
}

// resolveTarget parses the {id} URL parameter and loads the active blog
// post it names.
func (h *Blogs) resolveTarget(r *http.Request) (*models.Blog, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	target, err := h.blogs.FindByID(id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.ErrNotFound
	}
	return target, nil
}
