// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"blogapi/internal/models"
)

// BlogStore manages blog posts in the database.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore returns a new BlogStore.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

const blogColumns = `id, title, short_description, description, keywords,
	category_id, author_id, is_active, created_at, updated_at`

// scanBlog scans a row into a Blog struct.
func scanBlog(scanner interface{ Scan(...any) error }) (*models.Blog, error) {
	var b models.Blog
	err := scanner.Scan(
		&b.ID, &b.Title, &b.ShortDescription, &b.Description, &b.Keywords,
		&b.CategoryID, &b.AuthorID, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all active blog posts, newest first.
func (s *BlogStore) List() ([]models.Blog, error) {
	rows, err := s.db.Query(`SELECT ` + blogColumns + ` FROM blogs WHERE is_active = TRUE ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var items []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindByID retrieves an active blog post by ID. Returns nil if the post
// is missing or soft-deleted.
func (s *BlogStore) FindByID(id uuid.UUID) (*models.Blog, error) {
	row := s.db.QueryRow(`SELECT `+blogColumns+` FROM blogs WHERE id = $1 AND is_active = TRUE`, id)
	b, err := scanBlog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return b, nil
}

// Create inserts a new blog post and returns it. The caller is expected
// to have resolved CategoryID to an active category and set AuthorID to
// the requesting actor.
func (s *BlogStore) Create(b *models.Blog) (*models.Blog, error) {
	row := s.db.QueryRow(`
		INSERT INTO blogs (title, short_description, description, keywords, category_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+blogColumns,
		b.Title, b.ShortDescription, b.Description, b.Keywords, b.CategoryID, b.AuthorID,
	)
	created, err := scanBlog(row)
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// Update persists the mutable fields of an already-loaded blog post and
// returns the new row. AuthorID is never written. Returns nil if the
// post is missing or soft-deleted.
func (s *BlogStore) Update(b *models.Blog) (*models.Blog, error) {
	row := s.db.QueryRow(`
		UPDATE blogs SET
			title = $1, short_description = $2, description = $3,
			keywords = $4, category_id = $5, updated_at = NOW()
		WHERE id = $6 AND is_active = TRUE
		RETURNING `+blogColumns,
		b.Title, b.ShortDescription, b.Description, b.Keywords, b.CategoryID, b.ID,
	)
	updated, err := scanBlog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return updated, nil
}

// SoftDelete marks a blog post inactive. Idempotent.
func (s *BlogStore) SoftDelete(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE blogs SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete blog: %w", err)
	}
	return nil
}
