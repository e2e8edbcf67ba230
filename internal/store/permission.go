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

// PermissionStore manages permission codenames and their user grants.
type PermissionStore struct {
	db *sql.DB
}

// NewPermissionStore returns a new PermissionStore.
func NewPermissionStore(db *sql.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

// FindByCodename retrieves a permission by its codename. Returns nil if
// no such codename exists.
func (s *PermissionStore) FindByCodename(codename string) (*models.Permission, error) {
	var p models.Permission
	err := s.db.QueryRow(`SELECT id, codename FROM permissions WHERE codename = $1`, codename).
		Scan(&p.ID, &p.Codename)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find permission: %w", err)
	}
	return &p, nil
}

// ListForUser returns the codenames granted to a user, sorted.
func (s *PermissionStore) ListForUser(userID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT p.codename
		FROM permissions p
		JOIN user_permissions up ON up.permission_id = p.id
		WHERE up.user_id = $1
		ORDER BY p.codename
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user permissions: %w", err)
	}
	defer rows.Close()

	var codenames []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		codenames = append(codenames, c)
	}
	return codenames, rows.Err()
}

// Grant assigns a permission to a user. Granting an already-held
// permission is a no-op.
func (s *PermissionStore) Grant(userID, permissionID uuid.UUID) error {
	_, err := s.db.Exec(`
		INSERT INTO user_permissions (user_id, permission_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, permissionID)
	if err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}
	return nil
}

// Revoke removes a permission from a user. Revoking an ungranted
// permission is a no-op.
func (s *PermissionStore) Revoke(userID, permissionID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM user_permissions WHERE user_id = $1 AND permission_id = $2
	`, userID, permissionID)
	if err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	return nil
}
