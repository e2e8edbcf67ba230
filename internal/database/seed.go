package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/models"
)

// seedPermissions are the baseline permission codenames checked by the
// authorization rules. Inserted idempotently on every startup.
var seedPermissions = []string{models.PermAddBlog, models.PermAddCategory, models.PermAddUser}

// Seed populates the database with initial development data.
// It always ensures the baseline permission rows exist, and creates a
// default staff user if no users exist yet.
func Seed(db *sql.DB) error {
	for _, codename := range seedPermissions {
		_, err := db.Exec(`
			INSERT INTO permissions (codename) VALUES ($1)
			ON CONFLICT (codename) DO NOTHING
		`, codename)
		if err != nil {
			return fmt.Errorf("seed permission %q: %w", codename, err)
		}
	}

	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, is_staff, is_superuser)
		VALUES ($1, $2, $3, TRUE, TRUE)
	`, "admin", "admin@blogapi.local", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default staff user",
		"username", "admin",
		"password", "admin",
	)

	return nil
}
