// Package store provides database access methods for all blogapi entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
//
// Every entity carries an is_active flag. Reads and lists filter on
// is_active = TRUE, so a soft-deleted row is indistinguishable from a
// missing one to callers. Nothing in this package physically deletes rows.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/models"
)

// ErrDuplicateUsername reports an insert that collided with the username
// unique constraint. Soft-deleted users still hold their username.
var ErrDuplicateUsername = errors.New("username already taken")

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, username, email, first_name, last_name, phone_code, phone_number,
	password_hash, is_active, is_staff, is_superuser, created_at, updated_at`

// scanUser scans a row into a User struct.
func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.PhoneCode, &u.PhoneNumber, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves an active user by UUID. Returns nil if the user is
// missing or soft-deleted.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1 AND is_active = TRUE`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByUsername retrieves an active user by username. Returns nil if the
// user is missing or soft-deleted.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = $1 AND is_active = TRUE`, username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// List returns all active users ordered by creation date.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT ` + userColumns + ` FROM users WHERE is_active = TRUE ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(u *models.User, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO users (username, email, first_name, last_name, phone_code, phone_number,
			password_hash, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		u.Username, u.Email, u.FirstName, u.LastName, u.PhoneCode, u.PhoneNumber,
		string(hash), u.IsStaff, u.IsSuperuser,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Update persists the mutable fields of an already-loaded user. If
// newPassword is non-empty it is hashed and replaces the stored hash.
// ID and username are not touched.
func (s *UserStore) Update(u *models.User, newPassword string) (*models.User, error) {
	hash := u.PasswordHash
	if newPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(h)
	}

	row := s.db.QueryRow(`
		UPDATE users SET
			email = $1, first_name = $2, last_name = $3,
			phone_code = $4, phone_number = $5, password_hash = $6, updated_at = NOW()
		WHERE id = $7 AND is_active = TRUE
		RETURNING `+userColumns,
		u.Email, u.FirstName, u.LastName, u.PhoneCode, u.PhoneNumber, hash, u.ID,
	)
	updated, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// SoftDelete marks a user inactive. Idempotent: soft-deleting an already
// inactive user is a no-op.
func (s *UserStore) SoftDelete(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
