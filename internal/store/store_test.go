// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blogapi/internal/database"
	"blogapi/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogapi")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogapi")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("failed to seed permissions: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers hard-deletes test users by username. Call in t.Cleanup().
// Hard deletion is test-only; the stores themselves never erase rows.
func cleanUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		db.Exec("DELETE FROM users WHERE username = $1", username)
	}
}

// cleanCategories hard-deletes test categories by name. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM categories WHERE name = $1", name)
	}
}

// cleanBlogs hard-deletes test blogs by title. Call in t.Cleanup().
func cleanBlogs(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM blogs WHERE title = $1", title)
	}
}

// createTestUser inserts a user through the store, registering cleanup.
func createTestUser(t *testing.T, db *sql.DB, username string, staff bool) *models.User {
	t.Helper()
	s := NewUserStore(db)
	t.Cleanup(func() { cleanUsers(t, db, username) })

	u, err := s.Create(&models.User{
		Username: username,
		Email:    username + "@store-test.local",
		IsStaff:  staff,
	}, "testpass123")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

// createTestCategory inserts a category through the store, registering cleanup.
func createTestCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()
	s := NewCategoryStore(db)
	t.Cleanup(func() { cleanCategories(t, db, name) })

	c, err := s.Create(name)
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	return c
}
