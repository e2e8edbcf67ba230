// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL (and, for the
// token flow, Redis) are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"blogapi/internal/database"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/store"
	"blogapi/internal/tokenstore"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogapi")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogapi")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("seed: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedisClient returns a Redis client for token flow tests on DB 15.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "refresh:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Users      *store.UserStore
	Perms      *store.PermissionStore
	Categories *store.CategoryStore
	Blogs      *store.BlogStore
	Refresh    *tokenstore.Store

	UserHandlers     *Users
	CategoryHandlers *Categories
	BlogHandlers     *Blogs
}

// newTestEnv creates a complete test environment with all handler
// dependencies. The refresh-token store points at Redis DB 15 but is not
// pinged here; only tests that exercise the token flow require Redis.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	users := store.NewUserStore(db)
	perms := store.NewPermissionStore(db)
	categories := store.NewCategoryStore(db)
	blogs := store.NewBlogStore(db)
	refresh := tokenstore.NewStore(redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_HOST", "localhost") + ":" + envOr("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       15,
	}))

	return &testEnv{
		DB:         db,
		Users:      users,
		Perms:      perms,
		Categories: categories,
		Blogs:      blogs,
		Refresh:    refresh,

		UserHandlers:     NewUsers(users, perms, refresh),
		CategoryHandlers: NewCategories(categories),
		BlogHandlers:     NewBlogs(blogs, categories),
	}
}

// createUser inserts a user through the store, registering hard-delete
// cleanup. Hard deletion is test-only housekeeping.
func (env *testEnv) createUser(t *testing.T, username string, staff bool, grants ...string) *models.User {
	t.Helper()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE username = $1", username) })

	u, err := env.Users.Create(&models.User{
		Username: username,
		Email:    username + "@handler-test.local",
		IsStaff:  staff,
	}, "testpass123")
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}

	for _, codename := range grants {
		perm, err := env.Perms.FindByCodename(codename)
		if err != nil || perm == nil {
			t.Fatalf("find permission %q: perm=%v err=%v", codename, perm, err)
		}
		if err := env.Perms.Grant(u.ID, perm.ID); err != nil {
			t.Fatalf("grant %q: %v", codename, err)
		}
	}
	u.Permissions = grants
	return u
}

// createCategory inserts a category, registering cleanup.
func (env *testEnv) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE name = $1", name) })

	c, err := env.Categories.Create(name)
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

// createBlog inserts a blog post, registering cleanup.
func (env *testEnv) createBlog(t *testing.T, title string, categoryID, authorID uuid.UUID) *models.Blog {
	t.Helper()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM blogs WHERE title = $1", title) })

	b, err := env.Blogs.Create(&models.Blog{
		Title:      title,
		CategoryID: categoryID,
		AuthorID:   authorID,
	})
	if err != nil {
		t.Fatalf("create blog %q: %v", title, err)
	}
	return b
}

// ctxWithActor adds the authenticated user to a context using the
// middleware key.
func ctxWithActor(ctx context.Context, actor *models.User) context.Context {
	return context.WithValue(ctx, middleware.ActorKey, actor)
}

// withActor attaches an actor to a request.
func withActor(r *http.Request, actor *models.User) *http.Request {
	return r.WithContext(ctxWithActor(r.Context(), actor))
}

// withActorAndID attaches both an actor and a chi {id} URL parameter.
func withActorAndID(r *http.Request, actor *models.User, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if actor != nil {
		ctx = context.WithValue(ctx, middleware.ActorKey, actor)
	}
	return r.WithContext(ctx)
}
