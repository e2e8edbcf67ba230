// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"blogapi/internal/models"
)

func TestBlogCreate_AuthorAutoSet(t *testing.T) {
	env := newTestEnv(t)
	writer := env.createUser(t, "test-blog-writer", false, models.PermAddBlog)
	cat := env.createCategory(t, "test-blog-cat")
	t.Cleanup(func() { env.DB.Exec("DELETE FROM blogs WHERE title = $1", "test-blog-auto") })

	body := `{"title":"test-blog-auto","short_description":"s","description":"d","keywords":"k","category_id":"` + cat.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(body))
	req = withActor(req, writer)
	rec := httptest.NewRecorder()
	env.BlogHandlers.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Create: got %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	var view map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The author is always the caller, never a request field.
	if view["author_id"] != writer.ID.String() {
		t.Errorf("author_id: got %v, want %s", view["author_id"], writer.ID)
	}
}

func TestBlogCreate_Denied(t *testing.T) {
	env := newTestEnv(t)
	plain := env.createUser(t, "test-blog-plain", false)
	cat := env.createCategory(t, "test-blog-denied-cat")

	body := `{"title":"test-blog-denied","short_description":"s","description":"d","keywords":"k","category_id":"` + cat.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(body))
	req = withActor(req, plain)
	rec := httptest.NewRecorder()
	env.BlogHandlers.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Create: got %d, want 403", rec.Code)
	}
}

func TestBlogCreate_CategoryChecks(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createUser(t, "test-blog-catchk-staff", true)

	send := func(categoryID string) *httptest.ResponseRecorder {
		body := `{"title":"test-blog-catchk","short_description":"s","description":"d","keywords":"k","category_id":"` + categoryID + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(body))
		req = withActor(req, staff)
		rec := httptest.NewRecorder()
		env.BlogHandlers.Create(rec, req)
		return rec
	}

	if rec := send(uuid.Nil.String()); rec.Code != http.StatusBadRequest {
		t.Errorf("zero category: got %d, want 400", rec.Code)
	}
	if rec := send(uuid.New().String()); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category: got %d, want 400", rec.Code)
	}

	// Soft-deleted categories are just as unusable.
	dead := env.createCategory(t, "test-blog-catchk-dead")
	if err := env.Categories.SoftDelete(dead.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if rec := send(dead.ID.String()); rec.Code != http.StatusBadRequest {
		t.Errorf("inactive category: got %d, want 400", rec.Code)
	}
}

func TestBlogUpdate_OwnerAndStaff(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "test-blogupd-author", false, models.PermAddBlog)
	staff := env.createUser(t, "test-blogupd-staff", true)
	stranger := env.createUser(t, "test-blogupd-stranger", false, models.PermAddBlog)
	cat := env.createCategory(t, "test-blogupd-cat")
	blog := env.createBlog(t, "test-blogupd-post", cat.ID, author.ID)

	send := func(actor *models.User, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/blogs/"+blog.ID.String(), strings.NewReader(body))
		req = withActorAndID(req, actor, blog.ID.String())
		rec := httptest.NewRecorder()
		env.BlogHandlers.Update(rec, req)
		return rec
	}

	// add_blog without ownership is not enough.
	if rec := send(stranger, `{"title":"test-blogupd-hijack"}`); rec.Code != http.StatusForbidden {
		t.Errorf("stranger update: got %d, want 403", rec.Code)
	}
	if rec := send(author, `{"title":"test-blogupd-mine"}`); rec.Code != http.StatusOK {
		t.Errorf("author update: got %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	rec := send(staff, `{"short_description":"edited by staff"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("staff update: got %d, want 200", rec.Code)
	}

	var view map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view["title"] != "test-blogupd-mine" {
		t.Errorf("title: got %v", view["title"])
	}
	// Ownership survives edits by others.
	if view["author_id"] != author.ID.String() {
		t.Errorf("author_id: got %v, want %s", view["author_id"], author.ID)
	}
}

func TestBlogUpdate_CategoryChange(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "test-blogcat-author", false, models.PermAddBlog)
	oldCat := env.createCategory(t, "test-blogcat-old")
	newCat := env.createCategory(t, "test-blogcat-new")
	blog := env.createBlog(t, "test-blogcat-post", oldCat.ID, author.ID)

	send := func(categoryID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/blogs/"+blog.ID.String(),
			strings.NewReader(`{"category_id":"`+categoryID+`"}`))
		req = withActorAndID(req, author, blog.ID.String())
		rec := httptest.NewRecorder()
		env.BlogHandlers.Update(rec, req)
		return rec
	}

	rec := send(newCat.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("category change: got %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	var view map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view["category_id"] != newCat.ID.String() {
		t.Errorf("category_id: got %v, want %s", view["category_id"], newCat.ID)
	}

	if rec := send(uuid.New().String()); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category: got %d, want 400", rec.Code)
	}
}

func TestBlogDelete_OwnerThenNotFound(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "test-blogdel-author", false, models.PermAddBlog)
	stranger := env.createUser(t, "test-blogdel-stranger", false)
	cat := env.createCategory(t, "test-blogdel-cat")
	blog := env.createBlog(t, "test-blogdel-post", cat.ID, author.ID)

	req := httptest.NewRequest(http.MethodDelete, "/api/blogs/"+blog.ID.String(), nil)
	req = withActorAndID(req, stranger, blog.ID.String())
	rec := httptest.NewRecorder()
	env.BlogHandlers.Delete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("stranger delete: got %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/blogs/"+blog.ID.String(), nil)
	req = withActorAndID(req, author, blog.ID.String())
	rec = httptest.NewRecorder()
	env.BlogHandlers.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("author delete: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "deleted") {
		t.Errorf("body: got %s, want confirmation message", rec.Body.String())
	}

	// Once soft-deleted the post reads as missing for everyone,
	// including would-be editors — 404 before any permission check.
	req = httptest.NewRequest(http.MethodGet, "/api/blogs/"+blog.ID.String(), nil)
	req = withActorAndID(req, author, blog.ID.String())
	rec = httptest.NewRecorder()
	env.BlogHandlers.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Get after delete: got %d, want 404", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/blogs/"+blog.ID.String(), strings.NewReader(`{"title":"x"}`))
	req = withActorAndID(req, stranger, blog.ID.String())
	rec = httptest.NewRecorder()
	env.BlogHandlers.Update(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Update after delete: got %d, want 404", rec.Code)
	}
}

func TestBlogList_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "test-bloglist-author", false, models.PermAddBlog)
	cat := env.createCategory(t, "test-bloglist-cat")
	first := env.createBlog(t, "test-bloglist-first", cat.ID, author.ID)
	second := env.createBlog(t, "test-bloglist-second", cat.ID, author.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req = withActor(req, author)
	rec := httptest.NewRecorder()
	env.BlogHandlers.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("List: got %d, want 200", rec.Code)
	}
	var views []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&views); err != nil {
		t.Fatalf("decode: %v", err)
	}

	posFirst, posSecond := -1, -1
	for i, v := range views {
		switch v["id"] {
		case first.ID.String():
			posFirst = i
		case second.ID.String():
			posSecond = i
		}
	}
	if posFirst == -1 || posSecond == -1 {
		t.Fatal("created posts missing from list")
	}
	if posSecond > posFirst {
		t.Errorf("ordering: second at %d, first at %d; want newest first", posSecond, posFirst)
	}
}
