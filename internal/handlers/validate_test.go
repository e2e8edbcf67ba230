package handlers

import (
	"errors"
	"strings"
	"testing"

	"blogapi/internal/apperr"
)

func TestValidateRegistration(t *testing.T) {
	valid := registerRequest{
		Username:  "writer",
		Email:     "writer@example.com",
		Password:  "secret",
		Password2: "secret",
	}

	tests := []struct {
		name   string
		mutate func(*registerRequest)
		wantOK bool
	}{
		{"valid", func(r *registerRequest) {}, true},
		{"missing username", func(r *registerRequest) { r.Username = "  " }, false},
		{"username too long", func(r *registerRequest) { r.Username = strings.Repeat("u", 151) }, false},
		{"missing email", func(r *registerRequest) { r.Email = "" }, false},
		{"first name too long", func(r *registerRequest) { r.FirstName = strings.Repeat("n", 151) }, false},
		{"phone too long", func(r *registerRequest) { r.PhoneNumber = "12345678901" }, false},
		{"missing password", func(r *registerRequest) { r.Password, r.Password2 = "", "" }, false},
		{"mismatch", func(r *registerRequest) { r.Password2 = "other" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := validateRegistration(req)
			if tt.wantOK && err != nil {
				t.Errorf("got %v, want nil", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("got nil, want validation error")
				}
				if !errors.Is(err, apperr.ErrValidation) {
					t.Errorf("got %v, want ErrValidation", err)
				}
			}
		})
	}
}

func TestValidateCategoryName(t *testing.T) {
	if err := validateCategoryName("Tech"); err != nil {
		t.Errorf("valid name: got %v", err)
	}
	if err := validateCategoryName(" "); err == nil {
		t.Error("blank name: want error")
	}
	if err := validateCategoryName(strings.Repeat("c", 100)); err != nil {
		t.Errorf("100 runes: got %v", err)
	}
	if err := validateCategoryName(strings.Repeat("c", 101)); err == nil {
		t.Error("101 runes: want error")
	}
}

func TestValidateBlogFields(t *testing.T) {
	if err := validateBlogFields("Title", "short", "a,b"); err != nil {
		t.Errorf("valid fields: got %v", err)
	}
	if err := validateBlogFields("", "short", "a,b"); err == nil {
		t.Error("blank title: want error")
	}
	if err := validateBlogFields(strings.Repeat("t", 101), "s", "k"); err == nil {
		t.Error("overlong title: want error")
	}
	if err := validateBlogFields("Title", strings.Repeat("s", 256), "k"); err == nil {
		t.Error("overlong short description: want error")
	}
	if err := validateBlogFields("Title", "s", strings.Repeat("k", 256)); err == nil {
		t.Error("overlong keywords: want error")
	}
	// Limits count runes, not bytes.
	if err := validateBlogFields(strings.Repeat("é", 100), "s", "k"); err != nil {
		t.Errorf("100-rune multibyte title: got %v", err)
	}
}
