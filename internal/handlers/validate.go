package handlers

import (
	"strings"
	"unicode/utf8"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// Validation limits for user and content fields.
const (
	maxUsernameLen = 150
	maxNameLen     = 150
	maxPhoneLen    = 10
	maxTitleLen    = 100
	maxShortLen    = 255
	maxKeywordsLen = 255
	maxCategoryLen = 100
)

// validateRegistration checks the registration payload: required fields
// and the password confirmation.
func validateRegistration(req registerRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return apperr.Validation("Username is required.")
	}
	if utf8.RuneCountInString(req.Username) > maxUsernameLen {
		return apperr.Validation("Username is too long (max 150 characters).")
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperr.Validation("Email is required.")
	}
	if utf8.RuneCountInString(req.FirstName) > maxNameLen || utf8.RuneCountInString(req.LastName) > maxNameLen {
		return apperr.Validation("Name is too long (max 150 characters).")
	}
	if utf8.RuneCountInString(req.PhoneCode) > maxPhoneLen || utf8.RuneCountInString(req.PhoneNumber) > maxPhoneLen {
		return apperr.Validation("Phone fields are too long (max 10 characters).")
	}
	if req.Password == "" || req.Password2 == "" {
		return apperr.Validation("Password and password2 are required.")
	}
	if req.Password != req.Password2 {
		return apperr.Validation("Password fields didn't match.")
	}
	return nil
}

// validateUserUpdate checks a merged user record before it is persisted,
// applying the same required/length rules as registration to whatever the
// patch produced.
func validateUserUpdate(u *models.User) error {
	if strings.TrimSpace(u.Email) == "" {
		return apperr.Validation("Email is required.")
	}
	if utf8.RuneCountInString(u.FirstName) > maxNameLen || utf8.RuneCountInString(u.LastName) > maxNameLen {
		return apperr.Validation("Name is too long (max 150 characters).")
	}
	if utf8.RuneCountInString(u.PhoneCode) > maxPhoneLen || utf8.RuneCountInString(u.PhoneNumber) > maxPhoneLen {
		return apperr.Validation("Phone fields are too long (max 10 characters).")
	}
	return nil
}

// validateCategoryName checks a category name.
func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("Name is required.")
	}
	if utf8.RuneCountInString(name) > maxCategoryLen {
		return apperr.Validation("Name is too long (max 100 characters).")
	}
	return nil
}

// validateBlogFields checks blog post text fields.
func validateBlogFields(title, shortDescription, keywords string) error {
	if strings.TrimSpace(title) == "" {
		return apperr.Validation("Title is required.")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return apperr.Validation("Title is too long (max 100 characters).")
	}
	if utf8.RuneCountInString(shortDescription) > maxShortLen {
		return apperr.Validation("Short description is too long (max 255 characters).")
	}
	if utf8.RuneCountInString(keywords) > maxKeywordsLen {
		return apperr.Validation("Keywords are too long (max 255 characters).")
	}
	return nil
}
