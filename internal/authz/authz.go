// Package authz holds the authorization rules as pure functions over an
// actor snapshot and, for object-level rules, the target resource. Every
// mutating rule treats staff as an override. Read rules are uniformly
// permissive: any authenticated actor may list and get.
//
// The functions only decide; they never touch storage or transport, and
// a deny carries no detail about which rule failed.
package authz

import (
	"blogapi/internal/models"
)

// CanCreateCategory reports whether the actor may create categories.
func CanCreateCategory(actor *models.User) bool {
	return actor.IsStaff || actor.HasPerm(models.PermAddCategory)
}

// CanWriteCategory reports whether the actor may update or delete a
// category. Categories have no author, so ownership does not apply.
func CanWriteCategory(actor *models.User) bool {
	return actor.IsStaff
}

// CanCreateBlog reports whether the actor may create blog posts.
func CanCreateBlog(actor *models.User) bool {
	return actor.IsStaff || actor.HasPerm(models.PermAddBlog)
}

// CanWriteBlog reports whether the actor may update or delete the given
// blog post: staff, or the post's author.
func CanWriteBlog(actor *models.User, blog *models.Blog) bool {
	return actor.IsStaff || actor.ID == blog.AuthorID
}

// CanCreateUser reports whether the actor may register new users.
func CanCreateUser(actor *models.User) bool {
	return actor.IsStaff
}

// CanWriteUser reports whether the actor may update or delete the target
// user: staff, or the target themselves.
func CanWriteUser(actor *models.User, target *models.User) bool {
	return actor.IsStaff || actor.ID == target.ID
}

// CanManagePermissions reports whether the actor may read or change
// permission grants. There is no self-service for grants.
func CanManagePermissions(actor *models.User) bool {
	return actor.IsStaff
}
