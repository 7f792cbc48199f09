// Package permissions holds the access control policy as pure functions
// over the explicit role type. A nil user means an anonymous caller, so
// every check fails closed for unauthenticated writes.
package permissions

import "github.com/perenos/yamdb-final/internal/http-api/models"

// IsAdmin reports whether the user carries admin capabilities, either via
// the admin role or the superuser flag.
func IsAdmin(u *models.User) bool {
	if u == nil {
		return false
	}
	return u.Role == models.RoleAdmin || u.IsSuperuser
}

// IsModerator reports whether the user holds the moderator role.
func IsModerator(u *models.User) bool {
	if u == nil {
		return false
	}
	return u.Role == models.RoleModerator
}

// CanManageCatalog gates category, genre, title and user-management
// mutations: admin or superuser only.
func CanManageCatalog(u *models.User) bool {
	return IsAdmin(u)
}

// CanModifyContent gates review and comment update/delete: the author,
// a moderator, an admin, or a superuser.
func CanModifyContent(u *models.User, authorID string) bool {
	if u == nil {
		return false
	}
	return u.ID == authorID || IsAdmin(u) || IsModerator(u)
}
