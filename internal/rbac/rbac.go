package rbac

import (
	"errors"

	"github.com/kollect/backend/internal/models"
)

var ErrForbidden = errors.New("forbidden")

// Role constants
const (
	RoleBrand = "brand"
	RoleKOL   = "kol"
)

// Permission constants
const (
	PermBookmarkCampaign = "bookmark_campaign"
	PermManageCampaign   = "manage_campaign"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleBrand: {PermManageCampaign},
	RoleKOL:   {PermBookmarkCampaign},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// Roles lists the roles held by a user. The two flags are independent.
func Roles(u *models.User) []string {
	if u == nil {
		return nil
	}
	var roles []string
	if u.IsBrand {
		roles = append(roles, RoleBrand)
	}
	if u.IsKOL {
		roles = append(roles, RoleKOL)
	}
	return roles
}

// Authorize returns ErrForbidden unless one of the user's roles grants permission.
func Authorize(u *models.User, permission string) error {
	for _, role := range Roles(u) {
		if HasPermission(role, permission) {
			return nil
		}
	}
	return ErrForbidden
}
