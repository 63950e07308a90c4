// Package roles maps session roles to their route segment, dashboard path and permission set.
package roles

import (
	"strings"
)

// Role is one of the fixed session roles issued by the backend.
type Role string

const (
	SuperAdmin   Role = "super_admin"
	AdminPusat   Role = "admin_pusat"
	AdminSekolah Role = "admin_sekolah"
	Fasilitator  Role = "fasilitator"
	Koordinator  Role = "koordinator"
)

// LoginPath is where unauthenticated or failed sessions land.
const LoginPath = "/"

type roleInfo struct {
	role  Role
	slug  string
	label string
}

var table = []roleInfo{
	{SuperAdmin, "super-admin", "Super Admin"},
	{AdminPusat, "admin-pusat", "Admin Pusat"},
	{AdminSekolah, "admin-sekolah", "Admin Sekolah"},
	{Fasilitator, "fasilitator", "Fasilitator"},
	{Koordinator, "koordinator", "Koordinator"},
}

// All returns every role in menu order.
func All() []Role {
	out := make([]Role, 0, len(table))
	for _, info := range table {
		out = append(out, info.role)
	}
	return out
}

// Parse normalises a role string ("Super Admin", "super-admin", "super_admin").
func Parse(raw string) (Role, bool) {
	normalised := strings.ToLower(strings.TrimSpace(raw))
	normalised = strings.NewReplacer("-", "_", " ", "_").Replace(normalised)
	for _, info := range table {
		if string(info.role) == normalised {
			return info.role, true
		}
	}
	return "", false
}

func lookup(raw string) (roleInfo, bool) {
	role, ok := Parse(raw)
	if !ok {
		return roleInfo{}, false
	}
	for _, info := range table {
		if info.role == role {
			return info, true
		}
	}
	return roleInfo{}, false
}

// Slug returns the route segment of a role, or "" when the role is unknown.
func Slug(raw string) string {
	info, ok := lookup(raw)
	if !ok {
		return ""
	}
	return info.slug
}

// Label returns the display name of a role.
func Label(raw string) string {
	info, ok := lookup(raw)
	if !ok {
		return raw
	}
	return info.label
}

// FromSlug resolves a route segment back to its role.
func FromSlug(slug string) (Role, bool) {
	for _, info := range table {
		if info.slug == slug {
			return info.role, true
		}
	}
	return "", false
}

// DashboardPath returns the landing page of a role. Unknown roles map to the login page.
func DashboardPath(raw string) string {
	slug := Slug(raw)
	if slug == "" {
		return LoginPath
	}
	return "/" + slug + "/dashboard"
}

// BasePath returns the route prefix of a role.
func BasePath(raw string) string {
	slug := Slug(raw)
	if slug == "" {
		return LoginPath
	}
	return "/" + slug
}

// Guard decides whether a session with sessionRole may view a page owned by routeRole.
// When it may not, the returned path is where the session must be redirected.
func Guard(sessionRole string, routeRole Role) (string, bool) {
	role, ok := Parse(sessionRole)
	if !ok {
		return LoginPath, false
	}
	if role == routeRole {
		return "", true
	}
	return DashboardPath(string(role)), false
}

// IsAdmin reports whether the role may edit, delete and change the status of correspondence.
func IsAdmin(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "admin")
}
