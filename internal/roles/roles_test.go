package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardPath(t *testing.T) {
	cases := map[string]string{
		"super_admin":   "/super-admin/dashboard",
		"admin_pusat":   "/admin-pusat/dashboard",
		"admin-sekolah": "/admin-sekolah/dashboard",
		"Fasilitator":   "/fasilitator/dashboard",
		"koordinator":   "/koordinator/dashboard",
		"kepala_dinas":  "/",
		"":              "/",
	}
	for role, want := range cases {
		assert.Equal(t, want, DashboardPath(role), role)
	}
}

func TestGuardRedirectsMismatchedRole(t *testing.T) {
	redirect, ok := Guard("fasilitator", SuperAdmin)
	assert.False(t, ok)
	assert.Equal(t, "/fasilitator/dashboard", redirect)

	redirect, ok = Guard("", AdminPusat)
	assert.False(t, ok)
	assert.Equal(t, "/", redirect)

	redirect, ok = Guard("unknown", AdminPusat)
	assert.False(t, ok)
	assert.Equal(t, "/", redirect)

	redirect, ok = Guard("admin_pusat", AdminPusat)
	assert.True(t, ok)
	assert.Empty(t, redirect)
}

func TestSlugRoundTrip(t *testing.T) {
	for _, role := range All() {
		got, ok := FromSlug(Slug(string(role)))
		assert.True(t, ok)
		assert.Equal(t, role, got)
	}
	_, ok := FromSlug("guru")
	assert.False(t, ok)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin("super_admin"))
	assert.True(t, IsAdmin("admin_sekolah"))
	assert.False(t, IsAdmin("fasilitator"))
	assert.False(t, IsAdmin("koordinator"))
}

func TestPermissions(t *testing.T) {
	super := Permissions("super_admin")
	assert.True(t, super.Can(ResourcePengguna, ActionReset))
	assert.True(t, super.Can(ResourceLog, ActionDelete))

	fasil := Permissions("fasilitator")
	assert.False(t, fasil.Can(ResourceSurat, ActionView))
	assert.True(t, fasil.Can(ResourceProgres, ActionCreate))
	assert.Equal(t, []Action{ActionView}, fasil.Actions(ResourceSekolah, ActionView, ActionEdit, ActionDelete))

	assert.Empty(t, Permissions("guest").Resources())
	assert.Equal(t, ResourceSekolah, Permissions("koordinator").Resources()[0])
}

func TestSuratMutationsOnlyForAdmins(t *testing.T) {
	for _, role := range All() {
		set := Permissions(string(role))
		if set.Can(ResourceSurat, ActionStatus) || set.Can(ResourceSurat, ActionDelete) {
			assert.True(t, IsAdmin(string(role)), role)
		}
	}
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows("admin_sekolah", ResourceSurat, ActionStatus))
	assert.True(t, Allows("super_admin", ResourceSekolah, ActionDelete))
	assert.False(t, Allows("koordinator", ResourceSurat, ActionView))
	assert.False(t, Allows("fasilitator", ResourceSekolah, ActionEdit))
	assert.False(t, Allows("", ResourceSekolah, ActionView))
}
