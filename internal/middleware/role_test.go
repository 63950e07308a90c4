package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
)

func roleEngine(session *models.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextSessionKey, session)
		c.Next()
	})
	g := r.Group("/:"+RoleParam, RoleGuard())
	g.GET("/dashboard", func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })
	g.GET("/reviu", Permit(roles.ActionView, roles.ResourceReviu), func(c *gin.Context) { c.String(http.StatusOK, "reviu") })
	g.GET("/:resource", Permit(roles.ActionView, ""), func(c *gin.Context) { c.String(http.StatusOK, c.Param("resource")) })
	return r
}

func serve(r http.Handler, path string, json bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if json {
		req.Header.Set("Accept", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func userSession(role roles.Role) *models.Session {
	return &models.Session{ID: "s", User: &models.User{ID: "1", Role: string(role)}}
}

func TestRoleGuardAllowsOwnRole(t *testing.T) {
	r := roleEngine(userSession(roles.Fasilitator))

	w := serve(r, "/fasilitator/dashboard", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleGuardRedirectsOtherRoleToOwnDashboard(t *testing.T) {
	r := roleEngine(userSession(roles.Fasilitator))

	w := serve(r, "/super-admin/dashboard", false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/fasilitator/dashboard", w.Header().Get("Location"))

	w = serve(r, "/super-admin/dashboard", true)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleGuardRedirectsAnonymousToLogin(t *testing.T) {
	r := roleEngine(&models.Session{ID: "s"})

	w := serve(r, "/koordinator/dashboard", false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, roles.LoginPath, w.Header().Get("Location"))

	w = serve(r, "/koordinator/dashboard", true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGuardUnknownSegment(t *testing.T) {
	r := roleEngine(userSession(roles.Fasilitator))

	w := serve(r, "/guru/dashboard", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPermit(t *testing.T) {
	r := roleEngine(userSession(roles.Fasilitator))

	assert.Equal(t, http.StatusForbidden, serve(r, "/fasilitator/reviu", true).Code)
	assert.Equal(t, http.StatusOK, serve(r, "/fasilitator/dokumen", true).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "/fasilitator/pengguna", true).Code)

	r = roleEngine(userSession(roles.Koordinator))
	assert.Equal(t, http.StatusOK, serve(r, "/koordinator/reviu", true).Code)
}
