package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/response"
)

// RoleParam is the route parameter holding the role segment.
const RoleParam = "role"

// RoleGuard admits a request only when the role segment of the route matches the session role.
// Other roles are sent to their own dashboard, sessions without a role to the login page.
// An unknown role segment is not a page.
func RoleGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		routeRole, ok := roles.FromSlug(c.Param(RoleParam))
		if !ok {
			response.Error(c, appErrors.ErrNotFound)
			c.Abort()
			return
		}

		redirect, allowed := roles.Guard(SessionFromContext(c).Role(), routeRole)
		if allowed {
			c.Next()
			return
		}
		if WantsJSON(c) {
			if redirect == roles.LoginPath {
				response.Error(c, appErrors.ErrUnauthorized)
			} else {
				response.Error(c, appErrors.ErrForbidden)
			}
			c.Abort()
			return
		}
		c.Redirect(http.StatusSeeOther, redirect)
		c.Abort()
	}
}

// Permit requires the session role to hold action on resource. An empty resource is read
// from the :resource route parameter.
func Permit(action roles.Action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := resource
		if target == "" {
			target = c.Param("resource")
		}
		if !roles.Permissions(SessionFromContext(c).Role()).Can(target, action) {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
