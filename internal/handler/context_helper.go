package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/revitalisasi-dashboard/internal/middleware"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/response"
)

// Flash messages.
const (
	flashSaved   = "Data berhasil disimpan"
	flashDeleted = "Data berhasil dihapus"
)

type flasher interface {
	SetFlash(ctx context.Context, sessionID, message string) error
	PopFlash(ctx context.Context, sessionID string) string
}

func sessionFromContext(c *gin.Context) *models.Session {
	if s := middleware.SessionFromContext(c); s != nil {
		return s
	}
	return &models.Session{}
}

// newPage builds the page shell and consumes the pending flash message.
func newPage(c *gin.Context, flash flasher, title, current string) view.Page {
	session := sessionFromContext(c)
	p := view.NewPage(session, title, current)
	if flash != nil && session.ID != "" {
		p.Flash = flash.PopFlash(c.Request.Context(), session.ID)
	}
	return p
}

// finish redirects browsers to path after storing message as the next page's flash.
// JSON clients receive the message and target in the envelope.
func finish(c *gin.Context, flash flasher, path, message string) {
	session := sessionFromContext(c)
	if message != "" && flash != nil && session.ID != "" && !wantsJSON(c) {
		_ = flash.SetFlash(c.Request.Context(), session.ID, message)
	}
	view.Redirect(c, path, message)
}

// fail reports err. Browsers go back to path with the message as flash; JSON clients get the
// error envelope.
func fail(c *gin.Context, flash flasher, path string, err error) {
	if wantsJSON(c) {
		response.Error(c, err)
		return
	}
	finish(c, flash, path, appErrors.UserMessage(err))
}

func wantsJSON(c *gin.Context) bool {
	return middleware.WantsJSON(c)
}

func confirmed(c *gin.Context) bool {
	switch c.PostForm("confirm") {
	case "yes", "true", "1", "ya":
		return true
	}
	return c.Query("confirm") == "yes"
}

// resourceBase is the page path of a resource list for a role.
func resourceBase(role string, def resources.Definition, parentID string) string {
	base := roles.BasePath(role)
	if def.Parent != "" {
		return base + "/" + def.Parent + "/" + url.PathEscape(parentID) + "/" + def.Name
	}
	return base + "/" + def.Name
}

func isValidation(err error) bool {
	return errors.Is(err, appErrors.ErrValidation)
}

func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return appErrors.FromError(err).Status
}
