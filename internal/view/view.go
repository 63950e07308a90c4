// Package view turns page view models into HTML through the embedded templates, or into the
// JSON envelope when the client asks for it.
package view

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/revitalisasi-dashboard/internal/middleware"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/response"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names.
const (
	TemplateLogin      = "login.tmpl"
	TemplateForgot     = "forgot.tmpl"
	TemplateDashboard  = "dashboard.tmpl"
	TemplateCalendar   = "calendar.tmpl"
	TemplateList       = "list.tmpl"
	TemplateForm       = "form.tmpl"
	TemplateDetail     = "detail.tmpl"
	TemplateReview     = "review.tmpl"
	TemplateThreads    = "threads.tmpl"
	TemplateThread     = "thread.tmpl"
	TemplateProfile    = "profile.tmpl"
	TemplateProgress   = "progress.tmpl"
	TemplateNotFound   = "notfound.tmpl"
	TemplateError      = "error.tmpl"
	defaultBrowserPath = "/"
)

// AppName is shown in the title bar and the footer.
const AppName = "Dashboard Revitalisasi Sekolah"

// MenuItem is one sidebar entry.
type MenuItem struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// Page is the data every template receives. Content carries the page-specific view model
// and is also the JSON payload.
type Page struct {
	Title      string             `json:"title"`
	User       *models.User       `json:"user,omitempty"`
	Role       string             `json:"role,omitempty"`
	RoleSlug   string             `json:"roleSlug,omitempty"`
	RoleLabel  string             `json:"roleLabel,omitempty"`
	Menu       []MenuItem         `json:"menu,omitempty"`
	Flash      string             `json:"flash,omitempty"`
	Error      string             `json:"error,omitempty"`
	Content    interface{}        `json:"content,omitempty"`
	Pagination *models.Pagination `json:"-"`
	Year       int                `json:"-"`
}

var sectionLabels = map[string]string{
	roles.ResourceReviu:    "Reviu Mingguan",
	roles.ResourceDiskusi:  "Diskusi",
	roles.ResourceProgres:  "Input Progres",
	roles.ResourceKalender: "Kalender Kegiatan",
}

// NewPage fills the shell of a page for the session. current is the resource or section that
// is highlighted in the sidebar.
func NewPage(session *models.Session, title, current string) Page {
	p := Page{Title: title, Year: time.Now().Year()}
	if session == nil || session.User == nil {
		return p
	}
	role := session.Role()
	p.User = session.User
	p.Role = role
	p.RoleSlug = roles.Slug(role)
	p.RoleLabel = roles.Label(role)
	p.Menu = Menu(role, current)
	return p
}

// Menu lists the sidebar of a role: dashboard, every visible section in permission order,
// then the profile page.
func Menu(role, current string) []MenuItem {
	base := roles.BasePath(role)
	if base == roles.LoginPath {
		return nil
	}
	items := []MenuItem{{Label: "Dashboard", Path: base + "/dashboard", Active: current == "dashboard"}}
	for _, name := range roles.Permissions(role).Resources() {
		label, ok := sectionLabels[name]
		if !ok {
			def, found := resources.Get(name)
			if !found || def.Parent != "" {
				continue
			}
			label = def.Title
		}
		items = append(items, MenuItem{Label: label, Path: base + "/" + name, Active: current == name})
	}
	items = append(items, MenuItem{Label: "Profil", Path: base + "/profil", Active: current == "profil"})
	return items
}

// Templates parses the embedded templates with the view helpers.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.tmpl")
}

// Install sets the parsed templates as the engine's HTML renderer.
func Install(engine *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	engine.SetHTMLTemplate(tmpl)
	return nil
}

// Funcs returns the template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"tone": func(tone models.Tone) string {
			if tone == "" {
				return "badge-" + string(models.ToneNeutral)
			}
			return "badge-" + string(tone)
		},
		"inc": func(n int) int { return n + 1 },
		"join": func(values []string, sep string) string {
			return strings.Join(values, sep)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Local().Format("02-01-2006 15:04")
		},
		"roleLabel": roles.Label,
		"contains": func(values []string, v string) bool {
			for _, s := range values {
				if s == v {
					return true
				}
			}
			return false
		},
	}
}

// Render writes page as HTML with the named template, or its Content as JSON.
func Render(c *gin.Context, status int, name string, page Page) {
	if middleware.WantsJSON(c) {
		meta := middleware.ExtractMeta(c)
		if page.Flash != "" {
			if meta == nil {
				meta = map[string]interface{}{}
			}
			meta["flash"] = page.Flash
		}
		response.JSON(c, status, page.Content, page.Pagination, meta)
		return
	}
	c.HTML(status, name, page)
}

// RenderError writes err as the JSON error envelope or as the error page.
func RenderError(c *gin.Context, session *models.Session, err error) {
	if middleware.WantsJSON(c) {
		response.Error(c, err)
		return
	}
	appErr := appErrors.FromError(err)
	page := NewPage(session, "Terjadi Kesalahan", "")
	page.Error = appErr.Message
	name := TemplateError
	if appErr.Status == http.StatusNotFound {
		name = TemplateNotFound
		page.Title = "Halaman Tidak Ditemukan"
	}
	c.HTML(appErr.Status, name, page)
}

// Redirect sends browsers to path with 303; JSON clients get the target in the envelope.
func Redirect(c *gin.Context, path, flash string) {
	if path == "" {
		path = defaultBrowserPath
	}
	if middleware.WantsJSON(c) {
		meta := map[string]interface{}{"redirect": path}
		if flash != "" {
			meta["flash"] = flash
		}
		response.JSON(c, http.StatusOK, nil, nil, meta)
		return
	}
	c.Redirect(http.StatusSeeOther, path)
}
