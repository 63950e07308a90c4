package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/middleware"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type dashboardService interface {
	Summary(ctx context.Context, role, token string) (*models.DashboardSummary, error)
	Calendar(ctx context.Context, year int, month time.Month, token string) ([]models.CalendarDay, error)
}

// CalendarView is the content of the calendar page.
type CalendarView struct {
	Label string               `json:"label"`
	Month string               `json:"month"`
	Prev  string               `json:"prev"`
	Next  string               `json:"next"`
	Days  []models.CalendarDay `json:"days"`
}

// DashboardHandler wires the dashboard service to the role landing pages.
type DashboardHandler struct {
	service dashboardService
	flash   flasher
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, flash flasher, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{service: service, flash: flash, logger: logger, now: time.Now}
}

// Dashboard godoc
// @Summary Role dashboard with summary cards and notifications
// @Tags Dashboard
// @Produce html,json
// @Param role path string true "Role segment"
// @Success 200 {object} response.Envelope
// @Router /{role}/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	session := sessionFromContext(c)
	summary, err := h.service.Summary(c.Request.Context(), session.Role(), session.Token)
	if err != nil {
		view.RenderError(c, session, err)
		return
	}
	middleware.SetMeta(c, "cards", len(summary.Cards))
	p := newPage(c, h.flash, "Dashboard "+roles.Label(session.Role()), "dashboard")
	p.Content = summary
	view.Render(c, http.StatusOK, view.TemplateDashboard, p)
}

// Calendar godoc
// @Summary Monthly calendar of program events
// @Tags Dashboard
// @Produce html,json
// @Param role path string true "Role segment"
// @Param bulan query string false "Month (YYYY-MM). Defaults to the current month"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /{role}/kalender [get]
func (h *DashboardHandler) Calendar(c *gin.Context) {
	session := sessionFromContext(c)
	if !roles.Allows(session.Role(), roles.ResourceKalender, roles.ActionView) {
		view.RenderError(c, session, appErrors.ErrForbidden)
		return
	}
	month := h.now()
	if raw := c.Query("bulan"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			view.RenderError(c, session, appErrors.Clone(appErrors.ErrValidation, "format bulan harus YYYY-MM"))
			return
		}
		month = parsed
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	days, err := h.service.Calendar(c.Request.Context(), first.Year(), first.Month(), session.Token)
	if err != nil {
		view.RenderError(c, session, err)
		return
	}
	base := roles.BasePath(session.Role()) + "/" + roles.ResourceKalender + "?bulan="
	p := newPage(c, h.flash, "Kalender Kegiatan", roles.ResourceKalender)
	p.Content = CalendarView{
		Label: monthNames[first.Month()-1] + " " + first.Format("2006"),
		Month: first.Format("2006-01"),
		Prev:  base + first.AddDate(0, -1, 0).Format("2006-01"),
		Next:  base + first.AddDate(0, 1, 0).Format("2006-01"),
		Days:  days,
	}
	view.Render(c, http.StatusOK, view.TemplateCalendar, p)
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}
