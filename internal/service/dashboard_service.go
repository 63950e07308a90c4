package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

// calendarEventLimit bounds the events fetched for one month.
const calendarEventLimit = 500

// DashboardService composes the role dashboards and the event calendar.
type DashboardService struct {
	backend backendClient
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(backend backendClient, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{backend: backend, logger: logger, now: time.Now}
}

// Summary loads the stat cards and notifications of a role's dashboard.
func (s *DashboardService) Summary(ctx context.Context, role, token string) (*models.DashboardSummary, error) {
	parsed, ok := roles.Parse(role)
	if !ok {
		return nil, appErrors.ErrForbidden
	}
	var raw json.RawMessage
	query := url.Values{"role": {string(parsed)}}
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/dashboard/summary", Query: query, Token: token}, &raw); err != nil {
		return nil, err
	}
	summary := &models.DashboardSummary{}
	if err := decodeData(raw, summary); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons ringkasan tidak dapat dibaca")
	}
	summary.Role = string(parsed)
	for i, card := range summary.Cards {
		if card.Value == "" {
			summary.Cards[i].Value = "0"
		}
	}
	return summary, nil
}

// Calendar groups the events of a month by date. A zero month means the current one.
func (s *DashboardService) Calendar(ctx context.Context, year int, month time.Month, token string) ([]models.CalendarDay, error) {
	if year == 0 || month == 0 {
		now := s.now()
		year, month = now.Year(), now.Month()
	}
	if month < time.January || month > time.December {
		return nil, appErrors.Clone(appErrors.ErrValidation, "bulan tidak valid")
	}
	query := url.Values{
		"bulan": {fmt.Sprintf("%04d-%02d", year, int(month))},
		"page":  {"0"},
		"limit": {fmt.Sprint(calendarEventLimit)},
	}
	page, err := s.backend.List(ctx, "/kegiatan", query, token)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(page.Rows)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	var events []models.Event
	if err := json.Unmarshal(payload, &events); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons kegiatan tidak dapat dibaca")
	}
	return models.GroupByDay(events, year, month), nil
}
