package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type reviewServiceStub struct {
	review      *models.WeeklyReview
	loadedKey   models.ReviewKey
	issues      []string
	saveErr     error
	statusErr   error
	savedForm   forms.ReviewForm
	savedTarget models.ReviewStatus
	statusCalls int
	refreshed   int
}

func (s *reviewServiceStub) Load(ctx context.Context, key models.ReviewKey, token string) (*models.WeeklyReview, error) {
	s.loadedKey = key
	if s.review == nil {
		return &models.WeeklyReview{SchoolID: key.SchoolID, Week: key.Week, Year: key.Year}, nil
	}
	return s.review, nil
}

func (s *reviewServiceStub) CommonIssues(ctx context.Context, token string) ([]string, error) {
	return s.issues, nil
}

func (s *reviewServiceStub) RefreshCommonIssues(ctx context.Context, token string) ([]string, error) {
	s.refreshed++
	return s.issues, nil
}

func (s *reviewServiceStub) SaveReview(ctx context.Context, review *models.WeeklyReview, form forms.ReviewForm, target models.ReviewStatus, token string) (*models.WeeklyReview, error) {
	s.savedForm = form
	s.savedTarget = target
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	saved := *review
	saved.ID = "rev-1"
	saved.Status = target
	return &saved, nil
}

func (s *reviewServiceStub) UpdateReviewStatus(ctx context.Context, review *models.WeeklyReview, target models.ReviewStatus, token string) (*models.WeeklyReview, error) {
	s.statusCalls++
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	updated := *review
	updated.Status = target
	return &updated, nil
}

func newReviewFixture(t *testing.T, role string) (*gin.Engine, *reviewServiceStub, *flashStub) {
	svc := &reviewServiceStub{issues: []string{"Material terlambat", "Cuaca"}}
	flash := &flashStub{}
	h := NewReviewHandler(svc, flash, nil)
	h.now = func() time.Time { return time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC) }
	r := newTestEngine(t, sessionFor(role), func(r *gin.Engine) {
		r.GET("/:role/reviu", h.Page)
		r.POST("/:role/reviu", h.Save)
		r.POST("/:role/reviu/status", h.Status)
		r.POST("/:role/reviu/kendala", h.RefreshIssues)
	})
	return r, svc, flash
}

func TestReviewHandlerPageDefaultsToCurrentWeek(t *testing.T) {
	r, svc, _ := newReviewFixture(t, string(roles.Koordinator))

	w := doJSON(r, http.MethodGet, "/koordinator/reviu", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.ReviewKey{SchoolID: "sch-1", Week: 10, Year: 2024}, svc.loadedKey)

	var content ReviewView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &content))
	assert.True(t, content.Editable)
	assert.Equal(t, []string{"Material terlambat", "Cuaca"}, content.CommonIssues)
	require.Len(t, content.Transitions, 1)
	assert.Equal(t, string(models.ReviewApproved), content.Transitions[0].Value)
}

func TestReviewHandlerPageReadsQuery(t *testing.T) {
	r, svc, _ := newReviewFixture(t, string(roles.Koordinator))

	w := doJSON(r, http.MethodGet, "/koordinator/reviu?sekolahId=sch-9&minggu=12&tahun=2023", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ReviewKey{SchoolID: "sch-9", Week: 12, Year: 2023}, svc.loadedKey)
}

func TestReviewHandlerApprovedReviewIsReadOnly(t *testing.T) {
	r, svc, _ := newReviewFixture(t, string(roles.Koordinator))
	svc.review = &models.WeeklyReview{ID: "rev-1", SchoolID: "sch-1", Week: 10, Year: 2024, Status: models.ReviewApproved}

	w := doJSON(r, http.MethodGet, "/koordinator/reviu", "")
	require.Equal(t, http.StatusOK, w.Code)

	var content ReviewView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &content))
	assert.False(t, content.Editable)
	assert.Empty(t, content.CommonIssues)
	require.Len(t, content.Transitions, 1)
	assert.Equal(t, string(models.ReviewSubmitted), content.Transitions[0].Value)
}

func TestReviewHandlerForbiddenForFacilitator(t *testing.T) {
	r, _, _ := newReviewFixture(t, string(roles.Fasilitator))

	w := doJSON(r, http.MethodGet, "/fasilitator/reviu", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewHandlerSaveSubmits(t *testing.T) {
	r, svc, flash := newReviewFixture(t, string(roles.Koordinator))

	w := doHTML(r, http.MethodPost, "/koordinator/reviu?sekolahId=sch-1&minggu=10&tahun=2024",
		"catatan=Progres+baik&rekomendasi=Lanjutkan&kendala=Cuaca&kendala=Material+terlambat&target=submitted")
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/koordinator/reviu?minggu=10&sekolahId=sch-1&tahun=2024", w.Header().Get("Location"))
	assert.Equal(t, models.ReviewSubmitted, svc.savedTarget)
	assert.Equal(t, "Progres baik", svc.savedForm.Notes)
	assert.Equal(t, []string{"Cuaca", "Material terlambat"}, svc.savedForm.TechnicalIssues)
	assert.Equal(t, "Reviu berhasil diajukan", flash.last("session-1"))
}

func TestReviewHandlerSaveBindsRemovedIssues(t *testing.T) {
	r, svc, _ := newReviewFixture(t, string(roles.Koordinator))

	w := doHTML(r, http.MethodPost, "/koordinator/reviu", "kendala=Cuaca&kendala=Akses+jalan&hapus_kendala=Cuaca")
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, []string{"Cuaca", "Akses jalan"}, svc.savedForm.TechnicalIssues)
	assert.Equal(t, []string{"Cuaca"}, svc.savedForm.RemoveIssues)
}

func TestReviewHandlerRefreshIssues(t *testing.T) {
	r, svc, flash := newReviewFixture(t, string(roles.Koordinator))

	w := doHTML(r, http.MethodPost, "/koordinator/reviu/kendala?sekolahId=sch-1&minggu=10&tahun=2024", "")
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/koordinator/reviu?minggu=10&sekolahId=sch-1&tahun=2024", w.Header().Get("Location"))
	assert.Equal(t, 1, svc.refreshed)
	assert.Equal(t, "2 kendala umum dimuat ulang", flash.last("session-1"))
}

func TestReviewHandlerRefreshIssuesRequiresEdit(t *testing.T) {
	r, svc, _ := newReviewFixture(t, string(roles.SuperAdmin))

	w := doJSON(r, http.MethodPost, "/super_admin/reviu/kendala", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, svc.refreshed)
}

func TestReviewHandlerSaveDefaultsToDraft(t *testing.T) {
	r, svc, flash := newReviewFixture(t, string(roles.Koordinator))

	w := doHTML(r, http.MethodPost, "/koordinator/reviu", "catatan=Awal")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, models.ReviewDraft, svc.savedTarget)
	assert.Equal(t, "Reviu disimpan sebagai draft", flash.last("session-1"))
}

func TestReviewHandlerSaveValidation(t *testing.T) {
	r, svc, _ := newReviewFixture(t, string(roles.Koordinator))
	svc.saveErr = appErrors.Clone(appErrors.ErrValidation, "Catatan terlalu panjang")

	w := doJSON(r, http.MethodPost, "/koordinator/reviu", "catatan=x")
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Catatan terlalu panjang", env.Error.Message)
}

func TestReviewHandlerStatusRequiresSavedReview(t *testing.T) {
	r, svc, _ := newReviewFixture(t, string(roles.Koordinator))
	svc.statusErr = appErrors.ErrReviewNotSaved

	w := doJSON(r, http.MethodPost, "/koordinator/reviu/status", "status=approved")
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrReviewNotSaved.Code, env.Error.Code)
	assert.Equal(t, 1, svc.statusCalls)
}

func TestReviewHandlerStatusReopen(t *testing.T) {
	r, svc, flash := newReviewFixture(t, string(roles.SuperAdmin))
	svc.review = &models.WeeklyReview{ID: "rev-1", SchoolID: "sch-1", Status: models.ReviewApproved}

	w := doHTML(r, http.MethodPost, "/super-admin/reviu/status", "status=submitted")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Reviu dibuka kembali", flash.last("session-1"))
}
