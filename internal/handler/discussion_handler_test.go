package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type discussionServiceStub struct {
	threads      []models.Thread
	listedSchool string
	thread       *models.Thread
	getErr       error
	created      forms.ThreadForm
	createErr    error
	sent         forms.MessageForm
	sendErr      error
	moderated    [2]bool
	moderateErr  error
}

func (s *discussionServiceStub) ListThreads(ctx context.Context, schoolID, token string) ([]models.Thread, error) {
	s.listedSchool = schoolID
	return s.threads, nil
}

func (s *discussionServiceStub) GetThread(ctx context.Context, threadID, token string) (*models.Thread, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.thread, nil
}

func (s *discussionServiceStub) CreateThread(ctx context.Context, role string, form forms.ThreadForm, token string) (*models.Thread, error) {
	s.created = form
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Thread{ID: "t-9", SchoolID: models.ID(form.SchoolID), Title: form.Title}, nil
}

func (s *discussionServiceStub) Send(ctx context.Context, sessionID string, thread *models.Thread, form forms.MessageForm, token string) (*models.Message, error) {
	s.sent = form
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &models.Message{ID: "m-1", ThreadID: thread.ID, Content: form.Content}, nil
}

func (s *discussionServiceStub) Moderate(ctx context.Context, role string, thread *models.Thread, pinned, closed bool, token string) error {
	s.moderated = [2]bool{pinned, closed}
	return s.moderateErr
}

type socketStub struct {
	token string
}

func (s *socketStub) ServeWS(w http.ResponseWriter, r *http.Request, token string) error {
	s.token = token
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}

func newDiscussionFixture(t *testing.T, role string) (*gin.Engine, *discussionServiceStub, *socketStub, *flashStub) {
	svc := &discussionServiceStub{
		threads: []models.Thread{{ID: "t-1", SchoolID: "sch-1", Title: "Pengadaan material"}},
		thread:  &models.Thread{ID: "t-1", SchoolID: "sch-1", Title: "Pengadaan material"},
	}
	hub := &socketStub{}
	flash := &flashStub{}
	h := NewDiscussionHandler(svc, hub, flash, nil)
	r := newTestEngine(t, sessionFor(role), func(r *gin.Engine) {
		r.GET("/ws/discussion", h.ServeWS)
		g := r.Group("/:role/diskusi")
		g.GET("", h.Threads)
		g.POST("", h.CreateThread)
		g.GET("/:id", h.Thread)
		g.POST("/:id/pesan", h.Send)
		g.POST("/:id/moderasi", h.Moderate)
	})
	return r, svc, hub, flash
}

func TestDiscussionHandlerThreadsDefaultsToUserSchool(t *testing.T) {
	r, svc, _, _ := newDiscussionFixture(t, string(roles.AdminSekolah))

	w := doJSON(r, http.MethodGet, "/admin-sekolah/diskusi", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "sch-1", svc.listedSchool)

	var content ThreadsView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &content))
	assert.True(t, content.CanCreate)
	assert.Equal(t, "/admin-sekolah/diskusi", content.BasePath)
	require.Len(t, content.Threads, 1)
	assert.NotEmpty(t, content.Fields)
}

func TestDiscussionHandlerCreateThreadRedirectsToThread(t *testing.T) {
	r, svc, _, flash := newDiscussionFixture(t, string(roles.Fasilitator))

	w := doHTML(r, http.MethodPost, "/fasilitator/diskusi", "sekolahId=sch-1&judul=Keterlambatan+material")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/fasilitator/diskusi/t-9", w.Header().Get("Location"))
	assert.Equal(t, "Keterlambatan material", svc.created.Title)
	assert.Equal(t, "Diskusi berhasil dibuat", flash.last("session-1"))
}

func TestDiscussionHandlerCreateThreadValidation(t *testing.T) {
	r, svc, _, _ := newDiscussionFixture(t, string(roles.Fasilitator))
	svc.createErr = appErrors.Clone(appErrors.ErrValidation, "Judul wajib diisi")

	w := doJSON(r, http.MethodPost, "/fasilitator/diskusi", "sekolahId=sch-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscussionHandlerThreadModerationLinks(t *testing.T) {
	r, _, _, _ := newDiscussionFixture(t, string(roles.Koordinator))

	w := doJSON(r, http.MethodGet, "/koordinator/diskusi/t-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var content ThreadView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &content))
	assert.Equal(t, "/ws/discussion", content.SocketPath)
	assert.Equal(t, "/koordinator/diskusi/t-1/pesan", content.PostPath)
	assert.True(t, content.CanModerate)
	assert.Equal(t, "/koordinator/diskusi/t-1/moderasi", content.ModeratePath)

	r, _, _, _ = newDiscussionFixture(t, string(roles.Fasilitator))
	w = doJSON(r, http.MethodGet, "/fasilitator/diskusi/t-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	content = ThreadView{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &content))
	assert.False(t, content.CanModerate)
	assert.Empty(t, content.ModeratePath)
}

func TestDiscussionHandlerThreadNotFound(t *testing.T) {
	r, svc, _, _ := newDiscussionFixture(t, string(roles.Koordinator))
	svc.getErr = appErrors.ErrNotFound

	w := doJSON(r, http.MethodGet, "/koordinator/diskusi/none", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDiscussionHandlerSend(t *testing.T) {
	r, svc, _, _ := newDiscussionFixture(t, string(roles.Fasilitator))

	w := doJSON(r, http.MethodPost, "/fasilitator/diskusi/t-1/pesan", "content=Sudah+dikirim&parentId=m-0")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, forms.MessageForm{Content: "Sudah dikirim", ParentID: "m-0"}, svc.sent)

	var msg models.Message
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &msg))
	assert.Equal(t, models.ID("m-1"), msg.ID)

	w = doHTML(r, http.MethodPost, "/fasilitator/diskusi/t-1/pesan", "content=Lagi")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/fasilitator/diskusi/t-1", w.Header().Get("Location"))
}

func TestDiscussionHandlerSendToClosedThread(t *testing.T) {
	r, svc, _, flash := newDiscussionFixture(t, string(roles.Fasilitator))
	svc.sendErr = appErrors.ErrThreadClosed

	w := doJSON(r, http.MethodPost, "/fasilitator/diskusi/t-1/pesan", "content=Halo")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doHTML(r, http.MethodPost, "/fasilitator/diskusi/t-1/pesan", "content=Halo")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, appErrors.ErrThreadClosed.Message, flash.last("session-1"))
}

func TestDiscussionHandlerModerate(t *testing.T) {
	r, svc, _, _ := newDiscussionFixture(t, string(roles.Koordinator))

	w := doHTML(r, http.MethodPost, "/koordinator/diskusi/t-1/moderasi", "pinned=true&closed=false")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, [2]bool{true, false}, svc.moderated)
}

func TestDiscussionHandlerServeWSPassesToken(t *testing.T) {
	r, _, hub, _ := newDiscussionFixture(t, string(roles.Koordinator))

	doHTML(r, http.MethodGet, "/ws/discussion", "")
	assert.Equal(t, "backend-token", hub.token)
}
