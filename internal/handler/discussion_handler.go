package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/response"
)

type discussionService interface {
	ListThreads(ctx context.Context, schoolID, token string) ([]models.Thread, error)
	GetThread(ctx context.Context, threadID, token string) (*models.Thread, error)
	CreateThread(ctx context.Context, role string, form forms.ThreadForm, token string) (*models.Thread, error)
	Send(ctx context.Context, sessionID string, thread *models.Thread, form forms.MessageForm, token string) (*models.Message, error)
	Moderate(ctx context.Context, role string, thread *models.Thread, pinned, closed bool, token string) error
}

type socketServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, token string) error
}

// ThreadsView is the content of the thread list page.
type ThreadsView struct {
	BasePath  string          `json:"basePath"`
	SchoolID  string          `json:"sekolahId"`
	Threads   []models.Thread `json:"threads"`
	CanCreate bool            `json:"canCreate"`
	Fields    []view.Field    `json:"fields,omitempty"`
}

// ThreadView is the content of one thread page.
type ThreadView struct {
	Thread       *models.Thread `json:"thread"`
	SocketPath   string         `json:"socketPath"`
	PostPath     string         `json:"postPath"`
	ModeratePath string         `json:"moderatePath,omitempty"`
	CanModerate  bool           `json:"canModerate"`
}

// DiscussionHandler serves discussion threads and their push channel.
type DiscussionHandler struct {
	discussions discussionService
	hub         socketServer
	flash       flasher
	logger      *zap.Logger
}

// NewDiscussionHandler constructs the handler.
func NewDiscussionHandler(discussions discussionService, hub socketServer, flash flasher, logger *zap.Logger) *DiscussionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscussionHandler{discussions: discussions, hub: hub, flash: flash, logger: logger}
}

func discussionBase(c *gin.Context) string {
	return roles.BasePath(sessionFromContext(c).Role()) + "/" + roles.ResourceDiskusi
}

func threadPath(c *gin.Context, id string) string {
	return discussionBase(c) + "/" + url.PathEscape(id)
}

// Threads godoc
// @Summary Discussion threads of a school
// @Tags Discussion
// @Produce html,json
// @Param role path string true "Role segment"
// @Param sekolahId query string false "School ID"
// @Success 200 {object} response.Envelope
// @Router /{role}/diskusi [get]
func (h *DiscussionHandler) Threads(c *gin.Context) {
	h.renderThreads(c, http.StatusOK, nil, nil)
}

// CreateThread godoc
// @Summary Open a discussion thread
// @Tags Discussion
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Router /{role}/diskusi [post]
func (h *DiscussionHandler) CreateThread(c *gin.Context) {
	session := sessionFromContext(c)
	var form forms.ThreadForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderThreads(c, http.StatusBadRequest, &form, bindError(err))
		return
	}
	thread, err := h.discussions.CreateThread(c.Request.Context(), session.Role(), form, session.Token)
	if err != nil {
		if isValidation(err) {
			h.renderThreads(c, statusOf(err), &form, err)
			return
		}
		fail(c, h.flash, discussionBase(c), err)
		return
	}
	target := discussionBase(c) + "?sekolahId=" + url.QueryEscape(form.SchoolID)
	if thread.ID != "" {
		target = threadPath(c, thread.ID.String())
	}
	finish(c, h.flash, target, "Diskusi berhasil dibuat")
}

func (h *DiscussionHandler) renderThreads(c *gin.Context, status int, form *forms.ThreadForm, err error) {
	if err != nil && wantsJSON(c) {
		response.Error(c, err)
		return
	}
	session := sessionFromContext(c)
	schoolID := c.Query("sekolahId")
	if schoolID == "" && form != nil {
		schoolID = form.SchoolID
	}
	if schoolID == "" && session.User != nil {
		schoolID = session.User.SchoolID.String()
	}

	content := ThreadsView{
		BasePath:  discussionBase(c),
		SchoolID:  schoolID,
		CanCreate: roles.Allows(session.Role(), roles.ResourceDiskusi, roles.ActionCreate),
	}
	p := newPage(c, h.flash, "Diskusi", roles.ResourceDiskusi)
	if schoolID != "" {
		threads, lerr := h.discussions.ListThreads(c.Request.Context(), schoolID, session.Token)
		if lerr != nil {
			h.logger.Warn("list threads failed", zap.String("sekolah_id", schoolID), zap.Error(lerr))
			p.Error = appErrors.UserMessage(lerr)
		}
		content.Threads = threads
	}
	if content.CanCreate {
		if form == nil {
			form = &forms.ThreadForm{SchoolID: schoolID}
		}
		content.Fields = view.BuildForm(form, forms.Fields(err), false)
	}
	if err != nil && forms.Fields(err) == nil {
		p.Error = appErrors.UserMessage(err)
	}
	p.Content = content
	view.Render(c, status, view.TemplateThreads, p)
}

// Thread godoc
// @Summary One discussion thread with its messages
// @Tags Discussion
// @Produce html,json
// @Param role path string true "Role segment"
// @Param id path string true "Thread ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /{role}/diskusi/{id} [get]
func (h *DiscussionHandler) Thread(c *gin.Context) {
	session := sessionFromContext(c)
	thread, err := h.discussions.GetThread(c.Request.Context(), c.Param("id"), session.Token)
	if err != nil {
		view.RenderError(c, session, err)
		return
	}
	id := thread.ID.String()
	content := ThreadView{
		Thread:      thread,
		SocketPath:  "/ws/discussion",
		PostPath:    threadPath(c, id) + "/pesan",
		CanModerate: roles.Allows(session.Role(), roles.ResourceDiskusi, roles.ActionModerate),
	}
	if content.CanModerate {
		content.ModeratePath = threadPath(c, id) + "/moderasi"
	}
	p := newPage(c, h.flash, thread.Title, roles.ResourceDiskusi)
	p.Content = content
	view.Render(c, http.StatusOK, view.TemplateThread, p)
}

// Send godoc
// @Summary Post a message or a reply to a thread
// @Description The stored message is pushed to every viewer of the thread.
// @Tags Discussion
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Param id path string true "Thread ID"
// @Param content formData string true "Message"
// @Param parentId formData string false "Top-level message being replied to"
// @Success 303
// @Failure 409 {object} response.Envelope
// @Router /{role}/diskusi/{id}/pesan [post]
func (h *DiscussionHandler) Send(c *gin.Context) {
	session := sessionFromContext(c)
	back := threadPath(c, c.Param("id"))
	var form forms.MessageForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, h.flash, back, bindError(err))
		return
	}
	thread, err := h.discussions.GetThread(c.Request.Context(), c.Param("id"), session.Token)
	if err != nil {
		fail(c, h.flash, back, err)
		return
	}
	msg, err := h.discussions.Send(c.Request.Context(), session.ID, thread, form, session.Token)
	if err != nil {
		fail(c, h.flash, back, err)
		return
	}
	if wantsJSON(c) {
		response.Created(c, msg)
		return
	}
	finish(c, h.flash, back, "")
}

// Moderate godoc
// @Summary Pin or close a thread
// @Tags Discussion
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Param id path string true "Thread ID"
// @Param pinned formData bool false "Pinned"
// @Param closed formData bool false "Closed"
// @Success 303
// @Failure 403 {object} response.Envelope
// @Router /{role}/diskusi/{id}/moderasi [post]
func (h *DiscussionHandler) Moderate(c *gin.Context) {
	session := sessionFromContext(c)
	back := threadPath(c, c.Param("id"))
	thread, err := h.discussions.GetThread(c.Request.Context(), c.Param("id"), session.Token)
	if err != nil {
		fail(c, h.flash, back, err)
		return
	}
	pinned := c.PostForm("pinned") == "true"
	closed := c.PostForm("closed") == "true"
	if err := h.discussions.Moderate(c.Request.Context(), session.Role(), thread, pinned, closed, session.Token); err != nil {
		fail(c, h.flash, back, err)
		return
	}
	finish(c, h.flash, back, "Pengaturan diskusi disimpan")
}

// ServeWS godoc
// @Summary Discussion push channel
// @Description Send join_thread and leave_thread frames; receive thread_snapshot, receive_message
// @Description and thread_state frames.
// @Tags Discussion
// @Success 101
// @Router /ws/discussion [get]
func (h *DiscussionHandler) ServeWS(c *gin.Context) {
	session := sessionFromContext(c)
	if err := h.hub.ServeWS(c.Writer, c.Request, session.Token); err != nil {
		h.logger.Debug("discussion upgrade failed", zap.Error(err))
	}
}
