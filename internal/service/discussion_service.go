package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type threadPublisher interface {
	Publish(threadID string, msg models.Message) int
	UpdateThread(threadID string, pinned, closed bool)
}

// DiscussionService reads and writes discussion threads and pushes changes to viewers.
type DiscussionService struct {
	backend   backendClient
	publisher threadPublisher
	validator *validator.Validate
	logger    *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewDiscussionService constructs a DiscussionService. publisher may be nil.
func NewDiscussionService(backend backendClient, publisher threadPublisher, validate *validator.Validate, logger *zap.Logger) *DiscussionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = forms.NewValidator()
	}
	return &DiscussionService{
		backend:   backend,
		publisher: publisher,
		validator: validate,
		logger:    logger,
		inflight:  make(map[string]struct{}),
	}
}

// SetPublisher attaches the push channel once it exists.
func (s *DiscussionService) SetPublisher(publisher threadPublisher) {
	s.publisher = publisher
}

// ListThreads returns the threads of a school, pinned first as ordered by the backend.
func (s *DiscussionService) ListThreads(ctx context.Context, schoolID, token string) ([]models.Thread, error) {
	query := url.Values{}
	if schoolID != "" {
		query.Set("sekolahId", schoolID)
	}
	var raw json.RawMessage
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/diskusi", Query: query, Token: token}, &raw); err != nil {
		return nil, err
	}
	var threads []models.Thread
	if err := decodeData(raw, &threads); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons diskusi tidak dapat dibaca")
	}
	return threads, nil
}

// GetThread loads a thread and normalises its messages into top-level messages with
// single-level replies.
func (s *DiscussionService) GetThread(ctx context.Context, threadID, token string) (*models.Thread, error) {
	var raw json.RawMessage
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/diskusi/" + url.PathEscape(threadID), Token: token}, &raw); err != nil {
		return nil, err
	}
	var loaded models.Thread
	if err := decodeData(raw, &loaded); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons diskusi tidak dapat dibaca")
	}
	thread := loaded
	thread.Messages = nil
	if thread.ID == "" {
		thread.ID = models.ID(threadID)
	}
	thread.MergeAll(loaded.Messages)
	return &thread, nil
}

// CreateThread opens a thread for a school.
func (s *DiscussionService) CreateThread(ctx context.Context, role string, form forms.ThreadForm, token string) (*models.Thread, error) {
	if !roles.Permissions(role).Can(roles.ResourceDiskusi, roles.ActionCreate) {
		return nil, appErrors.ErrForbidden
	}
	if err := forms.Validate(s.validator, &form); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/diskusi", JSON: form, Token: token}, &raw); err != nil {
		return nil, err
	}
	var thread models.Thread
	if err := decodeData(raw, &thread); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons diskusi tidak dapat dibaca")
	}
	return &thread, nil
}

// Send posts a message or reply. It is refused on closed threads and while a previous send of
// the same session to the same thread is still in flight. The stored message is merged into
// thread and pushed to the thread's viewers.
func (s *DiscussionService) Send(ctx context.Context, sessionID string, thread *models.Thread, form forms.MessageForm, token string) (*models.Message, error) {
	if thread == nil || thread.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "diskusi tidak valid")
	}
	if thread.IsClosed {
		return nil, appErrors.ErrThreadClosed
	}
	if err := forms.Validate(s.validator, &form); err != nil {
		return nil, err
	}
	if form.ParentID != "" && !hasTopLevel(thread, models.ID(form.ParentID)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "pesan yang dibalas tidak ditemukan")
	}

	key := sessionID + "|" + thread.ID.String()
	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return nil, appErrors.ErrSendInFlight
	}
	s.inflight[key] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}()

	var raw json.RawMessage
	path := "/diskusi/" + url.PathEscape(thread.ID.String()) + "/messages"
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: path, JSON: form, Token: token}, &raw); err != nil {
		return nil, err
	}
	var msg models.Message
	if err := decodeData(raw, &msg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons pesan tidak dapat dibaca")
	}
	if msg.ID == "" {
		return nil, appErrors.New(appErrors.CodeUpstream, http.StatusBadGateway, "server tidak mengembalikan pesan yang tersimpan")
	}
	if msg.ParentID == "" {
		msg.ParentID = models.ID(form.ParentID)
	}
	if msg.ThreadID == "" {
		msg.ThreadID = thread.ID
	}
	if msg.Content == "" {
		msg.Content = form.Content
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	thread.Merge(msg)
	if s.publisher != nil {
		delivered := s.publisher.Publish(thread.ID.String(), msg)
		s.logger.Debug("message pushed", zap.String("thread_id", thread.ID.String()), zap.Int("viewers", delivered))
	}
	return &msg, nil
}

// Moderate sets the pinned and closed flags of a thread.
func (s *DiscussionService) Moderate(ctx context.Context, role string, thread *models.Thread, pinned, closed bool, token string) error {
	if !roles.Permissions(role).Can(roles.ResourceDiskusi, roles.ActionModerate) {
		return appErrors.Clone(appErrors.ErrForbidden, "anda tidak dapat mengelola diskusi ini")
	}
	if thread == nil || thread.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "diskusi tidak valid")
	}
	body := map[string]bool{"isPinned": pinned, "isClosed": closed}
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodPatch, Path: "/diskusi/" + url.PathEscape(thread.ID.String()), JSON: body, Token: token}, nil); err != nil {
		return err
	}
	thread.IsPinned = pinned
	thread.IsClosed = closed
	if s.publisher != nil {
		s.publisher.UpdateThread(thread.ID.String(), pinned, closed)
	}
	return nil
}

// hasTopLevel reports whether id names a top-level message; replies cannot be replied to.
func hasTopLevel(thread *models.Thread, id models.ID) bool {
	for _, m := range thread.Messages {
		if m.ID == id {
			return true
		}
	}
	return false
}
