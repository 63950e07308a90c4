package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type fakeBackend struct {
	mu        sync.Mutex
	calls     []apiclient.Request
	responses map[string]string
	errs      map[string]error
	pages     map[string]*apiclient.Page
	blobs     map[string]string
	// before runs, if set, ahead of the response of the matching call.
	before map[string]func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		responses: map[string]string{},
		errs:      map[string]error{},
		pages:     map[string]*apiclient.Page{},
		blobs:     map[string]string{},
		before:    map[string]func(){},
	}
}

func (f *fakeBackend) record(req apiclient.Request) string {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	hook := f.before[req.Method+" "+req.Path]
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return req.Method + " " + req.Path
}

func (f *fakeBackend) List(ctx context.Context, path string, query url.Values, token string) (*apiclient.Page, error) {
	key := f.record(apiclient.Request{Method: "GET", Path: path, Query: query, Token: token})
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	if page, ok := f.pages[path]; ok {
		return page, nil
	}
	return &apiclient.Page{}, nil
}

func (f *fakeBackend) Do(ctx context.Context, req apiclient.Request, out interface{}) error {
	key := f.record(req)
	if err := f.errs[key]; err != nil {
		return err
	}
	raw, ok := f.responses[key]
	if !ok || out == nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	return dec.Decode(out)
}

func (f *fakeBackend) Download(ctx context.Context, path string, query url.Values, token string) (*apiclient.Blob, error) {
	key := f.record(apiclient.Request{Method: "GET", Path: path, Query: query, Token: token})
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	body, ok := f.blobs[path]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &apiclient.Blob{Body: io.NopCloser(bytes.NewBufferString(body)), ContentType: "application/pdf", Size: int64(len(body))}, nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) lastCall() apiclient.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return apiclient.Request{}
	}
	return f.calls[len(f.calls)-1]
}

type stubSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	saveErr  error
	deleted  []string
	purged   int64
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: map[string]models.Session{}}
}

func (r *stubSessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	if s.User != nil {
		user := *s.User
		s.User = &user
	}
	return &s, nil
}

func (r *stubSessionRepo) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *session
	if session.User != nil {
		user := *session.User
		stored.User = &user
	}
	r.sessions[session.ID] = stored
	return nil
}

func (r *stubSessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubSessionRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.purged, nil
}

type recordingMetrics struct {
	ops []string
}

func (m *recordingMetrics) RecordSessionOperation(operation string, err error) {
	m.ops = append(m.ops, operation)
}
