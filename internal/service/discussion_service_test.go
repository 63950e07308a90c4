package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type publisherStub struct {
	mu        sync.Mutex
	published []models.Message
	states    []bool
}

func (p *publisherStub) Publish(threadID string, msg models.Message) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, msg)
	return 1
}

func (p *publisherStub) UpdateThread(threadID string, pinned, closed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states = append(p.states, pinned, closed)
}

func TestDiscussionServiceGetThreadNormalises(t *testing.T) {
	backend := newFakeBackend()
	backend.responses["GET /diskusi/t1"] = `{"data":{"id":"t1","judul":"Material","messages":[
		{"id":"1","content":"a","replies":[{"id":"2","content":"b"}]},
		{"id":"1","content":"dup"},
		{"id":"3","parentId":"missing","content":"orphan"}
	]}}`
	svc := NewDiscussionService(backend, nil, nil, nil)

	thread, err := svc.GetThread(context.Background(), "t1", "tok")
	require.NoError(t, err)
	require.Len(t, thread.Messages, 1)
	require.Len(t, thread.Messages[0].Replies, 1)
	assert.Equal(t, models.ID("1"), thread.Messages[0].Replies[0].ParentID)
}

func TestDiscussionServiceSendRefusedWhenClosed(t *testing.T) {
	backend := newFakeBackend()
	svc := NewDiscussionService(backend, &publisherStub{}, nil, nil)

	_, err := svc.Send(context.Background(), "sid", &models.Thread{ID: "t1", IsClosed: true}, forms.MessageForm{Content: "halo"}, "tok")
	assert.ErrorIs(t, err, appErrors.ErrThreadClosed)
	assert.Equal(t, 0, backend.callCount())
}

func TestDiscussionServiceSendMergesAndPublishes(t *testing.T) {
	backend := newFakeBackend()
	backend.responses["POST /diskusi/t1/messages"] = `{"data":{"id":"10","content":"siap"}}`
	pub := &publisherStub{}
	svc := NewDiscussionService(backend, pub, nil, nil)
	thread := &models.Thread{ID: "t1", Messages: []models.Message{{ID: "1", Content: "mulai"}}}

	msg, err := svc.Send(context.Background(), "sid", thread, forms.MessageForm{Content: "siap", ParentID: "1"}, "tok")
	require.NoError(t, err)
	assert.Equal(t, models.ID("1"), msg.ParentID)
	assert.Equal(t, models.ID("t1"), msg.ThreadID)
	require.Len(t, thread.Messages[0].Replies, 1)
	require.Len(t, pub.published, 1)

	_, err = svc.Send(context.Background(), "sid", thread, forms.MessageForm{Content: "balas balasan", ParentID: "10"}, "tok")
	assert.True(t, appErrors.IsCode(err, appErrors.CodeValidation))
}

func TestDiscussionServiceSendInFlightGuard(t *testing.T) {
	backend := newFakeBackend()
	backend.responses["POST /diskusi/t1/messages"] = `{"id":"11","content":"x"}`
	entered := make(chan struct{})
	release := make(chan struct{})
	backend.before["POST /diskusi/t1/messages"] = func() {
		select {
		case entered <- struct{}{}:
			<-release
		default:
		}
	}
	svc := NewDiscussionService(backend, nil, nil, nil)
	thread := &models.Thread{ID: "t1"}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Send(context.Background(), "sid", thread, forms.MessageForm{Content: "x"}, "tok")
		done <- err
	}()
	<-entered

	_, err := svc.Send(context.Background(), "sid", &models.Thread{ID: "t1"}, forms.MessageForm{Content: "x"}, "tok")
	assert.ErrorIs(t, err, appErrors.ErrSendInFlight)

	_, err = svc.Send(context.Background(), "other-session", &models.Thread{ID: "t1"}, forms.MessageForm{Content: "y"}, "tok")
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
}

func TestDiscussionServiceModerate(t *testing.T) {
	backend := newFakeBackend()
	pub := &publisherStub{}
	svc := NewDiscussionService(backend, pub, nil, nil)
	thread := &models.Thread{ID: "t1"}

	err := svc.Moderate(context.Background(), "fasilitator", thread, true, false, "tok")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Equal(t, 0, backend.callCount())

	require.NoError(t, svc.Moderate(context.Background(), "koordinator", thread, true, true, "tok"))
	assert.True(t, thread.IsPinned)
	assert.True(t, thread.IsClosed)
	assert.Equal(t, []bool{true, true}, pub.states)
	assert.Equal(t, "/diskusi/t1", backend.lastCall().Path)
}
