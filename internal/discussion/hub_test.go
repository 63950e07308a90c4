package discussion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
)

func newTestHub(t *testing.T, loader Loader) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(loader, Config{WriteTimeout: time.Second})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, r.URL.Query().Get("token"))
	}))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=tok"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func seededLoader(ctx context.Context, threadID, token string) (*models.Thread, error) {
	if token != "tok" {
		return nil, errors.New("unauthorized")
	}
	return &models.Thread{
		ID:    models.ID(threadID),
		Title: "Kendala material",
		Messages: []models.Message{
			{ID: "1", Content: "Semen terlambat", Replies: []models.Message{{ID: "2", ParentID: "1", Content: "Sudah dikonfirmasi"}}},
		},
	}, nil
}

func TestHubJoinSendsSnapshotAndFansOutNewMessages(t *testing.T) {
	hub, srv := newTestHub(t, seededLoader)
	a := dial(t, srv)
	b := dial(t, srv)

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.WriteJSON(Envelope{Event: EventJoin, ThreadID: "t1"}))
		snap := read(t, conn)
		assert.Equal(t, EventSnapshot, snap.Event)
		require.NotNil(t, snap.Thread)
		require.Len(t, snap.Thread.Messages, 1)
		assert.Len(t, snap.Thread.Messages[0].Replies, 1)
	}
	require.Eventually(t, func() bool { return hub.Viewers("t1") == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, hub.Publish("t1", models.Message{ID: "2", ParentID: "1"}))
	assert.Equal(t, 2, hub.Publish("t1", models.Message{ID: "3", ParentID: "1", Content: "Dikirim besok"}))
	assert.Equal(t, 0, hub.Publish("t1", models.Message{ID: "3", ParentID: "1", Content: "Dikirim besok"}))
	assert.Equal(t, 2, hub.Publish("t1", models.Message{ID: "4", Content: "Update mingguan"}))

	for _, conn := range []*websocket.Conn{a, b} {
		first := read(t, conn)
		assert.Equal(t, EventReceive, first.Event)
		assert.Equal(t, models.ID("3"), first.Message.ID)
		second := read(t, conn)
		assert.Equal(t, models.ID("4"), second.Message.ID)
	}
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub, srv := newTestHub(t, seededLoader)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(Envelope{Event: EventJoin, ThreadID: "t9"}))
	read(t, conn)
	require.NoError(t, conn.WriteJSON(Envelope{Event: EventLeave, ThreadID: "t9"}))
	require.Eventually(t, func() bool { return hub.Viewers("t9") == 0 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, hub.Publish("t9", models.Message{ID: "10"}))
}

func TestHubThreadStateAndErrors(t *testing.T) {
	hub, srv := newTestHub(t, seededLoader)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(Envelope{Event: "typing"}))
	assert.Equal(t, EventError, read(t, conn).Event)

	require.NoError(t, conn.WriteJSON(Envelope{Event: EventJoin, ThreadID: "t2"}))
	read(t, conn)
	hub.UpdateThread("t2", true, true)
	state := read(t, conn)
	assert.Equal(t, EventThreadState, state.Event)
	assert.True(t, state.Thread.IsClosed)
	assert.True(t, state.Thread.IsPinned)
}

func TestHubLoaderFailureReportsError(t *testing.T) {
	hub, srv := newTestHub(t, func(ctx context.Context, threadID, token string) (*models.Thread, error) {
		return nil, errors.New("backend down")
	})
	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(Envelope{Event: EventJoin, ThreadID: "t3"}))
	env := read(t, conn)
	assert.Equal(t, EventError, env.Event)
	assert.Equal(t, 0, hub.Viewers("t3"))
}

func TestCheckOrigin(t *testing.T) {
	check := CheckOrigin([]string{"https://dashboard.example.id"})
	req := httptest.NewRequest(http.MethodGet, "http://gateway.local/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://dashboard.example.id")
	assert.True(t, check(req))
	req.Header.Set("Origin", "http://gateway.local")
	assert.True(t, check(req))
	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))
}
