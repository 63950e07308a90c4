// Package discussion implements the push channel of discussion threads. Viewers join a thread
// room over a websocket; every room keeps a merged snapshot of its thread and only messages that
// are new to that snapshot are fanned out as receive_message events.
package discussion

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
)

// Event names carried on the channel.
const (
	EventJoin        = "join_thread"
	EventLeave       = "leave_thread"
	EventReceive     = "receive_message"
	EventSnapshot    = "thread_snapshot"
	EventThreadState = "thread_state"
	EventError       = "error"
)

// ChannelName labels discussion connections in metrics.
const ChannelName = "discussion"

// Envelope is one frame in either direction.
type Envelope struct {
	Event    string          `json:"event"`
	ThreadID string          `json:"threadId,omitempty"`
	Message  *models.Message `json:"message,omitempty"`
	Thread   *models.Thread  `json:"thread,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Loader fetches the current state of a thread with the viewer's backend credential.
type Loader func(ctx context.Context, threadID, token string) (*models.Thread, error)

// Observer is notified of opened and closed connections.
type Observer interface {
	ConnectionOpened(channel string)
	ConnectionClosed(channel string)
}

// Config tunes the hub.
type Config struct {
	WriteTimeout   time.Duration
	AllowedOrigins []string
	SendBuffer     int
	Logger         *zap.Logger
	Observer       Observer
}

// Hub tracks thread rooms and their viewers.
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]*room
	loader   Loader
	upgrader websocket.Upgrader
	cfg      Config
	logger   *zap.Logger
}

type room struct {
	thread  *models.Thread
	ready   bool
	pending []models.Message
	clients map[*client]struct{}
}

type client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	token  string
	send   chan Envelope
	rooms  map[string]struct{}
	mu     sync.Mutex
	closed bool
}

// NewHub constructs a hub. An empty origin list accepts same-host requests only.
func NewHub(loader Loader, cfg Config) *Hub {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 32
	}
	h := &Hub{
		rooms:  make(map[string]*room),
		loader: loader,
		cfg:    cfg,
		logger: cfg.Logger,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: CheckOrigin(cfg.AllowedOrigins)}
	return h
}

// CheckOrigin returns an origin check accepting the listed origins, "*", or the request host.
func CheckOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		trimmed := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
		return strings.EqualFold(trimmed, r.Host)
	}
}

// ServeWS upgrades the request and serves the connection until it closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, token string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{
		id:    uuid.NewString(),
		hub:   h,
		conn:  conn,
		token: token,
		send:  make(chan Envelope, h.cfg.SendBuffer),
		rooms: make(map[string]struct{}),
	}
	if h.cfg.Observer != nil {
		h.cfg.Observer.ConnectionOpened(ChannelName)
		defer h.cfg.Observer.ConnectionClosed(ChannelName)
	}
	h.logger.Debug("discussion client connected", zap.String("client_id", c.id))

	go c.writePump()
	c.readPump(r.Context())
	return nil
}

func (c *client) readPump(ctx context.Context) {
	defer c.hub.disconnect(c)
	for {
		var in Envelope
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("discussion read failed", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}
		switch in.Event {
		case EventJoin:
			c.hub.join(ctx, c, in.ThreadID)
		case EventLeave:
			c.hub.leave(c, in.ThreadID)
		default:
			c.enqueue(Envelope{Event: EventError, Error: "event tidak dikenal"})
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close() //nolint:errcheck
	for env := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
		if err := c.conn.WriteJSON(env); err != nil {
			c.hub.logger.Debug("discussion write failed", zap.String("client_id", c.id), zap.Error(err))
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

// enqueue never blocks; a viewer that cannot keep up is disconnected.
func (c *client) enqueue(env Envelope) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- env:
		return true
	default:
		c.closed = true
		close(c.send)
		go c.hub.disconnect(c)
		return false
	}
}

func (c *client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (h *Hub) join(ctx context.Context, c *client, threadID string) {
	if threadID == "" {
		c.enqueue(Envelope{Event: EventError, Error: "thread tidak valid"})
		return
	}

	h.mu.Lock()
	r, exists := h.rooms[threadID]
	if !exists {
		r = &room{thread: &models.Thread{ID: models.ID(threadID)}, clients: make(map[*client]struct{})}
		h.rooms[threadID] = r
	}
	ready := r.ready
	h.mu.Unlock()

	if !ready {
		thread, err := h.loader(ctx, threadID, c.token)
		if err != nil {
			h.logger.Warn("load thread for room failed", zap.String("thread_id", threadID), zap.Error(err))
			h.mu.Lock()
			if len(r.clients) == 0 && !r.ready && h.rooms[threadID] == r {
				delete(h.rooms, threadID)
			}
			h.mu.Unlock()
			c.enqueue(Envelope{Event: EventError, ThreadID: threadID, Error: "gagal memuat diskusi"})
			return
		}
		h.mu.Lock()
		if !r.ready {
			snapshot := &models.Thread{
				ID:        thread.ID,
				SchoolID:  thread.SchoolID,
				Title:     thread.Title,
				IsPinned:  thread.IsPinned,
				IsClosed:  thread.IsClosed,
				CreatedAt: thread.CreatedAt,
			}
			if snapshot.ID == "" {
				snapshot.ID = models.ID(threadID)
			}
			snapshot.MergeAll(thread.Messages)
			for _, m := range r.pending {
				snapshot.Merge(m)
			}
			r.pending = nil
			r.thread = snapshot
			r.ready = true
		}
		h.mu.Unlock()
	}

	h.mu.Lock()
	if h.rooms[threadID] != r {
		h.rooms[threadID] = r
	}
	r.clients[c] = struct{}{}
	c.rooms[threadID] = struct{}{}
	snapshot := cloneThread(r.thread)
	h.mu.Unlock()

	c.enqueue(Envelope{Event: EventSnapshot, ThreadID: threadID, Thread: snapshot})
}

func (h *Hub) leave(c *client, threadID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, threadID)
}

func (h *Hub) leaveLocked(c *client, threadID string) {
	r, ok := h.rooms[threadID]
	if !ok {
		return
	}
	delete(r.clients, c)
	delete(c.rooms, threadID)
	if len(r.clients) == 0 && r.ready {
		delete(h.rooms, threadID)
	}
}

func (h *Hub) disconnect(c *client) {
	h.mu.Lock()
	for threadID := range c.rooms {
		h.leaveLocked(c, threadID)
	}
	h.mu.Unlock()
	c.closeSend()
}

// Publish merges msg into the thread's room and pushes it to every viewer when it is new.
// It returns how many viewers received it.
func (h *Hub) Publish(threadID string, msg models.Message) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[threadID]
	if !ok {
		return 0
	}
	if !r.ready {
		r.pending = append(r.pending, msg)
		return 0
	}
	if !r.thread.Merge(msg) {
		return 0
	}
	delivered := 0
	for c := range r.clients {
		m := msg
		m.Replies = nil
		if c.enqueue(Envelope{Event: EventReceive, ThreadID: threadID, Message: &m}) {
			delivered++
		}
	}
	return delivered
}

// UpdateThread pushes new pinned and closed flags to the viewers of a thread.
func (h *Hub) UpdateThread(threadID string, pinned, closed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[threadID]
	if !ok || !r.ready {
		return
	}
	r.thread.IsPinned = pinned
	r.thread.IsClosed = closed
	state := &models.Thread{ID: r.thread.ID, SchoolID: r.thread.SchoolID, Title: r.thread.Title, IsPinned: pinned, IsClosed: closed}
	for c := range r.clients {
		c.enqueue(Envelope{Event: EventThreadState, ThreadID: threadID, Thread: state})
	}
}

// Viewers returns the number of connections joined to a thread.
func (h *Hub) Viewers(threadID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[threadID]; ok {
		return len(r.clients)
	}
	return 0
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	var clients []*client
	for _, r := range h.rooms {
		for c := range r.clients {
			clients = append(clients, c)
		}
	}
	h.mu.Unlock()
	for _, c := range clients {
		h.disconnect(c)
	}
}

func cloneThread(t *models.Thread) *models.Thread {
	out := *t
	out.Messages = make([]models.Message, len(t.Messages))
	for i, m := range t.Messages {
		m.Replies = append([]models.Message(nil), m.Replies...)
		out.Messages[i] = m
	}
	return &out
}
