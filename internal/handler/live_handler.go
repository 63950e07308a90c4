package handler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/discussion"
	"github.com/noah-isme/revitalisasi-dashboard/internal/listing"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

// Live list events sent by the browser.
const (
	LiveSearch       = "search"
	LiveSearchCommit = "search_commit"
	LiveFlush        = "flush"
	LivePage         = "page"
	LiveLimit        = "limit"
	LiveFilter       = "filter"
	LiveDelete       = "delete"
	LiveReload       = "reload"
)

// LiveChannel labels live list connections in metrics.
const LiveChannel = "list"

// LiveEvent is one interaction on an open list page.
type LiveEvent struct {
	Event   string `json:"event"`
	Value   string `json:"value,omitempty"`
	Key     string `json:"key,omitempty"`
	ID      string `json:"id,omitempty"`
	Page    int    `json:"page,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Confirm bool   `json:"confirm,omitempty"`
}

// LiveFrame is pushed to the browser after every visible state change.
type LiveFrame struct {
	Event string     `json:"event"`
	List  *view.List `json:"list,omitempty"`
	Error string     `json:"error,omitempty"`
}

// LiveConfig tunes the live list socket.
type LiveConfig struct {
	WriteTimeout   time.Duration
	AllowedOrigins []string
	Observer       discussion.Observer
}

// LiveHandler keeps a list controller per websocket so that typing, paging and filtering are
// driven by the server without full page reloads.
type LiveHandler struct {
	resources resourceService
	settings  ListSettings
	cfg       LiveConfig
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

// NewLiveHandler constructs the handler.
func NewLiveHandler(resources resourceService, settings ListSettings, cfg LiveConfig, logger *zap.Logger) *LiveHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if len(settings.PageSizes) == 0 {
		settings.PageSizes = listing.DefaultPageSizes
	}
	return &LiveHandler{
		resources: resources,
		settings:  settings,
		cfg:       cfg,
		upgrader:  websocket.Upgrader{CheckOrigin: discussion.CheckOrigin(cfg.AllowedOrigins)},
		logger:    logger,
	}
}

// ServeWS godoc
// @Summary Live list channel
// @Description Accepts search, search_commit, flush, page, limit, filter, delete and reload events
// @Description and answers with state frames carrying the rendered list.
// @Tags Resources
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Param parent query string false "Parent row ID for nested resources"
// @Success 101
// @Failure 404 {object} response.Envelope
// @Router /ws/list/{role}/{resource} [get]
func (h *LiveHandler) ServeWS(c *gin.Context) {
	session := sessionFromContext(c)
	role := session.Role()
	def, ok := resources.Get(c.Param("resource"))
	parentID := c.Query("parent")
	if !ok || (def.Parent != "") != (parentID != "") {
		view.RenderError(c, session, appErrors.ErrNotFound)
		return
	}
	if !roles.Allows(role, def.Name, roles.ActionView) {
		view.RenderError(c, session, appErrors.ErrForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Debug("live list upgrade failed", zap.Error(err))
		return
	}
	if h.cfg.Observer != nil {
		h.cfg.Observer.ConnectionOpened(LiveChannel)
		defer h.cfg.Observer.ConnectionClosed(LiveChannel)
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	out := newLiveOutbox()
	base := resourceBase(role, def, parentID)
	ctrl := listing.New(ctx, h.resources.Source(def, parentID, session.Token), listing.Options{
		Initial:   QueryFromRequest(c, def, h.settings.PageSizes),
		PageSizes: h.settings.PageSizes,
		Window:    h.settings.Window,
		Debounce:  h.settings.Debounce,
		Logger:    h.logger,
		OnChange:  out.offer,
		Async:     true,
	})
	defer ctrl.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(ctx, conn, out, func(s listing.State) *view.List {
			list := view.BuildList(def, view.ListInput{
				Role:       role,
				BasePath:   base,
				State:      s,
				Pagination: listing.BuildPagination(s.Page, s.TotalPages, h.settings.Window),
				Caption:    listing.Caption(s.Limit, len(s.Items), s.TotalRows),
				PageSizes:  ctrl.PageSizes(),
			})
			return &list
		})
		cancel()
	}()

	h.dispatch(ctrl, out, LiveEvent{Event: LiveReload})
	for {
		var ev LiveEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("live list read failed", zap.Error(err))
			}
			break
		}
		if ev.Event == LiveDelete && !roles.Allows(role, def.Name, roles.ActionDelete) {
			out.fail(appErrors.UserMessage(appErrors.ErrForbidden))
			continue
		}
		// Events change the tuple in arrival order; only the fetches run in the background.
		h.dispatch(ctrl, out, ev)
	}
	cancel()
	<-done
}

func (h *LiveHandler) dispatch(ctrl *listing.Controller, out *liveOutbox, ev LiveEvent) {
	err := ApplyLiveEvent(ctrl, ev)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	h.logger.Debug("live list event rejected", zap.String("event", ev.Event), zap.Error(err))
	out.fail(appErrors.UserMessage(err))
}

// ApplyLiveEvent maps one browser event onto the controller.
func ApplyLiveEvent(ctrl *listing.Controller, ev LiveEvent) error {
	switch ev.Event {
	case LiveSearch:
		ctrl.TypeSearch(ev.Value)
		return nil
	case LiveSearchCommit:
		return ctrl.CommitSearch(ev.Value)
	case LiveFlush:
		ctrl.FlushSearch()
		return nil
	case LivePage:
		return ctrl.SetPage(ev.Page)
	case LiveLimit:
		return ctrl.SetLimit(ev.Limit)
	case LiveFilter:
		return ctrl.SetFilter(ev.Key, ev.Value)
	case LiveDelete:
		return ctrl.Delete(ev.ID, ev.Confirm)
	case LiveReload:
		return ctrl.Load()
	default:
		return appErrors.Clone(appErrors.ErrValidation, "event tidak dikenal")
	}
}

func (h *LiveHandler) writeLoop(ctx context.Context, conn *websocket.Conn, out *liveOutbox, render func(listing.State) *view.List) {
	defer conn.Close() //nolint:errcheck
	var sent uint64
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case <-out.ready:
		}
		state, hasState, messages := out.drain()
		frames := make([]LiveFrame, 0, len(messages)+1)
		for _, msg := range messages {
			frames = append(frames, LiveFrame{Event: "error", Error: msg})
		}
		if hasState && state.Generation >= sent {
			sent = state.Generation
			frames = append(frames, LiveFrame{Event: "state", List: render(state)})
		}
		for _, frame := range frames {
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := conn.WriteJSON(frame); err != nil {
				h.logger.Debug("live list write failed", zap.Error(err))
				return
			}
		}
	}
}

// liveOutbox holds the newest state and pending error messages for the writer. Older
// snapshots are overwritten rather than queued.
type liveOutbox struct {
	mu       sync.Mutex
	state    listing.State
	hasState bool
	errors   []string
	ready    chan struct{}
}

func newLiveOutbox() *liveOutbox {
	return &liveOutbox{ready: make(chan struct{}, 1)}
}

func (o *liveOutbox) offer(s listing.State) {
	o.mu.Lock()
	if !o.hasState || s.Generation >= o.state.Generation {
		o.state = s
		o.hasState = true
	}
	o.mu.Unlock()
	o.signal()
}

func (o *liveOutbox) fail(message string) {
	o.mu.Lock()
	o.errors = append(o.errors, message)
	o.mu.Unlock()
	o.signal()
}

func (o *liveOutbox) signal() {
	select {
	case o.ready <- struct{}{}:
	default:
	}
}

func (o *liveOutbox) drain() (listing.State, bool, []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	state, has, msgs := o.state, o.hasState, o.errors
	o.hasState = false
	o.errors = nil
	return state, has, msgs
}
