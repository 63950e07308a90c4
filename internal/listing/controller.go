// Package listing drives the state of a paginated, searchable, filterable resource table.
package listing

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

// EmptyMessage is shown when a fetch succeeds with no rows.
const EmptyMessage = "Data tidak ditemukan"

// DefaultPageSizes are the selectable page sizes when none are configured.
var DefaultPageSizes = []int{10, 25, 50, 100}

// Query is the (page, limit, keyword, filters) tuple of one fetch.
type Query struct {
	Page    int
	Limit   int
	Keyword string
	Filters map[string]string
}

// Values encodes the tuple as backend query-string arguments.
func (q Query) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.Limit))
	if q.Keyword != "" {
		values.Set("search", q.Keyword)
	}
	for key, value := range q.Filters {
		if value != "" {
			values.Set(key, value)
		}
	}
	return values
}

// Result is one resolved page of rows.
type Result struct {
	Rows       []map[string]interface{}
	Page       int
	TotalPages int
	TotalRows  int
}

// Source fetches pages of a resource and deletes rows from it.
type Source interface {
	Fetch(ctx context.Context, q Query) (*Result, error)
	Delete(ctx context.Context, id string) error
}

// State is a snapshot of a list page.
type State struct {
	Items         []map[string]interface{} `json:"items"`
	Page          int                      `json:"page"`
	Limit         int                      `json:"limit"`
	TotalPages    int                      `json:"totalPages"`
	TotalRows     int                      `json:"totalRows"`
	SearchQuery   string                   `json:"searchQuery"`
	SearchKeyword string                   `json:"searchKeyword"`
	Filters       map[string]string        `json:"filters"`
	Loading       bool                     `json:"loading"`
	ErrorMessage  string                   `json:"errorMessage,omitempty"`
	EmptyMessage  string                   `json:"emptyMessage,omitempty"`
	Generation    uint64                   `json:"generation"`
}

// Query returns the tuple the state was fetched for.
func (s State) Query() Query {
	return Query{Page: s.Page, Limit: s.Limit, Keyword: s.SearchKeyword, Filters: copyFilters(s.Filters)}
}

// Options tunes a controller.
type Options struct {
	Initial   Query
	PageSizes []int
	Window    int
	Debounce  time.Duration
	Logger    *zap.Logger
	// OnChange receives a snapshot whenever the visible state changes.
	OnChange func(State)
	// Async runs fetches in the background. Setters return as soon as the tuple has changed,
	// so calls made in order are applied in order while a newer fetch still cancels an older one.
	Async bool
}

// Controller owns the state of one open list page. Every change of page, limit, committed
// keyword or filter issues exactly one fetch. Each fetch carries a generation number and its
// own context; starting a newer fetch cancels the older one and stale results are discarded.
type Controller struct {
	mu       sync.Mutex
	ctx      context.Context
	stop     context.CancelFunc
	source   Source
	state    State
	sizes    []int
	window   int
	debounce *Debouncer
	logger   *zap.Logger
	onChange func(State)
	inflight context.CancelFunc
	closed   bool
	async    bool
	fetches  sync.WaitGroup
}

// New creates a controller bound to ctx; cancelling ctx or calling Close aborts any fetch.
func New(ctx context.Context, source Source, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	sizes := opts.PageSizes
	if len(sizes) == 0 {
		sizes = DefaultPageSizes
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 400 * time.Millisecond
	}
	limit := opts.Initial.Limit
	if !containsInt(sizes, limit) {
		limit = sizes[0]
	}
	page := opts.Initial.Page
	if page < 0 {
		page = 0
	}

	cctx, cancel := context.WithCancel(ctx)
	return &Controller{
		ctx:    cctx,
		stop:   cancel,
		source: source,
		state: State{
			Page:          page,
			Limit:         limit,
			SearchQuery:   opts.Initial.Keyword,
			SearchKeyword: opts.Initial.Keyword,
			Filters:       copyFilters(opts.Initial.Filters),
		},
		sizes:    sizes,
		window:   opts.Window,
		debounce: NewDebouncer(opts.Debounce),
		logger:   opts.Logger,
		onChange: opts.OnChange,
		async:    opts.Async,
	}
}

// PageSizes returns the selectable page sizes.
func (c *Controller) PageSizes() []int {
	out := make([]int, len(c.sizes))
	copy(out, c.sizes)
	return out
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Pagination renders the pagination control for the current state.
func (c *Controller) Pagination() Pagination {
	s := c.State()
	return BuildPagination(s.Page, s.TotalPages, c.window)
}

// Caption renders the "showing N of T" line for the current state.
func (c *Controller) Caption() string {
	s := c.State()
	return Caption(s.Limit, len(s.Items), s.TotalRows)
}

// Load fetches the current tuple.
func (c *Controller) Load() error {
	c.mu.Lock()
	return c.fetchLocked()
}

// SetPage moves to a zero-based page.
func (c *Controller) SetPage(page int) error {
	if page < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "halaman tidak valid")
	}
	c.mu.Lock()
	c.state.Page = page
	return c.fetchLocked()
}

// SetLimit changes the page size and returns to the first page.
func (c *Controller) SetLimit(limit int) error {
	if !containsInt(c.sizes, limit) {
		return appErrors.Clone(appErrors.ErrValidation, "jumlah baris per halaman tidak valid")
	}
	c.mu.Lock()
	c.state.Limit = limit
	c.state.Page = 0
	return c.fetchLocked()
}

// SetFilter changes one filter and returns to the first page. An empty value clears the filter.
func (c *Controller) SetFilter(key, value string) error {
	if key == "" {
		return appErrors.Clone(appErrors.ErrValidation, "filter tidak valid")
	}
	c.mu.Lock()
	if c.state.Filters == nil {
		c.state.Filters = map[string]string{}
	}
	if value == "" {
		delete(c.state.Filters, key)
	} else {
		c.state.Filters[key] = value
	}
	c.state.Page = 0
	return c.fetchLocked()
}

// TypeSearch records raw search input and commits it once typing pauses.
func (c *Controller) TypeSearch(raw string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.SearchQuery = raw
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snapshot)
	c.debounce.Trigger(func() {
		if err := c.CommitSearch(raw); err != nil {
			c.logger.Debug("debounced search not committed", zap.Error(err))
		}
	})
}

// FlushSearch commits pending search input immediately.
func (c *Controller) FlushSearch() bool {
	return c.debounce.Flush()
}

// CommitSearch sets the committed keyword and returns to the first page.
// Committing the keyword already in effect does not fetch again.
func (c *Controller) CommitSearch(keyword string) error {
	c.mu.Lock()
	c.state.SearchQuery = keyword
	if keyword == c.state.SearchKeyword {
		c.mu.Unlock()
		return nil
	}
	c.state.SearchKeyword = keyword
	c.state.Page = 0
	return c.fetchLocked()
}

// Delete removes a row after explicit confirmation and refetches the current tuple.
// Without confirmation nothing is sent.
func (c *Controller) Delete(id string, confirmed bool) error {
	if !confirmed {
		return appErrors.ErrConfirmationRequired
	}
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "data yang akan dihapus tidak valid")
	}
	if err := c.source.Delete(c.ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	return c.fetchLocked()
}

// Close stops the debouncer, cancels any fetch in flight and waits for background fetches.
func (c *Controller) Close() {
	c.debounce.Stop()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.stop()
	c.fetches.Wait()
}

// fetchLocked must be called with c.mu held; it releases the lock.
func (c *Controller) fetchLocked() error {
	if c.closed {
		c.mu.Unlock()
		return context.Canceled
	}
	if c.inflight != nil {
		c.inflight()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.inflight = cancel
	c.state.Generation++
	gen := c.state.Generation
	c.state.Loading = true
	query := c.state.Query()
	snapshot := c.snapshotLocked()
	if c.async {
		c.fetches.Add(1)
	}
	c.mu.Unlock()

	c.emit(snapshot)

	if c.async {
		go func() {
			defer c.fetches.Done()
			c.complete(ctx, cancel, gen, query)
		}()
		return nil
	}
	c.complete(ctx, cancel, gen, query)
	return nil
}

// complete runs one fetch and applies its result unless a newer fetch has started.
func (c *Controller) complete(ctx context.Context, cancel context.CancelFunc, gen uint64, query Query) {
	result, err := c.source.Fetch(ctx, query)

	c.mu.Lock()
	if gen != c.state.Generation || c.closed {
		c.mu.Unlock()
		cancel()
		c.logger.Debug("discarded stale list result", zap.Uint64("generation", gen))
		return
	}
	cancel()
	c.inflight = nil
	c.state.Loading = false
	c.applyLocked(result, err)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snapshot)
}

func (c *Controller) applyLocked(result *Result, err error) {
	c.state.ErrorMessage = ""
	c.state.EmptyMessage = ""
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.state.Items = nil
		c.state.TotalRows = 0
		c.state.TotalPages = 0
		c.state.ErrorMessage = appErrors.UserMessage(err)
		c.logger.Warn("list fetch failed", zap.Error(err))
		return
	}
	if result == nil || len(result.Rows) == 0 {
		c.state.Items = nil
		c.state.TotalRows = 0
		c.state.TotalPages = 0
		c.state.EmptyMessage = EmptyMessage
		return
	}
	c.state.Items = result.Rows
	c.state.TotalRows = result.TotalRows
	c.state.TotalPages = result.TotalPages
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Filters = copyFilters(c.state.Filters)
	if c.state.Items != nil {
		s.Items = make([]map[string]interface{}, len(c.state.Items))
		copy(s.Items, c.state.Items)
	}
	return s
}

func (c *Controller) emit(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

func copyFilters(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func containsInt(values []int, n int) bool {
	for _, v := range values {
		if v == n {
			return true
		}
	}
	return false
}

// FilterKeys returns the active filter keys in stable order.
func (s State) FilterKeys() []string {
	keys := make([]string, 0, len(s.Filters))
	for k := range s.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
