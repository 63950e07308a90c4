package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/middleware/requestid"
)

// Observer receives timing for every backend call.
type Observer interface {
	ObserveUpstream(resource, method string, status int, duration time.Duration)
}

// Config configures the backend client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Logger   *zap.Logger
	Observer Observer
	// Transport overrides the default transport, mostly for tests.
	Transport http.RoundTripper
}

// Client issues every request the dashboard makes to the REST backend.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// New builds a client for the configured base URL. A zero timeout leaves the transport defaults in place.
func New(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Transport != nil {
		httpClient.Transport = cfg.Transport
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
}

// FilePart is one file attached to a multipart body.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Multipart describes a multipart/form-data body.
type Multipart struct {
	Fields map[string]string
	Files  []FilePart
}

// Request describes one backend call.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	JSON      interface{}
	Multipart *Multipart
	Token     string
}

// Page is one decoded page of a list endpoint.
type Page struct {
	Rows       []map[string]interface{}
	Page       int
	TotalPages int
	TotalRows  int
}

// Blob is a binary response body. Callers must close Body.
type Blob struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
	Size        int64
}

type listEnvelope struct {
	Result     json.RawMessage `json:"result"`
	Data       json.RawMessage `json:"data"`
	TotalPage  *int            `json:"totalPage"`
	TotalPages *int            `json:"totalPages"`
	TotalRows  *int            `json:"totalRows"`
	Total      *int            `json:"total"`
	Page       int             `json:"page"`
}

type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// List fetches a page of a list endpoint and normalises the envelope variants
// ({result|data, totalPage|totalPages, totalRows|total, page}).
func (c *Client) List(ctx context.Context, path string, query url.Values, token string) (*Page, error) {
	var env listEnvelope
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Token: token}, &env); err != nil {
		return nil, err
	}

	raw := env.Result
	if len(raw) == 0 || string(raw) == "null" {
		raw = env.Data
	}
	page := &Page{Page: env.Page}
	if len(raw) > 0 && string(raw) != "null" {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&page.Rows); err != nil {
			return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons daftar dari server tidak dapat dibaca")
		}
	}
	page.TotalPages = firstInt(env.TotalPage, env.TotalPages)
	page.TotalRows = firstInt(env.TotalRows, env.Total)
	return page, nil
}

// Do performs the request and decodes a JSON body into out (when out is non-nil).
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons server tidak dapat dibaca")
	}
	return nil
}

// Download performs a GET and returns the binary body for streaming to the browser.
func (c *Client) Download(ctx context.Context, path string, query url.Values, token string) (*Blob, error) {
	resp, err := c.send(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Token: token})
	if err != nil {
		return nil, err
	}
	blob := &Blob{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}
	if blob.ContentType == "" {
		blob.ContentType = "application/octet-stream"
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		blob.Filename = params["filename"]
	}
	return blob, nil
}

func (c *Client) send(ctx context.Context, req Request) (*http.Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusInternalServerError, "gagal menyiapkan permintaan")
	}

	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusInternalServerError, "gagal menyiapkan permintaan")
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		httpReq.Header.Set(requestid.Header(), id)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(resourceLabel(req.Path), req.Method, status, time.Since(start))
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("backend unreachable", zap.String("method", req.Method), zap.String("path", req.Path), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, appErrors.ErrNetwork.Message)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close() //nolint:errcheck
		return nil, c.decodeError(req, resp)
	}
	return resp, nil
}

func (c *Client) decodeError(req Request, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var env errorEnvelope
	_ = json.Unmarshal(raw, &env)
	message := strings.TrimSpace(env.Message)
	if message == "" {
		message = strings.TrimSpace(env.Error)
	}

	c.logger.Info("backend returned error",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
	)

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if message == "" {
			message = appErrors.ErrValidation.Message
		}
		return appErrors.New(appErrors.CodeValidation, http.StatusBadRequest, message)
	case http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrUnauthorized, message)
	case http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, message)
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	if message == "" {
		message = fmt.Sprintf("%s (status %d)", appErrors.ErrUpstream.Message, resp.StatusCode)
	}
	return appErrors.New(appErrors.CodeUpstream, resp.StatusCode, message)
}

func encodeBody(req Request) (io.Reader, string, error) {
	switch {
	case req.Multipart != nil:
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for key, value := range req.Multipart.Fields {
			if err := w.WriteField(key, value); err != nil {
				return nil, "", err
			}
		}
		for _, file := range req.Multipart.Files {
			if file.Content == nil {
				continue
			}
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(file.Field), escapeQuotes(file.Filename)))
			ct := file.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			header.Set("Content-Type", ct)
			part, err := w.CreatePart(header)
			if err != nil {
				return nil, "", err
			}
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return buf, w.FormDataContentType(), nil
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(payload), "application/json", nil
	default:
		return nil, "", nil
	}
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

// resourceLabel keeps metric cardinality low by using only the first path segment.
func resourceLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if idx := strings.Index(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
