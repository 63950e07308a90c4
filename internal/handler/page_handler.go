package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/listing"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/internal/service"
	"github.com/noah-isme/revitalisasi-dashboard/internal/view"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/response"
)

type resourceService interface {
	Source(def resources.Definition, parentID, token string) listing.Source
	Get(ctx context.Context, def resources.Definition, parentID, id, token string) (map[string]interface{}, error)
	Save(ctx context.Context, def resources.Definition, parentID, id string, form interface{}, file *service.Upload, token string) (map[string]interface{}, error)
	Delete(ctx context.Context, def resources.Definition, parentID, id string, confirmed bool, token string) error
	BulkDeleteLogs(ctx context.Context, ids []string, confirmed bool, token string) error
	UpdateSuratStatus(ctx context.Context, role, id string, form forms.SuratStatusForm, token string) error
	ResetPassword(ctx context.Context, id string, confirmed bool, token string) error
	SubmitProgress(ctx context.Context, form forms.ProgressForm, token string) error
	ExportRows(ctx context.Context, def resources.Definition, parentID string, q listing.Query, token string) ([]map[string]interface{}, error)
}

type downloadService interface {
	Link(def resources.Definition, id string) (string, time.Time, error)
	Open(ctx context.Context, token, credential string) (*apiclient.Blob, error)
	Export(def resources.Definition, role string, rows []map[string]interface{}, format string) (*service.ExportFile, error)
}

// ListSettings tunes the list pages.
type ListSettings struct {
	PageSizes []int
	Window    int
	Debounce  time.Duration
}

// PageHandler serves every "Daftar X" page with its detail, form and row actions.
type PageHandler struct {
	resources resourceService
	downloads downloadService
	flash     flasher
	settings  ListSettings
	logger    *zap.Logger
}

// NewPageHandler constructs the handler.
func NewPageHandler(resources resourceService, downloads downloadService, flash flasher, settings ListSettings, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(settings.PageSizes) == 0 {
		settings.PageSizes = listing.DefaultPageSizes
	}
	return &PageHandler{resources: resources, downloads: downloads, flash: flash, settings: settings, logger: logger}
}

// target is the resource a request addresses.
type target struct {
	def      resources.Definition
	parentID string
	role     string
	token    string
	base     string
}

// resolve maps /:role/:resource and /:role/:resource/:id/:child to a definition.
func (h *PageHandler) resolve(c *gin.Context, action roles.Action) (target, error) {
	session := sessionFromContext(c)
	t := target{role: session.Role(), token: session.Token}

	name := c.Param("resource")
	if child := c.Param("child"); child != "" {
		def, ok := resources.Get(child)
		if !ok || def.Parent != name {
			return t, appErrors.ErrNotFound
		}
		t.def = def
		t.parentID = c.Param("id")
	} else {
		def, ok := resources.Get(name)
		if !ok || def.Parent != "" {
			return t, appErrors.ErrNotFound
		}
		t.def = def
	}
	if !roles.Allows(t.role, t.def.Name, action) {
		return t, appErrors.ErrForbidden
	}
	t.base = resourceBase(t.role, t.def, t.parentID)
	return t, nil
}

// QueryFromRequest reads the list tuple from the query string. Page is zero-based.
func QueryFromRequest(c *gin.Context, def resources.Definition, sizes []int) listing.Query {
	q := listing.Query{Keyword: strings.TrimSpace(c.Query("search")), Filters: map[string]string{}}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		q.Limit = limit
	} else if len(sizes) > 0 {
		q.Limit = sizes[0]
	}
	for _, f := range def.Filters {
		if v := strings.TrimSpace(c.Query(f.Key)); v != "" {
			q.Filters[f.Key] = v
		}
	}
	return q
}

// List godoc
// @Summary Resource list page
// @Description Fetches one page for the (page, limit, search, filters) tuple of the query string.
// @Tags Resources
// @Produce html,json
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Param page query int false "Zero-based page"
// @Param limit query int false "Rows per page"
// @Param search query string false "Keyword"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /{role}/{resource} [get]
func (h *PageHandler) List(c *gin.Context) {
	t, err := h.resolve(c, roles.ActionView)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}

	ctrl := listing.New(c.Request.Context(), h.resources.Source(t.def, t.parentID, t.token), listing.Options{
		Initial:   QueryFromRequest(c, t.def, h.settings.PageSizes),
		PageSizes: h.settings.PageSizes,
		Window:    h.settings.Window,
		Debounce:  h.settings.Debounce,
		Logger:    h.logger,
	})
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	state := ctrl.State()

	list := view.BuildList(t.def, view.ListInput{
		Role:       t.role,
		BasePath:   t.base,
		State:      state,
		Pagination: ctrl.Pagination(),
		Caption:    ctrl.Caption(),
		PageSizes:  ctrl.PageSizes(),
	})
	list.LivePath = livePath(t, state.Query())
	for _, w := range list.Warnings {
		h.logger.Warn("list cell has unknown status", zap.String("resource", t.def.Name), zap.String("detail", w))
	}

	current := t.def.Name
	if t.def.Parent != "" {
		current = t.def.Parent
	}
	p := newPage(c, h.flash, t.def.Title, current)
	p.Content = list
	p.Pagination = &models.Pagination{Page: state.Page, Limit: state.Limit, TotalPages: state.TotalPages, TotalRows: state.TotalRows}
	view.Render(c, http.StatusOK, view.TemplateList, p)
}

func livePath(t target, q listing.Query) string {
	values := q.Values()
	if t.parentID != "" {
		values.Set("parent", t.parentID)
	}
	return "/ws/list/" + roles.Slug(t.role) + "/" + t.def.Name + "?" + values.Encode()
}

// Export godoc
// @Summary Export the filtered list
// @Tags Resources
// @Produce text/csv,application/pdf
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /{role}/{resource}/ekspor [get]
func (h *PageHandler) Export(c *gin.Context) {
	t, err := h.resolve(c, roles.ActionExport)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	rows, err := h.resources.ExportRows(c.Request.Context(), t.def, t.parentID, QueryFromRequest(c, t.def, h.settings.PageSizes), t.token)
	if err != nil {
		fail(c, h.flash, t.base, err)
		return
	}
	file, err := h.downloads.Export(t.def, t.role, rows, c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		fail(c, h.flash, t.base, err)
		return
	}
	c.Header("Content-Disposition", attachment(file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// Detail godoc
// @Summary Read-only page of one row
// @Tags Resources
// @Produce html,json
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Param id path string true "Row ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /{role}/{resource}/{id} [get]
func (h *PageHandler) Detail(c *gin.Context) {
	t, err := h.resolve(c, roles.ActionView)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	row, err := h.resources.Get(c.Request.Context(), t.def, t.parentID, c.Param("id"), t.token)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	detail := view.BuildDetail(t.def, t.role, t.base, row)
	p := newPage(c, h.flash, detail.Title, t.def.Name)
	p.Content = detail
	view.Render(c, http.StatusOK, view.TemplateDetail, p)
}

// New godoc
// @Summary Empty create form
// @Tags Resources
// @Produce html,json
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Success 200 {object} response.Envelope
// @Router /{role}/{resource}/tambah [get]
func (h *PageHandler) New(c *gin.Context) {
	t, form, err := h.formTarget(c, roles.ActionCreate)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	h.renderForm(c, http.StatusOK, t, "", form, nil)
}

// Create godoc
// @Summary Create a row
// @Description Sends JSON, or multipart when the resource carries a file and one is attached.
// @Tags Resources
// @Accept x-www-form-urlencoded,multipart/form-data,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Router /{role}/{resource} [post]
func (h *PageHandler) Create(c *gin.Context) {
	h.save(c, roles.ActionCreate, "")
}

// Edit godoc
// @Summary Edit form prefilled with the current row
// @Tags Resources
// @Produce html,json
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Param id path string true "Row ID"
// @Success 200 {object} response.Envelope
// @Router /{role}/{resource}/{id}/ubah [get]
func (h *PageHandler) Edit(c *gin.Context) {
	t, form, err := h.formTarget(c, roles.ActionEdit)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	id := c.Param("id")
	row, err := h.resources.Get(c.Request.Context(), t.def, t.parentID, id, t.token)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	if err := forms.Prefill(form, row); err != nil {
		h.logger.Warn("prefill form failed", zap.String("resource", t.def.Name), zap.Error(err))
	}
	h.renderForm(c, http.StatusOK, t, id, form, nil)
}

// Update godoc
// @Summary Update a row
// @Tags Resources
// @Accept x-www-form-urlencoded,multipart/form-data,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Param id path string true "Row ID"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Router /{role}/{resource}/{id} [post]
func (h *PageHandler) Update(c *gin.Context) {
	h.save(c, roles.ActionEdit, c.Param("id"))
}

func (h *PageHandler) formTarget(c *gin.Context, action roles.Action) (target, interface{}, error) {
	t, err := h.resolve(c, action)
	if err != nil {
		return t, nil, err
	}
	form, ok := forms.ForKind(t.def.Form)
	if !ok {
		return t, nil, appErrors.ErrForbidden
	}
	return t, form, nil
}

func (h *PageHandler) save(c *gin.Context, action roles.Action, id string) {
	t, form, err := h.formTarget(c, action)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	if err := c.ShouldBind(form); err != nil {
		h.renderForm(c, http.StatusBadRequest, t, id, form, bindError(err))
		return
	}

	var upload *service.Upload
	if t.def.Multipart {
		if header, err := c.FormFile(view.FileField); err == nil {
			file, closeFile, err := openUpload(header)
			if err != nil {
				h.renderForm(c, http.StatusBadRequest, t, id, form, err)
				return
			}
			defer closeFile()
			upload = file
		}
	}

	if _, err := h.resources.Save(c.Request.Context(), t.def, t.parentID, id, form, upload, t.token); err != nil {
		h.renderForm(c, statusOf(err), t, id, form, err)
		return
	}
	finish(c, h.flash, t.base, flashSaved)
}

func openUpload(header *multipart.FileHeader) (*service.Upload, func(), error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.CodeValidation, http.StatusBadRequest, "berkas tidak dapat dibaca")
	}
	return &service.Upload{
		Field:       view.FileField,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}, func() { _ = file.Close() }, nil
}

func (h *PageHandler) renderForm(c *gin.Context, status int, t target, id string, form interface{}, err error) {
	if err != nil && wantsJSON(c) {
		response.Error(c, err)
		return
	}
	title := "Tambah " + t.def.Singular
	action := t.base
	if id != "" {
		title = "Ubah " + t.def.Singular
		action = t.base + "/" + url.PathEscape(id)
	}
	p := newPage(c, h.flash, title, t.def.Name)
	if err != nil && forms.Fields(err) == nil {
		p.Error = appErrors.UserMessage(err)
	}
	p.Content = view.Form{
		Title:     title,
		Action:    action,
		Cancel:    t.base,
		Multipart: t.def.Multipart,
		Fields:    view.BuildForm(form, forms.Fields(err), t.def.Multipart),
	}
	view.Render(c, status, view.TemplateForm, p)
}

// Delete godoc
// @Summary Delete a row
// @Description Requires confirm=yes. The list is fetched again after the redirect.
// @Tags Resources
// @Produce html,json
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Param id path string true "Row ID"
// @Param confirm formData string true "yes"
// @Success 303
// @Failure 428 {object} response.Envelope
// @Router /{role}/{resource}/{id}/hapus [post]
func (h *PageHandler) Delete(c *gin.Context) {
	t, err := h.resolve(c, roles.ActionDelete)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	if err := h.resources.Delete(c.Request.Context(), t.def, t.parentID, c.Param("id"), confirmed(c), t.token); err != nil {
		fail(c, h.flash, t.base, err)
		return
	}
	finish(c, h.flash, t.base, flashDeleted)
}

// BulkDelete godoc
// @Summary Delete several audit log entries
// @Tags Resources
// @Produce html,json
// @Param role path string true "Role segment"
// @Param resource path string true "log"
// @Param ids formData []string true "Log IDs"
// @Param confirm formData string true "yes"
// @Success 303
// @Router /{role}/{resource}/hapus [post]
func (h *PageHandler) BulkDelete(c *gin.Context) {
	t, err := h.resolve(c, roles.ActionDelete)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	if t.def.Name != roles.ResourceLog {
		view.RenderError(c, sessionFromContext(c), appErrors.ErrNotFound)
		return
	}
	if err := h.resources.BulkDeleteLogs(c.Request.Context(), c.PostFormArray("ids"), confirmed(c), t.token); err != nil {
		fail(c, h.flash, t.base, err)
		return
	}
	finish(c, h.flash, t.base, flashDeleted)
}

// DownloadLink godoc
// @Summary Redirect to a signed download link for the file of a row
// @Tags Downloads
// @Param role path string true "Role segment"
// @Param resource path string true "Resource name"
// @Param id path string true "Row ID"
// @Success 303
// @Router /{role}/{resource}/{id}/unduh [get]
func (h *PageHandler) DownloadLink(c *gin.Context) {
	t, err := h.resolve(c, roles.ActionDownload)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	token, expiresAt, err := h.downloads.Link(t.def, c.Param("id"))
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	link := "/unduh/" + url.PathEscape(token)
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, gin.H{"url": link, "expiresAt": expiresAt}, nil)
		return
	}
	c.Redirect(http.StatusSeeOther, link)
}

// Download godoc
// @Summary Stream a backend file through a signed link
// @Tags Downloads
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /unduh/{token} [get]
func (h *PageHandler) Download(c *gin.Context) {
	session := sessionFromContext(c)
	blob, err := h.downloads.Open(c.Request.Context(), c.Param("token"), session.Token)
	if err != nil {
		view.RenderError(c, session, err)
		return
	}
	defer blob.Body.Close()

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	size := blob.Size
	if size <= 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, contentType, blob.Body, map[string]string{
		"Content-Disposition": attachment(blob.Filename),
		"Cache-Control":       "no-store",
	})
}

func attachment(filename string) string {
	return `attachment; filename="` + strings.ReplaceAll(filename, `"`, "") + `"; filename*=UTF-8''` + url.PathEscape(filename)
}

// SuratStatus godoc
// @Summary Change the status of a letter with an optional disposition
// @Tags Resources
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Param id path string true "Surat ID"
// @Param status formData string true "New status"
// @Param disposisi formData string false "Disposition"
// @Success 303
// @Router /{role}/surat/{id}/status [post]
func (h *PageHandler) SuratStatus(c *gin.Context) {
	t, err := h.resolve(c, roles.ActionStatus)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	id := c.Param("id")
	detail := t.base + "/" + url.PathEscape(id)
	if t.def.Name != roles.ResourceSurat {
		view.RenderError(c, sessionFromContext(c), appErrors.ErrNotFound)
		return
	}
	var form forms.SuratStatusForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, h.flash, detail, bindError(err))
		return
	}
	if err := h.resources.UpdateSuratStatus(c.Request.Context(), t.role, id, form, t.token); err != nil {
		fail(c, h.flash, detail, err)
		return
	}
	finish(c, h.flash, detail, "Status surat berhasil diubah")
}

// ResetPassword godoc
// @Summary Reset a user's password to the default
// @Tags Resources
// @Produce html,json
// @Param role path string true "Role segment"
// @Param id path string true "User ID"
// @Param confirm formData string true "yes"
// @Success 303
// @Router /{role}/pengguna/{id}/reset-password [post]
func (h *PageHandler) ResetPassword(c *gin.Context) {
	t, err := h.resolve(c, roles.ActionReset)
	if err != nil {
		view.RenderError(c, sessionFromContext(c), err)
		return
	}
	if err := h.resources.ResetPassword(c.Request.Context(), c.Param("id"), confirmed(c), t.token); err != nil {
		fail(c, h.flash, t.base, err)
		return
	}
	finish(c, h.flash, t.base, "Password berhasil direset ke bawaan")
}

// ProgressPage godoc
// @Summary Daily or weekly progress input form
// @Tags Progress
// @Produce html,json
// @Param role path string true "Role segment"
// @Success 200 {object} response.Envelope
// @Router /{role}/progres [get]
func (h *PageHandler) ProgressPage(c *gin.Context) {
	session := sessionFromContext(c)
	form := forms.ProgressForm{Tanggal: time.Now().Format("2006-01-02"), Periode: "harian"}
	if session.User != nil {
		form.SchoolID = session.User.SchoolID.String()
	}
	h.renderProgress(c, http.StatusOK, form, nil)
}

// SubmitProgress godoc
// @Summary Submit a progress report
// @Tags Progress
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param role path string true "Role segment"
// @Success 303
// @Failure 400 {object} response.Envelope
// @Router /{role}/progres [post]
func (h *PageHandler) SubmitProgress(c *gin.Context) {
	var form forms.ProgressForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderProgress(c, http.StatusBadRequest, form, bindError(err))
		return
	}
	if err := h.resources.SubmitProgress(c.Request.Context(), form, sessionFromContext(c).Token); err != nil {
		h.renderProgress(c, statusOf(err), form, err)
		return
	}
	finish(c, h.flash, progressPath(c), "Progres berhasil dikirim")
}

func progressPath(c *gin.Context) string {
	return roles.BasePath(sessionFromContext(c).Role()) + "/" + roles.ResourceProgres
}

func (h *PageHandler) renderProgress(c *gin.Context, status int, form forms.ProgressForm, err error) {
	if err != nil && wantsJSON(c) {
		response.Error(c, err)
		return
	}
	p := newPage(c, h.flash, "Input Progres", roles.ResourceProgres)
	if err != nil && forms.Fields(err) == nil {
		p.Error = appErrors.UserMessage(err)
	}
	p.Content = view.Form{
		Title:  "Input Progres",
		Action: progressPath(c),
		Cancel: progressPath(c),
		Fields: view.BuildForm(&form, forms.Fields(err), false),
	}
	view.Render(c, status, view.TemplateProgress, p)
}
