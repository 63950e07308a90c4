package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/listing"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

// DefaultExportLimit caps how many rows one export pulls from the backend.
const DefaultExportLimit = 1000

// Upload is a file attached to a form submission.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// ResourceService performs the list, form and row actions of the resource pages.
type ResourceService struct {
	backend     backendClient
	validator   *validator.Validate
	logger      *zap.Logger
	exportLimit int
}

// NewResourceService constructs a ResourceService.
func NewResourceService(backend backendClient, validate *validator.Validate, logger *zap.Logger) *ResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = forms.NewValidator()
	}
	return &ResourceService{backend: backend, validator: validate, logger: logger, exportLimit: DefaultExportLimit}
}

type resourceSource struct {
	svc      *ResourceService
	def      resources.Definition
	parentID string
	token    string
}

// Source binds a resource to the backend with the caller's credential for a list controller.
func (s *ResourceService) Source(def resources.Definition, parentID, token string) listing.Source {
	return &resourceSource{svc: s, def: def, parentID: parentID, token: token}
}

func (r *resourceSource) Fetch(ctx context.Context, q listing.Query) (*listing.Result, error) {
	return r.svc.Fetch(ctx, r.def, r.parentID, q, r.token)
}

func (r *resourceSource) Delete(ctx context.Context, id string) error {
	return r.svc.Delete(ctx, r.def, r.parentID, id, true, r.token)
}

// Fetch loads one page of a resource.
func (s *ResourceService) Fetch(ctx context.Context, def resources.Definition, parentID string, q listing.Query, token string) (*listing.Result, error) {
	if def.Parent != "" && parentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "data induk tidak valid")
	}
	page, err := s.backend.List(ctx, def.ListPath(parentID), q.Values(), token)
	if err != nil {
		return nil, err
	}
	return &listing.Result{Rows: page.Rows, Page: page.Page, TotalPages: page.TotalPages, TotalRows: page.TotalRows}, nil
}

// Get loads one row for a detail or edit page.
func (s *ResourceService) Get(ctx context.Context, def resources.Definition, parentID, id, token string) (map[string]interface{}, error) {
	var raw json.RawMessage
	if err := s.backend.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: def.ItemPath(parentID, id), Token: token}, &raw); err != nil {
		return nil, err
	}
	row := map[string]interface{}{}
	if err := decodeData(raw, &row); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, http.StatusBadGateway, "respons detail tidak dapat dibaca")
	}
	return row, nil
}

// Save creates the row when id is empty and updates it otherwise. Forms of resources that
// carry files are sent as multipart when a file is attached.
func (s *ResourceService) Save(ctx context.Context, def resources.Definition, parentID, id string, form interface{}, file *Upload, token string) (map[string]interface{}, error) {
	if def.Form == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "data ini tidak dapat diubah")
	}
	if user, ok := form.(*forms.PenggunaForm); ok {
		user.ID = id
	}
	if err := forms.Validate(s.validator, form); err != nil {
		return nil, err
	}

	req := apiclient.Request{Method: http.MethodPost, Path: def.ListPath(parentID), Token: token}
	if id != "" {
		req.Method = http.MethodPut
		req.Path = def.ItemPath(parentID, id)
	}
	if def.Multipart && file != nil && file.Content != nil {
		field := file.Field
		if field == "" {
			field = "file"
		}
		req.Multipart = &apiclient.Multipart{
			Fields: forms.Values(form),
			Files:  []apiclient.FilePart{{Field: field, Filename: file.Filename, ContentType: file.ContentType, Content: file.Content}},
		}
	} else {
		req.JSON = form
	}

	var raw json.RawMessage
	if err := s.backend.Do(ctx, req, &raw); err != nil {
		return nil, err
	}
	row := map[string]interface{}{}
	if err := decodeData(raw, &row); err != nil {
		s.logger.Debug("save response is not an object", zap.String("resource", def.Name), zap.Error(err))
	}
	return row, nil
}

// Delete removes a row. Without confirmation nothing is sent.
func (s *ResourceService) Delete(ctx context.Context, def resources.Definition, parentID, id string, confirmed bool, token string) error {
	if !confirmed {
		return appErrors.ErrConfirmationRequired
	}
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "data yang akan dihapus tidak valid")
	}
	return s.backend.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: def.ItemPath(parentID, id), Token: token}, nil)
}

// BulkDeleteLogs removes several audit log rows in one call.
func (s *ResourceService) BulkDeleteLogs(ctx context.Context, ids []string, confirmed bool, token string) error {
	if !confirmed {
		return appErrors.ErrConfirmationRequired
	}
	if len(ids) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "pilih log yang akan dihapus")
	}
	def, _ := resources.Get(roles.ResourceLog)
	body := map[string][]string{"ids": ids}
	return s.backend.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: def.Endpoint, JSON: body, Token: token}, nil)
}

// UpdateSuratStatus changes the status of a letter with an optional disposition.
// Only admin roles may do so.
func (s *ResourceService) UpdateSuratStatus(ctx context.Context, role, id string, form forms.SuratStatusForm, token string) error {
	if !roles.IsAdmin(role) {
		return appErrors.Clone(appErrors.ErrForbidden, "hanya admin yang dapat mengubah status surat")
	}
	if err := forms.Validate(s.validator, &form); err != nil {
		return err
	}
	def, _ := resources.Get(roles.ResourceSurat)
	body := models.SuratStatusUpdate{Status: models.SuratStatus(form.Status), Disposisi: form.Disposisi}
	return s.backend.Do(ctx, apiclient.Request{Method: http.MethodPatch, Path: def.ItemPath("", id) + "/status", JSON: body, Token: token}, nil)
}

// ResetPassword resets a user's password to the backend default.
func (s *ResourceService) ResetPassword(ctx context.Context, id string, confirmed bool, token string) error {
	if !confirmed {
		return appErrors.ErrConfirmationRequired
	}
	def, _ := resources.Get(roles.ResourcePengguna)
	return s.backend.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: def.ItemPath("", id) + "/reset-password", Token: token}, nil)
}

// SubmitProgress records a facilitator's daily or weekly progress.
func (s *ResourceService) SubmitProgress(ctx context.Context, form forms.ProgressForm, token string) error {
	if err := forms.Validate(s.validator, &form); err != nil {
		return err
	}
	return s.backend.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: "/progress", JSON: form, Token: token}, nil)
}

// ExportRows loads every row matching the keyword and filters, up to the export limit.
func (s *ResourceService) ExportRows(ctx context.Context, def resources.Definition, parentID string, q listing.Query, token string) ([]map[string]interface{}, error) {
	q.Page = 0
	q.Limit = s.exportLimit
	result, err := s.Fetch(ctx, def, parentID, q, token)
	if err != nil {
		return nil, err
	}
	if result.TotalRows > len(result.Rows) {
		s.logger.Info("export truncated",
			zap.String("resource", def.Name),
			zap.Int("rows", len(result.Rows)),
			zap.Int("total", result.TotalRows),
		)
	}
	return result.Rows, nil
}
