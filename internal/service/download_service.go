package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/export"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/storage"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type linkSigner interface {
	Sign(resource, id string) (string, time.Time, error)
	Verify(token string) (resource, id string, err error)
}

type tableRenderer interface {
	Render(t export.Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportFile is a rendered table ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// DownloadService signs row download links, proxies backend files and renders exports.
type DownloadService struct {
	backend   backendClient
	signer    linkSigner
	renderers map[string]tableRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewDownloadService constructs a DownloadService.
func NewDownloadService(backend backendClient, signer linkSigner, logger *zap.Logger) *DownloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadService{
		backend: backend,
		signer:  signer,
		renderers: map[string]tableRenderer{
			FormatCSV: export.NewCSVExporter(),
			FormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// Link returns a signed gateway token for the file of a row.
func (s *DownloadService) Link(def resources.Definition, id string) (string, time.Time, error) {
	if def.Download == "" {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "data ini tidak memiliki berkas")
	}
	token, expiresAt, err := s.signer.Sign(def.Name, id)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membuat tautan unduhan")
	}
	return token, expiresAt, nil
}

// Open verifies a signed token and opens the backend file it names. The caller closes the body.
func (s *DownloadService) Open(ctx context.Context, token, credential string) (*apiclient.Blob, error) {
	resource, id, err := s.signer.Verify(token)
	if err != nil {
		if errors.Is(err, storage.ErrLinkExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "tautan unduhan sudah kedaluwarsa")
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "tautan unduhan tidak valid")
	}
	def, ok := resources.Get(resource)
	if !ok || def.Download == "" {
		return nil, appErrors.ErrNotFound
	}
	blob, err := s.backend.Download(ctx, def.DownloadPath(id), nil, credential)
	if err != nil {
		return nil, err
	}
	if blob.Filename == "" {
		blob.Filename = fmt.Sprintf("%s-%s", def.Name, sanitizeFilename(id))
	}
	return blob, nil
}

// Export renders rows as the columns a role sees. Status cells use their badge label.
func (s *DownloadService) Export(def resources.Definition, role string, rows []map[string]interface{}, format string) (*ExportFile, error) {
	renderer, ok := s.renderers[strings.ToLower(format)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format ekspor tidak didukung")
	}
	columns := def.ColumnsFor(role)
	table := export.Table{Title: def.Title, Headers: make([]string, 0, len(columns))}
	for _, col := range columns {
		table.Headers = append(table.Headers, col.Label)
	}
	for _, row := range rows {
		record := make([]string, 0, len(columns))
		for _, col := range columns {
			cell, err := col.Cell(row)
			if err != nil {
				s.logger.Debug("export cell has unknown status", zap.String("resource", def.Name), zap.String("column", col.Key), zap.Error(err))
			}
			record = append(record, cell.Text)
		}
		table.Rows = append(table.Rows, record)
	}
	body, err := renderer.Render(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membuat berkas ekspor")
	}
	name := fmt.Sprintf("%s_%s.%s", sanitizeFilename(def.Name), s.now().Format("20060102_150405"), renderer.Extension())
	return &ExportFile{Filename: name, ContentType: renderer.ContentType(), Body: body}, nil
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	result := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "\"", "").Replace(path.Base(raw))
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
