package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

type observerStub struct {
	calls []string
}

func (o *observerStub) ObserveUpstream(resource, method string, status int, _ time.Duration) {
	o.calls = append(o.calls, method+" "+resource)
}

func TestClientListNormalisesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sekolah", r.URL.Path)
		assert.Equal(t, "abc", r.URL.Query().Get("search"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"result":[{"id":1,"nama":"SDN 1"},{"id":2,"nama":"SDN 2"}],"totalPage":3,"totalRows":25,"page":0}`)
	}))
	defer srv.Close()

	obs := &observerStub{}
	client := New(Config{BaseURL: srv.URL + "/api", Observer: obs})
	page, err := client.List(context.Background(), "/sekolah", url.Values{"search": {"abc"}}, "token-1")
	require.NoError(t, err)
	assert.Len(t, page.Rows, 2)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalRows)
	assert.Equal(t, []string{"GET sekolah"}, obs.calls)
}

func TestClientListAlternateEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":"a"}],"totalPages":1,"total":1,"page":0}`)
	}))
	defer srv.Close()

	page, err := New(Config{BaseURL: srv.URL}).List(context.Background(), "/logs", nil, "")
	require.NoError(t, err)
	assert.Len(t, page.Rows, 1)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.TotalRows)
}

func TestClientBadRequestMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Tahun harus diisi"}`)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).List(context.Background(), "/arsip", nil, "")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeValidation))
	assert.Equal(t, "Tahun harus diisi", appErrors.UserMessage(err))
}

func TestClientServerErrorUsesBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"database down"}`)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).List(context.Background(), "/surat", nil, "")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.CodeUpstream, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "database down", appErr.Message)
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := New(Config{BaseURL: base}).List(context.Background(), "/sekolah", nil, "")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeNetwork))
}

func TestClientCancelledContextIsNotNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := New(Config{BaseURL: srv.URL}).List(ctx, "/sekolah", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientMultipartUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Surat Edaran", r.FormValue("perihal"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "edaran.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4", string(data))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":9}`)
	}))
	defer srv.Close()

	var out map[string]interface{}
	err := New(Config{BaseURL: srv.URL}).Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/surat",
		Multipart: &Multipart{
			Fields: map[string]string{"perihal": "Surat Edaran"},
			Files:  []FilePart{{Field: "file", Filename: "edaran.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF-1.4")}},
		},
	}, &out)
	require.NoError(t, err)
	assert.NotNil(t, out["id"])
}

func TestClientDownloadKeepsFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="laporan-mei.pdf"`)
		_, _ = io.WriteString(w, "pdf-bytes")
	}))
	defer srv.Close()

	blob, err := New(Config{BaseURL: srv.URL}).Download(context.Background(), "/laporan/1/pdf", nil, "")
	require.NoError(t, err)
	defer blob.Body.Close()
	data, _ := io.ReadAll(blob.Body)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, "laporan-mei.pdf", blob.Filename)
	assert.Equal(t, "application/pdf", blob.ContentType)
}
