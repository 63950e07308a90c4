package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/listing"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{TemplateLogin, TemplateList, TemplateForm, TemplateDetail, TemplateReview, TemplateThread, TemplateNotFound, TemplateError} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestMenuFollowsPermissionOrder(t *testing.T) {
	items := Menu(string(roles.Fasilitator), roles.ResourceDokumen)

	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Dashboard", "Daftar Sekolah", "Input Progres", "Daftar Dokumen", "Daftar Kegiatan", "Kalender Kegiatan", "Daftar Laporan", "Diskusi", "Profil"}, labels)
	assert.Equal(t, "/fasilitator/dashboard", items[0].Path)
	for _, item := range items {
		assert.Equal(t, item.Path == "/fasilitator/dokumen", item.Active, item.Path)
	}

	assert.Nil(t, Menu("tamu", ""))
}

func TestNewPageWithoutUser(t *testing.T) {
	page := NewPage(nil, "Masuk", "")
	assert.Equal(t, "Masuk", page.Title)
	assert.Nil(t, page.User)
	assert.Empty(t, page.Menu)
}

func suratDefinition(t *testing.T) resources.Definition {
	def, ok := resources.Get(roles.ResourceSurat)
	require.True(t, ok)
	return def
}

func TestBuildListRowsAndActions(t *testing.T) {
	def := suratDefinition(t)
	state := listing.State{
		Items: []map[string]interface{}{
			{"id": "s-1", "nomor": "001", "perihal": "Undangan", "jenis": "masuk", "tanggal": "2024-01-02", "pihak": "Dinas", "status": "disetujui"},
			{"id": "s-2", "nomor": "002", "perihal": "Laporan", "jenis": "keluar", "tanggal": "2024-01-03", "pihak": "Sekolah", "status": "arsip"},
		},
		Page:          1,
		Limit:         10,
		TotalPages:    3,
		SearchKeyword: "lap",
		Filters:       map[string]string{"status": "draft"},
	}

	list := BuildList(def, ListInput{
		Role:       string(roles.SuperAdmin),
		BasePath:   "/super-admin/surat",
		State:      state,
		Pagination: listing.BuildPagination(1, 3, 5),
		PageSizes:  []int{10, 25},
	})

	require.Len(t, list.Rows, 2)
	assert.Equal(t, "s-1", list.Rows[0].ID)
	assert.Equal(t, "Disetujui", list.Rows[0].Cells[5].Text)
	require.NotNil(t, list.Rows[0].Cells[5].Badge)
	assert.Equal(t, "arsip", list.Rows[1].Cells[5].Text)
	assert.Nil(t, list.Rows[1].Cells[5].Badge)
	require.Len(t, list.Warnings, 1)
	assert.Contains(t, list.Warnings[0], "status")

	var rowLabels []string
	for _, a := range list.Rows[0].Actions {
		rowLabels = append(rowLabels, a.Label)
	}
	assert.Equal(t, []string{"Detail", "Ubah", "Unduh", "Hapus"}, rowLabels)
	assert.Equal(t, "/super-admin/surat/s-1/hapus", list.Rows[0].Actions[3].Href)
	assert.Equal(t, "POST", list.Rows[0].Actions[3].Method)

	require.Len(t, list.Actions, 3)
	assert.Equal(t, "Tambah Surat", list.Actions[0].Label)
	assert.Equal(t, "/super-admin/surat/ekspor?format=csv&search=lap&status=draft", list.Actions[1].Href)
	assert.Empty(t, list.BulkDelete)

	assert.Equal(t, "/super-admin/surat?limit=10&page=2&search=lap&status=draft", list.PageLinks[2])
	assert.Equal(t, "/super-admin/surat?limit=10&page=0&search=lap&status=draft", list.PageLinks[0])
}

func TestBuildListReadOnlyRole(t *testing.T) {
	def, ok := resources.Get(roles.ResourceLaporan)
	require.True(t, ok)

	list := BuildList(def, ListInput{
		Role:     string(roles.Koordinator),
		BasePath: "/koordinator/laporan",
		State:    listing.State{Items: []map[string]interface{}{{"id": "l-1"}}},
	})

	for _, a := range list.Actions {
		assert.NotEqual(t, "Tambah Laporan", a.Label)
	}
	for _, a := range list.Rows[0].Actions {
		assert.NotContains(t, []string{"Ubah", "Hapus"}, a.Label)
	}
}

func TestBuildListBulkDeleteForLogs(t *testing.T) {
	def, ok := resources.Get(roles.ResourceLog)
	require.True(t, ok)

	list := BuildList(def, ListInput{Role: string(roles.SuperAdmin), BasePath: "/super-admin/log"})
	assert.Equal(t, "/super-admin/log/hapus", list.BulkDelete)

	list = BuildList(def, ListInput{Role: string(roles.AdminPusat), BasePath: "/admin-pusat/log"})
	assert.Empty(t, list.BulkDelete)
}

func TestBuildFormFromTags(t *testing.T) {
	form := &forms.SuratForm{Nomor: "001", Jenis: "masuk"}
	fields := BuildForm(form, forms.FieldErrors{"Perihal": "Perihal wajib diisi"}, true)

	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, "001", byName["nomor"].Value)
	assert.True(t, byName["nomor"].Required)
	assert.Equal(t, "Perihal wajib diisi", byName["perihal"].Error)
	assert.Equal(t, "select", byName["jenis"].Type)
	require.Len(t, byName["jenis"].Options, 2)
	assert.Equal(t, "Surat Masuk", byName["jenis"].Options[0].Label)
	assert.Equal(t, "date", byName["tanggal"].Type)
	assert.Equal(t, "textarea", byName["disposisi"].Type)
	assert.False(t, byName["disposisi"].Required)
	assert.Equal(t, "file", fields[len(fields)-1].Type)
}

func TestBuildFormHidesPasswords(t *testing.T) {
	fields := BuildForm(&forms.PasswordForm{OldPassword: "rahasia"}, nil, false)
	require.NotEmpty(t, fields)
	assert.Equal(t, "password", fields[0].Type)
	assert.Empty(t, fields[0].Value)

	assert.Nil(t, BuildForm(nil, nil, false))
	assert.Nil(t, BuildForm("bukan struct", nil, false))
}

func TestBuildFormSkipsUnlabelledFields(t *testing.T) {
	fields := BuildForm(&forms.ReviewForm{RemoveIssues: []string{"Cuaca"}}, nil, false)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"catatan", "rekomendasi", "kendala"}, names)
}

func TestBuildDetailStatusForm(t *testing.T) {
	def := suratDefinition(t)
	row := map[string]interface{}{"id": "s-1", "nomor": "001", "status": "draft", "disposisi": ""}

	detail := BuildDetail(def, string(roles.AdminSekolah), "/admin-sekolah/surat", row)
	assert.Equal(t, "Detail Surat", detail.Title)
	require.NotNil(t, detail.StatusForm)
	assert.Equal(t, "/admin-sekolah/surat/s-1/status", detail.StatusForm.Action)
	require.Len(t, detail.StatusForm.Fields, 2)
	assert.Equal(t, "draft", detail.StatusForm.Fields[0].Value)
	assert.Len(t, detail.StatusForm.Fields[0].Options, len(models.StatusValues(models.StatusKindSurat)))
	assert.Empty(t, detail.StatusForm.Fields[1].Value)
	for _, a := range detail.Actions {
		assert.NotEqual(t, "Detail", a.Label)
	}
}
