package resources

import (
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
)

// Form kinds understood by internal/forms.
const (
	FormSekolah  = "sekolah"
	FormSurat    = "surat"
	FormArsip    = "arsip"
	FormDokumen  = "dokumen"
	FormKegiatan = "kegiatan"
	FormPengguna = "pengguna"
	FormLaporan  = "laporan"
)

var registry = []Definition{
	{
		Name:     roles.ResourceSekolah,
		Title:    "Daftar Sekolah",
		Singular: "Sekolah",
		Endpoint: "/sekolah",
		Columns: []Column{
			{Key: "nama", Label: "Nama Sekolah"},
			{Key: "npsn", Label: "NPSN"},
			{Key: "lokasi", Label: "Lokasi"},
			{Key: "progres", Label: "Progres", Suffix: "%"},
			{Key: "fasilitator.nama", Label: "Fasilitator", HiddenFor: []roles.Role{roles.Fasilitator}},
			{Key: "status", Label: "Status", Status: models.StatusKindSchool},
		},
		Filters: []Filter{
			{Key: "status", Label: "Status", Options: statusOptions(models.StatusKindSchool)},
			{Key: "tahun", Label: "Tahun"},
		},
		Form: FormSekolah,
	},
	{
		Name:     roles.ResourceSurat,
		Title:    "Daftar Surat",
		Singular: "Surat",
		Endpoint: "/surat",
		Columns: []Column{
			{Key: "nomor", Label: "Nomor"},
			{Key: "perihal", Label: "Perihal"},
			{Key: "jenis", Label: "Jenis", Status: models.StatusKindSuratType},
			{Key: "tanggal", Label: "Tanggal"},
			{Key: "pihak", Label: "Pengirim/Tujuan"},
			{Key: "status", Label: "Status", Status: models.StatusKindSurat},
		},
		Filters: []Filter{
			{Key: "jenis", Label: "Jenis", Options: statusOptions(models.StatusKindSuratType)},
			{Key: "status", Label: "Status", Options: statusOptions(models.StatusKindSurat)},
		},
		Download:  "/surat/{id}/file",
		Form:      FormSurat,
		Multipart: true,
	},
	{
		Name:     roles.ResourceArsip,
		Title:    "Daftar Arsip",
		Singular: "Arsip",
		Endpoint: "/arsip",
		Columns: []Column{
			{Key: "nomor", Label: "Nomor"},
			{Key: "jenis", Label: "Jenis"},
			{Key: "tanggal", Label: "Tanggal"},
			{Key: "tahun", Label: "Tahun"},
			{Key: "status", Label: "Status", Status: models.StatusKindArsip},
		},
		Filters: []Filter{
			{Key: "jenis", Label: "Jenis"},
			{Key: "status", Label: "Status", Options: statusOptions(models.StatusKindArsip)},
			{Key: "tahun", Label: "Tahun"},
		},
		Download:  "/arsip/{id}/download",
		Form:      FormArsip,
		Multipart: true,
	},
	{
		Name:     roles.ResourceDokumen,
		Title:    "Daftar Dokumen",
		Singular: "Dokumen",
		Endpoint: "/dokumen",
		Columns: []Column{
			{Key: "judul", Label: "Judul"},
			{Key: "kategori", Label: "Kategori"},
			{Key: "subKategori", Label: "Sub Kategori"},
			{Key: "uploader.nama", Label: "Diunggah Oleh"},
			{Key: "versi", Label: "Versi"},
		},
		Filters: []Filter{
			{Key: "category", Label: "Kategori"},
		},
		Download:  "/dokumen/{id}/download",
		Form:      FormDokumen,
		Multipart: true,
	},
	{
		Name:     roles.ResourceKegiatan,
		Title:    "Daftar Kegiatan",
		Singular: "Kegiatan",
		Endpoint: "/kegiatan",
		Columns: []Column{
			{Key: "nama", Label: "Nama Kegiatan"},
			{Key: "tanggal", Label: "Tanggal"},
			{Key: "lokasi", Label: "Lokasi"},
			{Key: "status", Label: "Status", Status: models.StatusKindEvent},
		},
		Filters: []Filter{
			{Key: "status", Label: "Status", Options: statusOptions(models.StatusKindEvent)},
		},
		Form: FormKegiatan,
	},
	{
		Name:     roles.ResourceKehadiran,
		Title:    "Daftar Kehadiran",
		Singular: "Kehadiran",
		Endpoint: "/kegiatan/{parent}/kehadiran",
		Parent:   roles.ResourceKegiatan,
		Columns: []Column{
			{Key: "nama", Label: "Nama"},
			{Key: "role", Label: "Peran"},
			{Key: "status", Label: "Kehadiran", Status: models.StatusKindAttendance},
		},
		Filters: []Filter{
			{Key: "status", Label: "Kehadiran", Options: statusOptions(models.StatusKindAttendance)},
		},
	},
	{
		Name:     roles.ResourceLog,
		Title:    "Log Aktivitas",
		Singular: "Log",
		Endpoint: "/logs",
		Columns: []Column{
			{Key: "aktor", Label: "Pengguna"},
			{Key: "aksi", Label: "Aksi"},
			{Key: "entitas", Label: "Entitas"},
			{Key: "deskripsi", Label: "Deskripsi"},
			{Key: "waktu", Label: "Waktu"},
		},
	},
	{
		Name:     roles.ResourcePengguna,
		Title:    "Daftar Pengguna",
		Singular: "Pengguna",
		Endpoint: "/users",
		Columns: []Column{
			{Key: "name", Label: "Nama"},
			{Key: "email", Label: "Email"},
			{Key: "phone", Label: "No. HP"},
			{Key: "role", Label: "Peran"},
			{Key: "status", Label: "Status", Status: models.StatusKindUser},
		},
		Filters: []Filter{
			{Key: "role", Label: "Peran", Options: roleOptions()},
			{Key: "status", Label: "Status", Options: statusOptions(models.StatusKindUser)},
		},
		Form: FormPengguna,
	},
	{
		Name:     roles.ResourceLaporan,
		Title:    "Daftar Laporan",
		Singular: "Laporan",
		Endpoint: "/laporan",
		Columns: []Column{
			{Key: "judul", Label: "Judul"},
			{Key: "jenis", Label: "Jenis"},
			{Key: "periode", Label: "Periode"},
			{Key: "sekolah.nama", Label: "Sekolah"},
		},
		Filters: []Filter{
			{Key: "jenis", Label: "Jenis", Options: []Option{{Value: "bulanan", Label: "Bulanan"}, {Value: "akhir", Label: "Akhir"}}},
			{Key: "tahun", Label: "Tahun"},
		},
		Download:  "/laporan/{id}/pdf",
		Form:      FormLaporan,
		Multipart: true,
	},
}

// Get returns the definition of a resource.
func Get(name string) (Definition, bool) {
	for _, def := range registry {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// All returns every registered definition.
func All() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

func roleOptions() []Option {
	out := make([]Option, 0, len(roles.All()))
	for _, r := range roles.All() {
		out = append(out, Option{Value: string(r), Label: roles.Label(string(r))})
	}
	return out
}

// Children returns the resources scoped by name, such as the attendance of an event.
func Children(name string) []Definition {
	var out []Definition
	for _, def := range registry {
		if def.Parent == name {
			out = append(out, def)
		}
	}
	return out
}
