package forms

// LoginForm is the login page.
type LoginForm struct {
	Email    string `form:"email" json:"email" label:"Email" validate:"required,email"`
	Password string `form:"password" json:"password" label:"Password" validate:"required"`
}

// ForgotPasswordForm requests a password reset link.
type ForgotPasswordForm struct {
	Email string `form:"email" json:"email" label:"Email" validate:"required,email"`
}

// ProfileForm edits the signed-in user's own data.
type ProfileForm struct {
	Name  string `form:"name" json:"name" label:"Nama" validate:"required,max=100"`
	Email string `form:"email" json:"email" label:"Email" validate:"required,email"`
	Phone string `form:"phone" json:"phone" label:"No. HP" validate:"required,phone"`
}

// PasswordForm changes the signed-in user's password.
type PasswordForm struct {
	OldPassword     string `form:"old_password" json:"oldPassword" label:"Password Lama" validate:"required"`
	NewPassword     string `form:"new_password" json:"newPassword" label:"Password Baru" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" json:"-" label:"Konfirmasi Password" validate:"required,eqfield=NewPassword"`
}

// SekolahForm creates or edits a school.
type SekolahForm struct {
	Nama          string `form:"nama" json:"nama" label:"Nama Sekolah" validate:"required"`
	NPSN          string `form:"npsn" json:"npsn" label:"NPSN" validate:"required,numeric,len=8"`
	Lokasi        string `form:"lokasi" json:"lokasi" label:"Lokasi" validate:"required"`
	FasilitatorID string `form:"fasilitatorId" json:"fasilitatorId,omitempty" label:"Fasilitator"`
	Tahun         string `form:"tahun" json:"tahun,omitempty" label:"Tahun" validate:"omitempty,numeric,len=4"`
	Status        string `form:"status" json:"status,omitempty" label:"Status" validate:"omitempty,oneof=on-track warning delay completed"`
}

// SuratForm creates or edits a letter; the file is optional on edit.
type SuratForm struct {
	Nomor     string `form:"nomor" json:"nomor" label:"Nomor Surat" validate:"required"`
	Perihal   string `form:"perihal" json:"perihal" label:"Perihal" validate:"required"`
	Jenis     string `form:"jenis" json:"jenis" label:"Jenis Surat" validate:"required,oneof=masuk keluar"`
	Tanggal   string `form:"tanggal" json:"tanggal" label:"Tanggal" validate:"required,datetime=2006-01-02"`
	Pihak     string `form:"pihak" json:"pihak" label:"Pengirim/Tujuan" validate:"required"`
	Disposisi string `form:"disposisi" json:"disposisi,omitempty" label:"Disposisi"`
}

// SuratStatusForm changes the status of a letter with an optional disposition.
type SuratStatusForm struct {
	Status    string `form:"status" json:"status" label:"Status" validate:"required,surat_status"`
	Disposisi string `form:"disposisi" json:"disposisi,omitempty" label:"Disposisi" validate:"max=1000"`
}

// ArsipForm creates or edits an archive document.
type ArsipForm struct {
	Nomor   string `form:"nomor" json:"nomor" label:"Nomor" validate:"required"`
	Jenis   string `form:"jenis" json:"jenis" label:"Jenis Arsip" validate:"required"`
	Tanggal string `form:"tanggal" json:"tanggal" label:"Tanggal" validate:"required,datetime=2006-01-02"`
	Tahun   string `form:"tahun" json:"tahun" label:"Tahun" validate:"required,numeric,len=4"`
	Status  string `form:"status" json:"status,omitempty" label:"Status" validate:"omitempty,oneof=draft diterima ditolak selesai"`
}

// DokumenForm uploads a document.
type DokumenForm struct {
	Judul       string `form:"judul" json:"judul" label:"Judul" validate:"required"`
	Kategori    string `form:"kategori" json:"kategori" label:"Kategori" validate:"required"`
	SubKategori string `form:"subKategori" json:"subKategori,omitempty" label:"Sub Kategori"`
	Versi       string `form:"versi" json:"versi,omitempty" label:"Versi"`
}

// KegiatanForm creates or edits an event.
type KegiatanForm struct {
	Nama    string `form:"nama" json:"nama" label:"Nama Kegiatan" validate:"required"`
	Tanggal string `form:"tanggal" json:"tanggal" label:"Tanggal" validate:"required,datetime=2006-01-02"`
	Lokasi  string `form:"lokasi" json:"lokasi" label:"Lokasi" validate:"required"`
	Status  string `form:"status" json:"status,omitempty" label:"Status" validate:"omitempty,oneof=upcoming ongoing completed"`
}

// PenggunaForm creates or edits a user. The password is only required when creating.
type PenggunaForm struct {
	ID                   string `form:"-" json:"-"`
	Name                 string `form:"name" json:"name" label:"Nama" validate:"required"`
	Email                string `form:"email" json:"email" label:"Email" validate:"required,email"`
	Phone                string `form:"phone" json:"phone" label:"No. HP" validate:"required,phone"`
	Role                 string `form:"role" json:"role" label:"Peran" validate:"required,role"`
	SchoolID             string `form:"sekolahId" json:"sekolahId,omitempty" label:"Sekolah"`
	Password             string `form:"password" json:"password,omitempty" label:"Password" validate:"required_without=ID,omitempty,min=8"`
	PasswordConfirmation string `form:"password_confirmation" json:"-" label:"Konfirmasi Password" validate:"eqfield=Password"`
}

// LaporanForm uploads a monthly or final report.
type LaporanForm struct {
	Judul    string `form:"judul" json:"judul" label:"Judul" validate:"required"`
	Jenis    string `form:"jenis" json:"jenis" label:"Jenis Laporan" validate:"required,oneof=bulanan akhir"`
	Periode  string `form:"periode" json:"periode" label:"Periode" validate:"required"`
	SchoolID string `form:"sekolahId" json:"sekolahId" label:"Sekolah" validate:"required"`
}

// ProgressForm is the daily or weekly progress input of a facilitator.
type ProgressForm struct {
	SchoolID   string `form:"sekolahId" json:"sekolahId" label:"Sekolah" validate:"required"`
	Tanggal    string `form:"tanggal" json:"tanggal" label:"Tanggal" validate:"required,datetime=2006-01-02"`
	Periode    string `form:"periode" json:"periode" label:"Periode" validate:"required,oneof=harian mingguan"`
	Persentase string `form:"persentase" json:"persentase" label:"Persentase" validate:"required,percent"`
	Keterangan string `form:"keterangan" json:"keterangan,omitempty" label:"Keterangan" validate:"max=2000"`
}

// ReviewForm is the editable part of a weekly review.
type ReviewForm struct {
	Notes           string   `form:"catatan" json:"catatan" label:"Catatan" validate:"max=5000"`
	Recommendations string   `form:"rekomendasi" json:"rekomendasi" label:"Rekomendasi" validate:"max=5000"`
	TechnicalIssues []string `form:"kendala" json:"kendalaTeknis" label:"Kendala Teknis"`
	// RemoveIssues lists tags ticked for removal; the review page renders them next to each tag.
	RemoveIssues []string `form:"hapus_kendala" json:"-" label:"-"`
}

// ThreadForm opens a discussion thread for a school.
type ThreadForm struct {
	SchoolID string `form:"sekolahId" json:"sekolahId" label:"Sekolah" validate:"required"`
	Title    string `form:"judul" json:"judul" label:"Judul" validate:"required,max=200"`
}

// MessageForm posts a message or a single-level reply.
type MessageForm struct {
	Content  string `form:"content" json:"content" label:"Pesan" validate:"required,max=4000"`
	ParentID string `form:"parentId" json:"parentId,omitempty" label:"Balasan"`
}

// ForKind returns a new empty form for a resource form kind.
func ForKind(kind string) (interface{}, bool) {
	switch kind {
	case "sekolah":
		return &SekolahForm{}, true
	case "surat":
		return &SuratForm{}, true
	case "arsip":
		return &ArsipForm{}, true
	case "dokumen":
		return &DokumenForm{}, true
	case "kegiatan":
		return &KegiatanForm{}, true
	case "pengguna":
		return &PenggunaForm{}, true
	case "laporan":
		return &LaporanForm{}, true
	default:
		return nil, false
	}
}
