package forms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

func TestValidateRequiredFieldsInline(t *testing.T) {
	v := NewValidator()
	err := Validate(v, &SuratForm{Perihal: "Undangan"})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeValidation))
	assert.Equal(t, "Nomor Surat wajib diisi", appErrors.UserMessage(err))

	fields := Fields(err)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "Jenis Surat")
	assert.Contains(t, fields, "Tanggal")
	assert.NotContains(t, fields, "Perihal")
}

func TestValidateEmailAndPhoneShape(t *testing.T) {
	v := NewValidator()
	err := Validate(v, &ProfileForm{Name: "Sari", Email: "sari-at-example", Phone: "08123456789"})
	require.Error(t, err)
	assert.Equal(t, "Format email tidak valid", appErrors.UserMessage(err))

	err = Validate(v, &ProfileForm{Name: "Sari", Email: "sari@example.com", Phone: "12345"})
	require.Error(t, err)
	assert.Equal(t, "Format nomor HP tidak valid", appErrors.UserMessage(err))

	assert.NoError(t, Validate(v, &ProfileForm{Name: "Sari", Email: "sari@example.com", Phone: "+62 812 3456 7890"}))
}

func TestValidatePasswordRules(t *testing.T) {
	v := NewValidator()
	base := PenggunaForm{Name: "Budi", Email: "budi@example.com", Phone: "081234567890", Role: "fasilitator"}

	create := base
	err := Validate(v, &create)
	require.Error(t, err)
	assert.Equal(t, "Password wajib diisi", appErrors.UserMessage(err))

	create.Password = "short"
	create.PasswordConfirmation = "short"
	err = Validate(v, &create)
	require.Error(t, err)
	assert.Equal(t, "Password minimal 8 karakter", appErrors.UserMessage(err))

	create.Password = "panjang-sekali"
	create.PasswordConfirmation = "berbeda-sekali"
	err = Validate(v, &create)
	require.Error(t, err)
	assert.Equal(t, "Konfirmasi password tidak sama", appErrors.UserMessage(err))

	create.PasswordConfirmation = create.Password
	assert.NoError(t, Validate(v, &create))

	edit := base
	edit.ID = "4"
	assert.NoError(t, Validate(v, &edit))

	edit.Role = "kepala_sekolah"
	err = Validate(v, &edit)
	require.Error(t, err)
	assert.Equal(t, "Peran tidak valid", appErrors.UserMessage(err))
}

func TestValidateCustomTags(t *testing.T) {
	v := NewValidator()
	assert.Error(t, Validate(v, &SuratStatusForm{Status: "archived"}))
	assert.NoError(t, Validate(v, &SuratStatusForm{Status: "disetujui", Disposisi: "Teruskan ke bidang sarpras"}))

	err := Validate(v, &ProgressForm{SchoolID: "1", Tanggal: "2024-05-01", Periode: "harian", Persentase: "120"})
	require.Error(t, err)
	assert.Equal(t, "Persentase harus antara 0 dan 100", appErrors.UserMessage(err))

	err = Validate(v, &ArsipForm{Nomor: "A/1", Jenis: "SK", Tanggal: "01-05-2024", Tahun: "2024"})
	require.Error(t, err)
	assert.Equal(t, "Format Tanggal tidak valid (YYYY-MM-DD)", appErrors.UserMessage(err))
}

func TestValuesAndPrefill(t *testing.T) {
	values := Values(&SuratForm{Nomor: "001", Perihal: "Undangan", Jenis: "masuk"})
	assert.Equal(t, "001", values["nomor"])
	assert.NotContains(t, values, "disposisi")

	var row map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"nomor":"A/2","jenis":"SK","tanggal":"2024-02-01","tahun":2024,"status":"draft","extra":{"id":9}}`), &row))
	form := &ArsipForm{}
	require.NoError(t, Prefill(form, row))
	assert.Equal(t, "A/2", form.Nomor)
	assert.Equal(t, "2024", form.Tahun)
	assert.Equal(t, "draft", form.Status)
}

func TestForKind(t *testing.T) {
	form, ok := ForKind("pengguna")
	require.True(t, ok)
	assert.IsType(t, &PenggunaForm{}, form)
	_, ok = ForKind("nilai")
	assert.False(t, ok)
}
