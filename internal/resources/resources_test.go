package resources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
)

func TestRegistryCoversListPages(t *testing.T) {
	for _, name := range []string{
		roles.ResourceSekolah, roles.ResourceSurat, roles.ResourceArsip, roles.ResourceDokumen,
		roles.ResourceKegiatan, roles.ResourceKehadiran, roles.ResourceLog, roles.ResourcePengguna,
		roles.ResourceLaporan,
	} {
		def, ok := Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, def.Columns, name)
		assert.NotEmpty(t, def.Endpoint, name)
	}
	_, ok := Get("nilai")
	assert.False(t, ok)
}

func TestStatusColumnsRenderBadges(t *testing.T) {
	def, _ := Get(roles.ResourceSekolah)
	var statusCol Column
	for _, col := range def.Columns {
		if col.Key == "status" {
			statusCol = col
		}
	}
	cell, err := statusCol.Cell(map[string]interface{}{"status": "delay"})
	require.NoError(t, err)
	require.NotNil(t, cell.Badge)
	assert.Equal(t, models.ToneDanger, cell.Badge.Tone)
	assert.Equal(t, "Terlambat", cell.Text)

	cell, err = statusCol.Cell(map[string]interface{}{"status": "paused"})
	require.Error(t, err)
	assert.Nil(t, cell.Badge)
	assert.Equal(t, "paused", cell.Text)
}

func TestCellRendersNestedAndNumbers(t *testing.T) {
	var row map[string]interface{}
	dec := json.NewDecoder(jsonReader(`{"id":7,"progres":42.5,"fasilitator":{"nama":"Budi"},"tags":["a","b"],"empty":""}`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&row))

	cell, err := Column{Key: "progres", Suffix: "%"}.Cell(row)
	require.NoError(t, err)
	assert.Equal(t, "42.5%", cell.Text)

	cell, _ = Column{Key: "fasilitator.nama"}.Cell(row)
	assert.Equal(t, "Budi", cell.Text)
	cell, _ = Column{Key: "fasilitator"}.Cell(row)
	assert.Equal(t, "Budi", cell.Text)
	cell, _ = Column{Key: "tags"}.Cell(row)
	assert.Equal(t, "a, b", cell.Text)
	cell, _ = Column{Key: "empty", Suffix: "%"}.Cell(row)
	assert.Equal(t, "-", cell.Text)
	cell, _ = Column{Key: "missing.path"}.Cell(row)
	assert.Equal(t, "-", cell.Text)

	assert.Equal(t, "7", RowID(row))
}

func TestColumnsForHidesRoleSpecificColumns(t *testing.T) {
	def, _ := Get(roles.ResourceSekolah)
	assert.Len(t, def.ColumnsFor("super_admin"), len(def.Columns))
	assert.Len(t, def.ColumnsFor("fasilitator"), len(def.Columns)-1)
}

func TestScopedPaths(t *testing.T) {
	def, _ := Get(roles.ResourceKehadiran)
	assert.Equal(t, "/kegiatan/12/kehadiran", def.ListPath("12"))
	assert.Equal(t, "/kegiatan/12/kehadiran/3", def.ItemPath("12", "3"))

	surat, _ := Get(roles.ResourceSurat)
	assert.Equal(t, "/surat/5/file", surat.DownloadPath("5"))
	log, _ := Get(roles.ResourceLog)
	assert.Empty(t, log.DownloadPath("5"))
	assert.True(t, surat.HasFilter("jenis"))
	assert.False(t, surat.HasFilter("tahun"))
}
