// Package resources declares every "Daftar X" list page: backend endpoint, columns, filters
// and the form used to create or edit a row.
package resources

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
)

// Option is a selectable filter or form value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Column is one table column. Key may be a dotted path into nested objects.
type Column struct {
	Key    string            `json:"key"`
	Label  string            `json:"label"`
	Status models.StatusKind `json:"status,omitempty"`
	Suffix string            `json:"suffix,omitempty"`
	// HiddenFor lists roles that do not see the column.
	HiddenFor []roles.Role `json:"-"`
}

// Filter is one filter control above the table.
type Filter struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []Option `json:"options,omitempty"`
}

// Definition describes one list page.
type Definition struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Singular string   `json:"singular"`
	Endpoint string   `json:"endpoint"`
	Columns  []Column `json:"columns"`
	Filters  []Filter `json:"filters,omitempty"`
	// Download is the backend path template of a row file, with {id} replaced.
	Download string `json:"download,omitempty"`
	// Parent names the resource whose id scopes this one (kehadiran of a kegiatan).
	Parent string `json:"parent,omitempty"`
	// Form is the form kind used for create and edit; empty means read-only.
	Form string `json:"form,omitempty"`
	// Multipart marks forms that carry a file.
	Multipart bool `json:"multipart,omitempty"`
}

// Cell is one rendered table cell.
type Cell struct {
	Text  string        `json:"text"`
	Badge *models.Badge `json:"badge,omitempty"`
}

// ListPath returns the backend list endpoint, resolving the parent id when scoped.
func (d Definition) ListPath(parentID string) string {
	if d.Parent == "" {
		return d.Endpoint
	}
	return strings.ReplaceAll(d.Endpoint, "{parent}", url.PathEscape(parentID))
}

// ItemPath returns the backend path of one row.
func (d Definition) ItemPath(parentID, id string) string {
	return d.ListPath(parentID) + "/" + url.PathEscape(id)
}

// DownloadPath returns the backend file path of a row, or "" when the resource has no files.
func (d Definition) DownloadPath(id string) string {
	if d.Download == "" {
		return ""
	}
	return strings.ReplaceAll(d.Download, "{id}", url.PathEscape(id))
}

// ColumnsFor returns the columns visible to a role.
func (d Definition) ColumnsFor(role string) []Column {
	parsed, _ := roles.Parse(role)
	out := make([]Column, 0, len(d.Columns))
	for _, col := range d.Columns {
		hidden := false
		for _, r := range col.HiddenFor {
			if r == parsed {
				hidden = true
				break
			}
		}
		if !hidden {
			out = append(out, col)
		}
	}
	return out
}

// HasFilter reports whether key is a declared filter.
func (d Definition) HasFilter(key string) bool {
	for _, f := range d.Filters {
		if f.Key == key {
			return true
		}
	}
	return false
}

// RowID extracts the identifier of a row.
func RowID(row map[string]interface{}) string {
	for _, key := range []string{"id", "_id", "uuid"} {
		if v, ok := row[key]; ok && v != nil {
			return Text(v)
		}
	}
	return ""
}

// Cell renders one column of a row. Status columns resolve their badge; an undeclared
// status value is returned as an error alongside the raw text.
func (c Column) Cell(row map[string]interface{}) (Cell, error) {
	value := Lookup(row, c.Key)
	text := Text(value)
	if text != "-" && c.Suffix != "" {
		text += c.Suffix
	}
	if c.Status == "" || value == nil {
		return Cell{Text: text}, nil
	}
	badge, err := models.LookupBadge(c.Status, Text(value))
	if err != nil {
		return Cell{Text: text}, err
	}
	return Cell{Text: badge.Label, Badge: &badge}, nil
}

// Lookup resolves a dotted key path inside a decoded row.
func Lookup(row map[string]interface{}, key string) interface{} {
	var current interface{} = row
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// Text renders a decoded JSON value for a table cell.
func Text(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		if strings.TrimSpace(v) == "" {
			return "-"
		}
		return v
	case json.Number:
		return v.String()
	case float64:
		return fmt.Sprintf("%g", v)
	case int:
		return fmt.Sprintf("%d", v)
	case bool:
		if v {
			return "Ya"
		}
		return "Tidak"
	case map[string]interface{}:
		for _, key := range []string{"nama", "name", "judul", "title"} {
			if inner, ok := v[key]; ok {
				return Text(inner)
			}
		}
		return "-"
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, Text(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func statusOptions(kind models.StatusKind) []Option {
	badges := models.StatusValues(kind)
	out := make([]Option, 0, len(badges))
	for _, b := range badges {
		out = append(out, Option{Value: b.Value, Label: b.Label})
	}
	return out
}
