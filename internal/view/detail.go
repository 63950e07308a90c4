package view

import (
	"net/url"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
)

// DetailField is one labelled read-only value.
type DetailField struct {
	Label string         `json:"label"`
	Cell  resources.Cell `json:"cell"`
}

// Detail is the read-only view of one row with the actions the role may take.
type Detail struct {
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	ID         string        `json:"id"`
	Fields     []DetailField `json:"fields"`
	Actions    []Action      `json:"actions,omitempty"`
	StatusForm *Form         `json:"statusForm,omitempty"`
	Back       string        `json:"back"`
	Row        interface{}   `json:"row"`
}

// BuildDetail renders a backend row for the detail page. Letters get the status form when
// the role may change their status.
func BuildDetail(def resources.Definition, role, basePath string, row map[string]interface{}) Detail {
	id := resources.RowID(row)
	d := Detail{
		Name:  def.Name,
		Title: "Detail " + def.Singular,
		ID:    id,
		Back:  basePath,
		Row:   row,
	}
	for _, col := range def.ColumnsFor(role) {
		cell, _ := col.Cell(row)
		d.Fields = append(d.Fields, DetailField{Label: col.Label, Cell: cell})
	}
	for _, a := range RowActions(def, role, basePath, id) {
		if a.Label == "Detail" {
			continue
		}
		d.Actions = append(d.Actions, a)
	}
	if def.Name == roles.ResourceSurat && roles.Allows(role, def.Name, roles.ActionStatus) {
		current := forms.SuratStatusForm{
			Status:    resources.Text(row["status"]),
			Disposisi: resources.Text(row["disposisi"]),
		}
		if current.Disposisi == "-" {
			current.Disposisi = ""
		}
		d.StatusForm = &Form{
			Title:  "Ubah Status Surat",
			Action: basePath + "/" + url.PathEscape(id) + "/status",
			Cancel: basePath + "/" + url.PathEscape(id),
			Fields: BuildForm(&current, nil, false),
		}
	}
	return d
}
