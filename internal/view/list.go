package view

import (
	"net/url"

	"github.com/noah-isme/revitalisasi-dashboard/internal/listing"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
)

// Action is a link or button attached to a row or a page.
type Action struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Method  string `json:"method"`
	Confirm string `json:"confirm,omitempty"`
}

// Row is one rendered table row.
type Row struct {
	ID      string           `json:"id"`
	Cells   []resources.Cell `json:"cells"`
	Actions []Action         `json:"actions,omitempty"`
}

// List is the view model of a "Daftar X" page.
type List struct {
	Name       string             `json:"name"`
	Title      string             `json:"title"`
	BasePath   string             `json:"basePath"`
	Columns    []resources.Column `json:"columns"`
	Filters    []resources.Filter `json:"filters,omitempty"`
	Rows       []Row              `json:"rows"`
	State      listing.State      `json:"state"`
	Pagination listing.Pagination `json:"pagination"`
	Caption    string             `json:"caption"`
	PageSizes  []int              `json:"pageSizes"`
	PageLinks  map[int]string     `json:"-"`
	Actions    []Action           `json:"actions,omitempty"`
	BulkDelete string             `json:"bulkDelete,omitempty"`
	LivePath   string             `json:"livePath,omitempty"`
	Warnings   []string           `json:"-"`
}

// ListInput carries what BuildList needs besides the definition.
type ListInput struct {
	Role       string
	BasePath   string
	State      listing.State
	Pagination listing.Pagination
	Caption    string
	PageSizes  []int
}

const confirmDelete = "Yakin ingin menghapus data ini?"

// BuildList renders the rows of state with the columns and row actions the role may use.
// Cells with an undeclared status value keep their raw text and are reported in Warnings.
func BuildList(def resources.Definition, in ListInput) List {
	columns := def.ColumnsFor(in.Role)
	out := List{
		Name:       def.Name,
		Title:      def.Title,
		BasePath:   in.BasePath,
		Columns:    columns,
		Filters:    def.Filters,
		State:      in.State,
		Pagination: in.Pagination,
		Caption:    in.Caption,
		PageSizes:  in.PageSizes,
		Rows:       make([]Row, 0, len(in.State.Items)),
	}

	for _, item := range in.State.Items {
		row := Row{ID: resources.RowID(item), Cells: make([]resources.Cell, 0, len(columns))}
		for _, col := range columns {
			cell, err := col.Cell(item)
			if err != nil {
				out.Warnings = append(out.Warnings, col.Key+": "+err.Error())
			}
			row.Cells = append(row.Cells, cell)
		}
		if row.ID != "" {
			row.Actions = RowActions(def, in.Role, in.BasePath, row.ID)
		}
		out.Rows = append(out.Rows, row)
	}

	if def.Form != "" && roles.Allows(in.Role, def.Name, roles.ActionCreate) {
		out.Actions = append(out.Actions, Action{Label: "Tambah " + def.Singular, Href: in.BasePath + "/tambah", Method: "GET"})
	}
	if roles.Allows(in.Role, def.Name, roles.ActionExport) {
		query := in.State.Query().Values()
		query.Del("page")
		query.Del("limit")
		for _, format := range []string{"csv", "pdf"} {
			q := cloneValues(query)
			q.Set("format", format)
			out.Actions = append(out.Actions, Action{Label: "Ekspor " + format, Href: in.BasePath + "/ekspor?" + q.Encode(), Method: "GET"})
		}
	}
	if def.Name == roles.ResourceLog && roles.Allows(in.Role, def.Name, roles.ActionDelete) {
		out.BulkDelete = in.BasePath + "/hapus"
	}

	out.PageLinks = make(map[int]string, len(in.Pagination.Links)+2)
	for _, link := range in.Pagination.Links {
		out.PageLinks[link.Index] = PageHref(in.BasePath, in.State, link.Index)
	}
	if in.Pagination.HasPrev {
		out.PageLinks[in.Pagination.PrevIndex] = PageHref(in.BasePath, in.State, in.Pagination.PrevIndex)
	}
	if in.Pagination.HasNext {
		out.PageLinks[in.Pagination.NextIndex] = PageHref(in.BasePath, in.State, in.Pagination.NextIndex)
	}
	return out
}

// RowActions lists the actions a role may take on one row, in display order.
func RowActions(def resources.Definition, role, basePath, id string) []Action {
	item := basePath + "/" + url.PathEscape(id)
	var actions []Action
	if roles.Allows(role, def.Name, roles.ActionView) && def.Parent == "" {
		actions = append(actions, Action{Label: "Detail", Href: item, Method: "GET"})
	}
	if def.Form != "" && def.Parent == "" && roles.Allows(role, def.Name, roles.ActionEdit) {
		actions = append(actions, Action{Label: "Ubah", Href: item + "/ubah", Method: "GET"})
	}
	if def.Download != "" && roles.Allows(role, def.Name, roles.ActionDownload) {
		actions = append(actions, Action{Label: "Unduh", Href: item + "/unduh", Method: "GET"})
	}
	for _, child := range resources.Children(def.Name) {
		if roles.Allows(role, child.Name, roles.ActionView) {
			actions = append(actions, Action{Label: child.Title, Href: item + "/" + child.Name, Method: "GET"})
		}
	}
	if def.Parent == "" && roles.Allows(role, def.Name, roles.ActionReset) {
		actions = append(actions, Action{Label: "Reset Password", Href: item + "/reset-password", Method: "POST", Confirm: "Reset password pengguna ini ke bawaan?"})
	}
	if def.Parent == "" && roles.Allows(role, def.Name, roles.ActionDelete) {
		actions = append(actions, Action{Label: "Hapus", Href: item + "/hapus", Method: "POST", Confirm: confirmDelete})
	}
	return actions
}

// PageHref links to a zero-based page of the list while keeping the rest of the tuple.
func PageHref(basePath string, state listing.State, page int) string {
	q := state.Query()
	q.Page = page
	return basePath + "?" + q.Values().Encode()
}

func cloneValues(in url.Values) url.Values {
	out := make(url.Values, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}
