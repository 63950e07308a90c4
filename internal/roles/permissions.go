package roles

// Action is an operation a page exposes on a resource.
type Action string

const (
	ActionView     Action = "view"
	ActionCreate   Action = "create"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionDownload Action = "download"
	ActionExport   Action = "export"
	ActionStatus   Action = "status"
	ActionReset    Action = "reset"
	ActionModerate Action = "moderate"
)

// Resource names shared with the resource registry and page handlers.
const (
	ResourceSekolah   = "sekolah"
	ResourceSurat     = "surat"
	ResourceArsip     = "arsip"
	ResourceDokumen   = "dokumen"
	ResourceKegiatan  = "kegiatan"
	ResourceKehadiran = "kehadiran"
	ResourceLog       = "log"
	ResourcePengguna  = "pengguna"
	ResourceLaporan   = "laporan"
	ResourceReviu     = "reviu"
	ResourceDiskusi   = "diskusi"
	ResourceProgres   = "progres"
	ResourceKalender  = "kalender"
)

// PermissionSet is the resources a role sees and what it may do with them.
type PermissionSet struct {
	order   []string
	actions map[string]map[Action]bool
}

type grant struct {
	resource string
	actions  []Action
}

var (
	crud     = []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionDownload, ActionExport}
	readOnly = []Action{ActionView, ActionDownload, ActionExport}
)

func with(base []Action, extra ...Action) []Action {
	out := make([]Action, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

var grants = map[Role][]grant{
	SuperAdmin: {
		{ResourceSekolah, crud},
		{ResourceSurat, with(crud, ActionStatus)},
		{ResourceArsip, crud},
		{ResourceDokumen, crud},
		{ResourceKegiatan, crud},
		{ResourceKehadiran, []Action{ActionView, ActionEdit, ActionExport}},
		{ResourceKalender, []Action{ActionView}},
		{ResourceLaporan, readOnly},
		{ResourceReviu, []Action{ActionView, ActionStatus}},
		{ResourceDiskusi, []Action{ActionView, ActionCreate, ActionModerate}},
		{ResourceLog, []Action{ActionView, ActionDelete, ActionExport}},
		{ResourcePengguna, with(crud, ActionReset)},
	},
	AdminPusat: {
		{ResourceSekolah, crud},
		{ResourceSurat, with(crud, ActionStatus)},
		{ResourceArsip, crud},
		{ResourceDokumen, crud},
		{ResourceKegiatan, crud},
		{ResourceKehadiran, []Action{ActionView, ActionExport}},
		{ResourceKalender, []Action{ActionView}},
		{ResourceLaporan, readOnly},
		{ResourceReviu, []Action{ActionView, ActionStatus}},
		{ResourceDiskusi, []Action{ActionView, ActionCreate, ActionModerate}},
		{ResourceLog, []Action{ActionView, ActionExport}},
	},
	AdminSekolah: {
		{ResourceSekolah, []Action{ActionView, ActionEdit}},
		{ResourceSurat, with(crud, ActionStatus)},
		{ResourceArsip, []Action{ActionView, ActionCreate, ActionDownload}},
		{ResourceDokumen, readOnly},
		{ResourceKegiatan, []Action{ActionView}},
		{ResourceKalender, []Action{ActionView}},
		{ResourceLaporan, readOnly},
		{ResourceDiskusi, []Action{ActionView, ActionCreate}},
	},
	Fasilitator: {
		{ResourceSekolah, []Action{ActionView}},
		{ResourceProgres, []Action{ActionView, ActionCreate}},
		{ResourceDokumen, []Action{ActionView, ActionCreate, ActionDownload}},
		{ResourceKegiatan, []Action{ActionView}},
		{ResourceKehadiran, []Action{ActionView}},
		{ResourceKalender, []Action{ActionView}},
		{ResourceLaporan, []Action{ActionView, ActionCreate, ActionDownload}},
		{ResourceDiskusi, []Action{ActionView, ActionCreate}},
	},
	Koordinator: {
		{ResourceSekolah, []Action{ActionView, ActionExport}},
		{ResourceReviu, []Action{ActionView, ActionCreate, ActionEdit, ActionStatus}},
		{ResourceDokumen, readOnly},
		{ResourceKegiatan, []Action{ActionView}},
		{ResourceKalender, []Action{ActionView}},
		{ResourceLaporan, readOnly},
		{ResourceDiskusi, []Action{ActionView, ActionCreate, ActionModerate}},
	},
}

// Permissions returns the permission set of a role. Unknown roles get an empty set.
func Permissions(raw string) PermissionSet {
	set := PermissionSet{actions: map[string]map[Action]bool{}}
	role, ok := Parse(raw)
	if !ok {
		return set
	}
	for _, g := range grants[role] {
		set.order = append(set.order, g.resource)
		allowed := make(map[Action]bool, len(g.actions))
		for _, a := range g.actions {
			allowed[a] = true
		}
		set.actions[g.resource] = allowed
	}
	return set
}

// Can reports whether the action is allowed on the resource.
func (p PermissionSet) Can(resource string, action Action) bool {
	return p.actions[resource][action]
}

// Resources lists the visible resources in menu order.
func (p PermissionSet) Resources() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Actions lists the allowed row actions among the candidates, keeping their order.
func (p PermissionSet) Actions(resource string, candidates ...Action) []Action {
	var out []Action
	for _, a := range candidates {
		if p.Can(resource, a) {
			out = append(out, a)
		}
	}
	return out
}

// Allows combines the permission set of role with the correspondence rule: only admin roles
// may edit, delete or change the status of a letter.
func Allows(role, resource string, action Action) bool {
	if !Permissions(role).Can(resource, action) {
		return false
	}
	if resource == ResourceSurat {
		switch action {
		case ActionEdit, ActionDelete, ActionStatus:
			return IsAdmin(role)
		}
	}
	return true
}
