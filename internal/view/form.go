package view

import (
	"reflect"
	"strings"

	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/resources"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
)

// Field is one rendered form control.
type Field struct {
	Name     string             `json:"name"`
	Label    string             `json:"label"`
	Type     string             `json:"type"`
	Value    string             `json:"value,omitempty"`
	Values   []string           `json:"values,omitempty"`
	Options  []resources.Option `json:"options,omitempty"`
	Required bool               `json:"required"`
	Error    string             `json:"error,omitempty"`
}

// Form is the view model of a create or edit page.
type Form struct {
	Title     string  `json:"title"`
	Action    string  `json:"action"`
	Cancel    string  `json:"cancel"`
	Multipart bool    `json:"multipart"`
	Fields    []Field `json:"fields"`
}

// FileField is the name of the upload control on multipart forms.
const FileField = "file"

// BuildForm renders the fields of a form struct from its form, label and validate tags.
// Inline messages are matched by label, the key validation errors are reported under.
func BuildForm(form interface{}, errs forms.FieldErrors, multipart bool) []Field {
	v := reflect.ValueOf(form)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()

	fields := make([]Field, 0, t.NumField()+1)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := sf.Tag.Get("form")
		if name == "" || name == "-" {
			continue
		}
		label := sf.Tag.Get("label")
		if label == "-" {
			continue
		}
		if label == "" {
			label = sf.Name
		}
		rules := sf.Tag.Get("validate")
		f := Field{
			Name:     name,
			Label:    label,
			Type:     inputType(name, rules, sf.Type.Kind()),
			Required: hasRule(rules, "required"),
			Error:    errs[label],
		}
		value := v.Field(i)
		switch value.Kind() {
		case reflect.Slice:
			for j := 0; j < value.Len(); j++ {
				f.Values = append(f.Values, value.Index(j).String())
			}
		case reflect.String:
			if f.Type != "password" {
				f.Value = value.String()
			}
		}
		f.Options = options(rules)
		if len(f.Options) > 0 {
			f.Type = "select"
		}
		fields = append(fields, f)
	}
	if multipart {
		fields = append(fields, Field{Name: FileField, Label: "Berkas", Type: "file", Error: errs["Berkas"]})
	}
	return fields
}

func inputType(name, rules string, kind reflect.Kind) string {
	lower := strings.ToLower(name)
	switch {
	case kind == reflect.Slice:
		return "tags"
	case strings.Contains(lower, "password"):
		return "password"
	case hasRule(rules, "email"):
		return "email"
	case strings.Contains(rules, "datetime=2006-01-02"):
		return "date"
	case hasRule(rules, "phone"):
		return "tel"
	case lower == "keterangan" || lower == "disposisi" || lower == "catatan" || lower == "rekomendasi" || lower == "content":
		return "textarea"
	default:
		return "text"
	}
}

func hasRule(rules, name string) bool {
	for _, r := range strings.Split(rules, ",") {
		if r == name {
			return true
		}
	}
	return false
}

func options(rules string) []resources.Option {
	if hasRule(rules, "role") {
		out := make([]resources.Option, 0, len(roles.All()))
		for _, r := range roles.All() {
			out = append(out, resources.Option{Value: string(r), Label: roles.Label(string(r))})
		}
		return out
	}
	if hasRule(rules, "surat_status") {
		return badgeOptions(models.StatusKindSurat)
	}
	for _, r := range strings.Split(rules, ",") {
		if !strings.HasPrefix(r, "oneof=") {
			continue
		}
		values := strings.Fields(strings.TrimPrefix(r, "oneof="))
		out := make([]resources.Option, 0, len(values))
		for _, value := range values {
			out = append(out, resources.Option{Value: value, Label: optionLabel(value)})
		}
		return out
	}
	return nil
}

var labelKinds = []models.StatusKind{
	models.StatusKindSchool,
	models.StatusKindSuratType,
	models.StatusKindArsip,
	models.StatusKindEvent,
}

// optionLabel prefers the badge label of a declared status value.
func optionLabel(value string) string {
	for _, kind := range labelKinds {
		if b, err := models.LookupBadge(kind, value); err == nil {
			return b.Label
		}
	}
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func badgeOptions(kind models.StatusKind) []resources.Option {
	badges := models.StatusValues(kind)
	out := make([]resources.Option, 0, len(badges))
	for _, b := range badges {
		out = append(out, resources.Option{Value: b.Value, Label: b.Label})
	}
	return out
}
