// Package forms holds the input forms of every page and their client-side checks.
// A failing check yields an inline message and must stop the request before the backend is called.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
)

// MinPasswordLength is the shortest password accepted by user and password forms.
const MinPasswordLength = 8

var phonePattern = regexp.MustCompile(`^(\+62|62|0)8[0-9]{7,12}$`)

// NewValidator returns a validator with the custom tags used by the forms.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	_ = v.RegisterValidation("surat_status", func(fl validator.FieldLevel) bool {
		return models.SuratStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("review_status", func(fl validator.FieldLevel) bool {
		return models.ReviewStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := roles.Parse(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("percent", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && n >= 0 && n <= 100
	})
	return v
}

// FieldErrors maps field labels to their inline message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, msg := range f {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Validate runs the checks of form. The returned error is a validation error whose message
// is the first failing check; the per-field messages are available through Fields.
func Validate(v *validator.Validate, form interface{}) error {
	if v == nil {
		v = NewValidator()
	}
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.Wrap(err, appErrors.CodeValidation, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	fields := FieldErrors{}
	first := ""
	for _, fe := range verrs {
		msg := message(fe)
		if first == "" {
			first = msg
		}
		if _, exists := fields[fe.Field()]; !exists {
			fields[fe.Field()] = msg
		}
	}
	return appErrors.Wrap(fields, appErrors.CodeValidation, appErrors.ErrValidation.Status, first)
}

// Fields returns the per-field messages of a validation error, or nil.
func Fields(err error) FieldErrors {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return fields
	}
	return nil
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s wajib diisi", label)
	case "email":
		return "Format email tidak valid"
	case "phone":
		return "Format nomor HP tidak valid"
	case "min":
		return fmt.Sprintf("%s minimal %s karakter", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter", label, fe.Param())
	case "eqfield":
		return "Konfirmasi password tidak sama"
	case "numeric":
		return fmt.Sprintf("%s harus berupa angka", label)
	case "len":
		return fmt.Sprintf("%s harus %s digit", label, fe.Param())
	case "datetime":
		return fmt.Sprintf("Format %s tidak valid (YYYY-MM-DD)", label)
	case "percent":
		return fmt.Sprintf("%s harus antara 0 dan 100", label)
	default:
		return fmt.Sprintf("%s tidak valid", label)
	}
}

// Values flattens a form into string fields for multipart bodies. Empty values are skipped.
func Values(form interface{}) map[string]string {
	raw, err := json.Marshal(form)
	if err != nil {
		return nil
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	out := make(map[string]string, len(decoded))
	for key, value := range decoded {
		s := stringify(value)
		if s != "" {
			out[key] = s
		}
	}
	return out
}

// Prefill copies the matching keys of a backend row into form, for edit pages.
func Prefill(form interface{}, row map[string]interface{}) error {
	flat := make(map[string]string, len(row))
	for key, value := range row {
		if s := stringify(value); s != "" {
			flat[key] = s
		}
	}
	raw, err := json.Marshal(flat)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, form)
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]interface{}:
		if id, ok := v["id"]; ok {
			return stringify(id)
		}
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
