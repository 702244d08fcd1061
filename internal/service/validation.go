package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/campus-events-api/internal/dto"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts RFC3339 and the common SQL-style layouts.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

type validationValuer interface {
	ValidationValue() interface{}
}

// NewValidator returns a validator that reports JSON field names, sees
// through dto.Optional and knows the timestamp and json_container tags.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(validationValuer); ok {
			return o.ValidationValue()
		}
		return nil
	},
		dto.Optional[string]{},
		dto.Optional[int]{},
		dto.Optional[int64]{},
		dto.Optional[float64]{},
		dto.Optional[bool]{},
		dto.Optional[json.RawMessage]{},
	)

	_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.String {
			return strings.TrimSpace(field.String()) != ""
		}
		return !field.IsZero()
	})

	_ = v.RegisterValidation("json_container", func(fl validator.FieldLevel) bool {
		raw := strings.TrimSpace(string(fl.Field().Bytes()))
		return strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{")
	})

	return v
}

// fieldErrors accumulates per-field messages across validator output and
// storage checks.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

func (f fieldErrors) has(field string) bool {
	_, ok := f[field]
	return ok
}

// unique records field as taken when probe finds a clash. Fields that already
// failed validation are not probed.
func (f fieldErrors) unique(field string, probe func() (bool, error)) error {
	if f.has(field) {
		return nil
	}
	taken, err := probe()
	if err != nil {
		return internalError(err, "failed to check "+attribute(field))
	}
	if taken {
		f.add(field, takenMessage(field))
	}
	return nil
}

// exists records field as invalid when the referenced row is missing.
func (f fieldErrors) exists(field string, probe func() (bool, error)) error {
	if f.has(field) {
		return nil
	}
	found, err := probe()
	if err != nil {
		return internalError(err, "failed to check "+attribute(field))
	}
	if !found {
		f.add(field, invalidReferenceMessage(field))
	}
	return nil
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return appErrors.Validation(f)
}

// validateStruct runs the validator and returns the failures keyed by field.
// Non-validation errors surface as a 500.
func validateStruct(v *validator.Validate, req interface{}) (fieldErrors, error) {
	fields := fieldErrors{}
	err := v.Struct(blankToNil(req))
	if err == nil {
		return fields, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate payload")
	}
	for _, fe := range verrs {
		fields.add(fe.Field(), validationMessage(fe))
	}
	return fields, nil
}

// blankToNil returns a copy of req in which every omitempty *string holding
// only whitespace is nil. Those fields are nullable and store blank input as
// NULL, so a blank value must skip their format rules.
func blankToNil(req interface{}) interface{} {
	rv := reflect.ValueOf(req)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return req
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return req
	}
	out := reflect.New(rv.Type()).Elem()
	out.Set(rv)
	nilBlankStrings(out)
	return out.Interface()
}

func nilBlankStrings(rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			nilBlankStrings(fv)
			continue
		}
		if fv.Kind() != reflect.Ptr || sf.Type.Elem().Kind() != reflect.String || fv.IsNil() {
			continue
		}
		if !strings.HasPrefix(sf.Tag.Get("validate"), "omitempty") {
			continue
		}
		if strings.TrimSpace(fv.Elem().String()) == "" {
			fv.Set(reflect.Zero(sf.Type))
		}
	}
}

func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func validationMessage(fe validator.FieldError) string {
	attr := attribute(fe.Field())
	numeric := isNumericKind(fe.Kind())

	switch fe.Tag() {
	case "required", "filled":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max", "lte":
		if numeric {
			return fmt.Sprintf("The %s field must not be greater than %s.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
	case "min", "gte":
		if numeric {
			return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "datetime", "timestamp":
		return fmt.Sprintf("The %s field must be a valid date.", attr)
	case "uuid":
		return fmt.Sprintf("The %s field must be a valid UUID.", attr)
	case "json_container":
		return fmt.Sprintf("The %s field must be an array.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// TypeMismatch renders a JSON type error on a known field as a 422.
func TypeMismatch(field string, target reflect.Type) error {
	attr := attribute(field)
	var msg string
	switch target.Kind() {
	case reflect.Bool:
		msg = fmt.Sprintf("The %s field must be true or false.", attr)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		msg = fmt.Sprintf("The %s field must be an integer.", attr)
	case reflect.Float32, reflect.Float64:
		msg = fmt.Sprintf("The %s field must be a number.", attr)
	case reflect.String:
		msg = fmt.Sprintf("The %s field must be a string.", attr)
	default:
		msg = fmt.Sprintf("The %s field is invalid.", attr)
	}
	return appErrors.FieldError(field, msg)
}

func takenMessage(field string) string {
	return fmt.Sprintf("The %s has already been taken.", attribute(field))
}

func invalidReferenceMessage(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", attribute(field))
}

func afterOrEqualMessage(field, other string) string {
	return fmt.Sprintf("The %s field must be a date after or equal to %s.", attribute(field), attribute(other))
}
