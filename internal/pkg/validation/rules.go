package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/unicatalog/internal/pkg/apperrors"
)

// MaskPattern matches requirement masks: code prefixes padded with dashes,
// e.g. "MC---" or "F-6--".
var MaskPattern = regexp.MustCompile(`^[A-Za-z0-9]*-[A-Za-z0-9-]*$`)

// Engine validates entity structs and reports failures keyed by the
// client-facing field name.
type Engine struct {
	v *validator.Validate
}

// New builds an Engine. Field names come from the `field` tag when present,
// otherwise from the json tag.
func New() *Engine {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("mask", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || MaskPattern.MatchString(s)
	})
	// Compound path keys are joined with dashes, so their leading parts
	// cannot contain one.
	_ = v.RegisterValidation("nodash", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), "-")
	})
	return &Engine{v: v}
}

var defaultEngine = New()

// Struct validates s with the shared engine.
func Struct(s interface{}) error {
	return defaultEngine.Struct(s)
}

// Struct returns an *apperrors.ValidationError listing every failed field,
// or nil.
func (e *Engine) Struct(s interface{}) error {
	err := e.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		out.Add(path(fe), reason(fe))
	}
	return out
}

// path drops the root struct name from the namespace, so nested failures
// read "schedules[0].weekday".
func path(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return apperrors.ReasonRequired
	default:
		return apperrors.ReasonInvalid
	}
}

func fieldName(f reflect.StructField) string {
	if name := f.Tag.Get("field"); name != "" {
		return name
	}
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
