// Package validator envuelve go-playground/validator con errores por campo.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	validatorengine "github.com/go-playground/validator/v10"
)

var mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)

// FieldError describe un campo inválido.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError agrupa todos los campos inválidos, no solo el primero.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Has indica si el campo aparece entre los errores.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// StructValidator valida structs con etiquetas `validate` y mensajes en la etiqueta `msg`
// (formato "tag=mensaje;tag=mensaje").
type StructValidator struct {
	engine *validatorengine.Validate
}

// New construye el validador con la regla "mobile" (exactamente 10 dígitos ASCII)
// y nombres de campo tomados de la etiqueta json.
func New() *StructValidator {
	engine := validatorengine.New()
	engine.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(engine, "mobile", func(fl validatorengine.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	})
	return &StructValidator{engine: engine}
}

// mustRegister entra en pánico si la regla no se puede registrar.
func mustRegister(engine *validatorengine.Validate, tag string, fn validatorengine.Func) {
	if err := engine.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: registrar regla %q: %v", tag, err))
	}
}

// Struct valida data. Devuelve *ValidationError si algún campo falla.
func (v *StructValidator) Struct(data any) error {
	err := v.engine.Struct(data)
	if err == nil {
		return nil
	}
	var errs validatorengine.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, e := range errs {
		out.Fields = append(out.Fields, FieldError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Message: message(data, e),
		})
	}
	return out
}

func message(data any, e validatorengine.FieldError) string {
	t := reflect.TypeOf(data)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(e.StructField()); ok {
			for _, pair := range strings.Split(sf.Tag.Get("msg"), ";") {
				tag, msg, found := strings.Cut(pair, "=")
				if found && strings.TrimSpace(tag) == e.Tag() {
					return strings.TrimSpace(msg)
				}
			}
		}
	}
	if e.Param() != "" {
		return fmt.Sprintf("%s failed on %s=%s", e.Field(), e.Tag(), e.Param())
	}
	return fmt.Sprintf("%s failed on %s", e.Field(), e.Tag())
}
