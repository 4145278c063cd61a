package dtos

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/models"
)

// ValidationError carries one message per offending field, keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so errors line up with the form inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.JobCategory(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("province", func(fl validator.FieldLevel) bool {
		return models.Province(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("job_status", func(fl validator.FieldLevel) bool {
		return models.JobStatus(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		return models.ApplicationStatus(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("account_status", func(fl validator.FieldLevel) bool {
		return models.AccountStatus(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	}))
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

var fieldMessages = map[string]string{
	"title/min":         "El título debe tener al menos 5 caracteres",
	"description/min":   "La descripción debe tener al menos 20 caracteres",
	"category/required": "Selecciona una categoría",
	"category/category": "Selecciona una categoría",
	"province/required": "Selecciona una provincia",
	"province/province": "Selecciona una provincia",
	"budget/gt":         "El presupuesto debe ser mayor a 0",
	"budget/gte":        "El presupuesto no puede ser negativo",
}

func message(fe validator.FieldError) string {
	if m, ok := fieldMessages[fe.Field()+"/"+fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "date":
		return "Fecha no válida (AAAA-MM-DD)"
	case "email":
		return "Email no válido"
	case "uuid":
		return "Identificador no válido"
	case "min":
		return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("No puede superar %s caracteres", fe.Param())
	case "job_status", "application_status", "account_status", "category", "province":
		return "Valor no válido"
	}
	return "Valor no válido"
}
