// Package validate runs `validate` struct tags through go-playground's
// validator and flattens the result into the field → message map used by
// the 422 response envelope.
//
//	type BookingInput struct {
//	    RoomID   string `json:"room_id"   validate:"required,uuid"`
//	    CheckIn  string `json:"check_in"  validate:"required"`
//	    CheckOut string `json:"check_out" validate:"required"`
//	}
//
//	errs := validate.Struct(input)
//	// map[room_id:The room_id must be a valid UUID.]
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Struct validates v and returns one message per failing field. An empty
// map means v is valid.
func Struct(v any) map[string]string {
	errs := make(map[string]string)

	err := engine.Struct(v)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	textual := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("The %s must be a valid UUID.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s.", field, strings.ReplaceAll(param, " ", ", "))
	case "datetime":
		return fmt.Sprintf("The %s must be a date in the format %s.", field, param)
	case "min", "gte":
		if textual {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s.", field, param)
	case "max", "lte":
		if textual {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, param)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", field)
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}
