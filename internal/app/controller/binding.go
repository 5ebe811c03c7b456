package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorFields turns a gin binding error into the per-field map the
// storefront renders next to form inputs. Non-validator errors (bad JSON)
// collapse into a single body entry.
func bindingErrorFields(err error) map[string]string {
	fields := map[string]string{}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
		return fields
	}

	fields["body"] = "Trupi i kërkesës nuk është JSON i vlefshëm"
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Fusha është e detyrueshme"
	case "email":
		return "Email jo i vlefshëm"
	case "gte":
		return fmt.Sprintf("Vlera duhet të jetë së paku %s", fe.Param())
	case "min":
		return fmt.Sprintf("Duhen së paku %s elemente", fe.Param())
	default:
		return "Vlera nuk është e vlefshme"
	}
}
