package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/saulo-duarte/examly-api/internal/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks struct tags and reports the first violated constraint.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Validation("invalid request body")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperror.Validation("%s is required", fe.Field())
	case "email":
		return apperror.Validation("%s must be a valid email", fe.Field())
	case "oneof":
		return apperror.Validation("%s must be one of [%s]", fe.Field(), fe.Param())
	case "uuid", "uuid4":
		return apperror.Validation("%s must be a valid id", fe.Field())
	case "min", "gte", "gt":
		return apperror.Validation("%s must be %s %s", fe.Field(), boundWord(fe.Tag()), fe.Param())
	case "max", "lte":
		return apperror.Validation("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return apperror.Validation("%s is invalid", fe.Field())
	}
}

func boundWord(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}
