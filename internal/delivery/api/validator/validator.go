// Package validator plugs go-playground/validator into echo.
package validator

import (
	"reflect"
	"strings"

	"cafefinder/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *playground.Validate
}

// New creates a validator that reports fields by their query or JSON name.
func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var verrs playground.ValidationErrors
		if errors.As(err, &verrs) {
			return errors.New(describe(verrs))
		}

		return errors.WithStack(err)
	}

	return nil
}

func describe(verrs playground.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fe.Field()+" must satisfy "+fe.Tag()+"="+fe.Param())
		} else {
			parts = append(parts, fe.Field()+" is "+fe.Tag())
		}
	}

	return strings.Join(parts, "; ")
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}
