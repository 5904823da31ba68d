package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report json names so messages match the request body
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string, len(errs))
	for _, err := range errs {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

// Fields returns the failing field names in declaration order, restricted to
// the given tag when one is passed.
func Fields(v interface{}, tag string) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	var out []string
	for _, e := range errs {
		if tag == "" || e.Tag() == tag {
			out = append(out, e.Field())
		}
	}
	return out
}
