package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError indicates a resume record that cannot be rendered
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateRecord checks the fields a render cannot proceed without.
// Only the name is required; every section is optional.
func ValidateRecord(r *ResumeRecord) error {
	if r == nil {
		return &ValidationError{Field: "(root)", Message: "resume record is nil"}
	}

	if err := recordValidator.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Field: fe.Field(), Message: describeTag(fe.Tag())}
		}
		return &ValidationError{Field: "(root)", Message: err.Error()}
	}

	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}

	return nil
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q check", tag)
	}
}
