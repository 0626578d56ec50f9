package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-formatter/internal/record"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/jonathan/resume-formatter/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// fromValidator converts the first validator failure into an ErrValidation.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fe.Tag()
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		return &ErrValidation{Field: fe.Field(), Message: msg}
	}
	return &ErrValidation{Field: "(root)", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Bad input of any kind is a 400; everything else, including save failures, is a 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	var (
		reqErr    *ErrValidation
		recordErr *types.ValidationError
		schemaErr *schemas.ValidationError
		parseErr  *record.ParseError
		configErr *rendering.ConfigError
		saveErr   *rendering.SaveError
	)
	switch {
	case errors.As(err, &saveErr):
		return http.StatusInternalServerError
	case errors.As(err, &reqErr),
		errors.As(err, &recordErr),
		errors.As(err, &schemaErr),
		errors.As(err, &parseErr),
		errors.As(err, &configErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
