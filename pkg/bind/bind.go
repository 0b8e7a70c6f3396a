// Package bind decodes and validates an HTTP request body into a struct.
//
// Validation uses go-playground/validator struct tags; field names in error
// maps are taken from the json tag:
//
//	type RegisterInput struct {
//	    Email string `json:"email" validate:"required,email"`
//	}
//	if err := bind.JSON(r, &in, 0); err != nil {
//	    response.Fail(w, r, err) // 400 bad JSON, 422 with field errors
//	}
package bind

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
)

// DefaultMaxBytes caps request bodies when the caller passes 0.
const DefaultMaxBytes int64 = 4 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// JSON decodes r.Body into dest and validates it. The body is capped at
// maxBytes (DefaultMaxBytes when <= 0). An empty body decodes as {} so that
// required-field checks report what is missing.
func JSON(r *http.Request, dest any, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	if err := render.DecodeJSON(r.Body, dest); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &apperr.Error{Kind: apperr.BadRequest, Message: fmt.Sprintf("Request body too large (max %d bytes)", maxErr.Limit), Err: err}
		}
		return apperr.Wrap(apperr.BadRequest, err)
	}

	return Struct(dest)
}

// Struct validates an already-populated struct.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("bind: validate: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return apperr.Invalid(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "numeric":
		return "must be a number"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
