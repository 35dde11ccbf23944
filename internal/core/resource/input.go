package resource

import (
	stderrs "errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
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

// DecodeInput reads the JSON request body into target and validates it.
// Field-level failures are reported keyed by JSON field name.
func DecodeInput(req *Request, target any) error {
	body := io.LimitReader(req.HTTP.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		if stderrs.Is(err, io.EOF) {
			return errors.InvalidInput("request body is required", nil)
		}
		return errors.InvalidInput("request body is not valid JSON: "+err.Error(), nil)
	}
	return ValidateInput(req, target)
}

// ValidateInput runs struct validation on an already decoded payload.
func ValidateInput(req *Request, target any) error {
	err := validate.StructCtx(req.Context(), target)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeInternal, "input validation could not run")
	}
	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		key := strings.TrimPrefix(fe.Namespace(), structName(target)+".")
		if fe.Param() != "" {
			fields[key] = fe.Tag() + "=" + fe.Param()
		} else {
			fields[key] = fe.Tag()
		}
	}
	return errors.InvalidInput("input validation failed", fields)
}

func structName(target any) string {
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
