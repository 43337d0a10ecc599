package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds a validator that reports field names as they appear on
// the wire (the json tag) rather than as Go struct field names.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return validate
}

// maxRequestBodyBytes caps how much of a request body we are willing to read.
const maxRequestBodyBytes = 1 << 20 // 1 MiB

// DecodeJSON decodes the request body into dst, rejecting trailing data and
// oversized bodies. Fields the destination type does not declare are dropped.
// The returned error message is safe to send back to the client.
func DecodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)

	// Unknown fields are ignored, not rejected: the DTO decides what the
	// request can say, and anything else (a caller-supplied owner included)
	// simply never reaches the handler.
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxBytesErr *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body must not be empty")
		case errors.As(err, &syntaxErr):
			return fmt.Errorf("request body contains malformed JSON (at position %d)", syntaxErr.Offset)
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return fmt.Errorf("request body contains an invalid value for field %q", typeErr.Field)
			}
			return errors.New("request body contains an invalid value")
		case errors.As(err, &maxBytesErr):
			return errors.New("request body is too large")
		default:
			return errors.New("request body could not be decoded")
		}
	}

	// A second decode succeeding means there was trailing content.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}

// ValidateRequest runs struct-tag validation on a decoded request and
// converts the first failure into a client-safe error.
func ValidateRequest(validate *validator.Validate, req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return errors.New("request could not be validated")
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fieldName(fe)
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("field %q is required", field)
		case "email":
			return fmt.Errorf("field %q must be a valid email address", field)
		case "min":
			return fmt.Errorf("field %q must be at least %s characters", field, fe.Param())
		case "max":
			return fmt.Errorf("field %q must be at most %s characters", field, fe.Param())
		default:
			return fmt.Errorf("field %q is invalid", field)
		}
	}

	return errors.New("request could not be validated")
}

// fieldName prefers the wire name over the Go struct field name.
func fieldName(fe validator.FieldError) string {
	// Namespace is Struct.Field; strip the struct prefix.
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}
	return name
}
