package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds every decoded request body.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON for a request without a body.
var ErrEmptyBody = errors.New("request body is empty")

// Global validator instance for reuse
var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON decodes the request body into the given struct, reading at most
// MaxBodyBytes. Unknown fields are rejected so a typo in a field name is a 400.
func DecodeJSON(r *http.Request, v interface{}) error {
	return DecodeJSONLimit(r, v, MaxBodyBytes)
}

// DecodeJSONLimit is DecodeJSON with a caller-chosen body limit. A limit of
// zero or less reads the whole body.
func DecodeJSONLimit(r *http.Request, v interface{}, limit int64) error {
	var body io.Reader = r.Body
	if limit > 0 {
		body = io.LimitReader(r.Body, limit)
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return validate.Struct(v)
}

// DecodeAndValidate is DecodeJSON followed by ValidateRequest.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// DecodeAndValidateLimit is DecodeJSONLimit followed by ValidateRequest.
func DecodeAndValidateLimit(r *http.Request, v interface{}, limit int64) error {
	if err := DecodeJSONLimit(r, v, limit); err != nil {
		return err
	}
	return ValidateRequest(v)
}
