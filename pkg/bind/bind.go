// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cast"

	"github.com/shashiranjanraj/staybook/config"
	"github.com/shashiranjanraj/staybook/pkg/validate"
)

// maxBodyBytes returns the configured JSON body limit (default 4 MB).
func maxBodyBytes() int64 {
	if n := config.GetInt("MAX_BODY_BYTES", 4<<20); n > 0 {
		return int64(n)
	}
	return 4 << 20
}

// maxUploadBytes returns the configured multipart limit (default 10 MB).
func maxUploadBytes() int64 {
	if n := config.GetInt("MAX_UPLOAD_BYTES", 10<<20); n > 0 {
		return int64(n)
	}
	return 10 << 20
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest any) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	if err = json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs = validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Multipart parses a multipart/form-data body, capped at MAX_UPLOAD_BYTES,
// so that FormValue and FormFile can be used afterwards.
func Multipart(r *http.Request) error {
	limit := maxUploadBytes()
	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("upload too large (max %d bytes)", maxErr.Limit)
		}
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// FormBool reads a checkbox-style form value ("on", "true", "1").
func FormBool(r *http.Request, key string) bool {
	v := r.FormValue(key)
	if v == "on" {
		return true
	}
	return cast.ToBool(v)
}
