package handler

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/campus-events-api/internal/service"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

// bindJSON decodes the request body into dst. An empty body decodes as {}.
// Malformed JSON is a 400; a value of the wrong JSON type on a known field
// is a 422 on that field.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := json.NewDecoder(c.Request.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return service.TypeMismatch(typeErr.Field, typeErr.Type)
	}
	return appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, appErrors.ErrBadRequest.Message)
}

// pathID parses a numeric :id. Anything else addresses no row.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathUUID returns :name when it is a UUID.
func pathUUID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

// queryBool reads a boolean filter. Absent or unrecognised values yield nil.
func queryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	var v bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		v = true
	case "0", "false", "off", "no":
		v = false
	default:
		return nil
	}
	return &v
}

// queryInt64 reads a numeric filter; ok is false when present but invalid,
// which matches nothing.
func queryInt64(c *gin.Context, key string) (value *int64, ok bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
