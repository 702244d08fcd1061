package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestErrorValidationBody(t *testing.T) {
	c, w := newContext()
	Error(c, appErrors.FieldError("code", "The code has already been taken."))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"The code has already been taken."}, body.Errors["code"])
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestErrorNotFoundIsEmpty(t *testing.T) {
	c, w := newContext()
	Error(c, appErrors.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestErrorInternalHidesCause(t *testing.T) {
	c, w := newContext()
	Error(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server Error"}`, w.Body.String())
}

func TestEnvelope(t *testing.T) {
	c, w := newContext()
	Message(c, "Speaker deleted successfully")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Speaker deleted successfully"}`, w.Body.String())

	c, w = newContext()
	Fail(c, appErrors.Clone(appErrors.ErrNotFound, "Event not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Event not found"}`, w.Body.String())
}

func TestFailWithFieldsOmitsMessage(t *testing.T) {
	c, w := newContext()
	Fail(c, appErrors.FieldError("name", "The name field is required."))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"success":false,"errors":{"name":["The name field is required."]}}`, w.Body.String())
}
