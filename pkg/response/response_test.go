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

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListIncludesCountAndPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	List(c, []string{"a", "b"}, 2, models.NewPagination(1, 2, 5))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, true, pagination["hasMore"])
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestListEmptyStillReportsCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	List(c, []string{}, 0, nil)

	body := decode(t, rec)
	assert.Equal(t, float64(0), body["count"])
	assert.NotContains(t, body, "pagination")
}

func TestErrorHidesCauseOutsideDebug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "server error", errBody["message"])
	assert.NotContains(t, errBody, "debug")
	assert.Len(t, c.Errors, 1)
}

func TestErrorShowsCauseInDebug(t *testing.T) {
	gin.SetMode(gin.DebugMode)
	defer gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, errors.New("pq: connection refused"))

	errBody := decode(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, "pq: connection refused", errBody["debug"])
}

func TestErrorKeepsValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	appErr := appErrors.Clone(appErrors.ErrValidation, "")
	appErr.Details = []string{"title is required", "class must be at most 12"}
	Error(c, appErr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode(t, rec)["error"].(map[string]interface{})
	assert.Len(t, errBody["details"], 2)
}
