package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type responseEnvelope struct {
	Success    bool                   `json:"success"`
	Count      *int                   `json:"count"`
	Data       json.RawMessage        `json:"data"`
	Pagination map[string]interface{} `json:"pagination"`
	Message    string                 `json:"message"`
	Error      *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Status  int      `json:"status"`
		Details []string `json:"details"`
	} `json:"error"`
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
