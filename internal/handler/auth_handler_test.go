package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coaching-center-api/internal/middleware"
	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

type authServiceMock struct {
	changedFor string
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.Password != "rahasia123" {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return &models.LoginResponse{Token: "signed", Admin: models.Admin{ID: "admin-1", PasswordHash: "hash"}}, nil
}

func (m *authServiceMock) Me(ctx context.Context, adminID string) (*models.Admin, error) {
	return &models.Admin{ID: adminID, Email: "admin@example.com", PasswordHash: "hash"}, nil
}

func (m *authServiceMock) ChangePassword(ctx context.Context, adminID string, req models.ChangePasswordRequest) error {
	m.changedFor = adminID
	return nil
}

func withClaims(c *gin.Context) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{AdminID: "admin-1"})
	c.Next()
}

func TestAuthLogin(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})
	r := newTestRouter()
	r.POST("/auth/login", h.Login)

	rec := performRequest(r, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"rahasia123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")

	rec = performRequest(r, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, rec).Error.Message)
}

func TestAuthMeRequiresClaims(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})
	r := newTestRouter()
	r.GET("/anon/me", h.Me)
	r.GET("/me", withClaims, h.Me)

	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/anon/me", "").Code)

	rec := performRequest(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestAuthChangePassword(t *testing.T) {
	svc := &authServiceMock{}
	h := NewAuthHandler(svc)
	r := newTestRouter()
	r.PUT("/auth/change-password", withClaims, h.ChangePassword)

	rec := performRequest(r, http.MethodPut, "/auth/change-password", `{"currentPassword":"a","newPassword":"bbbbbb"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", svc.changedFor)
}
