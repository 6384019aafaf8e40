package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coaching-center-api/internal/middleware"
	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
	"github.com/noah-isme/coaching-center-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// bindJSON decodes the body and answers 400 itself on failure.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.FromValidation(err))
		return false
	}
	return true
}

func listOptions(c *gin.Context) (models.ListOptions, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return models.ListOptions{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return models.ListOptions{}, err
	}
	opts := models.ListOptions{Sort: strings.TrimSpace(c.Query("sort"))}
	if page != nil {
		opts.Page = *page
	}
	if limit != nil {
		opts.Limit = *limit
	}
	if opts.Page < 0 || opts.Limit < 0 {
		return opts, appErrors.Clone(appErrors.ErrBadRequest, "page and limit must be positive")
	}
	if opts.Page > models.MaxPage {
		return opts, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("page must not exceed %d", models.MaxPage))
	}
	if opts.Limit > models.MaxLimit {
		return opts, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("limit must not exceed %d", models.MaxLimit))
	}
	return opts, nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, key+" must be a number")
	}
	return &v, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, key+" must be true or false")
	}
	return &v, nil
}

func deleted(c *gin.Context, what string) {
	response.Message(c, http.StatusOK, what+" deleted")
}
