package service

import (
	"database/sql"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

// NewValidator returns a validator that reports JSON field names and knows
// the custom tags used by request payloads.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	registerValidations(v)
	return v
}

func registerValidations(v *validator.Validate) {
	_ = v.RegisterValidation("contactstatus", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseContactStatus(fl.Field().String())
		return ok
	})
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateStruct(v *validator.Validate, req interface{}) error {
	if err := v.Struct(req); err != nil {
		return appErrors.FromValidation(err)
	}
	return nil
}

func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Clone(appErrors.ErrBadRequest, "invalid id")
	}
	return nil
}

// storeError maps repository failures to API errors: missing rows become
// notFound, anything else an internal error described by action.
func storeError(err error, notFound, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to "+action)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
