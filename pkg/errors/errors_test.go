package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleCourse struct {
	Title string `validate:"required,max=5"`
	Class int    `validate:"gte=1,lte=12"`
	Email string `validate:"omitempty,email"`
	Kind  string `validate:"oneof=a b"`
}

func TestFromValidationCollectsEveryField(t *testing.T) {
	v := validator.New()
	err := v.Struct(sampleCourse{Class: 13, Email: "nope", Kind: "c"})
	require.Error(t, err)

	appErr := FromValidation(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrValidation.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.ElementsMatch(t, []string{
		"Title is required",
		"Class must be at most 12",
		"Email must be a valid email",
		"Kind must be one of: a, b",
	}, appErr.Details)
}

func TestFromValidationNonValidatorError(t *testing.T) {
	appErr := FromValidation(errors.New("unexpected EOF"))
	assert.Equal(t, ErrValidation.Code, appErr.Code)
	assert.Equal(t, []string{"unexpected EOF"}, appErr.Details)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, "server error", appErr.Message)

	wrapped := fmt.Errorf("ctx: %w", Clone(ErrNotFound, "course not found"))
	assert.Equal(t, "course not found", FromError(wrapped).Message)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrConflict))
}

func TestCloneDoesNotShareDetails(t *testing.T) {
	base := &Error{Code: "X", Details: []string{"a"}}
	clone := Clone(base, "")
	clone.Details[0] = "b"
	assert.Equal(t, "a", base.Details[0])
}
