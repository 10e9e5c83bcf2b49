package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	typed := Clone(ErrValidation, "student is required")
	got := FromError(typed)
	require.NotNil(t, got)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, "student is required", got.Message)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")
	got := FromError(cause)
	require.NotNil(t, got)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.ErrorIs(t, got, cause)
}

func TestInternalMessageIncludesCause(t *testing.T) {
	err := Internal(errors.New("deadlock detected"), "failed to register students")
	assert.Equal(t, "failed to register students: deadlock detected", err.Error())
	assert.Nil(t, FromError(nil))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "other")
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, "other", clone.Message)
	assert.Nil(t, Clone(nil, "x"))
}

func TestPredefinedErrorsCoverClientAndServerFailures(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR", ErrValidation.Code)
	assert.Equal(t, http.StatusBadRequest, ErrValidation.Status)
	assert.Equal(t, "INTERNAL_ERROR", ErrInternal.Code)
	assert.Equal(t, http.StatusInternalServerError, ErrInternal.Status)
	assert.Equal(t, "Internal Server Error", ErrInternal.Error())
}
