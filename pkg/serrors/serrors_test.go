package serrors_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organigramma/organigramma/pkg/serrors"
)

func TestServiceError_Unwrap(t *testing.T) {
	cause := errors.New("row not found")
	err := serrors.NewServiceError(http.StatusNotFound, "PERSON_NOT_FOUND", "person not found", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "person not found")
	assert.Contains(t, err.Error(), "row not found")
}

func TestAsServiceError(t *testing.T) {
	svcErr := serrors.NewServiceError(http.StatusConflict, "UNIT_CODE_CONFLICT", "unit code already exists", nil)
	wrapped := errors.Join(errors.New("outer"), svcErr)

	found, ok := serrors.AsServiceError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, found.Status)
	assert.Equal(t, "UNIT_CODE_CONFLICT", found.Code)

	_, ok = serrors.AsServiceError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = serrors.AsServiceError(nil)
	assert.False(t, ok)
}

func TestValidationErrors_First(t *testing.T) {
	errs := serrors.ValidationErrors{
		"first_name": "first_name is required",
	}
	assert.Equal(t, "first_name is required", errs.First())
	assert.Equal(t, "", serrors.ValidationErrors{}.First())
}
