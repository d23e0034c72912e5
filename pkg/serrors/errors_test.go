package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	sentinel := serrors.NewError("USER_NOT_FOUND", "משתמש לא נמצא")
	wrapped := fmt.Errorf("lookup: %w", serrors.NewError("USER_NOT_FOUND", "other text"))
	assert.ErrorIs(t, wrapped, sentinel)

	other := serrors.NewError("EMAIL_TAKEN", "x")
	assert.NotErrorIs(t, wrapped, other)
}

func TestValidationErrors_FirstDeterministic(t *testing.T) {
	errs := serrors.ValidationErrors{
		"Zeta":  errors.New("z"),
		"Alpha": errors.New("a"),
	}
	assert.Equal(t, "Alpha", errs.FirstField())
	assert.EqualError(t, errs.First(), "a")
	assert.EqualError(t, errs, "a")
}

func TestValidationErrors_Empty(t *testing.T) {
	errs := serrors.ValidationErrors{}
	assert.Nil(t, errs.First())
	assert.Equal(t, "validation failed", errs.Error())
}
