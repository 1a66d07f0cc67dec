package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "something failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "something failed: boom", err.Error())

	var appErr *AppError
	assert.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("missing")))
	assert.True(t, IsConflict(ConflictField("email", "already exists")))
	assert.True(t, IsValidation(ValidationField("quantity", "must be positive")))
	assert.True(t, IsUnauthorized(Unauthorized("login required")))

	plain := errors.New("plain")
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsConflict(plain))
}

func TestGetCodeAndField(t *testing.T) {
	err := ConflictField("email", "already exists")
	assert.Equal(t, ErrCodeConflict, GetCode(err))
	assert.Equal(t, "email", GetField(err))

	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, "", GetField(errors.New("plain")))
}
