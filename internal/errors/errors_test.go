package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	e := New(CategoryConfig, SeverityFatal, "missing entry point")
	require.Equal(t, "config (fatal): missing entry point", e.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("exit status 1")
	e := Wrap(cause, CategoryPackager, SeverityError, "pyinstaller failed")
	require.ErrorIs(t, e, cause)
	require.Contains(t, e.Error(), "exit status 1")
}

func TestWrapRetryable(t *testing.T) {
	cause := errors.New("connection reset")
	e := WrapRetryable(cause, CategoryDeps, SeverityError, "pip install failed")
	require.True(t, e.Retryable)

	var be *BuildError
	require.True(t, errors.As(e.Unwrap(), &be) == false)
}

func TestWithContext(t *testing.T) {
	e := New(CategoryArchive, SeverityWarning, "archive skipped").WithContext("path", "dist/app.zip")
	require.Equal(t, "dist/app.zip", e.Context["path"])
}
