package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipeople/wpdb/pkg/errcode"
)

// TestCreateDirError_Structure verifies error structure.
func TestCreateDirError_Structure(t *testing.T) {
	testDir := "/test/dir"
	originalErr := errors.New("permission denied")

	err := CreateDirError(testDir, originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
	require.Len(t, gnErr.Vars, 1)
	assert.Equal(t, testDir, gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, originalErr,
		"Should wrap original error")
}

// TestErrorFunctions_CallerInfo verifies the wrapped error carries
// the caller captured via runtime.Caller.
func TestErrorFunctions_CallerInfo(t *testing.T) {
	err := CopyFileError("/test/config.yaml", errors.New("no space left"))
	gnErr := err.(*gn.Error)

	assert.Contains(t, gnErr.Err.Error(), "from",
		"Error should mention caller context")
	assert.Contains(t, gnErr.Err.Error(), "iofs",
		"Caller context should name this package")
}

// TestErrorFunctions_ErrorWrapping verifies proper error wrapping.
func TestErrorFunctions_ErrorWrapping(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name  string
		error error
	}{
		{"CreateDirError", CreateDirError("/dir", originalErr)},
		{"CopyFileError", CopyFileError("/file", originalErr)},
		{"ReadFileError", ReadFileError("/path", originalErr)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr := tt.error.(*gn.Error)
			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should be able to unwrap to original error")
		})
	}
}
