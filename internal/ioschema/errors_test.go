package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipeople/wpdb/pkg/errcode"
)

// TestExtensionError_Structure verifies error structure.
func TestExtensionError_Structure(t *testing.T) {
	originalErr := errors.New("permission denied to create extension")

	err := ExtensionError("postgis", originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.SchemaExtensionError, gnErr.Code)
	require.Len(t, gnErr.Vars, 2,
		"Vars must fill every placeholder in the message")
	assert.Equal(t, "postgis", gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.Empty(t, gnErr.Vars)
	assert.NotNil(t, gnErr.Err)
}

// TestAllErrors_ErrorWrapping verifies factories wrap their cause.
func TestAllErrors_ErrorWrapping(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name  string
		error error
	}{
		{"GORMConnectionError", GORMConnectionError(originalErr)},
		{"CreateSchemaError", CreateSchemaError(originalErr)},
		{"MigrateSchemaError", MigrateSchemaError(originalErr)},
		{"ExtensionError", ExtensionError("pg_trgm", originalErr)},
		{"GeometryError", GeometryError(originalErr)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.error.(*gn.Error)
			require.True(t, ok)
			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should be able to unwrap to original error")
		})
	}
}
