package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetDiscoverCmd_Exists verifies getDiscoverCmd returns
// a valid command.
func TestGetDiscoverCmd_Exists(t *testing.T) {
	cmd := getDiscoverCmd()
	require.NotNil(t, cmd, "Discover command should exist")
	assert.Equal(t, "discover", cmd.Use,
		"Command name should be discover")
}

// TestGetDiscoverCmd_ShortDescription verifies short
// description.
func TestGetDiscoverCmd_ShortDescription(t *testing.T) {
	cmd := getDiscoverCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "categories",
		"Short description should mention categories")
}

// TestGetDiscoverCmd_LongDescription verifies long
// description.
func TestGetDiscoverCmd_LongDescription(t *testing.T) {
	cmd := getDiscoverCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "vocab.yaml",
		"Long description should mention the vocabulary")
	assert.Contains(t, cmd.Long, "prefixes",
		"Long description should mention prefixes")
	assert.Contains(t, cmd.Long, "does not need",
		"Long description should note the database is not used")
}

// TestGetDiscoverCmd_HasRunE verifies run function is set.
func TestGetDiscoverCmd_HasRunE(t *testing.T) {
	cmd := getDiscoverCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}
