package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetOptimizeCmd_Exists verifies getOptimizeCmd
// returns a valid command.
func TestGetOptimizeCmd_Exists(t *testing.T) {
	cmd := getOptimizeCmd()
	require.NotNil(t, cmd,
		"Optimize command should exist")
	assert.Equal(t, "optimize", cmd.Use,
		"Command name should be optimize")
}

// TestGetOptimizeCmd_ShortDescription verifies short
// description.
func TestGetOptimizeCmd_ShortDescription(t *testing.T) {
	cmd := getOptimizeCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "search",
		"Short description should mention search")
}

// TestGetOptimizeCmd_LongDescription verifies long
// description.
func TestGetOptimizeCmd_LongDescription(t *testing.T) {
	cmd := getOptimizeCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "Prerequisites",
		"Long description should mention prerequisites")
	assert.Contains(t, cmd.Long, "create",
		"Long description should mention create command")
	assert.Contains(t, cmd.Long, "sync",
		"Long description should mention sync command")
	assert.Contains(t, cmd.Long, "ratings",
		"Long description should mention ratings")
}

// TestGetOptimizeCmd_HasRunE verifies run function is set.
func TestGetOptimizeCmd_HasRunE(t *testing.T) {
	cmd := getOptimizeCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetOptimizeCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetOptimizeCmd_IndependentInstances(t *testing.T) {
	cmd1 := getOptimizeCmd()
	cmd2 := getOptimizeCmd()

	// Should be different instances
	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")

	// Modifying one shouldn't affect the other
	cmd1.Short = "test1"
	cmd2.Short = "test2"

	assert.Equal(t, "test1", cmd1.Short)
	assert.Equal(t, "test2", cmd2.Short)
}
