package iovocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

func TestLoadVocabConfig_Minimal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tmpDir, err := os.MkdirTemp("", "vocab-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	yamlContent := `
category_prefixes:
  - Ukrainian
occupation_keywords:
  - writers
  - painters
exclusion_keywords:
  - organizations
language_markers:
  - Ukrainian
polity_suffixes:
  - Soviet Union
occupation_map:
  poet: writer
`

	vocabPath := filepath.Join(tmpDir, "vocab.yaml")
	err = os.WriteFile(vocabPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	voc, err := loadVocabConfig(vocabPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ukrainian"}, voc.CategoryPrefixes)
	assert.Equal(t, []string{"writers", "painters"}, voc.OccupationKeywords)
	assert.Equal(t, "writer", voc.OccupationMap["poet"])
	assert.Empty(t, voc.SupplementaryCategories)
}

func TestLoadVocabConfig_CollectsWarnings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tmpDir, err := os.MkdirTemp("", "vocab-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	// Usable but sparse: no exclusions, maps or polity suffixes.
	yamlContent := `
category_prefixes:
  - Ukrainian
occupation_keywords:
  - writers
`

	vocabPath := filepath.Join(tmpDir, "vocab.yaml")
	err = os.WriteFile(vocabPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	voc, err := loadVocabConfig(vocabPath)
	require.NoError(t, err)
	assert.NotEmpty(t, voc.Warnings)
}

func TestLoadVocabConfig_FileNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	_, err := loadVocabConfig("nonexistent.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read vocab file")
}

func TestLoadVocabConfig_InvalidYAML(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tmpDir, err := os.MkdirTemp("", "vocab-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	vocabPath := filepath.Join(tmpDir, "vocab.yaml")
	err = os.WriteFile(vocabPath, []byte("category_prefixes: [unclosed"), 0644)
	require.NoError(t, err)

	_, err = loadVocabConfig(vocabPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse vocab file")
}

func TestLoadVocabConfig_Unusable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tmpDir, err := os.MkdirTemp("", "vocab-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	// Occupation keywords alone cannot drive discovery: there are no
	// category prefixes and no supplementary categories to walk.
	yamlContent := `
occupation_keywords:
  - writers
`

	vocabPath := filepath.Join(tmpDir, "vocab.yaml")
	err = os.WriteFile(vocabPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	_, err = loadVocabConfig(vocabPath)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tmpDir, err := os.MkdirTemp("", "vocab-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(tmpDir)})
	_, err = New(cfg).Load()
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.VocabConfigError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "failed to load vocab config")
}
