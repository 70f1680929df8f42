// Package vocab provides the domain vocabulary for category discovery
// and enrichment: name prefixes, occupation and exclusion keyword
// lists, label mapping tables, and birthplace polity suffixes.
//
// The vocabulary ships as vocab.yaml in the user's config directory so
// the word lists stay data, not control flow. This package defines the
// schema and pure classification helpers; loading lives in
// internal/iovocab.
package vocab

import (
	"fmt"
	"strings"
)

type Vocab interface {
	Load() (*Vocabulary, error)
}

// Vocabulary represents the complete vocab.yaml configuration file.
type Vocabulary struct {
	// CategoryPrefixes seed discovery: every source category starting
	// with one of these prefixes becomes a candidate.
	CategoryPrefixes []string `yaml:"category_prefixes"`

	// OccupationKeywords classify a category as people-related when
	// any of them occurs in the category name.
	OccupationKeywords []string `yaml:"occupation_keywords"`

	// ExclusionKeywords reject categories about organizations,
	// places, media titles and similar non-person groupings.
	ExclusionKeywords []string `yaml:"exclusion_keywords"`

	// LanguageMarkers must occur in a category name unless the
	// matched prefix already carries one.
	LanguageMarkers []string `yaml:"language_markers"`

	// SupplementaryCategories are known-good categories that prefix
	// matching cannot reach. They are ingested unconditionally.
	SupplementaryCategories []string `yaml:"supplementary_categories"`

	// IgnoreTitles are known-bad page titles dropped from category
	// members before any network call.
	IgnoreTitles []string `yaml:"ignore_titles"`

	// CategoryMap maps source category names to short canonical tags.
	CategoryMap map[string]string `yaml:"category_map"`

	// OccupationMap maps occupation labels from the knowledge graph
	// to canonical tags.
	OccupationMap map[string]string `yaml:"occupation_map"`

	// PolitySuffixes are historical polity names stripped from the
	// tail of birthplace strings.
	PolitySuffixes []string `yaml:"polity_suffixes"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// Validate checks the vocabulary for fatal gaps and collects soft
// issues into Warnings. Fatal: nothing to discover, or no way to tell
// people-categories apart from the rest.
func (v *Vocabulary) Validate() error {
	if len(v.CategoryPrefixes) == 0 && len(v.SupplementaryCategories) == 0 {
		return fmt.Errorf(
			"vocabulary has neither category_prefixes nor supplementary_categories")
	}
	if len(v.OccupationKeywords) == 0 {
		return fmt.Errorf("vocabulary has no occupation_keywords")
	}

	if len(v.ExclusionKeywords) == 0 {
		v.Warnings = append(v.Warnings, ValidationWarning{
			Field:      "exclusion_keywords",
			Message:    "no exclusion keywords, non-person categories will slip through",
			Suggestion: "add keywords like 'organizations' or 'buildings'",
		})
	}
	if len(v.CategoryMap) == 0 {
		v.Warnings = append(v.Warnings, ValidationWarning{
			Field:      "category_map",
			Message:    "no category map, category labels pass through unmapped",
			Suggestion: "map source categories to short tags",
		})
	}
	if len(v.OccupationMap) == 0 {
		v.Warnings = append(v.Warnings, ValidationWarning{
			Field:      "occupation_map",
			Message:    "no occupation map, occupation labels pass through unmapped",
			Suggestion: "map known occupation labels to canonical tags",
		})
	}
	if len(v.PolitySuffixes) == 0 {
		v.Warnings = append(v.Warnings, ValidationWarning{
			Field:      "polity_suffixes",
			Message:    "no polity suffixes, historical qualifiers stay in birthplaces",
			Suggestion: "add suffixes like 'Russian Empire' or 'Soviet Union'",
		})
	}

	return nil
}

// IsOccupational reports whether a category name contains any
// occupation keyword.
func (v *Vocabulary) IsOccupational(category string) bool {
	return containsAny(category, v.OccupationKeywords)
}

// IsExcluded reports whether a category name contains any exclusion
// keyword.
func (v *Vocabulary) IsExcluded(category string) bool {
	return containsAny(category, v.ExclusionKeywords)
}

// HasLanguageMarker reports whether s contains a language marker. When
// no markers are configured the check passes for every input.
func (v *Vocabulary) HasLanguageMarker(s string) bool {
	if len(v.LanguageMarkers) == 0 {
		return true
	}
	return containsAny(s, v.LanguageMarkers)
}

// IsIgnoredTitle reports whether a page title is on the ignore list.
// Titles match exactly.
func (v *Vocabulary) IsIgnoredTitle(title string) bool {
	for _, t := range v.IgnoreTitles {
		if t == title {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	low := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(low, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
