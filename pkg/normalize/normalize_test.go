package normalize_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wikipeople/wpdb/pkg/normalize"
)

func TestName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases",
			input:    "Taras Shevchenko",
			expected: "taras shevchenko",
		},
		{
			name:     "strips parenthetical disambiguator",
			input:    "Bohdan Khmelnytsky (hetman)",
			expected: "bohdan khmelnytsky",
		},
		{
			name:     "unifies apostrophe variants",
			input:    "Mykola Skrypnyk’s",
			expected: "mykola skrypnyk's",
		},
		{
			name:     "collapses whitespace",
			input:    "  Lesya   Ukrainka\t",
			expected: "lesya ukrainka",
		},
		{
			name:     "keeps cyrillic letters",
			input:    "Тарас Шевченко",
			expected: "тарас шевченко",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.Name(tt.input))
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{
		"Taras Shevchenko",
		"Bohdan Khmelnytsky (hetman)",
		"  D’Artagnan  de   Batz ",
		"Тарас Григорович Шевченко",
		"",
		"(only parens)",
	}
	for _, s := range inputs {
		once := normalize.Name(s)
		twice := normalize.Name(once)
		assert.Equal(t, once, twice, "Name must be idempotent for %q", s)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic name",
			input:    "Taras Shevchenko",
			expected: "taras-shevchenko",
		},
		{
			name:     "keeps existing hyphens",
			input:    "Jean-Paul Sartre",
			expected: "jean-paul-sartre",
		},
		{
			name:     "drops punctuation",
			input:    "O'Brien, Jr.",
			expected: "obrien-jr",
		},
		{
			name:     "collapses separator runs",
			input:    "a -- b   c",
			expected: "a-b-c",
		},
		{
			name:     "no leading or trailing hyphens",
			input:    " - padded - ",
			expected: "padded",
		},
		{
			name:     "keeps digits",
			input:    "Person 42",
			expected: "person-42",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.Slug(tt.input))
		})
	}
}

func TestSlugCharset(t *testing.T) {
	// Whatever goes in, the slug holds only lowercase letters, digits,
	// and single interior hyphens.
	valid := regexp.MustCompile(`^$|^[\p{Ll}\p{Lo}0-9]+(-[\p{Ll}\p{Lo}0-9]+)*$`)
	inputs := []string{
		"Taras Shevchenko",
		"!!!@#$%^&*()",
		"---",
		"Ім'я По-Батькові",
		"  mixed CASE with\ttabs\nand newlines  ",
		"ends with symbols!?",
		"42",
	}
	for _, s := range inputs {
		res := normalize.Slug(s)
		assert.True(t, valid.MatchString(res),
			"Slug(%q) = %q violates charset", s, res)
	}
}

func TestBirthPlace(t *testing.T) {
	polities := []string{
		"Russian Empire",
		"Soviet Union",
		"Ukrainian SSR",
		"Austria-Hungary",
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain place unchanged",
			input:    "Kyiv",
			expected: "Kyiv",
		},
		{
			name:     "strips parenthetical note",
			input:    "Kyiv (now Ukraine)",
			expected: "Kyiv",
		},
		{
			name:     "strips trailing polity",
			input:    "Kyiv, Russian Empire",
			expected: "Kyiv",
		},
		{
			name:     "strips polity case-insensitively",
			input:    "Kyiv, RUSSIAN EMPIRE",
			expected: "Kyiv",
		},
		{
			name:     "strips stacked polities",
			input:    "Kyiv, Ukrainian SSR, Soviet Union",
			expected: "Kyiv",
		},
		{
			name:     "strips trailing comma",
			input:    "Lviv,",
			expected: "Lviv",
		},
		{
			name:     "collapses whitespace",
			input:    "  Ivano-Frankivsk   oblast ",
			expected: "Ivano-Frankivsk oblast",
		},
		{
			name:     "empty input unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "numeric leak passes through for caller to reject",
			input:    "1814",
			expected: "1814",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalize.BirthPlace(tt.input, polities))
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	table := map[string]string{
		"Ukrainian writers":    "writer",
		"Ukrainian painters":   "painter",
		"Ukrainian scientists": "scientist",
	}

	assert.Equal(t, "writer", normalize.CategoryLabel("Ukrainian writers", table))
	assert.Equal(t, "painter", normalize.CategoryLabel("Ukrainian painters", table))
	assert.Equal(t, "Unknown category",
		normalize.CategoryLabel("Unknown category", table),
		"unmapped categories pass through unchanged")
}

func TestYear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		year  int
		found bool
	}{
		{
			name:  "ISO date",
			input: "1814-03-09",
			year:  1814,
			found: true,
		},
		{
			name:  "prose date",
			input: "9 March 1814",
			year:  1814,
			found: true,
		},
		{
			name:  "year only",
			input: "1856",
			year:  1856,
			found: true,
		},
		{
			name:  "empty input",
			input: "",
			found: false,
		},
		{
			name:  "no digits",
			input: "no digits here",
			found: false,
		},
		{
			name:  "five-digit run is not a year",
			input: "12345",
			found: false,
		},
		{
			name:  "picks first standalone year",
			input: "between 1820 and 1825",
			year:  1820,
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := normalize.Year(tt.input)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.year, year)
			}
		})
	}
}

func TestOccupations(t *testing.T) {
	table := map[string]string{
		"writer":     "writer",
		"poet":       "writer",
		"novelist":   "writer",
		"painter":    "painter",
		"politician": "politician",
	}

	t.Run("maps synonyms to one canonical tag", func(t *testing.T) {
		occs, primary := normalize.Occupations([]string{"poet", "novelist"}, table)
		assert.Equal(t, []string{"writer"}, occs)
		assert.Equal(t, "writer", primary)
	})

	t.Run("keeps first-seen order", func(t *testing.T) {
		occs, primary := normalize.Occupations(
			[]string{"painter", "poet", "politician"}, table)
		assert.Equal(t, []string{"painter", "writer", "politician"}, occs)
		assert.Equal(t, "painter", primary)
	})

	t.Run("unmapped labels pass through lowercased", func(t *testing.T) {
		occs, primary := normalize.Occupations([]string{"  Astronaut "}, table)
		assert.Equal(t, []string{"astronaut"}, occs)
		assert.Equal(t, "", primary, "primary requires a table hit")
	})

	t.Run("skips empty labels", func(t *testing.T) {
		occs, primary := normalize.Occupations([]string{"", "  ", "poet"}, table)
		assert.Equal(t, []string{"writer"}, occs)
		assert.Equal(t, "writer", primary)
	})

	t.Run("empty input", func(t *testing.T) {
		occs, primary := normalize.Occupations(nil, table)
		assert.Empty(t, occs)
		assert.Equal(t, "", primary)
	})
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1814", true},
		{"0", true},
		{"Kyiv", false},
		{"18a14", false},
		{"18 14", false},
		{"", false},
		{"-5", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalize.IsNumeric(tt.input),
			"IsNumeric(%q)", tt.input)
	}
}
