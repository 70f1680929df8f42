// Package search holds the shared search types and the pure parts of
// result ranking. Database queries live in internal/iosearch; this
// package only shapes their inputs and outputs, so ranking behavior
// can be tested without a database.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/wikipeople/wpdb/pkg/schema"
)

// Mode selects the text search strategy.
type Mode int

const (
	// Fuzzy matches normalized names by trigram similarity. It
	// tolerates typos and partial names.
	Fuzzy Mode = iota
	// FullText matches whole words in names and summaries.
	FullText
	// Combined runs a fuzzy search first and fills the remaining
	// slots with full-text matches.
	Combined
)

// NewMode converts a string from a flag or a config file into a Mode.
func NewMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fuzzy":
		return Fuzzy, nil
	case "text", "fulltext", "full-text":
		return FullText, nil
	case "combined":
		return Combined, nil
	}
	return Fuzzy, fmt.Errorf("unknown search mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case Fuzzy:
		return "fuzzy"
	case FullText:
		return "fulltext"
	case Combined:
		return "combined"
	}
	return "unknown"
}

// Match is one search hit together with its ranking signals. Which
// signals are filled depends on the search that produced the match.
type Match struct {
	// Person is the matched record.
	Person schema.Person

	// Similarity is the trigram similarity between the normalized
	// query and the matched name, from 0 to 1. Fuzzy matches fill it.
	Similarity float64

	// EditDistance is the Levenshtein distance between the normalized
	// query and the matched name. Rerank computes it for the top
	// matches only; -1 means not computed.
	EditDistance int

	// Rank is the ts_rank score of a full-text match.
	Rank float64

	// DistanceKM is the distance from the search point in kilometers.
	// Radius searches fill it.
	DistanceKM float64
}

// Rerank refines the head of a similarity-ordered match list with
// exact edit distances. Trigram similarity is cheap but coarse: a name
// one typo away from the query can land below a shorter name that
// shares more trigrams. Rerank computes the Levenshtein distance to
// the normalized query for the first depth matches and reorders that
// window by distance, keeping the similarity order between equal
// distances. Matches outside the window keep EditDistance -1.
func Rerank(matches []Match, normalQuery string, depth int) {
	for i := range matches {
		matches[i].EditDistance = -1
	}
	n := depth
	if n > len(matches) {
		n = len(matches)
	}
	if n < 2 {
		if n == 1 {
			matches[0].EditDistance =
				levenshtein.ComputeDistance(normalQuery, matches[0].Person.NameNormal)
		}
		return
	}
	for i := 0; i < n; i++ {
		matches[i].EditDistance =
			levenshtein.ComputeDistance(normalQuery, matches[i].Person.NameNormal)
	}
	sort.SliceStable(matches[:n], func(i, j int) bool {
		return matches[i].EditDistance < matches[j].EditDistance
	})
}

// MergeUnique appends extra matches to primary, skipping records that
// are already present, and truncates the result to limit. Combined
// searches use it to top up fuzzy results with full-text ones without
// duplicating people that both searches found.
func MergeUnique(primary, extra []Match, limit int) []Match {
	seen := make(map[string]struct{}, len(primary))
	res := make([]Match, 0, limit)
	for _, m := range primary {
		if len(res) >= limit {
			return res
		}
		if _, ok := seen[m.Person.ID]; ok {
			continue
		}
		seen[m.Person.ID] = struct{}{}
		res = append(res, m)
	}
	for _, m := range extra {
		if len(res) >= limit {
			return res
		}
		if _, ok := seen[m.Person.ID]; ok {
			continue
		}
		seen[m.Person.ID] = struct{}{}
		res = append(res, m)
	}
	return res
}
