package iograph

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/wikipeople/wpdb/pkg/client"
)

// PersonFacts fetches birth and death data and occupations for the
// given entity IDs. The results table has one row per fact combination,
// so rows are folded back into one record per entity: scalars are
// first-wins, occupations accumulate without duplicates. Chunk failures
// follow the same skip-and-continue rule as Humans.
func (g *iograph) PersonFacts(
	ctx context.Context, ids []string,
) (map[string]client.PersonFacts, error) {
	res := make(map[string]client.PersonFacts, len(ids))
	chunks := chunkIDs(validIDs(ids), g.cfg.Graph.ChunkSize)
	if len(chunks) == 0 {
		return res, nil
	}

	var failed int
	var lastErr error
	for _, chunk := range chunks {
		page, err := g.query(ctx, factsQuery(chunk))
		if err != nil {
			failed++
			lastErr = err
			slog.Warn("Facts chunk failed, skipping",
				"ids", len(chunk), "error", err)
			continue
		}
		for _, binding := range page.Results.Bindings {
			item, ok := binding["item"]
			if !ok {
				continue
			}
			id := entityID(item.Value)
			facts := res[id]
			facts.GraphID = id
			setIfEmpty(&facts.BirthDate, binding, "birthDate")
			setIfEmpty(&facts.DeathDate, binding, "deathDate")
			setIfEmpty(&facts.BirthPlace, binding, "birthPlaceLabel")
			setIfEmpty(&facts.DeathPlace, binding, "deathPlaceLabel")
			if occ := binding["occupationLabel"].Value; occ != "" &&
				!slices.Contains(facts.Occupations, occ) {
				facts.Occupations = append(facts.Occupations, occ)
			}
			res[id] = facts
		}
	}
	if failed == len(chunks) {
		return nil, QueryError("person facts", lastErr)
	}
	return res, nil
}

func setIfEmpty(dst *string, binding map[string]sparqlValue, key string) {
	if *dst == "" && binding[key].Value != "" {
		*dst = binding[key].Value
	}
}

func factsQuery(ids []string) string {
	return fmt.Sprintf(`SELECT ?item ?birthDate ?deathDate ?birthPlaceLabel ?deathPlaceLabel ?occupationLabel
WHERE {
  VALUES ?item { %s }
  OPTIONAL { ?item wdt:P569 ?birthDate . }
  OPTIONAL { ?item wdt:P570 ?deathDate . }
  OPTIONAL { ?item wdt:P19 ?birthPlace . }
  OPTIONAL { ?item wdt:P20 ?deathPlace . }
  OPTIONAL { ?item wdt:P106 ?occupation . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}`, valuesClause(ids))
}
