package iograph

import (
	"context"
	"fmt"
	"log/slog"
)

// Humans reports which of the given entity IDs are instances of human.
// IDs are queried in VALUES chunks; a chunk that fails after retries is
// logged and skipped, and its IDs stay absent from the result. An error
// is returned only when every chunk failed.
func (g *iograph) Humans(ctx context.Context, ids []string) (map[string]bool, error) {
	res := make(map[string]bool, len(ids))
	chunks := chunkIDs(validIDs(ids), g.cfg.Graph.ChunkSize)
	if len(chunks) == 0 {
		return res, nil
	}

	var failed int
	var lastErr error
	for _, chunk := range chunks {
		page, err := g.query(ctx, humansQuery(chunk))
		if err != nil {
			failed++
			lastErr = err
			slog.Warn("Humanness chunk failed, skipping",
				"ids", len(chunk), "error", err)
			continue
		}
		for _, binding := range page.Results.Bindings {
			if item, ok := binding["item"]; ok {
				res[entityID(item.Value)] = true
			}
		}
	}
	if failed == len(chunks) {
		return nil, QueryError("humans", lastErr)
	}
	return res, nil
}

func humansQuery(ids []string) string {
	return fmt.Sprintf(
		"SELECT ?item WHERE { VALUES ?item { %s } ?item wdt:P31 wd:Q5 . }",
		valuesClause(ids),
	)
}
