// Package iodiscover finds the source categories worth ingesting. It
// walks the vocabulary's category prefixes through the encyclopedia's
// listing API and filters the results down to people categories.
package iodiscover

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/lifecycle"
	"github.com/wikipeople/wpdb/pkg/vocab"
)

type iodiscover struct {
	enc   client.Encyclopedia
	vocab vocab.Vocab
}

// New creates a lifecycle.Discoverer over an encyclopedia client and a
// vocabulary loader.
func New(enc client.Encyclopedia, voc vocab.Vocab) lifecycle.Discoverer {
	return &iodiscover{enc: enc, vocab: voc}
}

// Discover walks every configured prefix and returns the merged,
// sorted category list. A category survives when it contains an
// occupation keyword, contains no exclusion keyword, and carries a
// language marker unless the prefix it came from already does.
// Supplementary categories join unconditionally.
func (d *iodiscover) Discover(
	ctx context.Context, cfg *config.Config,
) ([]string, error) {
	voc, err := d.vocab.Load()
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	var fetched int
	var lastErr error

	for _, prefix := range voc.CategoryPrefixes {
		categories, err := d.enc.CategoriesByPrefix(ctx, prefix)
		if err != nil {
			lastErr = err
			slog.Warn("Category prefix failed, skipping",
				"prefix", prefix, "error", err)
			continue
		}
		fetched++

		prefixMarked := voc.HasLanguageMarker(prefix)
		for _, category := range categories {
			if voc.IsExcluded(category) {
				continue
			}
			if !voc.IsOccupational(category) {
				continue
			}
			if !prefixMarked && !voc.HasLanguageMarker(category) {
				continue
			}
			set[category] = struct{}{}
		}
	}

	if len(voc.CategoryPrefixes) > 0 && fetched == 0 {
		return nil, PrefixError(lastErr)
	}

	for _, category := range voc.SupplementaryCategories {
		set[category] = struct{}{}
	}

	if len(set) == 0 {
		return nil, EmptyError()
	}

	res := slices.Sorted(maps.Keys(set))
	slog.Info("Discovered categories",
		"count", len(res), "prefixes", fetched)
	return res, nil
}
