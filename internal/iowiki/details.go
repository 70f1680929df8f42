package iowiki

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/wikipeople/wpdb/pkg/client"
)

type detailsResponse struct {
	Query struct {
		Pages []struct {
			PageID    int64  `json:"pageid"`
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Extract   string `json:"extract"`
			Thumbnail struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
			PageProps struct {
				WikibaseItem string `json:"wikibase_item"`
			} `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

// PageDetails fetches intro extract, lead image and knowledge graph
// id for the given pages. Requests are chunked to the API's batch
// ceiling; pages the API does not know are left out of the result.
func (w *iowiki) PageDetails(
	ctx context.Context,
	pageIDs []int64,
) (map[int64]client.PageDetails, error) {
	res := make(map[int64]client.PageDetails, len(pageIDs))

	batch := w.cfg.Wiki.BatchSize
	for start := 0; start < len(pageIDs); start += batch {
		end := start + batch
		if end > len(pageIDs) {
			end = len(pageIDs)
		}

		ids := make([]string, 0, end-start)
		for _, id := range pageIDs[start:end] {
			ids = append(ids, strconv.FormatInt(id, 10))
		}

		params := url.Values{}
		params.Set("action", "query")
		params.Set("pageids", strings.Join(ids, "|"))
		params.Set("prop", "extracts|pageimages|pageprops")
		params.Set("exintro", "1")
		params.Set("explaintext", "1")
		params.Set("piprop", "thumbnail")
		params.Set("pithumbsize", "500")
		params.Set("ppprop", "wikibase_item")

		var page detailsResponse
		if err := w.query(ctx, params, &page); err != nil {
			return nil, err
		}

		for _, p := range page.Query.Pages {
			if p.Missing {
				continue
			}
			res[p.PageID] = client.PageDetails{
				PageID:   p.PageID,
				Title:    p.Title,
				Summary:  p.Extract,
				ImageURL: p.Thumbnail.Source,
				GraphID:  p.PageProps.WikibaseItem,
			}
		}
	}

	return res, nil
}
