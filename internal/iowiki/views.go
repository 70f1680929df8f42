package iowiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/wikipeople/wpdb/internal/iohttp"
)

type viewsResponse struct {
	Items []struct {
		Views int64 `json:"views"`
	} `json:"items"`
}

// MonthlyViews sums the monthly page view counts of a title over the
// configured fixed window. The metrics endpoint answers 404 for
// articles nobody viewed in the window; that is zero views, not a
// failure.
func (w *iowiki) MonthlyViews(
	ctx context.Context,
	title string,
) (int64, error) {
	if err := w.pace(ctx); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, w.cfg.Wiki.Timeout)
	defer cancel()

	article := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	u := fmt.Sprintf(
		"%s/metrics/pageviews/per-article/%s/all-access/user/%s/monthly/%s/%s",
		w.cfg.Wiki.RestURL,
		w.cfg.Wiki.Project,
		article,
		w.cfg.Sync.PageviewsStart,
		w.cfg.Sync.PageviewsEnd,
	)

	hdr := http.Header{}
	hdr.Set("User-Agent", w.cfg.Wiki.UserAgent)
	hdr.Set("Accept", "application/json")

	body, err := iohttp.Get(ctx, w.client, w.policy, u, hdr)
	if err != nil {
		if errors.Is(err, iohttp.ErrNotFound) {
			return 0, nil
		}
		return 0, RequestError("pageviews", err)
	}

	var page viewsResponse
	if err = json.Unmarshal(body, &page); err != nil {
		return 0, DecodeError("pageviews", err)
	}

	var total int64
	for _, item := range page.Items {
		total += item.Views
	}
	return total, nil
}
