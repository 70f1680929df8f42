// Package iowiki implements the Encyclopedia contract against the
// MediaWiki Action API and the Wikimedia REST API.
package iowiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/wikipeople/wpdb/internal/iohttp"
	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/config"
)

type iowiki struct {
	cfg    *config.Config
	client *http.Client
	policy iohttp.Policy

	// limiter paces the rate-sensitive calls (listings, pageviews)
	// on top of retry backoff.
	limiter *rate.Limiter
}

func New(cfg *config.Config) client.Encyclopedia {
	res := iowiki{
		cfg:    cfg,
		client: iohttp.NewClient(cfg.Wiki.Timeout),
		policy: iohttp.DefaultPolicy(),
		limiter: rate.NewLimiter(
			rate.Every(cfg.Wiki.RequestDelay), 1),
	}
	return &res
}

// query performs one Action API call and decodes the body into
// target. The body is decoded as JSON no matter what content type
// the server claims; misconfigured proxies mislabel API responses.
func (w *iowiki) query(
	ctx context.Context,
	params url.Values,
	target any,
) error {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.Wiki.Timeout)
	defer cancel()

	params.Set("format", "json")
	params.Set("formatversion", "2")

	hdr := http.Header{}
	hdr.Set("User-Agent", w.cfg.Wiki.UserAgent)
	hdr.Set("Accept", "application/json")

	u := w.cfg.Wiki.APIURL + "?" + params.Encode()
	body, err := iohttp.Get(ctx, w.client, w.policy, u, hdr)
	if err != nil {
		return RequestError(params.Get("action"), err)
	}

	if err = json.Unmarshal(body, target); err != nil {
		return DecodeError(params.Get("action"), err)
	}
	return nil
}

// pace blocks until the next rate-sensitive call is allowed.
func (w *iowiki) pace(ctx context.Context) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request pacing interrupted: %w", err)
	}
	return nil
}
