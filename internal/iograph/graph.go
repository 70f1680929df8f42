// Package iograph implements the KnowledgeGraph contract over a SPARQL
// endpoint. Entity IDs are batched into VALUES clauses of configurable
// size; a failed chunk is logged and skipped so one bad batch does not
// abort a whole import run.
package iograph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/wikipeople/wpdb/internal/iohttp"
	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/config"
)

type iograph struct {
	cfg    *config.Config
	client *http.Client
	policy iohttp.Policy
}

// New creates a SPARQL-backed client.KnowledgeGraph.
func New(cfg *config.Config) client.KnowledgeGraph {
	return &iograph{
		cfg:    cfg,
		client: iohttp.NewClient(cfg.Graph.Timeout),
		policy: iohttp.DefaultPolicy(),
	}
}

// sparqlResponse is the SPARQL 1.1 JSON results format. Bindings are
// kept as maps because the variable set differs per query.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// query POSTs a SPARQL query and decodes the JSON results. The query
// goes in the request body, so retries rebuild the body reader each
// attempt.
func (g *iograph) query(ctx context.Context, sparql string) (*sparqlResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Graph.Timeout)
	defer cancel()

	form := url.Values{}
	form.Set("query", sparql)
	encoded := form.Encode()

	body, err := iohttp.Do(ctx, g.client, g.policy,
		func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(
				ctx, http.MethodPost,
				g.cfg.Graph.SPARQLURL, strings.NewReader(encoded),
			)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Accept", "application/sparql-results+json")
			req.Header.Set("User-Agent", g.cfg.Wiki.UserAgent)
			return req, nil
		})
	if err != nil {
		return nil, err
	}

	var res sparqlResponse
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("cannot decode sparql results: %w", err)
	}
	return &res, nil
}

var entityIDRe = regexp.MustCompile(`^Q\d+$`)

// validIDs drops entries that are not well-formed entity IDs. They
// would break the VALUES clause and fail the whole chunk.
func validIDs(ids []string) []string {
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if entityIDRe.MatchString(id) {
			res = append(res, id)
		}
	}
	return res
}

func chunkIDs(ids []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var res [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		res = append(res, ids[start:end])
	}
	return res
}

// valuesClause renders entity IDs as a VALUES list body: "wd:Q1 wd:Q2".
func valuesClause(ids []string) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("wd:")
		b.WriteString(id)
	}
	return b.String()
}

// entityID extracts the bare ID from an entity URI like
// "http://www.wikidata.org/entity/Q123".
func entityID(uri string) string {
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
