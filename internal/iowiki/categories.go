package iowiki

import (
	"context"
	"net/url"
	"strconv"

	"github.com/wikipeople/wpdb/pkg/client"
)

type membersResponse struct {
	Continue struct {
		CMContinue string `json:"cmcontinue"`
	} `json:"continue"`
	Query struct {
		CategoryMembers []struct {
			PageID int64  `json:"pageid"`
			Title  string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

// CategoryMembers lists the pages of one category, following the
// continuation token until the listing is drained.
func (w *iowiki) CategoryMembers(
	ctx context.Context,
	category string,
) ([]client.PageMember, error) {
	var res []client.PageMember
	cont := ""

	for {
		if err := w.pace(ctx); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("action", "query")
		params.Set("list", "categorymembers")
		params.Set("cmtitle", "Category:"+category)
		params.Set("cmtype", "page")
		params.Set("cmlimit", strconv.Itoa(w.cfg.Wiki.PageLimit))
		if cont != "" {
			params.Set("cmcontinue", cont)
		}

		var page membersResponse
		if err := w.query(ctx, params, &page); err != nil {
			return nil, err
		}

		for _, m := range page.Query.CategoryMembers {
			res = append(res, client.PageMember{
				PageID: m.PageID,
				Title:  m.Title,
			})
		}

		cont = page.Continue.CMContinue
		if cont == "" {
			return res, nil
		}
	}
}

type categoriesResponse struct {
	Continue struct {
		ACContinue string `json:"accontinue"`
	} `json:"continue"`
	Query struct {
		AllCategories []struct {
			Category string `json:"category"`
		} `json:"allcategories"`
	} `json:"query"`
}

// CategoriesByPrefix lists category titles starting with prefix,
// following the continuation token until the listing is drained.
func (w *iowiki) CategoriesByPrefix(
	ctx context.Context,
	prefix string,
) ([]string, error) {
	var res []string
	cont := ""

	for {
		if err := w.pace(ctx); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("action", "query")
		params.Set("list", "allcategories")
		params.Set("acprefix", prefix)
		params.Set("aclimit", strconv.Itoa(w.cfg.Wiki.PageLimit))
		if cont != "" {
			params.Set("accontinue", cont)
		}

		var page categoriesResponse
		if err := w.query(ctx, params, &page); err != nil {
			return nil, err
		}

		for _, c := range page.Query.AllCategories {
			res = append(res, c.Category)
		}

		cont = page.Continue.ACContinue
		if cont == "" {
			return res, nil
		}
	}
}
