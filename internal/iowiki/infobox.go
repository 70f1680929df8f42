package iowiki

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wikipeople/wpdb/internal/iohttp"
)

// PageHTML fetches the rendered page of a title.
func (w *iowiki) PageHTML(
	ctx context.Context,
	title string,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.Wiki.Timeout)
	defer cancel()

	u := w.cfg.Wiki.SiteURL + "/wiki/" +
		url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	hdr := http.Header{}
	hdr.Set("User-Agent", w.cfg.Wiki.UserAgent)
	hdr.Set("Accept", "text/html")

	body, err := iohttp.Get(ctx, w.client, w.policy, u, hdr)
	if err != nil {
		return "", RequestError("page html", err)
	}
	return string(body), nil
}

// InfoboxFacts are the two fields worth scraping from a rendered
// infobox when the knowledge graph had neither.
type InfoboxFacts struct {
	BirthDate  string
	BirthPlace string
}

// ParseInfobox extracts birth date and birth place from a rendered
// page. Best effort: the markup varies between articles, so anything
// unrecognized comes back empty rather than as an error.
//
// The birth date prefers the machine-readable bday span. The birth
// place joins the link texts of the Born row, which reproduces the
// comma-separated "place, region, polity" form the normalizer
// expects.
func ParseInfobox(html string) InfoboxFacts {
	var res InfoboxFacts

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return res
	}

	infobox := doc.Find("table.infobox").First()
	if infobox.Length() == 0 {
		return res
	}

	infobox.Find("tr").EachWithBreak(
		func(_ int, row *goquery.Selection) bool {
			label := strings.TrimSpace(row.Find("th").First().Text())
			if !strings.EqualFold(label, "Born") {
				return true
			}

			cell := row.Find("td").First()

			if bday := cell.Find("span.bday").First(); bday.Length() > 0 {
				res.BirthDate = strings.TrimSpace(bday.Text())
			}

			var parts []string
			cell.Find("a").Each(
				func(_ int, link *goquery.Selection) {
					text := strings.TrimSpace(link.Text())
					// Citation markers render as linked brackets.
					if text == "" || strings.HasPrefix(text, "[") {
						return
					}
					parts = append(parts, text)
				})
			res.BirthPlace = strings.Join(parts, ", ")

			return false
		})

	return res
}
