package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Handle dispatches one fetched page to the handler for its state and
// returns the records and follow-up tasks it produced. An empty result
// is a normal branch termination, not a failure.
func (e *Extractor) Handle(state PageState, pageURL string, doc *goquery.Document) PageResult {
	switch state {
	case StateListing:
		return e.handleListing(pageURL, doc)
	case StateDetail:
		return PageResult{Records: []RawProduct{e.ExtractDetail(pageURL, doc)}}
	default:
		return PageResult{}
	}
}

// handleListing walks the product cards in page order and emits one
// detail fetch task per card that carries a link, then a single task
// for the next listing page when a pagination link exists. A page with
// no cards and no next link yields an empty result.
func (e *Extractor) handleListing(pageURL string, doc *goquery.Document) PageResult {
	sel := e.Selectors
	var result PageResult

	doc.Find(sel.ProductCard).Each(func(_ int, card *goquery.Selection) {
		href, exists := card.Find(sel.ProductLink).First().Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			return
		}
		result.Tasks = append(result.Tasks, Task{
			State: StateDetail,
			URL:   ResolveURL(pageURL, href),
		})
	})

	if href, exists := doc.Find(sel.NextPage).First().Attr("href"); exists {
		href = strings.TrimSpace(href)
		if href != "" {
			result.Tasks = append(result.Tasks, Task{
				State: StateListing,
				URL:   ResolveURL(pageURL, href),
			})
		}
	}

	return result
}

// ResolveURL resolves a possibly relative href against the page it was
// found on. Unparseable inputs fall back to the href unchanged.
func ResolveURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
