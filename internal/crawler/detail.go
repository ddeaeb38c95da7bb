package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Extractor turns fetched pages into records and follow-up tasks.
// It keeps no state between invocations; every method is a pure
// function of the page content it is given.
type Extractor struct {
	Selectors Selectors
}

// NewExtractor creates an extractor for the given selector set
func NewExtractor(selectors Selectors) *Extractor {
	return &Extractor{Selectors: selectors}
}

// ExtractDetail builds one RawProduct from a product detail page.
// Missing fields become nil, never an error; the record is fully
// populated before it is returned and never mutated afterwards.
func (e *Extractor) ExtractDetail(pageURL string, doc *goquery.Document) RawProduct {
	sel := e.Selectors

	specs := MatchSpecs(e.buildSpecTable(doc))

	return RawProduct{
		ProductURL:   pageURL,
		ProductName:  firstText(doc, sel.ProductName),
		ProductID:    firstAttr(doc, sel.ProductID, sel.ProductIDAttr),
		Price:        joinedText(doc, sel.Price),
		Location:     firstText(doc, sel.Location),
		Images:       attrValues(doc, sel.Images, sel.ImageAttr),
		Brand:        firstText(doc, sel.Brand),
		Description:  joinedText(doc, sel.Description),
		FabricType:   specs.FabricType,
		Pattern:      specs.Pattern,
		GSM:          specs.GSM,
		Usage:        specs.Usage,
		Availability: specs.Availability,
	}
}

// buildSpecTable collects every row of the specification table.
// Each cell contributes only its first text node, so nested markup
// after the leading text is ignored. Rows missing either cell are
// skipped; duplicate labels overwrite in table order.
func (e *Extractor) buildSpecTable(doc *goquery.Document) *SpecTable {
	sel := e.Selectors
	table := NewSpecTable()

	doc.Find(sel.SpecRow).Each(func(_ int, row *goquery.Selection) {
		label := row.Find(sel.SpecLabel).First()
		value := row.Find(sel.SpecValue).First()
		if label.Length() == 0 || value.Length() == 0 {
			return
		}
		table.Set(firstTextNode(label), firstTextNode(value))
	})

	return table
}

// firstTextNode returns the first text node, in document order, under
// the selection's first element, or "" when there is none
func firstTextNode(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var walk func(n *html.Node) (string, bool)
	walk = func(n *html.Node) (string, bool) {
		if n.Type == html.TextNode {
			return n.Data, true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if text, ok := walk(c); ok {
				return text, true
			}
		}
		return "", false
	}
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if text, ok := walk(c); ok {
			return text
		}
	}
	return ""
}

// firstText returns the trimmed text of the first matching element, or
// nil when nothing matches
func firstText(doc *goquery.Document, selector string) *string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	text := strings.TrimSpace(sel.Text())
	return &text
}

// joinedText concatenates the text of all matching nodes in document
// order with no separator, then trims. Zero matches yield nil, not an
// empty string.
func joinedText(doc *goquery.Document, selector string) *string {
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	var b strings.Builder
	sel.Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
	})
	text := strings.TrimSpace(b.String())
	return &text
}

// firstAttr returns the named attribute of the first matching element,
// or nil when nothing matches or the attribute is absent
func firstAttr(doc *goquery.Document, selector, attr string) *string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	value, exists := sel.Attr(attr)
	if !exists {
		return nil
	}
	value = strings.TrimSpace(value)
	return &value
}

// attrValues collects the named attribute from every matching element
// in document order. The list may be empty.
func attrValues(doc *goquery.Document, selector, attr string) []string {
	var values []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if value, exists := s.Attr(attr); exists {
			values = append(values, strings.TrimSpace(value))
		}
	})
	return values
}
