package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const listingPageHTML = `<html><body>
	<ul>
		<li class="mList tc bgw">
			<a class="prodNameClamp" href="https://www.indiamart.com/proddetail/cotton-1.html">Cotton Fabric 1</a>
		</li>
		<li class="mList tc bgw">
			<a class="prodNameClamp" href="/proddetail/cotton-2.html">Cotton Fabric 2</a>
		</li>
		<li class="mList tc bgw">
			<span>card without a link</span>
		</li>
	</ul>
	<a title="Next" href="/impcat/cotton-fabric-2.html">Next</a>
</body></html>`

func TestHandleListing(t *testing.T) {
	extractor := NewExtractor(DefaultSelectors())
	doc := mustDoc(t, listingPageHTML)

	result := extractor.Handle(StateListing, "https://dir.indiamart.com/impcat/cotton-fabric.html", doc)

	assert.Empty(t, result.Records)
	assert.Equal(t, 3, len(result.Tasks))

	// Detail tasks preserve page order; relative URLs are resolved
	// against the listing page.
	assert.Equal(t, StateDetail, result.Tasks[0].State)
	assert.Equal(t, "https://www.indiamart.com/proddetail/cotton-1.html", result.Tasks[0].URL)
	assert.Equal(t, StateDetail, result.Tasks[1].State)
	assert.Equal(t, "https://dir.indiamart.com/proddetail/cotton-2.html", result.Tasks[1].URL)

	// The next page task comes after all detail tasks
	assert.Equal(t, StateListing, result.Tasks[2].State)
	assert.Equal(t, "https://dir.indiamart.com/impcat/cotton-fabric-2.html", result.Tasks[2].URL)
}

func TestHandleListingLastPage(t *testing.T) {
	extractor := NewExtractor(DefaultSelectors())
	doc := mustDoc(t, `<html><body>
		<li class="mList tc bgw"><a class="prodNameClamp" href="/proddetail/p1.html">P1</a></li>
	</body></html>`)

	result := extractor.Handle(StateListing, "https://dir.indiamart.com/impcat/yarn.html", doc)
	assert.Equal(t, 1, len(result.Tasks))
	assert.Equal(t, StateDetail, result.Tasks[0].State)
}

func TestHandleEmptyListing(t *testing.T) {
	// A listing page with no cards and no next link is a valid terminal
	// state, not an error.
	extractor := NewExtractor(DefaultSelectors())
	doc := mustDoc(t, `<html><body><p>No products found</p></body></html>`)

	result := extractor.Handle(StateListing, "https://dir.indiamart.com/impcat/empty.html", doc)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Tasks)
}

func TestHandleDetail(t *testing.T) {
	extractor := NewExtractor(DefaultSelectors())
	doc := mustDoc(t, detailPageHTML)

	result := extractor.Handle(StateDetail, "https://www.indiamart.com/proddetail/cotton-1.html", doc)

	assert.Empty(t, result.Tasks)
	assert.Equal(t, 1, len(result.Records))
	assert.Equal(t, "https://www.indiamart.com/proddetail/cotton-1.html", result.Records[0].ProductURL)
	assert.Equal(t, "Premium Cotton Fabric", *result.Records[0].ProductName)
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t,
		"https://dir.indiamart.com/impcat/page-2.html",
		ResolveURL("https://dir.indiamart.com/impcat/page-1.html", "page-2.html"))
	assert.Equal(t,
		"https://dir.indiamart.com/other.html",
		ResolveURL("https://dir.indiamart.com/impcat/page-1.html", "/other.html"))
	assert.Equal(t,
		"https://www.example.com/abs.html",
		ResolveURL("https://dir.indiamart.com/impcat/page-1.html", "https://www.example.com/abs.html"))
}
