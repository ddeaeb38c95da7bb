package crawler

// PageState identifies which handler a fetched page belongs to
type PageState int

const (
	// StateListing is a catalog page with product cards and pagination
	StateListing PageState = iota
	// StateDetail is a single product's dedicated page
	StateDetail
)

// String returns the state name for logging
func (s PageState) String() string {
	switch s {
	case StateListing:
		return "listing"
	case StateDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Task is a fetch request emitted by a page handler and executed by the
// scheduler. The scheduler fetches Task.URL and dispatches the response
// back through Handle with Task.State.
type Task struct {
	State PageState
	URL   string
}

// RawProduct is one scraped product detail page. All fields except
// ProductURL are optional; a nil pointer means the page did not carry
// the field. Field order mirrors the raw feed column order.
type RawProduct struct {
	ProductURL   string   `json:"product_url"`
	ProductName  *string  `json:"product_name"`
	ProductID    *string  `json:"product_id"`
	Price        *string  `json:"price"`
	Location     *string  `json:"location"`
	Images       []string `json:"images"`
	Brand        *string  `json:"brand"`
	Description  *string  `json:"product_description"`
	FabricType   *string  `json:"fabric_type"`
	Pattern      *string  `json:"pattern"`
	GSM          *string  `json:"gsm"`
	Usage        *string  `json:"usage"`
	Availability *string  `json:"availability"`
}

// PageResult is the outcome of handling one fetched page: records ready
// for storage plus follow-up fetch tasks
type PageResult struct {
	Records []RawProduct
	Tasks   []Task
}

// Selectors contains CSS selectors for the catalog's page structure
type Selectors struct {
	// Listing page
	ProductCard string
	ProductLink string
	NextPage    string

	// Detail page
	ProductName   string
	ProductID     string
	ProductIDAttr string
	Price         string
	Location      string
	Images        string
	ImageAttr     string
	Brand         string
	Description   string

	// Specification table
	SpecRow   string
	SpecLabel string
	SpecValue string
}

// DefaultSelectors returns the selector set for the IndiaMART directory
// catalog
func DefaultSelectors() Selectors {
	return Selectors{
		ProductCard:   "li.mList.tc.bgw",
		ProductLink:   "a.prodNameClamp",
		NextPage:      `a[title="Next"]`,
		ProductName:   "h1.bo.center-heading",
		ProductID:     "div.pdp_enq",
		ProductIDAttr: "data-dispid",
		Price:         "span#askprice_pg-1",
		Location:      "span.city-highlight",
		Images:        "img#img_id",
		ImageAttr:     "data-zoom",
		Brand:         "h2.fs15",
		Description:   "div#descp2 div.pro-descN",
		SpecRow:       "div.isq-container table tbody tr",
		SpecLabel:     "td.tdwdt",
		SpecValue:     "td.tdwdt1",
	}
}
