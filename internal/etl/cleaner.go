package etl

import (
	"github.com/shopspring/decimal"

	"textileworker/internal/crawler"
)

// CanonicalProduct is one row of the canonical output table. Field
// order is column order: identifier first, the surviving attribute
// fields in their raw relative order, and price/unit/currency last.
type CanonicalProduct struct {
	ProductID    int
	Location     *string
	Brand        *string
	FabricType   *string
	Pattern      *string
	GSM          *string
	Usage        *string
	Availability *string
	Price        *decimal.Decimal
	Unit         *string
	Currency     *string
}

// CanonicalHeader names every canonical column in output order
var CanonicalHeader = []string{
	"product_id",
	"location",
	"brand",
	"fabric_type",
	"pattern",
	"gsm",
	"usage",
	"availability",
	"price",
	"unit",
	"currency",
}

// Clean normalizes a raw batch into the canonical table:
//
//  1. deduplicate by product URL, keeping the first occurrence in
//     batch order
//  2. assign dense 1-based sequential identifiers in surviving order,
//     discarding any site-provided identifier
//  3. parse each row's raw price text into amount/unit/currency
//  4. drop the scrape-only fields (name, URL, description, images)
//
// Input records are never mutated; the output is built row by row.
func Clean(records []crawler.RawProduct) []CanonicalProduct {
	seen := make(map[string]struct{}, len(records))
	cleaned := make([]CanonicalProduct, 0, len(records))

	for _, r := range records {
		if _, dup := seen[r.ProductURL]; dup {
			continue
		}
		seen[r.ProductURL] = struct{}{}

		price := ParsePrice(r.Price)

		cleaned = append(cleaned, CanonicalProduct{
			ProductID:    len(cleaned) + 1,
			Location:     r.Location,
			Brand:        r.Brand,
			FabricType:   r.FabricType,
			Pattern:      r.Pattern,
			GSM:          r.GSM,
			Usage:        r.Usage,
			Availability: r.Availability,
			Price:        price.Amount,
			Unit:         price.Unit,
			Currency:     price.Currency,
		})
	}

	return cleaned
}
