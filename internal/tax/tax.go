package tax

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Calculator computes the tax owed on an order before checkout.
// PercentageCalculator applies a flat rate; NoTaxCalculator opts out
// entirely for regions where the chef handles tax themselves.
type Calculator interface {
	// CalculateTax prices the order's line items plus the delivery fee
	// in cents, never fractional dollars.
	CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error)
}

// TaxParams describes one order for the calculator.
type TaxParams struct {
	// PostalCode and Country locate the sale for jurisdiction-aware
	// calculators. The flat calculators ignore them.
	PostalCode       string
	Country          string
	LineItems        []LineItem
	DeliveryFeeCents int32
}

// LineItem is one offering on the order, priced per unit.
type LineItem struct {
	OfferingID     pgtype.UUID
	Title          string
	Quantity       int32
	UnitPriceCents int32
	TotalCents     int32
}

// TaxResult is what the calculator hands back. TotalTaxCents goes on
// the order; the breakdown feeds receipts and reporting.
type TaxResult struct {
	TotalTaxCents int32
	Breakdown     []TaxBreakdown
	IsEstimate    bool
}

// TaxBreakdown is one jurisdiction's slice of the total.
type TaxBreakdown struct {
	Jurisdiction string  // level of government: "state", "county", "city"
	Name         string  // display name, e.g. "WA State Sales Tax"
	Rate         float64 // 0.065 means 6.5%
	AmountCents  int32
}
