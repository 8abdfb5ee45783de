// internal/productform/pricing.go
package productform

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// OfferPrice computes mrp - mrp*discount/100 rounded to two decimals.
func OfferPrice(mrp, discountPercentage decimal.Decimal) decimal.Decimal {
	return mrp.Sub(mrp.Mul(discountPercentage).Div(hundred)).Round(2)
}
