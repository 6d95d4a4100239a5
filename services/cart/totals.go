package cart

import (
	"localconnect/config"
	"localconnect/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Fees are the flat charges and tax rate applied on top of a subtotal.
type Fees struct {
	DeliveryFee decimal.Decimal
	PlatformFee decimal.Decimal
	TaxRate     decimal.Decimal
}

// DefaultFees returns the marketplace's standard charges.
func DefaultFees() Fees {
	return Fees{
		DeliveryFee: decimal.NewFromInt(35),
		PlatformFee: decimal.NewFromInt(10),
		TaxRate:     decimal.RequireFromString("0.13"),
	}
}

// FeesFromConfig reads the charges from the loaded configuration.
func FeesFromConfig(cfg config.Config) Fees {
	return Fees{
		DeliveryFee: decimal.NewFromFloat(cfg.DeliveryFee),
		PlatformFee: decimal.NewFromFloat(cfg.PlatformFee),
		TaxRate:     decimal.NewFromFloat(cfg.TaxRate),
	}
}

// Totals is the derived breakdown of one cart collection.
type Totals struct {
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	DeliveryFee decimal.Decimal
	PlatformFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Taxable is the amount tax is charged on.
func (t Totals) Taxable() decimal.Decimal {
	return t.Subtotal.Sub(t.Discount).Add(t.DeliveryFee).Add(t.PlatformFee)
}

// View converts the breakdown to its JSON form.
func (t Totals) View(category models.Category, promoCode string) models.CartTotals {
	return models.CartTotals{
		Category:    category,
		Subtotal:    t.Subtotal.InexactFloat64(),
		Discount:    t.Discount.InexactFloat64(),
		DeliveryFee: t.DeliveryFee.InexactFloat64(),
		PlatformFee: t.PlatformFee.InexactFloat64(),
		Tax:         t.Tax.InexactFloat64(),
		Total:       t.Total.InexactFloat64(),
		PromoCode:   promoCode,
	}
}

// Subtotal sums (price + fee) × quantity.
func Subtotal(items []models.CartLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		unit := decimal.NewFromFloat(item.Price).Add(decimal.NewFromFloat(item.Fee))
		sum = sum.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Discount is percentage of subtotal.
func Discount(subtotal, percentage decimal.Decimal) decimal.Decimal {
	if percentage.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	d := subtotal.Mul(percentage).Div(hundred)
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}

// ComputeTotals is the pure total of items with a percentage discount.
// Results are unrounded; rounding happens only when amounts leave the system.
func ComputeTotals(items []models.CartLineItem, discountPercentage decimal.Decimal, fees Fees) Totals {
	t := Totals{
		Subtotal:    Subtotal(items),
		DeliveryFee: fees.DeliveryFee,
		PlatformFee: fees.PlatformFee,
	}
	t.Discount = Discount(t.Subtotal, discountPercentage)
	t.Tax = t.Taxable().Mul(fees.TaxRate)
	t.Total = t.Taxable().Add(t.Tax)
	return t
}
