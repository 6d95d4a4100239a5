package checkout

import (
	"strings"

	"localconnect/models"
	"localconnect/services/cart"

	"github.com/shopspring/decimal"
)

// Names of the synthetic price lines.
const (
	DeliveryFeeLine = "Delivery Fee"
	PlatformFeeLine = "Platform Fee"
	TaxLine         = "GST & Charges"
)

// MinorUnits converts an amount to the currency's minor unit, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// BuildPriceList itemises a cart collection for the payment provider.
// Services charge their unit price, tickets unit price plus fee. A promo
// percentage is applied to each unit so the lines add up to the discounted
// subtotal. Fee and tax lines are appended when positive.
func BuildPriceList(category models.Category, items []models.CartLineItem, promo models.AppliedPromo, totals cart.Totals) []models.PriceLineItem {
	factor := decimal.NewFromInt(1)
	if promo.Percentage > 0 {
		factor = factor.Sub(decimal.NewFromFloat(promo.Percentage).Div(decimal.NewFromInt(100)))
	}

	lines := make([]models.PriceLineItem, 0, len(items)+3)
	for _, item := range items {
		unit := decimal.NewFromFloat(item.Price)
		description := item.ServiceType
		if category == models.CategoryEvent {
			unit = unit.Add(decimal.NewFromFloat(item.Fee))
			description = "Event Ticket"
		} else if description == "" {
			description = "Service"
		}
		if promo.Code != "" && promo.Percentage > 0 {
			description = strings.TrimSpace(description + " (" + promo.Code + " applied)")
		}
		qty := int64(item.Quantity)
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, models.PriceLineItem{
			Name:        item.DisplayName(),
			Description: description,
			UnitAmount:  MinorUnits(unit.Mul(factor)),
			Quantity:    qty,
		})
	}

	for _, extra := range []struct {
		name   string
		amount decimal.Decimal
	}{
		{DeliveryFeeLine, totals.DeliveryFee},
		{PlatformFeeLine, totals.PlatformFee},
		{TaxLine, totals.Tax},
	} {
		if extra.amount.GreaterThan(decimal.Zero) {
			lines = append(lines, models.PriceLineItem{Name: extra.name, UnitAmount: MinorUnits(extra.amount), Quantity: 1})
		}
	}
	return lines
}

// SumMinorUnits is the amount a price list charges.
func SumMinorUnits(lines []models.PriceLineItem) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.UnitAmount * l.Quantity
	}
	return sum
}
