package payment

import (
	"errors"
	"strings"

	"localconnect/models"
)

var ErrNoLineItems = errors.New("no line items provided")

// FromStripeLineItems converts client-built price_data items into price
// lines and returns their common currency.
func FromStripeLineItems(items []models.StripeLineItem, fallbackCurrency string) ([]models.PriceLineItem, string, error) {
	if len(items) == 0 {
		return nil, "", ErrNoLineItems
	}
	currency := strings.ToLower(items[0].PriceData.Currency)
	if currency == "" {
		currency = fallbackCurrency
	}
	lines := make([]models.PriceLineItem, 0, len(items))
	for _, item := range items {
		if item.PriceData.ProductData.Name == "" {
			return nil, "", errors.New("line item is missing a product name")
		}
		if item.PriceData.UnitAmount < 0 {
			return nil, "", errors.New("line item amount cannot be negative")
		}
		if c := strings.ToLower(item.PriceData.Currency); c != "" && c != currency {
			return nil, "", errors.New("line items use different currencies")
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, models.PriceLineItem{
			Name:        item.PriceData.ProductData.Name,
			Description: item.PriceData.ProductData.Description,
			UnitAmount:  item.PriceData.UnitAmount,
			Quantity:    qty,
		})
	}
	return lines, currency, nil
}
