package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountRule is what a promo code grants.
type DiscountRule struct {
	Code       string
	Percentage decimal.Decimal
}

// PromoPolicy resolves promo codes to discount rules.
type PromoPolicy interface {
	Lookup(code string) (DiscountRule, bool)
}

// StaticPromoPolicy is a fixed offer table matched case-insensitively.
type StaticPromoPolicy map[string]decimal.Decimal

// DefaultPromoPolicy returns the marketplace's current offers.
func DefaultPromoPolicy() StaticPromoPolicy {
	return StaticPromoPolicy{
		"FIRST10":   decimal.NewFromInt(10),
		"WELCOME20": decimal.NewFromInt(20),
		"super":     decimal.NewFromInt(10),
	}
}

// Lookup implements PromoPolicy.
func (p StaticPromoPolicy) Lookup(code string) (DiscountRule, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return DiscountRule{}, false
	}
	for known, pct := range p {
		if strings.EqualFold(known, code) {
			return DiscountRule{Code: known, Percentage: pct}, true
		}
	}
	return DiscountRule{}, false
}
