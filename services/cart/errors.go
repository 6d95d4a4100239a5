package cart

import "errors"

var (
	ErrUnknownCategory  = errors.New("unknown cart category")
	ErrCategoryMismatch = errors.New("item type does not belong to this category")
	ErrSoldOut          = errors.New("no tickets available")
	ErrInvalidItem      = errors.New("item is missing an identifier or price")
	ErrUnknownPromo     = errors.New("invalid promo code")
	ErrCartNotFound     = errors.New("cart not found")
)
