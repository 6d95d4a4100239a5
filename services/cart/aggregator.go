package cart

import (
	"strings"
	"time"

	"localconnect/models"

	"github.com/shopspring/decimal"
)

// Cart mutates a CartState. It holds no other state, so any stored cart can
// be wrapped, changed and saved back.
type Cart struct {
	state *models.CartState
}

// New wraps state, initialising an empty cart when state is nil.
func New(state *models.CartState) *Cart {
	if state == nil {
		state = &models.CartState{}
	}
	if state.Active == "" {
		state.Active = models.CategoryService
	}
	if state.Services == nil {
		state.Services = []models.CartLineItem{}
	}
	if state.Events == nil {
		state.Events = []models.CartLineItem{}
	}
	if state.Promos == nil {
		state.Promos = map[models.Category]models.AppliedPromo{}
	}
	return &Cart{state: state}
}

// State returns the underlying state.
func (c *Cart) State() *models.CartState {
	return c.state
}

// Active returns the active category.
func (c *Cart) Active() models.Category {
	return c.state.Active
}

// Items returns the items of category.
func (c *Cart) Items(category models.Category) []models.CartLineItem {
	switch category {
	case models.CategoryService:
		return c.state.Services
	case models.CategoryEvent:
		return c.state.Events
	}
	return nil
}

func (c *Cart) setItems(category models.Category, items []models.CartLineItem) {
	if category == models.CategoryEvent {
		c.state.Events = items
	} else {
		c.state.Services = items
	}
	c.touch()
}

func (c *Cart) touch() {
	c.state.UpdatedAt = time.Now().UTC()
}

// AddItem appends item to category. A ticket already in the cart gains one
// unit, up to its availability; a service already in the cart is left alone.
func (c *Cart) AddItem(category models.Category, item models.CartLineItem) error {
	if !category.Valid() {
		return ErrUnknownCategory
	}
	if item.Kind == "" {
		item.Kind = kindFor(category)
	}
	if models.CategoryFor(item.Kind) != category {
		return ErrCategoryMismatch
	}
	if strings.TrimSpace(item.ID) == "" || item.Price < 0 || item.Fee < 0 {
		return ErrInvalidItem
	}

	items := c.Items(category)
	for i := range items {
		if items[i].ID != item.ID {
			continue
		}
		if item.Kind == models.KindTicket && items[i].Quantity < items[i].AvailableTickets {
			items[i].Quantity++
			c.touch()
		}
		return nil
	}

	switch item.Kind {
	case models.KindService:
		item.Quantity = 1
		item.Fee = 0
	case models.KindTicket:
		if item.AvailableTickets < 1 {
			return ErrSoldOut
		}
		item.Quantity = clamp(item.Quantity, 1, item.AvailableTickets)
	}
	c.setItems(category, append(items, item))
	return nil
}

// RemoveItem drops itemID from category. Absent items are ignored.
func (c *Cart) RemoveItem(category models.Category, itemID string) error {
	if !category.Valid() {
		return ErrUnknownCategory
	}
	items := c.Items(category)
	kept := make([]models.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) != len(items) {
		c.setItems(category, kept)
	}
	return nil
}

// SetQuantity clamps ticket quantities to [1, availableTickets]. Services stay at 1.
func (c *Cart) SetQuantity(category models.Category, itemID string, qty int) error {
	if !category.Valid() {
		return ErrUnknownCategory
	}
	items := c.Items(category)
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		if items[i].Kind == models.KindTicket {
			items[i].Quantity = clamp(qty, 1, items[i].AvailableTickets)
		} else {
			items[i].Quantity = 1
		}
		c.touch()
		return nil
	}
	return nil
}

// Clear empties both collections and resets promos and the active category.
func (c *Cart) Clear() {
	c.state.Services = []models.CartLineItem{}
	c.state.Events = []models.CartLineItem{}
	c.state.Active = models.CategoryService
	c.state.Promos = map[models.Category]models.AppliedPromo{}
	c.touch()
}

// SetActive switches the active category.
func (c *Cart) SetActive(category models.Category) error {
	if !category.Valid() {
		return ErrUnknownCategory
	}
	c.state.Active = category
	c.touch()
	return nil
}

// Promo returns the promo applied to category, if any.
func (c *Cart) Promo(category models.Category) (models.AppliedPromo, bool) {
	p, ok := c.state.Promos[category]
	return p, ok
}

// ComputeTotal derives the totals of category from its items and promo.
func (c *Cart) ComputeTotal(category models.Category, fees Fees) Totals {
	pct := decimal.Zero
	if p, ok := c.state.Promos[category]; ok {
		pct = decimal.NewFromFloat(p.Percentage)
	}
	return ComputeTotals(c.Items(category), pct, fees)
}

// ApplyPromoCode applies code to the active category. An unknown code resets
// that category's discount and returns ErrUnknownPromo.
func (c *Cart) ApplyPromoCode(code string, policy PromoPolicy) (models.AppliedPromo, error) {
	active := c.state.Active
	rule, ok := policy.Lookup(code)
	if !ok {
		delete(c.state.Promos, active)
		c.touch()
		return models.AppliedPromo{}, ErrUnknownPromo
	}
	applied := models.AppliedPromo{Code: rule.Code, Percentage: rule.Percentage.InexactFloat64()}
	c.state.Promos[active] = applied
	c.touch()
	return applied, nil
}

func kindFor(category models.Category) models.ItemKind {
	if category == models.CategoryEvent {
		return models.KindTicket
	}
	return models.KindService
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
