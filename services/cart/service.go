package cart

import (
	"context"
	"errors"

	"localconnect/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog resolves a listing into a priced line item, so prices always come
// from storage rather than from the client.
type Catalog interface {
	Resolve(ctx context.Context, kind models.ItemKind, id string) (*models.CartLineItem, error)
}

// View is a cart together with the totals of its active category.
type View struct {
	Cart *models.CartState `json:"cart"`
	// Totals is the active category; Categories holds both.
	Totals     models.CartTotals                     `json:"totals"`
	Categories map[models.Category]models.CartTotals `json:"categories"`
}

// CartService loads, mutates and saves carts.
type CartService interface {
	Get(ctx context.Context, cartID string) (*View, error)
	AddItem(ctx context.Context, cartID string, kind models.ItemKind, itemID string, quantity int) (*View, error)
	RemoveItem(ctx context.Context, cartID string, category models.Category, itemID string) (*View, error)
	SetQuantity(ctx context.Context, cartID string, category models.Category, itemID string, quantity int) (*View, error)
	SetActive(ctx context.Context, cartID string, category models.Category) (*View, error)
	ApplyPromoCode(ctx context.Context, cartID, code string) (*View, error)
	Clear(ctx context.Context, cartID string) error
	// Snapshot returns the stored cart without creating one.
	Snapshot(ctx context.Context, cartID string) (*Cart, error)
}

// DefaultCartService implements CartService.
type DefaultCartService struct {
	Store   Store
	Catalog Catalog
	Policy  PromoPolicy
	Fees    Fees
	Logger  *zap.Logger
}

// NewCartService wires the default cart service.
func NewCartService(store Store, catalog Catalog, policy PromoPolicy, fees Fees, logger *zap.Logger) *DefaultCartService {
	return &DefaultCartService{Store: store, Catalog: catalog, Policy: policy, Fees: fees, Logger: logger}
}

// load returns the stored cart, or a new empty one when none exists.
func (s *DefaultCartService) load(ctx context.Context, cartID string) (*Cart, error) {
	if cartID == "" {
		cartID = uuid.NewString()
	}
	state, err := s.Store.Load(ctx, cartID)
	if errors.Is(err, ErrCartNotFound) {
		return New(&models.CartState{ID: cartID}), nil
	}
	if err != nil {
		return nil, err
	}
	state.ID = cartID
	return New(state), nil
}

func (s *DefaultCartService) view(c *Cart) *View {
	categories := make(map[models.Category]models.CartTotals, 2)
	for _, category := range []models.Category{models.CategoryService, models.CategoryEvent} {
		promo, _ := c.Promo(category)
		categories[category] = c.ComputeTotal(category, s.Fees).View(category, promo.Code)
	}
	return &View{
		Cart:       c.State(),
		Totals:     categories[c.Active()],
		Categories: categories,
	}
}

func (s *DefaultCartService) mutate(ctx context.Context, cartID string, fn func(*Cart) error) (*View, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	fnErr := fn(c)
	if fnErr != nil && !errors.Is(fnErr, ErrUnknownPromo) {
		return nil, fnErr
	}
	if err := s.Store.Save(ctx, c.State()); err != nil {
		return nil, err
	}
	return s.view(c), fnErr
}

// Get returns the cart and its totals.
func (s *DefaultCartService) Get(ctx context.Context, cartID string) (*View, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// Snapshot returns the stored cart.
func (s *DefaultCartService) Snapshot(ctx context.Context, cartID string) (*Cart, error) {
	state, err := s.Store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return New(state), nil
}

// AddItem resolves the listing and adds it to the matching category.
func (s *DefaultCartService) AddItem(ctx context.Context, cartID string, kind models.ItemKind, itemID string, quantity int) (*View, error) {
	item, err := s.Catalog.Resolve(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}
	if quantity > 0 {
		item.Quantity = quantity
	}
	return s.mutate(ctx, cartID, func(c *Cart) error {
		return c.AddItem(models.CategoryFor(item.Kind), *item)
	})
}

// RemoveItem drops an item.
func (s *DefaultCartService) RemoveItem(ctx context.Context, cartID string, category models.Category, itemID string) (*View, error) {
	return s.mutate(ctx, cartID, func(c *Cart) error {
		return c.RemoveItem(category, itemID)
	})
}

// SetQuantity changes a ticket quantity.
func (s *DefaultCartService) SetQuantity(ctx context.Context, cartID string, category models.Category, itemID string, quantity int) (*View, error) {
	return s.mutate(ctx, cartID, func(c *Cart) error {
		return c.SetQuantity(category, itemID, quantity)
	})
}

// SetActive switches the active category.
func (s *DefaultCartService) SetActive(ctx context.Context, cartID string, category models.Category) (*View, error) {
	return s.mutate(ctx, cartID, func(c *Cart) error {
		return c.SetActive(category)
	})
}

// ApplyPromoCode applies code to the active category. On an unknown code the
// reset cart is still saved and returned alongside ErrUnknownPromo.
func (s *DefaultCartService) ApplyPromoCode(ctx context.Context, cartID, code string) (*View, error) {
	return s.mutate(ctx, cartID, func(c *Cart) error {
		_, err := c.ApplyPromoCode(code, s.Policy)
		if err != nil {
			s.Logger.Debug("promo code rejected", zap.String("cartId", c.State().ID), zap.String("code", code))
		}
		return err
	})
}

// Clear removes the cart.
func (s *DefaultCartService) Clear(ctx context.Context, cartID string) error {
	return s.Store.Delete(ctx, cartID)
}
