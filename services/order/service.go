package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"localconnect/database/repository"
	orderRepo "localconnect/database/repository/order"
	"localconnect/models"
	"localconnect/services/cart"
	"localconnect/services/checkout"
	"localconnect/services/payment"

	"go.uber.org/zap"
)

// totalsTolerance absorbs client-side rounding of two-decimal amounts.
const totalsTolerance = 0.01

// DefaultOrderService implements OrderService.
type DefaultOrderService struct {
	Repo     orderRepo.OrderRepository
	Catalog  cart.Catalog
	Policy   cart.PromoPolicy
	Fees     cart.Fees
	Sessions SessionChecker
	Carts    CartClearer
	Notifier Notifier
	Profiles ProfileDirectory
	Expiry   checkout.ExpiryScheduler
	Config   checkout.Config
	Logger   *zap.Logger
}

// Create validates and stores a client-posted order. Prices are resolved
// through the catalog and totals recomputed; a client total that disagrees
// is rejected.
func (s *DefaultOrderService) Create(ctx context.Context, req models.OrderRequest, userID string) (*models.Order, error) {
	category, err := categoryFor(req.BookingType)
	if err != nil {
		return nil, err
	}

	c := cart.New(&models.CartState{})
	if err := c.SetActive(category); err != nil {
		return nil, err
	}
	for _, reqItem := range req.Items {
		item, err := s.resolve(ctx, category, reqItem)
		if err != nil {
			return nil, err
		}
		if err := c.AddItem(category, *item); err != nil {
			return nil, &checkout.ValidationError{Field: "items", Message: fmt.Sprintf("item %s: %v", reqItem.ItemID, err)}
		}
		if reqItem.Quantity > 1 {
			_ = c.SetQuantity(category, item.ID, reqItem.Quantity)
		}
	}
	if code := strings.TrimSpace(req.PromoCode); code != "" && !strings.EqualFold(code, "None") {
		if _, err := c.ApplyPromoCode(code, s.Policy); err != nil {
			s.Logger.Info("order posted with unknown promo code", zap.String("code", code))
		}
	}

	submission := checkout.Submission{
		SubmissionID: req.SubmissionID,
		Cart:         c,
		Contact:      req.ContactInfo,
		Location:     req.Location,
		Date:         req.Date,
		TimeSlots:    req.TimeSlots,
		UserID:       userID,
	}
	if err := checkout.Validate(submission); err != nil {
		return nil, err
	}

	order := checkout.BuildOrder(submission, s.Fees)
	if !closeTo(req.Total, order.Total) || !closeTo(req.Discount, order.Discount) {
		s.Logger.Warn("order totals rejected",
			zap.Float64("clientTotal", req.Total), zap.Float64("serverTotal", order.Total),
			zap.Float64("clientDiscount", req.Discount), zap.Float64("serverDiscount", order.Discount))
		return nil, fmt.Errorf("%w: expected total %.2f", ErrTotalsMismatch, order.Total)
	}

	id, err := s.Repo.Create(ctx, order)
	if errors.Is(err, orderRepo.ErrDuplicateSubmission) {
		return s.Repo.GetBySubmissionID(ctx, req.SubmissionID)
	}
	if err != nil {
		return nil, err
	}
	if s.Expiry != nil && s.Config.PaymentWindow > 0 {
		if err := s.Expiry.ScheduleExpiry(ctx, id, s.Config.PaymentWindow); err != nil {
			s.Logger.Warn("failed to schedule order expiry", zap.String("orderId", id), zap.Error(err))
		}
	}
	return order, nil
}

func (s *DefaultOrderService) resolve(ctx context.Context, category models.Category, reqItem models.OrderItem) (*models.CartLineItem, error) {
	kind := models.KindService
	if category == models.CategoryEvent {
		kind = models.KindTicket
	}
	if s.Catalog == nil {
		return &models.CartLineItem{
			ID: reqItem.ItemID, Kind: kind, Price: reqItem.Price, Fee: reqItem.Fees,
			Quantity: reqItem.Quantity, AvailableTickets: reqItem.Quantity, ProviderName: reqItem.Name, EventName: reqItem.Name,
		}, nil
	}
	item, err := s.Catalog.Resolve(ctx, kind, reqItem.ItemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &checkout.ValidationError{Field: "items", Message: "Item " + reqItem.ItemID + " is no longer available."}
	}
	return item, err
}

// Get returns one order.
func (s *DefaultOrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// ListForWorker returns orders for the worker's profiles.
func (s *DefaultOrderService) ListForWorker(ctx context.Context, accountID string) ([]models.Order, error) {
	profiles, err := s.Profiles.ListProfilesByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID.Hex())
	}
	return s.Repo.ListByItemIDs(ctx, ids)
}

// ConfirmPayment checks the session with the provider before marking the order paid.
func (s *DefaultOrderService) ConfirmPayment(ctx context.Context, orderID, sessionID string) (*models.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusPaid || order.Status == models.OrderStatusAccepted {
		return order, nil
	}
	if sessionID == "" {
		sessionID = order.CheckoutSessionID
	}
	if sessionID == "" {
		return nil, ErrNotPaid
	}
	status, err := s.Sessions.SessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if status.OrderID != "" && status.OrderID != orderID {
		return nil, ErrSessionMismatch
	}
	if !status.Paid {
		return nil, ErrNotPaid
	}
	return s.markPaid(ctx, order, sessionID)
}

// HandleWebhook applies a verified checkout event.
func (s *DefaultOrderService) HandleWebhook(ctx context.Context, event *payment.WebhookEvent) error {
	orderID := event.OrderID
	if orderID == "" && event.SessionID != "" {
		// Sessions created outside the checkout flow carry no client reference.
		order, err := s.Repo.GetBySessionID(ctx, event.SessionID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return fmt.Errorf("failed to look up session %s: %w", event.SessionID, err)
		default:
			orderID = order.ID.Hex()
		}
	}
	if orderID == "" {
		s.Logger.Debug("ignoring webhook without order reference", zap.String("type", event.Type))
		return nil
	}
	switch event.Type {
	case payment.EventSessionCompleted:
		if !event.Paid {
			return nil
		}
		order, err := s.Get(ctx, orderID)
		if err != nil {
			return err
		}
		_, err = s.markPaid(ctx, order, event.SessionID)
		return err
	case payment.EventSessionExpired:
		_, err := s.Repo.MarkAbandoned(ctx, orderID, "checkout session expired")
		return err
	}
	return nil
}

// Expire abandons an order still pending after its payment window. A session
// that was paid in the meantime settles the order instead.
func (s *DefaultOrderService) Expire(ctx context.Context, orderID string) error {
	order, err := s.Get(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusPending {
		return nil
	}
	if order.CheckoutSessionID != "" {
		status, err := s.Sessions.SessionStatus(ctx, order.CheckoutSessionID)
		if err != nil {
			return err
		}
		if status.Paid {
			_, err := s.markPaid(ctx, order, order.CheckoutSessionID)
			return err
		}
		if status.Open {
			if err := s.Sessions.ExpireSession(ctx, order.CheckoutSessionID); err != nil {
				s.Logger.Warn("failed to expire checkout session", zap.String("orderId", orderID), zap.Error(err))
			}
		}
	}
	changed, err := s.Repo.MarkAbandoned(ctx, orderID, "payment window elapsed")
	if err != nil {
		return err
	}
	if changed {
		s.Logger.Info("order abandoned", zap.String("orderId", orderID))
	}
	return nil
}

func (s *DefaultOrderService) markPaid(ctx context.Context, order *models.Order, sessionID string) (*models.Order, error) {
	id := order.ID.Hex()
	if order.CheckoutSessionID == "" && sessionID != "" {
		if err := s.Repo.AttachSession(ctx, id, sessionID); err != nil {
			s.Logger.Warn("failed to attach session", zap.String("orderId", id), zap.Error(err))
		}
	}
	paid, changed, err := s.Repo.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		return paid, nil
	}

	s.Logger.Info("order paid", zap.String("orderId", id), zap.Float64("total", paid.Total))
	if paid.CartID != "" && s.Carts != nil {
		if err := s.Carts.Clear(ctx, paid.CartID); err != nil {
			s.Logger.Warn("failed to clear cart", zap.String("cartId", paid.CartID), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyOrderPaid(ctx, paid); err != nil {
			s.Logger.Warn("failed to notify workers", zap.String("orderId", id), zap.Error(err))
		}
	}
	return paid, nil
}

func categoryFor(bookingType string) (models.Category, error) {
	switch strings.ToLower(strings.TrimSpace(bookingType)) {
	case "service", "services", "worker", "workers":
		return models.CategoryService, nil
	case "event", "events", "ticket", "tickets":
		return models.CategoryEvent, nil
	}
	return "", &checkout.ValidationError{Field: "bookingType", Message: "bookingType must be service or event"}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= totalsTolerance+1e-9
}
