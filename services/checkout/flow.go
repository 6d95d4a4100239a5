package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"localconnect/models"
	"localconnect/services/cart"

	"go.uber.org/zap"
)

// Flow turns a cart into a persisted order and an open checkout session.
// Each step runs only after the previous one succeeded. When the session or
// redirect step fails after the order was saved, the order is abandoned.
type Flow struct {
	Orders  OrderStore
	Gateway Gateway
	Expiry  ExpiryScheduler
	Config  Config
	Logger  *zap.Logger
}

// NewFlow wires a submission flow. expiry may be nil.
func NewFlow(orders OrderStore, gateway Gateway, expiry ExpiryScheduler, cfg Config, logger *zap.Logger) *Flow {
	if cfg.Currency == "" {
		cfg.Currency = "inr"
	}
	return &Flow{Orders: orders, Gateway: gateway, Expiry: expiry, Config: cfg, Logger: logger}
}

// Submit runs the flow and returns where to send the payer.
func (f *Flow) Submit(ctx context.Context, s Submission) (*Result, error) {
	attempt := f.Run(ctx, s)
	if attempt.Err != nil {
		return nil, attempt.Err
	}
	return attempt.Result(), nil
}

// Run executes one attempt and returns its full record.
func (f *Flow) Run(ctx context.Context, s Submission) *Attempt {
	a := newAttempt(s.SubmissionID, f.Logger)

	a.advance(StateValidating)
	if err := Validate(s); err != nil {
		return a.fail(err)
	}

	category := s.Cart.Active()
	items := s.Cart.Items(category)
	promo, _ := s.Cart.Promo(category)
	totals := s.Cart.ComputeTotal(category, f.Config.Fees)

	a.advance(StatePersistingOrder)
	existing, err := f.findExisting(ctx, s.SubmissionID)
	if err != nil {
		return a.fail(f.classifyStoreError(err))
	}
	if existing != nil {
		switch existing.Status {
		case models.OrderStatusPaid, models.OrderStatusAccepted:
			return a.fail(&ValidationError{Field: "submissionId", Message: "This order has already been paid."})
		case models.OrderStatusAbandoned:
			// A failed attempt starts over with a fresh order.
			existing = nil
		}
	}
	if existing != nil {
		a.OrderID = existing.ID.Hex()
		a.Reused = true
		if existing.CheckoutSessionID != "" {
			a.SessionID = existing.CheckoutSessionID
			return f.redirect(ctx, a)
		}
	} else {
		order := BuildOrder(s, f.Config.Fees)
		orderID, err := f.Orders.CreateOrder(ctx, order)
		if err != nil {
			return a.fail(f.classifyStoreError(err))
		}
		a.OrderID = orderID
		f.scheduleExpiry(ctx, orderID)
	}

	a.advance(StateCreatingCheckoutSession)
	req := models.CheckoutSessionRequest{
		OrderID:    a.OrderID,
		Currency:   f.Config.Currency,
		LineItems:  BuildPriceList(category, items, promo, totals),
		Metadata:   buildMetadata(s, category, promo, a.OrderID),
		SuccessURL: f.successURL(a.OrderID),
		CancelURL:  f.cancelURL(),
	}
	if s.Contact != nil {
		req.Email = strings.TrimSpace(s.Contact.Email)
	}
	session, err := f.Gateway.CreateSession(ctx, req)
	if err == nil && (session == nil || session.ID == "") {
		err = ErrMissingSessionID
	}
	if err != nil {
		var failure error
		if errors.Is(err, ErrUnreachable) {
			failure = &NetworkError{Step: StateCreatingCheckoutSession, Err: err}
		} else {
			failure = &CheckoutSessionError{OrderID: a.OrderID, Err: err}
		}
		f.compensate(ctx, a.OrderID, failure)
		return a.fail(failure)
	}
	a.SessionID = session.ID
	if err := f.Orders.AttachSession(ctx, a.OrderID, session.ID); err != nil {
		// The success and webhook paths key on the order id, so payment can still complete.
		a.logger.Warn("failed to attach checkout session", zap.String("orderId", a.OrderID), zap.Error(err))
	}

	return f.redirect(ctx, a)
}

func (f *Flow) redirect(ctx context.Context, a *Attempt) *Attempt {
	a.advance(StateRedirectingToPayment)
	target, err := f.Gateway.RedirectURL(ctx, a.SessionID)
	if err == nil && target == "" {
		err = errors.New("payment page unavailable")
	}
	if err != nil {
		var failure error
		if errors.Is(err, ErrUnreachable) {
			failure = &NetworkError{Step: StateRedirectingToPayment, Err: err}
		} else {
			failure = &RedirectError{SessionID: a.SessionID, Err: err}
		}
		f.compensate(ctx, a.OrderID, failure)
		return a.fail(failure)
	}
	a.RedirectURL = target
	a.advance(StateSucceeded)
	a.logger.Info("checkout session ready", zap.String("orderId", a.OrderID), zap.String("sessionId", a.SessionID))
	return a
}

func (f *Flow) findExisting(ctx context.Context, submissionID string) (*models.Order, error) {
	if submissionID == "" {
		return nil, nil
	}
	return f.Orders.FindBySubmission(ctx, submissionID)
}

func (f *Flow) classifyStoreError(err error) error {
	if errors.Is(err, ErrUnreachable) {
		return &NetworkError{Step: StatePersistingOrder, Err: err}
	}
	return &PersistenceError{Err: err}
}

// compensate abandons an order whose payment step failed. It runs on a
// context detached from the request so a cancelled client still releases the order.
func (f *Flow) compensate(ctx context.Context, orderID string, cause error) {
	if orderID == "" {
		return
	}
	if err := f.Orders.MarkAbandoned(context.WithoutCancel(ctx), orderID, cause.Error()); err != nil {
		f.Logger.Error("failed to abandon order", zap.String("orderId", orderID), zap.Error(err))
	}
}

func (f *Flow) scheduleExpiry(ctx context.Context, orderID string) {
	if f.Expiry == nil || f.Config.PaymentWindow <= 0 {
		return
	}
	if err := f.Expiry.ScheduleExpiry(ctx, orderID, f.Config.PaymentWindow); err != nil {
		f.Logger.Warn("failed to schedule order expiry", zap.String("orderId", orderID), zap.Error(err))
	}
}

func (f *Flow) successURL(orderID string) string {
	return fmt.Sprintf("%s/payment-success?order_id=%s&session_id={CHECKOUT_SESSION_ID}",
		strings.TrimRight(f.Config.ClientOrigin, "/"), url.QueryEscape(orderID))
}

func (f *Flow) cancelURL() string {
	return strings.TrimRight(f.Config.ClientOrigin, "/") + "/cart"
}

// BuildOrder snapshots the active collection of the submission's cart into a
// pending order with freshly computed totals.
func BuildOrder(s Submission, fees cart.Fees) *models.Order {
	category := s.Cart.Active()
	items := s.Cart.Items(category)
	promo, _ := s.Cart.Promo(category)
	totals := s.Cart.ComputeTotal(category, fees)

	snapshot := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, models.OrderItem{
			ItemID:   item.ID,
			ItemType: string(item.Kind),
			Name:     item.DisplayName(),
			Price:    item.Price,
			Quantity: item.Quantity,
			Fees:     item.Fee,
		})
	}
	order := &models.Order{
		SubmissionID: s.SubmissionID,
		BookingType:  models.BookingTypeFor(category),
		ContactInfo:  s.Contact,
		Items:        snapshot,
		Location:     strings.TrimSpace(s.Location),
		Date:         strings.TrimSpace(s.Date),
		Subtotal:     totals.Subtotal.InexactFloat64(),
		DeliveryFee:  totals.DeliveryFee.InexactFloat64(),
		PlatformFee:  totals.PlatformFee.InexactFloat64(),
		Discount:     totals.Discount.InexactFloat64(),
		Tax:          totals.Tax.InexactFloat64(),
		Total:        totals.Total.InexactFloat64(),
		PromoCode:    promo.Code,
		Status:       models.OrderStatusPending,
		CartID:       s.Cart.State().ID,
		UserID:       s.UserID,
	}
	if category == models.CategoryService {
		order.TimeSlots = s.TimeSlots
	}
	return order
}

func buildMetadata(s Submission, category models.Category, promo models.AppliedPromo, orderID string) map[string]string {
	code := promo.Code
	if code == "" {
		code = "None"
	}
	meta := map[string]string{
		"order_id":         orderID,
		"delivery_address": s.Location,
		"delivery_date":    s.Date,
		"promo_code":       code,
		"booking_type":     models.BookingTypeFor(category),
	}
	if category == models.CategoryService {
		meta["time_slots"] = strings.Join(s.TimeSlots, ", ")
	}
	if s.Contact != nil {
		meta["full_name"] = s.Contact.FullName
		meta["mobile_number"] = s.Contact.MobileNumber
		meta["email"] = s.Contact.Email
	}
	return meta
}
