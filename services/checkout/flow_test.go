package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"localconnect/models"
	"localconnect/services/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const orderID = "652f1c2e9d1e8a0012345678"

func serviceCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New(&models.CartState{ID: "cart-1"})
	require.NoError(t, c.AddItem(models.CategoryService, models.CartLineItem{
		ID: "w1", Kind: models.KindService, Price: 500, ProviderName: "Ravi Kumar", ServiceType: "plumber",
	}))
	return c
}

func eventCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New(&models.CartState{ID: "cart-2"})
	require.NoError(t, c.AddItem(models.CategoryEvent, models.CartLineItem{
		ID: "t1", Kind: models.KindTicket, Price: 1200, Fee: 80, Quantity: 2, AvailableTickets: 5, EventName: "Sunburn",
	}))
	require.NoError(t, c.SetActive(models.CategoryEvent))
	return c
}

func validSubmission(t *testing.T) Submission {
	return Submission{
		SubmissionID: "sub-1",
		Cart:         serviceCart(t),
		Contact:      &models.ContactInfo{FullName: "Asha Rao", MobileNumber: "9876543210", Email: "asha@example.com"},
		Location:     "12 MG Road, Bengaluru",
		Date:         "2025-03-14",
		TimeSlots:    []string{"10:00 AM"},
	}
}

func newTestFlow() (*Flow, *mockOrderStore, *mockGateway, *mockExpiry) {
	store := new(mockOrderStore)
	gateway := new(mockGateway)
	expiry := new(mockExpiry)
	cfg := Config{Currency: "inr", Fees: cart.DefaultFees(), PaymentWindow: 30 * time.Minute, ClientOrigin: "http://localhost:5173/"}
	return NewFlow(store, gateway, expiry, cfg, zap.NewNop()), store, gateway, expiry
}

func TestSubmitSucceeds(t *testing.T) {
	flow, store, gateway, expiry := newTestFlow()
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(nil, nil)
	store.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.Total == 615.85 && o.Tax == 70.85 && o.Status == models.OrderStatusPending &&
			o.BookingType == models.BookingTypeService && o.CartID == "cart-1" && len(o.TimeSlots) == 1
	})).Return(orderID, nil)
	expiry.On("ScheduleExpiry", mock.Anything, orderID, 30*time.Minute).Return(nil)
	gateway.On("CreateSession", mock.Anything, mock.MatchedBy(func(req models.CheckoutSessionRequest) bool {
		return req.OrderID == orderID &&
			req.SuccessURL == "http://localhost:5173/payment-success?order_id="+orderID+"&session_id={CHECKOUT_SESSION_ID}" &&
			req.CancelURL == "http://localhost:5173/cart" &&
			req.Metadata["time_slots"] == "10:00 AM" &&
			req.Metadata["promo_code"] == "None" &&
			SumMinorUnits(req.LineItems) == 61585
	})).Return(&models.CheckoutSession{ID: "cs_test_1"}, nil)
	store.On("AttachSession", mock.Anything, orderID, "cs_test_1").Return(nil)
	gateway.On("RedirectURL", mock.Anything, "cs_test_1").Return("https://checkout.stripe.com/c/pay/cs_test_1", nil)

	attempt := flow.Run(context.Background(), validSubmission(t))

	require.NoError(t, attempt.Err)
	assert.Equal(t, []State{
		StateIdle, StateValidating, StatePersistingOrder,
		StateCreatingCheckoutSession, StateRedirectingToPayment, StateSucceeded,
	}, attempt.Transitions)
	result := attempt.Result()
	require.NotNil(t, result)
	assert.Equal(t, orderID, result.OrderID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", result.RedirectURL)
	store.AssertExpectations(t)
	gateway.AssertExpectations(t)
	expiry.AssertExpectations(t)
}

func TestSubmitValidationCallsNothing(t *testing.T) {
	cases := map[string]func(*Submission){
		"missing location":  func(s *Submission) { s.Location = " " },
		"missing date":      func(s *Submission) { s.Date = "" },
		"missing timeslots": func(s *Submission) { s.TimeSlots = nil },
		"missing contact":   func(s *Submission) { s.Contact = nil },
		"bad mobile":        func(s *Submission) { s.Contact.MobileNumber = "98765" },
		"bad email":         func(s *Submission) { s.Contact.Email = "asha@" },
		"empty cart":        func(s *Submission) { s.Cart = cart.New(nil) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			flow, store, gateway, expiry := newTestFlow()
			s := validSubmission(t)
			mutate(&s)

			_, err := flow.Submit(context.Background(), s)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			store.AssertNotCalled(t, "FindBySubmission", mock.Anything, mock.Anything)
			gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
			expiry.AssertNotCalled(t, "ScheduleExpiry", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEventSubmissionNeedsNoTimeSlotsOrContact(t *testing.T) {
	flow, store, gateway, expiry := newTestFlow()
	store.On("FindBySubmission", mock.Anything, "sub-2").Return(nil, nil)
	store.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.BookingType == models.BookingTypeEvent && o.Subtotal == 2560 && o.TimeSlots == nil
	})).Return(orderID, nil)
	expiry.On("ScheduleExpiry", mock.Anything, orderID, mock.Anything).Return(nil)
	gateway.On("CreateSession", mock.Anything, mock.MatchedBy(func(req models.CheckoutSessionRequest) bool {
		_, hasSlots := req.Metadata["time_slots"]
		return !hasSlots && req.LineItems[0].UnitAmount == 128000 && req.LineItems[0].Quantity == 2 &&
			req.LineItems[0].Name == "Sunburn"
	})).Return(&models.CheckoutSession{ID: "cs_evt"}, nil)
	store.On("AttachSession", mock.Anything, orderID, "cs_evt").Return(nil)
	gateway.On("RedirectURL", mock.Anything, "cs_evt").Return("https://checkout.stripe.com/c/pay/cs_evt", nil)

	res, err := flow.Submit(context.Background(), Submission{
		SubmissionID: "sub-2",
		Cart:         eventCart(t),
		Location:     "Vagator Beach, Goa",
		Date:         "2025-12-28",
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_evt", res.SessionID)
	gateway.AssertExpectations(t)
}

func TestPersistenceNetworkFailureSkipsCheckout(t *testing.T) {
	flow, store, gateway, _ := newTestFlow()
	s := validSubmission(t)
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(nil, nil)
	store.On("CreateOrder", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: server selection timeout", ErrUnreachable))

	_, err := flow.Submit(context.Background(), s)

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, StatePersistingOrder, nerr.Step)
	assert.Equal(t, "No response from server. The server may be down, please try again later.", UserMessage(err))
	gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "MarkAbandoned", mock.Anything, mock.Anything, mock.Anything)
	assert.Len(t, s.Cart.Items(models.CategoryService), 1)
}

func TestPersistenceRejection(t *testing.T) {
	flow, store, gateway, _ := newTestFlow()
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(nil, nil)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return("", errors.New("document failed validation"))

	_, err := flow.Submit(context.Background(), validSubmission(t))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, UserMessage(err), "rejected")
	gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestMissingSessionIDAbandonsOrder(t *testing.T) {
	flow, store, gateway, expiry := newTestFlow()
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(nil, nil)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(orderID, nil)
	expiry.On("ScheduleExpiry", mock.Anything, orderID, mock.Anything).Return(nil)
	gateway.On("CreateSession", mock.Anything, mock.Anything).Return(&models.CheckoutSession{}, nil)
	store.On("MarkAbandoned", mock.Anything, orderID, mock.Anything).Return(nil)

	attempt := flow.Run(context.Background(), validSubmission(t))

	var serr *CheckoutSessionError
	require.ErrorAs(t, attempt.Err, &serr)
	assert.ErrorIs(t, attempt.Err, ErrMissingSessionID)
	assert.Equal(t, StateFailed, attempt.State)
	assert.Nil(t, attempt.Result())
	gateway.AssertNotCalled(t, "RedirectURL", mock.Anything, mock.Anything)
	store.AssertCalled(t, "MarkAbandoned", mock.Anything, orderID, mock.Anything)
}

func TestGatewayUnreachableIsNetworkError(t *testing.T) {
	flow, store, gateway, expiry := newTestFlow()
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(nil, nil)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(orderID, nil)
	expiry.On("ScheduleExpiry", mock.Anything, orderID, mock.Anything).Return(nil)
	gateway.On("CreateSession", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: dial tcp", ErrUnreachable))
	store.On("MarkAbandoned", mock.Anything, orderID, mock.Anything).Return(nil)

	_, err := flow.Submit(context.Background(), validSubmission(t))

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, StateCreatingCheckoutSession, nerr.Step)
	assert.Contains(t, UserMessage(err), "No response from payment server")
	store.AssertExpectations(t)
}

func TestRedirectFailureAbandonsOrder(t *testing.T) {
	flow, store, gateway, expiry := newTestFlow()
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(nil, nil)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(orderID, nil)
	expiry.On("ScheduleExpiry", mock.Anything, orderID, mock.Anything).Return(nil)
	gateway.On("CreateSession", mock.Anything, mock.Anything).Return(&models.CheckoutSession{ID: "cs_1"}, nil)
	store.On("AttachSession", mock.Anything, orderID, "cs_1").Return(nil)
	gateway.On("RedirectURL", mock.Anything, "cs_1").Return("", errors.New("session is expired"))
	store.On("MarkAbandoned", mock.Anything, orderID, mock.Anything).Return(nil)

	_, err := flow.Submit(context.Background(), validSubmission(t))

	var rerr *RedirectError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Could not open the payment page: session is expired", UserMessage(err))
	store.AssertExpectations(t)
}

func TestResubmissionReusesOrder(t *testing.T) {
	flow, store, gateway, _ := newTestFlow()
	oid, err := primitive.ObjectIDFromHex(orderID)
	require.NoError(t, err)
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(&models.Order{
		ID: oid, Status: models.OrderStatusPending, CheckoutSessionID: "cs_1",
	}, nil)
	gateway.On("RedirectURL", mock.Anything, "cs_1").Return("https://checkout.stripe.com/c/pay/cs_1", nil)

	res, err := flow.Submit(context.Background(), validSubmission(t))

	require.NoError(t, err)
	assert.True(t, res.Reused)
	assert.Equal(t, orderID, res.OrderID)
	store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestResubmissionOfPaidOrderIsRejected(t *testing.T) {
	flow, store, gateway, _ := newTestFlow()
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(&models.Order{
		ID: primitive.NewObjectID(), Status: models.OrderStatusPaid,
	}, nil)

	_, err := flow.Submit(context.Background(), validSubmission(t))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	gateway.AssertNotCalled(t, "RedirectURL", mock.Anything, mock.Anything)
}

// memOrderStore keeps orders in memory and releases the submission id of an
// abandoned order, as the Mongo repository does.
type memOrderStore struct {
	orders       map[string]*models.Order
	bySubmission map[string]string
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[string]*models.Order{}, bySubmission: map[string]string{}}
}

func (m *memOrderStore) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	if _, taken := m.bySubmission[order.SubmissionID]; taken && order.SubmissionID != "" {
		return "", errors.New("duplicate submission")
	}
	order.ID = primitive.NewObjectID()
	id := order.ID.Hex()
	m.orders[id] = order
	if order.SubmissionID != "" {
		m.bySubmission[order.SubmissionID] = id
	}
	return id, nil
}

func (m *memOrderStore) FindBySubmission(ctx context.Context, submissionID string) (*models.Order, error) {
	id, ok := m.bySubmission[submissionID]
	if !ok {
		return nil, nil
	}
	return m.orders[id], nil
}

func (m *memOrderStore) AttachSession(ctx context.Context, orderID, sessionID string) error {
	m.orders[orderID].CheckoutSessionID = sessionID
	return nil
}

func (m *memOrderStore) MarkAbandoned(ctx context.Context, orderID, reason string) error {
	order := m.orders[orderID]
	if order.Status != models.OrderStatusPending {
		return nil
	}
	order.Status = models.OrderStatusAbandoned
	order.AbandonReason = reason
	delete(m.bySubmission, order.SubmissionID)
	order.SubmissionID = ""
	return nil
}

func TestRetryAfterFailedSessionRunsFlowAgain(t *testing.T) {
	store := newMemOrderStore()
	gateway := new(mockGateway)
	cfg := Config{Currency: "inr", Fees: cart.DefaultFees(), ClientOrigin: "http://localhost:5173"}
	flow := NewFlow(store, gateway, nil, cfg, zap.NewNop())

	gateway.On("CreateSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("card_declined")).Once()
	gateway.On("CreateSession", mock.Anything, mock.Anything).
		Return(&models.CheckoutSession{ID: "cs_2"}, nil).Once()
	gateway.On("RedirectURL", mock.Anything, "cs_2").Return("https://checkout.stripe.com/c/pay/cs_2", nil)

	s := validSubmission(t)
	_, err := flow.Submit(context.Background(), s)
	var serr *CheckoutSessionError
	require.ErrorAs(t, err, &serr)
	assert.Len(t, s.Cart.Items(models.CategoryService), 1)

	res, err := flow.Submit(context.Background(), s)

	require.NoError(t, err)
	assert.False(t, res.Reused)
	assert.NotEqual(t, serr.OrderID, res.OrderID)
	assert.Equal(t, models.OrderStatusAbandoned, store.orders[serr.OrderID].Status)
	assert.Equal(t, models.OrderStatusPending, store.orders[res.OrderID].Status)
	gateway.AssertNumberOfCalls(t, "CreateSession", 2)
}

func TestResubmissionOfAbandonedOrderCreatesNewOrder(t *testing.T) {
	flow, store, gateway, expiry := newTestFlow()
	store.On("FindBySubmission", mock.Anything, "sub-1").Return(&models.Order{
		ID: primitive.NewObjectID(), Status: models.OrderStatusAbandoned, CheckoutSessionID: "cs_old",
	}, nil)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(orderID, nil)
	expiry.On("ScheduleExpiry", mock.Anything, orderID, mock.Anything).Return(nil)
	gateway.On("CreateSession", mock.Anything, mock.Anything).Return(&models.CheckoutSession{ID: "cs_new"}, nil)
	store.On("AttachSession", mock.Anything, orderID, "cs_new").Return(nil)
	gateway.On("RedirectURL", mock.Anything, "cs_new").Return("https://checkout.stripe.com/c/pay/cs_new", nil)

	res, err := flow.Submit(context.Background(), validSubmission(t))

	require.NoError(t, err)
	assert.Equal(t, orderID, res.OrderID)
	gateway.AssertNotCalled(t, "RedirectURL", mock.Anything, "cs_old")
}
