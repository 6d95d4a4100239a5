package models

// PriceLineItem is one itemised charge sent to the payment provider.
// UnitAmount is in the currency's minor unit (paise for INR).
type PriceLineItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UnitAmount  int64  `json:"unitAmount"`
	Quantity    int64  `json:"quantity"`
}

// CheckoutSessionRequest is what the payment gateway needs to open a hosted checkout.
type CheckoutSessionRequest struct {
	OrderID    string            `json:"order_id"`
	Currency   string            `json:"currency"`
	LineItems  []PriceLineItem   `json:"line_items"`
	Metadata   map[string]string `json:"metadata"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Email      string            `json:"customer_email,omitempty"`
}

// CheckoutSession is the provider-issued handle for a pending payment.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// StripeLineItem mirrors the price_data shape accepted by POST /api/create-checkout-session.
type StripeLineItem struct {
	PriceData struct {
		Currency    string `json:"currency"`
		ProductData struct {
			Name        string `json:"name"`
			Description string `json:"description,omitempty"`
		} `json:"product_data"`
		UnitAmount int64 `json:"unit_amount"`
	} `json:"price_data"`
	Quantity int64 `json:"quantity"`
}

// CreateCheckoutSessionRequest is the body of POST /api/create-checkout-session.
type CreateCheckoutSessionRequest struct {
	LineItems  []StripeLineItem  `json:"line_items" binding:"required"`
	Metadata   map[string]string `json:"metadata"`
	OrderID    string            `json:"order_id" binding:"required"`
	SuccessURL string            `json:"success_url" binding:"required"`
	CancelURL  string            `json:"cancel_url" binding:"required"`
}
