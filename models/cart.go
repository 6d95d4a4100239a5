package models

import "time"

// Category names one of the two cart collections.
type Category string

const (
	CategoryService Category = "service"
	CategoryEvent   Category = "event"
)

// Valid reports whether c names a known cart collection.
func (c Category) Valid() bool {
	return c == CategoryService || c == CategoryEvent
}

// ItemKind is the variant of a cart line item.
type ItemKind string

const (
	KindService ItemKind = "service"
	KindTicket  ItemKind = "ticket"
)

// CategoryFor returns the collection a kind of item belongs to.
func CategoryFor(kind ItemKind) Category {
	if kind == KindTicket {
		return CategoryEvent
	}
	return CategoryService
}

// CartLineItem is one priced entry in a cart: a service booking or a ticket purchase.
type CartLineItem struct {
	ID       string   `json:"_id"`
	Kind     ItemKind `json:"itemType"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
	Fee      float64  `json:"fees"`

	// Service booking.
	ProviderName string `json:"fullName,omitempty"`
	ServiceType  string `json:"type,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`

	// Ticket purchase.
	EventName        string `json:"eventName,omitempty"`
	AvailableTickets int    `json:"availableTickets,omitempty"`
	TicketImage      string `json:"ticketImage,omitempty"`
}

// DisplayName is the name shown to the payer for this item.
func (i CartLineItem) DisplayName() string {
	switch {
	case i.Kind == KindTicket && i.EventName != "":
		return i.EventName
	case i.Kind == KindTicket:
		return "Event Ticket"
	case i.ProviderName != "":
		return i.ProviderName
	default:
		return "Worker"
	}
}

// AppliedPromo is a promo code accepted for one collection.
type AppliedPromo struct {
	Code       string  `json:"code"`
	Percentage float64 `json:"percentage"`
}

// CartState is the persisted shape of a cart.
type CartState struct {
	ID        string                    `json:"id"`
	Services  []CartLineItem            `json:"workersBookings"`
	Events    []CartLineItem            `json:"eventsBookings"`
	Active    Category                  `json:"activeSection"`
	Promos    map[Category]AppliedPromo `json:"promos,omitempty"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

// CartTotals is the JSON view of a computed total.
type CartTotals struct {
	Category    Category `json:"category"`
	Subtotal    float64  `json:"subtotal"`
	Discount    float64  `json:"discount"`
	DeliveryFee float64  `json:"deliveryFee"`
	PlatformFee float64  `json:"platformFee"`
	Tax         float64  `json:"tax"`
	Total       float64  `json:"total"`
	PromoCode   string   `json:"promoCode,omitempty"`
}
