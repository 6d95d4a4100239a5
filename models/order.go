package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusAbandoned = "abandoned"
	OrderStatusAccepted  = "accepted"
)

// Booking types stored on orders.
const (
	BookingTypeService = "service"
	BookingTypeEvent   = "event"
)

// BookingTypeFor maps a cart category to an order booking type.
func BookingTypeFor(c Category) string {
	if c == CategoryEvent {
		return BookingTypeEvent
	}
	return BookingTypeService
}

// ContactInfo is the payer's contact details.
type ContactInfo struct {
	FullName     string `bson:"fullName" json:"fullName"`
	MobileNumber string `bson:"mobileNumber" json:"mobileNumber"`
	Email        string `bson:"email" json:"email"`
}

// OrderItem is an immutable snapshot of a cart line item.
type OrderItem struct {
	ItemID   string  `bson:"itemId" json:"itemId"`
	ItemType string  `bson:"itemType" json:"itemType"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Fees     float64 `bson:"fees" json:"fees"`
}

// Order is a persisted checkout submission.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SubmissionID      string             `bson:"submissionId,omitempty" json:"submissionId,omitempty"`
	BookingType       string             `bson:"bookingType" json:"bookingType"`
	ContactInfo       *ContactInfo       `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Location          string             `bson:"location" json:"location"`
	Date              string             `bson:"date" json:"date"`
	TimeSlots         []string           `bson:"timeSlots,omitempty" json:"timeSlots,omitempty"`
	Subtotal          float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee       float64            `bson:"deliveryFee" json:"deliveryFee"`
	PlatformFee       float64            `bson:"platformFee" json:"platformFee"`
	Discount          float64            `bson:"discount" json:"discount"`
	Tax               float64            `bson:"tax" json:"tax"`
	Total             float64            `bson:"total" json:"total"`
	PromoCode         string             `bson:"promoCode" json:"promoCode"`
	Status            string             `bson:"status" json:"status"`
	CheckoutSessionID string             `bson:"checkoutSessionId,omitempty" json:"checkoutSessionId,omitempty"`
	AbandonReason     string             `bson:"abandonReason,omitempty" json:"abandonReason,omitempty"`
	CartID            string             `bson:"cartId,omitempty" json:"cartId,omitempty"`
	UserID            string             `bson:"userId,omitempty" json:"userId,omitempty"`
	PaidAt            *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderRequest is the body accepted by POST /api/orders.
type OrderRequest struct {
	SubmissionID string       `json:"submissionId"`
	BookingType  string       `json:"bookingType" binding:"required"`
	ContactInfo  *ContactInfo `json:"contactInfo"`
	Items        []OrderItem  `json:"items" binding:"required"`
	Location     string       `json:"location"`
	Date         string       `json:"date"`
	TimeSlots    []string     `json:"timeSlots"`
	Subtotal     float64      `json:"subtotal"`
	DeliveryFee  float64      `json:"deliveryFee"`
	PlatformFee  float64      `json:"platformFee"`
	Discount     float64      `json:"discount"`
	Tax          float64      `json:"tax"`
	Total        float64      `json:"total"`
	PromoCode    string       `json:"promoCode"`
}
