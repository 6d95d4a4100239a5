package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket listing kinds.
const (
	TicketKindConcert  = "concert"
	TicketKindFestival = "festival"
)

// TicketListing is a resale ticket offered on the marketplace.
type TicketListing struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Kind               string             `bson:"kind" json:"kind"`
	EventName          string             `bson:"eventName" json:"eventName"`
	PerformerName      string             `bson:"performerName,omitempty" json:"performerName,omitempty"`
	EventDate          string             `bson:"eventDate" json:"eventDate"`
	EventTime          string             `bson:"eventTime" json:"eventTime"`
	EndDate            string             `bson:"endDate,omitempty" json:"endDate,omitempty"`
	EndTime            string             `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Venue              string             `bson:"venue" json:"venue"`
	SeatNumber         string             `bson:"seatNumber,omitempty" json:"seatNumber,omitempty"`
	TicketType         string             `bson:"ticketType,omitempty" json:"ticketType,omitempty"`
	TicketHolderName   string             `bson:"ticketHolderName,omitempty" json:"ticketHolderName,omitempty"`
	Price              float64            `bson:"ticketPrice" json:"price"`
	Fees               float64            `bson:"additionalFees" json:"fees"`
	AvailableTickets   int                `bson:"availableTickets" json:"availableTickets"`
	AdmissionPolicies  string             `bson:"admissionPolicies,omitempty" json:"admissionPolicies,omitempty"`
	ResaleRestrictions string             `bson:"resaleRestrictions,omitempty" json:"resaleRestrictions,omitempty"`
	RefundPolicies     string             `bson:"refundPolicies,omitempty" json:"refundPolicies,omitempty"`
	TicketImage        string             `bson:"ticketImage,omitempty" json:"ticketImage,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// DisplayName prefers the performer, then the event name.
func (t TicketListing) DisplayName() string {
	if t.PerformerName != "" {
		return t.PerformerName
	}
	return t.EventName
}
