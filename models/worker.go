package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Worker is a service provider's login account.
type Worker struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Phone        string             `bson:"phone" json:"phone"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	FCMTokens    []string           `bson:"fcmTokens,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Worker types offered on the registration form.
var WorkerTypes = []string{
	"acRepair",
	"mechanicRepair",
	"electricalRepair",
	"electronicRepair",
	"plumber",
}

// WorkerProfile is the public listing a worker submits through the worker form.
type WorkerProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`
	WorkerTypes  map[string]bool    `bson:"workerTypes" json:"workerTypes"`
	Address      string             `bson:"address" json:"address"`
	City         string             `bson:"city" json:"city"`
	State        string             `bson:"state" json:"state"`
	Country      string             `bson:"country" json:"country"`
	Email        string             `bson:"email" json:"email"`
	Age          int                `bson:"age" json:"age"`
	Gender       string             `bson:"gender" json:"gender"`
	CostPerHour  float64            `bson:"costPerHour" json:"costPerHour"`
	ProfilePhoto string             `bson:"profilePhoto,omitempty" json:"profileImage,omitempty"`
	AccountID    string             `bson:"accountId,omitempty" json:"accountId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// PrimaryType returns the first worker type the profile offers.
func (p WorkerProfile) PrimaryType() string {
	for _, t := range WorkerTypes {
		if p.WorkerTypes[t] {
			return t
		}
	}
	return "Service"
}
