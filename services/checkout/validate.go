package checkout

import (
	"regexp"
	"strings"

	"localconnect/models"
)

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern  = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// Validate checks a submission before anything is persisted or charged.
// The first failing field is reported.
func Validate(s Submission) error {
	if s.Cart == nil {
		return &ValidationError{Field: "cart", Message: "Your cart is empty. Add some items before proceeding to payment."}
	}
	category := s.Cart.Active()
	if len(s.Cart.Items(category)) == 0 {
		return &ValidationError{Field: "items", Message: "Your " + string(category) + " booking cart is empty. Add some items before proceeding to payment."}
	}
	if strings.TrimSpace(s.Location) == "" {
		return &ValidationError{Field: "location", Message: "Location is required."}
	}
	if strings.TrimSpace(s.Date) == "" {
		return &ValidationError{Field: "date", Message: "Date is required."}
	}
	if category != models.CategoryService {
		return nil
	}
	if len(s.TimeSlots) == 0 {
		return &ValidationError{Field: "timeSlots", Message: "Please select at least one service time."}
	}
	return ValidateContact(s.Contact)
}

// ValidateContact checks the payer details required for service bookings.
func ValidateContact(c *models.ContactInfo) error {
	if c == nil || strings.TrimSpace(c.FullName) == "" {
		return &ValidationError{Field: "fullName", Message: "Full name is required"}
	}
	mobile := strings.TrimSpace(c.MobileNumber)
	if mobile == "" {
		return &ValidationError{Field: "mobileNumber", Message: "Mobile number is required"}
	}
	if !mobilePattern.MatchString(mobile) {
		return &ValidationError{Field: "mobileNumber", Message: "Please enter a valid 10-digit mobile number"}
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email address is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	return nil
}
