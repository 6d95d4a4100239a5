package checkout

import (
	"errors"
	"fmt"
)

// ErrUnreachable marks a collaborator failure where no response arrived.
// Adapters wrap timeouts and connection failures with it.
var ErrUnreachable = errors.New("no response from server")

// ErrMissingSessionID is returned when the gateway answers without a session id.
var ErrMissingSessionID = errors.New("checkout session has no id")

// ValidationError is a rejected submission field. Nothing was sent anywhere.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PersistenceError means the order store rejected the order.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "order could not be saved: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// CheckoutSessionError means the payment provider rejected the session or
// answered without a usable id.
type CheckoutSessionError struct {
	OrderID string
	Err     error
}

func (e *CheckoutSessionError) Error() string {
	return fmt.Sprintf("checkout session for order %s failed: %v", e.OrderID, e.Err)
}

func (e *CheckoutSessionError) Unwrap() error { return e.Err }

// NetworkError means a collaborator did not answer.
type NetworkError struct {
	Step State
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RedirectError means the hosted payment page could not be resolved.
type RedirectError struct {
	SessionID string
	Err       error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to payment for session %s failed: %v", e.SessionID, e.Err)
}

func (e *RedirectError) Unwrap() error { return e.Err }

// UserMessage turns a submission error into the text shown to the payer.
func UserMessage(err error) string {
	var (
		validation *ValidationError
		network    *NetworkError
		persist    *PersistenceError
		session    *CheckoutSessionError
		redirect   *RedirectError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &network):
		if network.Step == StatePersistingOrder {
			return "No response from server. The server may be down, please try again later."
		}
		return "No response from payment server. Please check your connection and try again."
	case errors.As(err, &persist):
		return "The server rejected your order. Please review your details and try again."
	case errors.As(err, &session):
		return "The payment server rejected the checkout request. Please try again."
	case errors.As(err, &redirect):
		return "Could not open the payment page: " + redirect.Err.Error()
	default:
		return "An error occurred during payment processing. Please try again."
	}
}
