package handlers

import (
	"errors"
	"net/http"

	"localconnect/database/repository"
	"localconnect/services/cart"
	"localconnect/services/checkout"
	"localconnect/services/order"
	"localconnect/services/storage"
	"localconnect/services/user"
	"localconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var badRequestErrors = []error{
	cart.ErrUnknownCategory,
	cart.ErrCategoryMismatch,
	cart.ErrSoldOut,
	cart.ErrInvalidItem,
	cart.ErrUnknownPromo,
	storage.ErrNotAnImage,
	storage.ErrImageTooLarge,
	storage.ErrMissingFile,
	order.ErrSessionMismatch,
}

var notFoundErrors = []error{
	repository.ErrNotFound,
	cart.ErrCartNotFound,
	order.ErrOrderNotFound,
	user.ErrUserNotFound,
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	if status, ok := checkoutStatus(err); ok {
		return status
	}
	if utils.IsInputError(err) {
		return http.StatusBadRequest
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrTotalsMismatch):
		return http.StatusConflict
	case errors.Is(err, order.ErrNotPaid):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}

// checkoutStatus maps the checkout error taxonomy.
func checkoutStatus(err error) (int, bool) {
	var (
		validation *checkout.ValidationError
		network    *checkout.NetworkError
		persist    *checkout.PersistenceError
		session    *checkout.CheckoutSessionError
		redirect   *checkout.RedirectError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, true
	case errors.As(err, &network):
		return http.StatusServiceUnavailable, true
	case errors.As(err, &persist), errors.As(err, &session):
		return http.StatusBadGateway, true
	case errors.As(err, &redirect):
		return http.StatusPaymentRequired, true
	}
	return 0, false
}

// respondError writes {"error": ...}. Server faults are logged and their
// details hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if _, ok := checkoutStatus(err); ok {
		body := gin.H{"error": checkout.UserMessage(err)}
		var validation *checkout.ValidationError
		if errors.As(err, &validation) {
			body["field"] = validation.Field
		}
		if status >= http.StatusInternalServerError {
			getLogger(c).Error("checkout step failed", zap.Error(err))
		}
		c.JSON(status, body)
		return
	}
	if status == http.StatusInternalServerError {
		getLogger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "Server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
