package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrTotalsMismatch  = errors.New("order totals do not match the server's calculation")
	ErrSessionMismatch = errors.New("checkout session does not belong to this order")
	ErrNotPaid         = errors.New("payment has not been completed")
)
