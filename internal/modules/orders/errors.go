package orders

import "errors"

var (
	ErrDuplicateID       = errors.New("duplicate order id in bucket")
	ErrUnknownOrder      = errors.New("order not known to the board")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
