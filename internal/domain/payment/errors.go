package payment

import "errors"

var (
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentAlreadyCancelled = errors.New("payment is already cancelled")
	ErrPaymentNotPending       = errors.New("only pending payments can be completed or failed")
	ErrInvalidStatusTransition = errors.New("invalid payment status transition")
)
