package discount

import "errors"

var (
	ErrDiscountNotFound        = errors.New("discount not found")
	ErrDiscountAlreadyApplied  = errors.New("discount already applied in a payment")
	ErrDiscountAlreadyInactive = errors.New("discount is already inactive")
)
