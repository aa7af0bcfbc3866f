package advance

import "errors"

var (
	ErrAdvanceNotFound     = errors.New("advance not found")
	ErrAdvanceNotPending   = errors.New("only pending advances can be approved or rejected")
	ErrAdvanceNotApproved  = errors.New("only approved advances can be marked as paid")
	ErrAdvanceAlreadyFinal = errors.New("advance is already in a final state")
)
