package response

import (
	"errors"
	"net/http"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/advance"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/auth"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/dashboard"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/discount"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/user"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDNIExists):
		Conflict(w, "DNI already registered")
	case errors.Is(err, employee.ErrEmployeeAlreadyActive):
		Conflict(w, "Employee is already active")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")

	// Payment domain errors
	case errors.Is(err, payment.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, payment.ErrPaymentAlreadyCancelled):
		Conflict(w, "Payment is already cancelled")
	case errors.Is(err, payment.ErrPaymentNotPending):
		Conflict(w, "Payment has already been processed")
	case errors.Is(err, payment.ErrInvalidStatusTransition):
		Conflict(w, "Invalid payment status transition")

	// Discount domain errors
	case errors.Is(err, discount.ErrDiscountNotFound):
		NotFound(w, "Discount not found")
	case errors.Is(err, discount.ErrDiscountAlreadyApplied):
		Conflict(w, "Discount already applied in a payment")
	case errors.Is(err, discount.ErrDiscountAlreadyInactive):
		Conflict(w, "Discount is already inactive")

	// Advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrAdvanceNotPending):
		Conflict(w, "Advance has already been processed")
	case errors.Is(err, advance.ErrAdvanceNotApproved):
		Conflict(w, "Advance is not approved")
	case errors.Is(err, advance.ErrAdvanceAlreadyFinal):
		Conflict(w, "Advance is already in a final state")

	// Dashboard domain errors
	case errors.Is(err, dashboard.ErrSnapshotNotFound):
		NotFound(w, "No cached dashboard snapshot")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
