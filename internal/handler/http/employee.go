package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/advance"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/discount"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/handler/http/response"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/period"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Reactivate(w http.ResponseWriter, r *http.Request)
	Deductions(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.Service
	discountService discount.Service
	advanceService  advance.Service
}

func NewEmployeeHandler(
	employeeService employee.Service,
	discountService discount.Service,
	advanceService advance.Service,
) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		discountService: discountService,
		advanceService:  advanceService,
	}
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := getBoolQueryParam(r, "include_inactive", false)

	result, err := h.employeeService.List(r.Context(), includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated", nil)
}

func (h *employeeHandlerImpl) Reactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Reactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee reactivated", nil)
}

// Deductions totals the deductions a payment issued this month would apply:
// active discounts plus outstanding advance installments.
func (h *employeeHandlerImpl) Deductions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.employeeService.Get(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	from, to := period.MonthRange(time.Now())

	discounts, err := h.discountService.ActiveAmountFor(r.Context(), id, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	advances, err := h.advanceService.ActiveAmountFor(r.Context(), id, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.DeductionsSummaryResponse{
		EmployeeID:      id,
		From:            from.Format("2006-01-02"),
		To:              to.Format("2006-01-02"),
		ActiveDiscounts: discounts,
		PendingAdvances: advances,
		Total:           discounts.Add(advances),
	})
}

func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
