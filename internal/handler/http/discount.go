package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/discount"
	"github.com/iepin-personal/planilla-backend-go/internal/handler/http/response"
)

type DiscountHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type discountHandlerImpl struct {
	discountService discount.Service
}

func NewDiscountHandler(discountService discount.Service) DiscountHandler {
	return &discountHandlerImpl{discountService: discountService}
}

func (h *discountHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := getBoolQueryParam(r, "include_inactive", false)

	result, err := h.discountService.List(r.Context(), includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *discountHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	activeOnly := getBoolQueryParam(r, "active_only", true)

	result, err := h.discountService.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *discountHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.discountService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *discountHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req discount.CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.discountService.Create(r.Context(), sessionFromRequest(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Discount created", result)
}

func (h *discountHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req discount.UpdateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.discountService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *discountHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.discountService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Discount deactivated", nil)
}
