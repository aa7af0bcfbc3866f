package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/dashboard"
	"github.com/iepin-personal/planilla-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Statistics(w http.ResponseWriter, r *http.Request)
	CachedStatistics(w http.ResponseWriter, r *http.Request)
	EmployeeStatistics(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetStatistics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dashboardHandlerImpl) CachedStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetCachedStatistics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dashboardHandlerImpl) EmployeeStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetEmployeeStatistics(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
