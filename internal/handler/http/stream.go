package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/advance"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/dashboard"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/discount"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/employee"
	"github.com/iepin-personal/planilla-backend-go/internal/domain/payment"
	"github.com/iepin-personal/planilla-backend-go/internal/handler/http/response"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/jwt"
)

const keepaliveInterval = 30 * time.Second

// StreamHandler exposes the realtime listeners. Each collection stream sends
// the current snapshot immediately and a fresh one after every change; the
// dashboard stream sends a fast partial snapshot first.
type StreamHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	StreamEmployees(w http.ResponseWriter, r *http.Request)
	StreamPayments(w http.ResponseWriter, r *http.Request)
	StreamDiscounts(w http.ResponseWriter, r *http.Request)
	StreamAdvances(w http.ResponseWriter, r *http.Request)
	StreamDashboard(w http.ResponseWriter, r *http.Request)
}

type streamHandlerImpl struct {
	jwtService       jwt.Service
	employeeService  employee.Service
	paymentService   payment.Service
	discountService  discount.Service
	advanceService   advance.Service
	dashboardService dashboard.Service
}

func NewStreamHandler(
	jwtService jwt.Service,
	employeeService employee.Service,
	paymentService payment.Service,
	discountService discount.Service,
	advanceService advance.Service,
	dashboardService dashboard.Service,
) StreamHandler {
	return &streamHandlerImpl{
		jwtService:       jwtService,
		employeeService:  employeeService,
		paymentService:   paymentService,
		discountService:  discountService,
		advanceService:   advanceService,
		dashboardService: dashboardService,
	}
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *streamHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(r)
	if session.UserID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(session.UserID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// openStream validates the SSE token from the query string, since EventSource
// cannot send custom headers, and prepares the response for streaming.
func (h *streamHandlerImpl) openStream(w http.ResponseWriter, r *http.Request) (http.Flusher, bool) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return nil, false
	}

	if _, err := h.jwtService.ValidateSSEToken(tokenStr); err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return nil, false
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	return flusher, true
}

func writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

func writeKeepalive(w http.ResponseWriter, flusher http.Flusher) {
	fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
	flusher.Flush()
}

func (h *streamHandlerImpl) StreamEmployees(w http.ResponseWriter, r *http.Request) {
	flusher, ok := h.openStream(w, r)
	if !ok {
		return
	}

	snapshots, cleanup, err := h.employeeService.Subscribe(r.Context())
	if err != nil {
		return
	}
	defer cleanup()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			writeSSEEvent(w, flusher, "snapshot", snapshot)
		case <-keepalive.C:
			writeKeepalive(w, flusher)
		case <-r.Context().Done():
			return
		}
	}
}

func (h *streamHandlerImpl) StreamPayments(w http.ResponseWriter, r *http.Request) {
	flusher, ok := h.openStream(w, r)
	if !ok {
		return
	}

	snapshots, cleanup, err := h.paymentService.Subscribe(r.Context())
	if err != nil {
		return
	}
	defer cleanup()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			writeSSEEvent(w, flusher, "snapshot", snapshot)
		case <-keepalive.C:
			writeKeepalive(w, flusher)
		case <-r.Context().Done():
			return
		}
	}
}

func (h *streamHandlerImpl) StreamDiscounts(w http.ResponseWriter, r *http.Request) {
	flusher, ok := h.openStream(w, r)
	if !ok {
		return
	}

	snapshots, cleanup, err := h.discountService.Subscribe(r.Context())
	if err != nil {
		return
	}
	defer cleanup()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			writeSSEEvent(w, flusher, "snapshot", snapshot)
		case <-keepalive.C:
			writeKeepalive(w, flusher)
		case <-r.Context().Done():
			return
		}
	}
}

func (h *streamHandlerImpl) StreamAdvances(w http.ResponseWriter, r *http.Request) {
	flusher, ok := h.openStream(w, r)
	if !ok {
		return
	}

	snapshots, cleanup, err := h.advanceService.Subscribe(r.Context())
	if err != nil {
		return
	}
	defer cleanup()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			writeSSEEvent(w, flusher, "snapshot", snapshot)
		case <-keepalive.C:
			writeKeepalive(w, flusher)
		case <-r.Context().Done():
			return
		}
	}
}

func (h *streamHandlerImpl) StreamDashboard(w http.ResponseWriter, r *http.Request) {
	flusher, ok := h.openStream(w, r)
	if !ok {
		return
	}

	snapshots, cleanup, err := h.dashboardService.Subscribe(r.Context())
	if err != nil {
		return
	}
	defer cleanup()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			event := "snapshot"
			if snapshot.Partial {
				event = "partial"
			}
			writeSSEEvent(w, flusher, event, snapshot)
		case <-keepalive.C:
			writeKeepalive(w, flusher)
		case <-r.Context().Done():
			return
		}
	}
}
