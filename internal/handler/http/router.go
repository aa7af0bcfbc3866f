package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/iepin-personal/planilla-backend-go/internal/handler/http/middleware"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	paymentHandler PaymentHandler,
	discountHandler DiscountHandler,
	advanceHandler AdvanceHandler,
	dashboardHandler DashboardHandler,
	streamHandler StreamHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "planilla-backend"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// SSE endpoints authenticate with a short-lived query token because
		// EventSource cannot send an Authorization header.
		r.Route("/stream", func(r chi.Router) {
			r.Get("/employees", streamHandler.StreamEmployees)
			r.Get("/payments", streamHandler.StreamPayments)
			r.Get("/discounts", streamHandler.StreamDiscounts)
			r.Get("/advances", streamHandler.StreamAdvances)
			r.Get("/dashboard", streamHandler.StreamDashboard)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/stream/token", streamHandler.GetSSEToken)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Deactivate)
					r.Post("/reactivate", employeeHandler.Reactivate)
					r.Get("/deductions", employeeHandler.Deductions)
				})
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", paymentHandler.List)
				r.Post("/", paymentHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", paymentHandler.Get)
					r.Post("/complete", paymentHandler.Complete)
					r.Post("/fail", paymentHandler.Fail)
					r.Post("/cancel", paymentHandler.Cancel)
				})
			})

			r.Route("/discounts", func(r chi.Router) {
				r.Get("/", discountHandler.List)
				r.Post("/", discountHandler.Create)
				r.Get("/employee/{employeeID}", discountHandler.ListByEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", discountHandler.Get)
					r.Put("/", discountHandler.Update)
					r.Delete("/", discountHandler.Deactivate)
				})
			})

			r.Route("/advances", func(r chi.Router) {
				r.Get("/", advanceHandler.List)
				r.Post("/", advanceHandler.Create)
				r.Get("/employee/{employeeID}", advanceHandler.ListByEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", advanceHandler.Get)
					r.Post("/mark-paid", advanceHandler.MarkPaid)
					r.Delete("/", advanceHandler.Cancel)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/approve", advanceHandler.Approve)
						r.Post("/reject", advanceHandler.Reject)
					})
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/statistics", dashboardHandler.Statistics)
				r.Get("/statistics/cached", dashboardHandler.CachedStatistics)
				r.Get("/employees/{employeeID}/statistics", dashboardHandler.EmployeeStatistics)
			})
		})
	})

	return r
}
