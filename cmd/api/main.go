package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/iepin-personal/planilla-backend-go/internal/config"
	appHTTP "github.com/iepin-personal/planilla-backend-go/internal/handler/http"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/cron"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/database"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/jwt"
	"github.com/iepin-personal/planilla-backend-go/internal/pkg/sse"
	"github.com/iepin-personal/planilla-backend-go/internal/repository/postgresql"
	advanceService "github.com/iepin-personal/planilla-backend-go/internal/service/advance"
	authService "github.com/iepin-personal/planilla-backend-go/internal/service/auth"
	dashboardService "github.com/iepin-personal/planilla-backend-go/internal/service/dashboard"
	discountService "github.com/iepin-personal/planilla-backend-go/internal/service/discount"
	employeeService "github.com/iepin-personal/planilla-backend-go/internal/service/employee"
	paymentService "github.com/iepin-personal/planilla-backend-go/internal/service/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	discountRepo := postgresql.NewDiscountRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	authSvc := authService.NewService(userRepo, jwtService)
	employeeSvc := employeeService.NewService(employeeRepo, hub)
	discountSvc := discountService.NewService(discountRepo, employeeRepo, hub)
	advanceSvc := advanceService.NewService(advanceRepo, employeeRepo, hub)
	paymentSvc := paymentService.NewService(db, paymentRepo, employeeRepo, discountRepo, advanceRepo, hub)
	dashboardSvc := dashboardService.NewService(dashboardRepo, employeeRepo, paymentRepo, hub)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("dashboard-cache-refresh", 5*time.Minute, dashboardSvc.RefreshCache)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc, discountSvc, advanceSvc)
	paymentHandler := appHTTP.NewPaymentHandler(paymentSvc)
	discountHandler := appHTTP.NewDiscountHandler(discountSvc)
	advanceHandler := appHTTP.NewAdvanceHandler(advanceSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	streamHandler := appHTTP.NewStreamHandler(jwtService, employeeSvc, paymentSvc, discountSvc, advanceSvc, dashboardSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, FrontendURL: cfg.App.FrontendURL},
		jwtService,
		authHandler,
		employeeHandler,
		paymentHandler,
		discountHandler,
		advanceHandler,
		dashboardHandler,
		streamHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
