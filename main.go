package main

import (
	"log"
	"net/http"

	"hrtime/config"
	"hrtime/database"
	"hrtime/handlers"
	"hrtime/middleware"
	"hrtime/models"
	"hrtime/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Background automation: leave allocation and attendance generation
	services.StartScheduler(database.GetDB(), cfg.JobHour, cfg.JobMinute)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	employeeHandler := handlers.NewEmployeeHandler(cfg)
	attendanceHandler := handlers.NewAttendanceHandler(cfg)
	leaveHandler := handlers.NewLeaveHandler(cfg)
	summaryHandler := handlers.NewSummaryHandler(cfg)
	jobHandler := handlers.NewJobHandler(cfg)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Public routes
	router.Post("/api/login", authHandler.Login)
	router.Post("/api/register", authHandler.Register)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		// Logout (doesn't need password change check)
		r.Post("/api/logout", authHandler.Logout)

		// Password change (accessible even when a change is required)
		r.Post("/api/change-password", authHandler.ChangePassword)

		// Routes that require password to be changed first
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePasswordChange)

			// Attendance and leave (all authenticated users, self scoped)
			r.Post("/api/attendance", attendanceHandler.CreateAttendance)
			r.Get("/api/attendance", attendanceHandler.ListAttendance)
			r.Post("/api/leaves", leaveHandler.CreateLeave)
			r.Get("/api/leaves", leaveHandler.ListLeaves)
			r.Get("/api/allocations", leaveHandler.ListAllocations)
			r.Get("/api/summary", summaryHandler.GetSummary)

			// Admin and HR only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleHR))
				r.Get("/api/employees", employeeHandler.ListEmployees)
				r.Post("/api/employees", employeeHandler.CreateEmployee)
				r.Put("/api/employees/{id}", employeeHandler.UpdateEmployee)
				r.Get("/api/contracts", employeeHandler.ListContracts)
				r.Post("/api/contracts", employeeHandler.CreateContract)
				r.Post("/api/leaves/{id}/approve", leaveHandler.ApproveLeave)
				r.Post("/api/leaves/{id}/refuse", leaveHandler.RefuseLeave)
				r.Get("/api/summary/export", summaryHandler.ExportSummary)
			})

			// Admin only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/api/invites", authHandler.ListInvites)
				r.Post("/api/invites", authHandler.CreateInvite)
				r.Post("/api/jobs/run", jobHandler.RunJob)
			})
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Printf("Default admin credentials: admin / admin")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
