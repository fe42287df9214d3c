package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/middleware"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/jwt"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	employeeHandler EmployeeHandler,
	departmentHandler DepartmentHandler,
	dashboardHandler DashboardHandler,
	settingsHandler SettingsHandler,
	frontendURL string,
	env string,
	logLevel string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "thinkforge-hrms"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  parseLogLevel(logLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Post("/employee-code", authHandler.LoginWithEmployeeCode)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/", leaveHandler.ListMine)
				r.Get("/pending", leaveHandler.ListPending)
				r.Get("/history", leaveHandler.ListHistory)
				r.Get("/{id}", leaveHandler.GetApplication)
				r.Post("/{id}/approve", leaveHandler.Approve)
				r.Post("/{id}/reject", leaveHandler.Reject)
				r.Post("/{id}/cancel", leaveHandler.Cancel)
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", leaveHandler.ListTypes)

				// Admin or HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdminOrHR)
					r.Post("/", leaveHandler.CreateType)
					r.Put("/{id}", leaveHandler.UpdateType)
					r.Delete("/{id}", leaveHandler.DisableType)
				})
			})

			r.Route("/leave-balances", func(r chi.Router) {
				r.Get("/", leaveHandler.GetBalances)

				// Admin or HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdminOrHR)
					r.Post("/adjust", leaveHandler.AdjustBalance)
				})
			})

			// Admin or HR only
			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireAdminOrHR)
				r.Post("/", employeeHandler.Provision)
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Post("/{id}/deactivate", employeeHandler.Deactivate)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", departmentHandler.List)

				// Admin or HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdminOrHR)
					r.Post("/", departmentHandler.Create)
					r.Put("/{id}", departmentHandler.Rename)
					r.Delete("/{id}", departmentHandler.Delete)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboardHandler.SelfStats)
				r.Get("/recent-requests", dashboardHandler.RecentRequests)
				r.Get("/pending-approvals", dashboardHandler.PendingApprovals)

				// Admin or HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdminOrHR)
					r.Get("/org", dashboardHandler.OrgSnapshot)
				})
			})

			r.Get("/announcements/active", settingsHandler.ActiveAnnouncements)

			// Admin only
			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Route("/email-templates", func(r chi.Router) {
					r.Get("/", settingsHandler.ListTemplates)
					r.Post("/", settingsHandler.UpsertTemplate)
				})
				r.Route("/sender-config", func(r chi.Router) {
					r.Get("/", settingsHandler.GetSenderConfig)
					r.Put("/", settingsHandler.UpsertSenderConfig)
				})
				r.Route("/announcements", func(r chi.Router) {
					r.Get("/", settingsHandler.ListAnnouncements)
					r.Post("/", settingsHandler.UpsertAnnouncement)
					r.Delete("/{id}", settingsHandler.DeleteAnnouncement)
				})
			})
		})
	})
	return r
}
