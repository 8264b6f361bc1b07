package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sensacion-hr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/csrf"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Device     DeviceHandler
	System     SystemHandler
}

type RouterConfig struct {
	AppName     string
	Version     string
	Env         string
	LogLevel    slog.Level
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig, jwtService jwt.Service, csrfStore csrf.Store, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", csrf.HeaderName},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", h.System.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/csrf-token", h.System.CSRFToken)
		r.Get("/branch", h.System.Branch)
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))
			r.Use(middleware.CSRFProtect(csrfStore))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Put("/auth/password", h.Auth.ChangePassword)
			r.With(middleware.AdminOnly).Post("/auth/register", h.Auth.Register)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/stats", h.Employee.Stats)
				r.Get("/document/{document}", h.Employee.GetByDocumentNumber)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeactivateEmployee)
					r.Get("/attendance", h.Attendance.ListEvents)
					r.Get("/report", h.Report.MonthlyReport)
					r.Get("/report/export", h.Report.ExportMonthlyReport)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/manual", h.Attendance.ManualOverride)
				r.Post("/sync", h.Attendance.Sync)
				r.With(middleware.AdminOnly).Post("/resync", h.Attendance.Resync)
			})

			r.Get("/dashboard", h.Report.Dashboard)

			r.Route("/device", func(r chi.Router) {
				r.Get("/info", h.Device.Info)
				r.Get("/users", h.Device.ListUsers)
				r.Get("/punches", h.Device.ListPunches)
				r.Post("/configure", h.Device.Configure)
				r.Post("/import-users", h.Device.ImportUsers)
			})

			r.Get("/audit-log", h.System.AuditLog)
		})
	})
	return r
}
