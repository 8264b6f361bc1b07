package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/sensacion-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/sensacion-hr/attendance-backend-go/internal/handler/http"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/csrf"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/database"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/zkteco"
	"github.com/sensacion-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/sensacion-hr/attendance-backend-go/internal/service/attendance"
	auditService "github.com/sensacion-hr/attendance-backend-go/internal/service/audit"
	serviceAuth "github.com/sensacion-hr/attendance-backend-go/internal/service/auth"
	deviceService "github.com/sensacion-hr/attendance-backend-go/internal/service/device"
	employeeService "github.com/sensacion-hr/attendance-backend-go/internal/service/employee"
	reportService "github.com/sensacion-hr/attendance-backend-go/internal/service/report"
	"github.com/sensacion-hr/attendance-backend-go/migrations"
)

const (
	appName    = "attendance-backend"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx, migrations.FS); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	terminal, err := zkteco.NewClient(zkteco.Config{
		BridgeURL: cfg.Device.BridgeURL,
		IP:        cfg.Device.IP,
		Port:      cfg.Device.Port,
		Timeout:   cfg.Device.Timeout,
		Location:  loc,
	})
	if err != nil {
		return err
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}
	csrfStore := csrf.NewMemoryStore(cfg.Security.CSRFTokenTTL)

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	auditSvc := auditService.NewAuditService(auditRepo)
	limiter := serviceAuth.NewLoginLimiter(cfg.Security.LoginMaxAttempts, cfg.Security.LoginAttemptsSpan)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService, auditSvc, limiter)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, auditSvc)

	classifierPolicy := attendanceService.DefaultClassifierPolicy()
	classifierPolicy.DebounceWindow = cfg.Device.DebounceWindow
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceRepo,
		employeeRepo,
		terminal,
		attendanceService.NewClassifier(classifierPolicy),
		auditSvc,
		time.Now,
	)
	reportSvc := reportService.NewReportService(employeeRepo, attendanceRepo, loc, time.Now)
	deviceSvc := deviceService.NewDeviceService(terminal, employeeRepo, auditSvc)

	if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("error creating initial admin: %w", err)
	}

	scheduler := cron.NewScheduler()
	cron.NewDeviceSyncJob(attendanceSvc).Register(scheduler, cfg.Device.SyncInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AppName:     appName,
		Version:     appVersion,
		Env:         cfg.App.Env,
		LogLevel:    cfg.SlogLevel(),
		CORSOrigins: cfg.App.CORSOrigins,
	}, JWTService, csrfStore, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Device:     appHTTP.NewDeviceHandler(deviceSvc),
		System:     appHTTP.NewSystemHandler(db, csrfStore, auditSvc, cfg.App.BranchName),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// A full resync reads the whole terminal batch
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", "error", err)
		}
	}()

	slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "branch", cfg.App.BranchName)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
