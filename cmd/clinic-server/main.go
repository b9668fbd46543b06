package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smartclinic/smartclinic/internal/config"
	"github.com/smartclinic/smartclinic/internal/domain/admin"
	"github.com/smartclinic/smartclinic/internal/domain/appointment"
	"github.com/smartclinic/smartclinic/internal/domain/doctor"
	"github.com/smartclinic/smartclinic/internal/domain/patient"
	"github.com/smartclinic/smartclinic/internal/domain/prescription"
	"github.com/smartclinic/smartclinic/internal/platform/auth"
	"github.com/smartclinic/smartclinic/internal/platform/db"
	"github.com/smartclinic/smartclinic/internal/platform/middleware"
)

// roleDirectory resolves a token subject's role by probing each account
// store. It lives in main to avoid import cycles between auth and the domain
// packages.
type roleDirectory struct {
	admins   admin.Repository
	doctors  doctor.Repository
	patients patient.Repository
}

func (d *roleDirectory) RoleOf(ctx context.Context, subjectID uuid.UUID) (auth.Role, error) {
	if _, err := d.admins.FindByID(ctx, subjectID); err == nil {
		return auth.RoleAdmin, nil
	} else if !errors.Is(err, admin.ErrNotFound) {
		return "", err
	}
	if _, err := d.doctors.FindByID(ctx, subjectID); err == nil {
		return auth.RoleDoctor, nil
	} else if !errors.Is(err, doctor.ErrNotFound) {
		return "", err
	}
	if _, err := d.patients.FindByID(ctx, subjectID); err == nil {
		return auth.RolePatient, nil
	} else if !errors.Is(err, patient.ErrNotFound) {
		return "", err
	}
	return "", auth.ErrSubjectUnknown
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(adminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			authority := auth.NewAuthority([]byte(cfg.JWTSecret), cfg.TokenTTL())
			svc := admin.NewService(admin.NewRepo(pool), authority)
			a, err := svc.Create(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Printf("Created admin %s (%s)\n", a.Username, a.ID)
			return nil
		},
	}
	createCmd.Flags().String("username", "", "Admin username")
	createCmd.Flags().String("password", "", "Admin password")
	cmd.AddCommand(createCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Repositories
	adminRepo := admin.NewRepo(pool)
	doctorRepo := doctor.NewRepo(pool)
	patientRepo := patient.NewRepo(pool)
	apptRepo := appointment.NewRepo(pool)
	rxRepo := prescription.NewRepo(pool)

	// Auth
	authority := auth.NewAuthority([]byte(cfg.JWTSecret), cfg.TokenTTL())
	gate := auth.NewGate(authority, &roleDirectory{
		admins:   adminRepo,
		doctors:  doctorRepo,
		patients: patientRepo,
	}, logger)

	// Services
	doctorSvc := doctor.NewService(doctorRepo, apptRepo, apptRepo, authority)
	adminSvc := admin.NewService(adminRepo, authority)
	patientSvc := patient.NewService(patientRepo, authority)
	apptSvc := appointment.NewService(apptRepo, doctorSvc, logger)
	rxSvc := prescription.NewService(rxRepo, apptRepo)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))

	admin.NewHandler(adminSvc).RegisterRoutes(apiV1)
	doctor.NewHandler(doctorSvc).RegisterRoutes(apiV1, gate)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1, gate)
	appointment.NewHandler(apptSvc).RegisterRoutes(apiV1, gate)
	prescription.NewHandler(rxSvc).RegisterRoutes(apiV1, gate)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
