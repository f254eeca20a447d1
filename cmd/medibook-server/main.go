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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/medibook/medibook/internal/config"
	"github.com/medibook/medibook/internal/domain/admin"
	"github.com/medibook/medibook/internal/domain/appointment"
	"github.com/medibook/medibook/internal/domain/doctor"
	"github.com/medibook/medibook/internal/domain/patient"
	"github.com/medibook/medibook/internal/platform/auth"
	"github.com/medibook/medibook/internal/platform/db"
	"github.com/medibook/medibook/internal/platform/mail"
	"github.com/medibook/medibook/internal/platform/middleware"
	"github.com/medibook/medibook/internal/platform/validate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medibook-server",
		Short: "Appointment booking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

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

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg != nil && cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		boot := newLogger(nil)
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	logger := newLogger(cfg)

	ttl, err := cfg.TokenTTL()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid token expiry")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Mail transport: real SMTP when configured, logging stub otherwise.
	var sender mail.Sender
	if cfg.MailEnabled() {
		sender = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom, cfg.EmailFromName)
		logger.Info().Str("host", cfg.SMTPHost).Msg("smtp sender configured")
	} else {
		sender = mail.NewStubSender(logger)
		logger.Warn().Msg("SMTP_HOST not set, email delivery is stubbed")
	}

	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), ttl)

	// Repositories and services.
	patientRepo := patient.NewRepoPG(pool)
	adminRepo := admin.NewRepoPG(pool)
	doctorRepo := doctor.NewRepoPG(pool)
	apptRepo := appointment.NewRepoPG(pool)

	patientSvc := patient.NewService(patientRepo, issuer, sender, cfg.ClientURL, logger)
	doctorSvc := doctor.NewService(doctorRepo)
	apptSvc := appointment.NewService(apptRepo, doctorSvc, patientSvc, sender, logger)
	adminSvc := admin.NewService(adminRepo, issuer, doctorSvc, patientSvc, apptSvc)

	// Echo server.
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	authMW := auth.Middleware(issuer, patientSvc, adminSvc)

	api := e.Group("/api")
	patient.NewHandler(patientSvc).RegisterRoutes(api, authMW)
	admin.NewHandler(adminSvc).RegisterRoutes(api, authMW)
	doctor.NewHandler(doctorSvc).RegisterRoutes(api, authMW)
	appointment.NewHandler(apptSvc).RegisterRoutes(api, authMW)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown.
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// seedCmd inserts a default admin and a sample doctor so a fresh
// environment can be exercised immediately.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed a default admin and sample doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			adminRepo := admin.NewRepoPG(pool)
			err = adminRepo.Create(ctx, &admin.Admin{
				Username:     "admin",
				Email:        "admin@example.com",
				PasswordHash: string(hash),
			})
			switch {
			case errors.Is(err, admin.ErrDuplicateEmail):
				fmt.Println("Admin already seeded, skipping.")
			case err != nil:
				return fmt.Errorf("seed admin: %w", err)
			default:
				fmt.Println("Seeded admin admin@example.com (password: password123).")
			}

			doctorRepo := doctor.NewRepoPG(pool)
			err = doctorRepo.Create(ctx, &doctor.Doctor{
				Name:            "Dr. John Smith",
				Specialization:  "Cardiologist",
				Department:      "Cardiology",
				Qualification:   "MD, FACC",
				Experience:      12,
				ConsultationFee: 150,
				AvailableDays:   []string{"Monday", "Wednesday", "Friday"},
				AvailableTimeSlots: []doctor.TimeSlot{
					{Start: "09:00", End: "09:30"},
					{Start: "10:00", End: "10:30"},
					{Start: "11:00", End: "11:30"},
				},
				Email:    "john.smith@example.com",
				Phone:    "555-0134",
				Bio:      "Senior cardiologist focused on preventive care.",
				IsActive: true,
			})
			switch {
			case errors.Is(err, doctor.ErrDuplicateEmail):
				fmt.Println("Sample doctor already seeded, skipping.")
			case err != nil:
				return fmt.Errorf("seed doctor: %w", err)
			default:
				fmt.Println("Seeded doctor Dr. John Smith (Cardiology).")
			}

			return nil
		},
	}
}
