package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vault-reconciler/core/config"
	"vault-reconciler/core/loader"
	"vault-reconciler/core/logger"
	"vault-reconciler/core/middleware/auth"
	"vault-reconciler/core/middleware/rayid"
	"vault-reconciler/core/storage"
	"vault-reconciler/core/warehouse"

	"vault-reconciler/feature/report"
	"vault-reconciler/feature/vault"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "vault-reconciler/docs/swagger"
)

// @title Vault Reconciler API
// @version 1.0
// @description API for validating Data Vault layer integrity.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server, the metrics listener and, when configured, the periodic validation schedule.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the Warehouse
		executor, err := warehouse.NewExecutor(cmd.Context(), cfg.Warehouse)
		if err != nil {
			logg.Fatal("Failed to connect to warehouse", zap.Error(err))
		}
		defer executor.Close()
		logg.Info("Connected to warehouse", zap.String("driver", cfg.Warehouse.Driver))

		// 4. Initialize Storage (only needed for object-based entity configs
		// and report uploads)
		var store storage.Client
		if cfg.Recon.EntitiesObject != "" || cfg.Recon.UploadReports {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		// 5. Load Entities
		entities, err := loadEntities(cmd.Context(), cfg, store)
		if err != nil {
			logg.Fatal("Failed to load entities", zap.Error(err))
		}
		logg.Info("Entities loaded", zap.Int("count", len(entities)))

		// 6. Build the Validation Service
		engine := vault.NewEngine(executor, logg, vault.Options{
			SampleSize:   cfg.Recon.SampleSize,
			Parallelism:  cfg.Recon.Parallelism,
			QueryTimeout: time.Duration(cfg.Recon.QueryTimeoutSeconds) * time.Second,
		})
		svc := vault.NewService(engine, entities, time.Duration(cfg.Recon.CacheTTLMinutes)*time.Minute, logg)

		if cfg.Recon.UploadReports {
			uploader := report.NewUploader(store, cfg.Storage.Bucket, cfg.Recon.ReportPrefix, cfg.Storage.ReportRetention, logg)
			svc.OnComplete = func(r *vault.Report) {
				if err := uploader.Upload(context.Background(), r); err != nil {
					logg.Error("Report upload failed", zap.Error(err))
				}
			}
		}

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID must be first so every request is traceable.
		app.Use(rayid.New())

		// Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints: liveness and API documentation.
		app.Get("/healthz", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (protect the API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		mgr := loader.NewManager()
		mgr.Register(vault.NewFeature(svc))
		mgr.Register(report.NewFeature(svc, logg))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Metrics Listener
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logg.Info("Serving metrics", zap.String("addr", cfg.Server.MetricsAddr()))
			if err := http.ListenAndServe(cfg.Server.MetricsAddr(), mux); err != nil {
				logg.Error("Metrics listener failed", zap.Error(err))
			}
		}()

		// 10. Validation Schedule
		var scheduler *gocron.Scheduler
		if cfg.Recon.ScheduleMinutes > 0 {
			scheduler = gocron.NewScheduler(time.UTC)
			interval := time.Duration(cfg.Recon.ScheduleMinutes) * time.Minute
			_, err := scheduler.Every(interval).Do(func() {
				if _, err := svc.Run(context.Background(), "schedule", true); err != nil {
					logg.Error("Scheduled validation failed", zap.Error(err))
				}
			})
			if err != nil {
				logg.Fatal("Failed to schedule validation", zap.Error(err))
			}
			scheduler.StartAsync()
			logg.Info("Validation schedule started", zap.Duration("interval", interval))
		}

		// 11. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 12. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if scheduler != nil {
			scheduler.Stop()
		}
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
