package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loot-splitter/core/loader"
	"loot-splitter/core/logger"
	"loot-splitter/core/middleware/auth"
	"loot-splitter/core/middleware/rayid"
	"loot-splitter/core/notify"
	"loot-splitter/core/validate"

	"loot-splitter/feature/integrity"
	"loot-splitter/feature/session"
	"loot-splitter/feature/settlement"
	"loot-splitter/feature/share"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "loot-splitter/docs/swagger"
)

// @title Loot Splitter API
// @version 1.0
// @description API for settling hunt loot between party members.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 10 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the loot splitter server",
	Long:  `Starts the HTTP API, the realtime session listener and every enabled feature.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger, optional backends, price table
		rt, err := loadRuntime(true)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Warm the price table so a broken source fails at startup
		if table, err := rt.prices.Get(cmd.Context()); err != nil {
			logg.Fatal("Failed to load price table", zap.String("source", rt.prices.SourceName()), zap.Error(err))
		} else {
			logg.Info("Loaded price table", zap.String("source", rt.prices.SourceName()), zap.Int("items", table.Len()))
		}

		validator := validate.MustNew()
		notifier, err := notify.New(rt.cfg.Notify, logger.Named(logg, "notify"))
		if err != nil {
			logg.Fatal("Failed to create notifier", zap.Error(err))
		}

		// 3. Features
		settleFeature := settlement.NewFeature(rt.prices, validator, logg)
		settler := settleFeature.Service()

		shareFeature, err := share.NewFeature(rt.cfg.Share, settler, validator, logg)
		if err != nil {
			logg.Fatal("Failed to create share feature", zap.Error(err))
		}
		sessionFeature, err := session.NewFeature(rt.cfg.Session, settler, notifier, validator, rt.cfg.Server.Origins(), logg)
		if err != nil {
			logg.Fatal("Failed to create session feature", zap.Error(err))
		}

		mgr := loader.NewManager(logg)
		mgr.Register(settleFeature)
		mgr.Register(shareFeature)
		mgr.Register(sessionFeature)
		mgr.Register(integrity.NewFeature(rt.store, rt.cfg.Storage.Bucket, rt.cfg.Pricing.Object, rt.db, rt.prices, logg))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every log line can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request completed", fields...)
			return nil
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey:       rt.cfg.Server.ApiKey,
			SkipPrefixes: []string{"/swagger"},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 4. Listeners
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		var realtime *http.Server
		if rt.cfg.Server.IsRealtimeEnabled() {
			realtime = &http.Server{
				Addr:              ":" + rt.cfg.Server.RealtimePort,
				Handler:           sessionFeature.Realtime().Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				logg.Info("Starting realtime listener", zap.String("port", rt.cfg.Server.RealtimePort))
				if err := realtime.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logg.Fatal("Realtime listener failed to start", zap.Error(err))
				}
			}()
		}

		// 5. Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if realtime != nil {
			if err := realtime.Shutdown(ctx); err != nil {
				logg.Warn("Realtime listener shutdown failed", zap.Error(err))
			}
		}
		if err := app.ShutdownWithContext(ctx); err != nil {
			logg.Warn("Server shutdown failed", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
