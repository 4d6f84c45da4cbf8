package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/script-tracker/apiclient"
	"github.com/hairizuanbinnoorazman/script-tracker/cmd/backend/handlers"
	"github.com/hairizuanbinnoorazman/script-tracker/cmd/dashboard/web"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/session"
	"github.com/spf13/cobra"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLoggerWithOptions(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	log.Info(ctx, "starting dashboard", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"backend": cfg.Backend.URL,
	})

	client := apiclient.New(cfg.Backend.URL,
		apiclient.WithTimeout(cfg.Backend.Timeout),
		apiclient.WithLogger(log),
	)

	sessionManager := session.NewManager(cfg.Session.Duration, func() *dashboard.App {
		return dashboard.NewApp(client, dashboard.NewNotifier(cfg.Notifications.Duration), log)
	}, log)
	sessionManager.StartCleanup(5 * time.Minute)
	defer sessionManager.StopCleanup()

	log.Info(ctx, "session manager initialized", map[string]interface{}{
		"duration": cfg.Session.Duration.String(),
	})

	webHandler, err := web.NewHandler(sessionManager, web.Options{
		CookieName:   cfg.Session.CookieName,
		CookieSecret: cfg.Session.CookieSecret,
		CookieSecure: cfg.Session.Secure,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	router := mux.NewRouter()
	webHandler.RegisterRoutes(router)

	var h http.Handler = router
	h = handlers.RequestLogger(log)(h)
	h = handlers.Recoverer(log)(h)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
