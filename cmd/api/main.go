package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caresoft/vave-engine/internal/api"
	"github.com/caresoft/vave-engine/internal/api/handlers"
	"github.com/caresoft/vave-engine/internal/repository"
	"github.com/caresoft/vave-engine/internal/services"
	"github.com/caresoft/vave-engine/pkg/config"
	"github.com/caresoft/vave-engine/pkg/database"
	"github.com/caresoft/vave-engine/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting VAVE Engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	materialRepo := repository.NewMaterialRepository(db)

	// Initialize services; one session tracks the active project
	session := services.NewSession()
	bomService := services.NewBomService(projectRepo, nodeRepo, materialRepo, session)
	projectService := services.NewProjectService(projectRepo, nodeRepo, materialRepo, session)
	materialService := services.NewMaterialService(materialRepo)

	// Create router with dependencies
	router := api.NewRouter(api.Dependencies{
		NodesHandler:     handlers.NewNodesHandler(bomService),
		ProjectsHandler:  handlers.NewProjectsHandler(projectService),
		MaterialsHandler: handlers.NewMaterialsHandler(materialService),
		ExportHandler:    handlers.NewExportHandler(bomService),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
