package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"webchat/domain/chat"
	"webchat/infrastructure/grpc"
	"webchat/infrastructure/httpapi"
	"webchat/infrastructure/realtime"
	"webchat/infrastructure/storage"
	"webchat/internal"
	"webchat/runtime"
	"webchat/runtime/workers"
	"webchat/services"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Deferred closes always run before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	location, err := chat.LoadLocation(config.Timezone)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Store
	repository, err := storage.Open(ctx, logger, config.StorageOptions())
	if err != nil {
		return exitRuntime, fmt.Errorf("store opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing store...", "driver", config.StoreDriver)
		_ = repository.Close()
	}()

	if badgerRepository, ok := repository.(*storage.ChatRepository); ok && logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(badgerRepository.DB(), config.DebugPort, endpoint, storage.InspectMapper)
	}

	// 4. Runtime & Services
	registry := runtime.NewRegistry()
	router := runtime.NewRouter(logger, registry, config.SinkTimeout)
	chatService := services.NewChatService(logger, repository, registry, router, location, config.SinkTimeout)

	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(workers.NewMonitorWorker(logger, registry, config.MetricInterval))
	supervisorDone := make(chan struct{})
	go func() {
		defer close(supervisorDone)
		sup.Run(ctx)
	}()

	errChan := make(chan error, 2)

	// 5. HTTP & WebSocket
	realtimeHandler := realtime.NewHandler(logger, chatService, config.AllowedOrigin, config.ConnectionBufferSize, location)
	httpServer := &http.Server{
		Addr:              config.Address(),
		Handler:           httpapi.NewRouter(logger, chatService, realtimeHandler, config.AllowedOrigin, location),
		ReadHeaderTimeout: 10 * time.Second,
	}
	httpServer.RegisterOnShutdown(realtimeHandler.Close)
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr, "store", config.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. Optional gRPC health
	var healthServer *grpc.HealthServer
	if config.GRPCHealthPort > 0 {
		address := fmt.Sprintf("%s:%d", config.Host, config.GRPCHealthPort)
		listener, err := net.Listen("tcp", address)
		if err != nil {
			return exitRuntime, fmt.Errorf("failed to listen on %s: %w", address, err)
		}
		healthServer = grpc.NewHealthServer(logger, listener)
		go func() {
			if err := healthServer.Serve(ctx); err != nil {
				errChan <- err
			}
		}()
	}

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		sup.Stop()
		return exitRuntime, err
	}

	// 8. Graceful Shutdown
	logger.Info("Shutting down gracefully...")
	if healthServer != nil {
		healthServer.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	sup.Stop()
	<-supervisorDone
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}
