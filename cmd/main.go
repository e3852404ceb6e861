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

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"match-lab/domain"
	httpapi "match-lab/infrastructure/http"
	"match-lab/internal"
	"match-lab/repositories"
	"match-lab/runtime"
	"match-lab/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and manages the server lifecycle. Errors
// bubble up here so deferred cleanup still executes before the process
// exits.
func run() error {
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	users, rooms, games, cleanup, err := buildRepositories(config, log)
	if err != nil {
		return err
	}
	defer cleanup()

	gameManager := services.NewGameManager(games, domain.NewGamePlay())
	roomManager := services.NewRoomManager(users, rooms, gameManager, log)
	svc := services.NewApplicationService(users, rooms, roomManager, log)
	registry := runtime.NewRegistry()

	router := httpapi.NewRouter(svc, registry, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: router}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "storage", config.StorageBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}

// buildRepositories selects the storage backend. The cleanup function is
// a no-op for the in-memory backend and closes the database for badger.
func buildRepositories(config internal.Config, log *slog.Logger) (
	repositories.IUserRepository,
	repositories.IRoomRepository,
	repositories.IGameRepository,
	func(),
	error,
) {
	if config.StorageBackend == internal.StorageMemory {
		return repositories.NewMemoryUserRepository(),
			repositories.NewMemoryRoomRepository(),
			repositories.NewMemoryGameRepository(),
			func() {}, nil
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("database opening failed: %w", err)
	}
	cleanup := func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}
	return repositories.NewBadgerUserRepository(db, log),
		repositories.NewBadgerRoomRepository(db, log),
		repositories.NewBadgerGameRepository(db, log),
		cleanup, nil
}
