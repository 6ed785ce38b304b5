package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Totarae/shortlink-demo/internal/auth"
	"github.com/Totarae/shortlink-demo/internal/clipboard"
	"github.com/Totarae/shortlink-demo/internal/config"
	"github.com/Totarae/shortlink-demo/internal/database"
	"github.com/Totarae/shortlink-demo/internal/handlers"
	"github.com/Totarae/shortlink-demo/internal/repositories"
	"github.com/Totarae/shortlink-demo/internal/resolver"
	"github.com/Totarae/shortlink-demo/internal/router"
	"github.com/Totarae/shortlink-demo/internal/service"
	"github.com/Totarae/shortlink-demo/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Fatal("Ошибка при запуске сервера", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	// Инициализация конфигурации
	cfg, err := config.NewConfig(logger)
	if err != nil {
		return err
	}

	slot, err := openSlot(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage (%s): %w", cfg.Mode, err)
	}

	store := storage.NewMappingStore(slot, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close storage", zap.Error(err))
		}
	}()

	// пока таблица читается, страницы показывают состояние загрузки
	go store.Load(ctx)

	backend := service.NewSimulatedBackend(store, cfg.SubmitDelay, cfg.BaseURL, logger)
	handler := handlers.NewHandler(
		store,
		service.NewShortener(backend, logger),
		resolver.New(store, logger),
		clipboard.NewCopier(clipboard.System{}, logger),
		cfg.BaseURL,
		logger,
	)
	r := router.NewRouter(handler, auth.New(cfg.SessionSecret), logger)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("address", cfg.ServerAddress), zap.String("mode", cfg.Mode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Получен сигнал остановки, завершаем работу")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Shutdown дожидается начатых отправок, они всегда фиксируются
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Сервер остановлен")
	return nil
}

// openSlot выбирает постоянное хранилище по режиму конфигурации
func openSlot(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Slot, error) {
	switch cfg.Mode {
	case config.ModeDatabase:
		if err := database.Migrate(cfg.DatabaseDSN, logger); err != nil {
			return nil, err
		}
		db, err := database.NewDB(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, err
		}
		return repositories.NewPostgresSlot(db, cfg.StorageKey), nil
	case config.ModeRedis:
		return repositories.NewRedisSlot(cfg.RedisAddr, cfg.StorageKey), nil
	case config.ModeSQLite:
		return repositories.NewSQLiteSlot(cfg.SQLitePath, cfg.StorageKey)
	case config.ModeFile:
		return storage.NewFileSlot(cfg.FileStoragePath), nil
	default:
		return storage.NewMemorySlot(nil), nil
	}
}
