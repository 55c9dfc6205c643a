package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/slide-backend/internal/advisor"
	"github.com/rocketscienceinc/slide-backend/internal/config"
	"github.com/rocketscienceinc/slide-backend/internal/dependencies/random"
	"github.com/rocketscienceinc/slide-backend/internal/repository"
	"github.com/rocketscienceinc/slide-backend/internal/repository/storage"
	"github.com/rocketscienceinc/slide-backend/internal/service"
	"github.com/rocketscienceinc/slide-backend/internal/usecase"
	"github.com/rocketscienceinc/slide-backend/transport/rest"
	"github.com/rocketscienceinc/slide-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
		Addr:     redisAddrString,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	moveAdvisor, err := newAdvisor(logger, conf.Bot)
	if err != nil {
		return err
	}

	playerRepo := repository.NewPlayerRepository(redisStorage, conf.GameTTL)
	gameRepo := repository.NewGameRepository(redisStorage, conf.GameTTL)
	resultRepo := repository.NewResultRepository(sqliteStorage.Connection)
	botService := service.NewBotService(logger, moveAdvisor, conf.Bot.ThinkDelay)
	gameUseCase := usecase.NewGameManager(logger, playerRepo, gameRepo, resultRepo, botService, moveAdvisor, random.New())

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameUseCase).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase, websocket.DefaultReconnectGrace)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// NewRandom - a seeded source when seed is set, crypto otherwise.
func NewRandom(seed int64) random.Random {
	if seed != 0 {
		return random.NewSeeded(seed)
	}

	return random.New()
}

func newAdvisor(logger *slog.Logger, conf config.Bot) (*advisor.Advisor, error) {
	strategy, err := advisor.ParseStrategy(conf.Strategy)
	if err != nil {
		return nil, fmt.Errorf("invalid bot config: %w", err)
	}

	return advisor.New(NewRandom(conf.Seed), advisor.WithStrategy(strategy), advisor.WithLogger(logger)), nil
}
