package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/slide-backend/internal/advisor"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
	"github.com/rocketscienceinc/slide-backend/pkg/handlers"
)

const (
	shutdownTimeout = 5 * time.Second
	// a one-player turn includes the bot reply, so this must exceed config.MaxThinkDelay
	writeTimeout = 10 * time.Second
)

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID, mode string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, label entity.Label) (*entity.Game, error)
	SuggestMove(ctx context.Context, playerID string) (advisor.Suggestion, error)
	PlayerStats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	router      chi.Router
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(server.logRequests)
	router.Use(middleware.Recoverer)

	router.Get("/ping", handlers.Ping(server.logger))

	router.Post("/players", server.handleCreatePlayer)
	router.Get("/players/{id}/stats", server.handlePlayerStats)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", server.handleCreateGame)
		r.Get("/{id}", server.handleGetGame)
		r.Post("/{id}/join", server.handleJoinGame)
		r.Post("/{id}/turns", server.handleMakeTurn)
		r.Get("/{id}/suggestion", server.handleSuggestion)
	})

	server.router = router

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestID", middleware.GetReqID(r.Context()),
		)
	})
}
