package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	gorilla "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/slide-backend/internal/advisor"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
	"github.com/rocketscienceinc/slide-backend/pkg/handlers"
)

const (
	shutdownTimeout = 5 * time.Second
	sweepInterval   = 5 * time.Second

	DefaultReconnectGrace = 30 * time.Second
)

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID, mode string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, label entity.Label) (*entity.Game, error)
	SuggestMove(ctx context.Context, playerID string) (advisor.Suggestion, error)
	EndGame(ctx context.Context, game *entity.Game) error
}

type handlerFunc func(ctx context.Context, conn *client, action string, payload Payload) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    gorilla.Upgrader

	handlers map[string]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[string]*client

	disconnectedMutex   sync.Mutex
	disconnectedPlayers map[string]time.Time
	reconnectGrace      time.Duration
}

// New - a player that stays disconnected longer than reconnectGrace loses their game.
func New(logger *slog.Logger, gameUseCase gameUseCase, reconnectGrace time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: gorilla.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),

		connections:         make(map[string]*client),
		disconnectedPlayers: make(map[string]time.Time),
		reconnectGrace:      reconnectGrace,
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameJoin] = server.handleJoinGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionSuggest] = server.handleSuggest
	server.handlers[actionGameLeave] = server.handleGameLeave

	return server
}

func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Get("/ping", handlers.Ping(that.logger))
	router.Get("/ws", that.serveWS)

	return router
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go that.runSweeper(ctx)

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

func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	c := newClient(conn)

	go func() {
		if err := c.writePump(); err != nil {
			log.Debug("writer stopped", "error", err)
		}
	}()

	// the websocket outlives the request context once hijacked
	ctx := context.WithoutCancel(r.Context())

	that.handleMessages(ctx, c)
	that.handleDisconnect(c)
}

// handleMessages - processes messages from the client until the connection drops.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if gorilla.IsUnexpectedCloseError(err, gorilla.CloseGoingAway, gorilla.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			that.sendError(c, "", "invalid message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(c, message.Action, "unknown action")
			continue
		}

		var payload Payload
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &payload); err != nil {
				that.sendError(c, message.Action, "invalid payload")
				continue
			}
		}

		if err = handler(ctx, c, message.Action, payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			that.sweepDisconnected(ctx, now)
		}
	}
}

// sweepDisconnected - ends the games of players gone for longer than the grace period.
func (that *Server) sweepDisconnected(ctx context.Context, now time.Time) {
	var expired []string

	that.disconnectedMutex.Lock()
	for playerID, since := range that.disconnectedPlayers {
		if now.Sub(since) >= that.reconnectGrace {
			expired = append(expired, playerID)
			delete(that.disconnectedPlayers, playerID)
		}
	}
	that.disconnectedMutex.Unlock()

	for _, playerID := range expired {
		that.handleOpponentOut(ctx, playerID)
	}
}
