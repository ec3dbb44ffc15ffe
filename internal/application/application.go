package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/blackbox-sd/internal/api"
	"github.com/eugenenazirov/blackbox-sd/internal/config"
	"github.com/eugenenazirov/blackbox-sd/internal/discovery"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application. discoveryCfg is shared read-only by every
// request for the lifetime of the App.
func New(settings config.ServerConfig, discoveryCfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	handler := api.NewHandler(discoveryCfg, api.WithLogger(logger))
	router := api.NewRouter(handler, logger,
		api.WithLogging(settings.EnableRequestLogging),
		api.WithRateLimit(settings.RateLimitRPS, settings.RateLimitBurst),
	)

	logger.Info("discovery document loaded",
		zap.String("summary", discoveryCfg.Summary()),
		zap.Strings("tags", discovery.Tags(discoveryCfg)),
	)

	return &App{
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(settings, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided settings.
func NewServer(settings config.ServerConfig, handler http.Handler) *http.Server {
	addr := settings.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: settings.ReadHeaderTimeout,
		WriteTimeout:      settings.WriteTimeout,
		IdleTimeout:       settings.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Handler returns the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}
