package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/common/version"
	"go.uber.org/zap"

	"github.com/eugenenazirov/blackbox-sd/internal/application"
	"github.com/eugenenazirov/blackbox-sd/internal/config"
	"github.com/eugenenazirov/blackbox-sd/internal/logging"
)

const appName = "blackbox-sd"

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New(appName, "Service discovery manifest generator - expands probe targets and endpoints into file_sd groups")
	kingpinApp.Version(version.Print(appName))
	kingpinApp.HelpFlag.Short('h')
	configFile := kingpinApp.Flag("config", "Path to the YAML discovery document").Short('c').Required().String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	logLevel := kingpinApp.Flag("log-level", "Log level: debug, info, warn or error").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	settings, err := config.LoadServer(buildOverrides(*port, *logLevel, *rateLimitRPSFlag, *rateLimitBurstFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load server settings: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(settings.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	discoveryCfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal("failed to load discovery document", zap.String("path", *configFile), zap.Error(err))
	}

	app, err := application.New(settings, discoveryCfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), settings.ShutdownGracePeriod, logger)
}

func buildOverrides(port, logLevel string, rps float64, burst int) *config.CLIOverrides {
	overrides := &config.CLIOverrides{}

	if port != "" {
		overrides.Port = &port
	}

	if logLevel != "" {
		overrides.LogLevel = &logLevel
	}

	if rps >= 0 {
		overrides.RateLimitRPS = &rps
	}

	if burst >= 0 {
		overrides.RateLimitBurst = &burst
	}

	return overrides
}

// shutdown blocks until SIGINT or SIGTERM, then drains in-flight discovery
// requests for up to timeout before closing remaining connections.
func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("shutting down server",
		zap.String("signal", sig.String()),
		zap.Duration("grace_period", timeout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed, closing connections", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
		return
	}
	logger.Info("server stopped")
}
