package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/irchook/irchook/pkg/config"
	"github.com/irchook/irchook/pkg/hook"
	"github.com/irchook/irchook/pkg/logging"
	"github.com/irchook/irchook/pkg/metrics"
	"github.com/irchook/irchook/pkg/status"
	"github.com/irchook/irchook/pkg/transport/irc"
	"github.com/irchook/irchook/pkg/transport/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the chat server and relay matches (foreground)",
	Example: `  # Run with a config file
  irchook serve --config irchook.yaml

  # Config file from the environment
  IRCHOOK_CONFIG_FILE=irchook.yaml irchook serve`,
	RunE: runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	path := resolveConfigFile()
	if path == "" {
		return errors.New("no config file: pass --config or set " + config.EnvConfigFile)
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	})
	logger.Info("starting irchook", "version", Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats := metrics.NewRelay()

	relay, err := buildRelay(cfg, logger, stats)
	if err != nil {
		return err
	}

	if cfg.StatusAddr != "" {
		statusSrv := status.New(cfg.StatusAddr, stats, logger)
		go func() {
			if err := statusSrv.Start(); err != nil {
				logger.Error("status server failed", "error", err)
			}
		}()
		defer func() {
			if err := statusSrv.Shutdown(context.Background()); err != nil {
				logger.Error("status server shutdown failed", "error", err)
			}
		}()
	}

	source, err := dialTransport(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	err = relay.Run(ctx, source)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutting down")
		return nil
	}
	return err
}

// buildRelay constructs the match engine, publisher, and relay loop from
// validated configuration.
func buildRelay(cfg *config.Config, logger *slog.Logger, stats *metrics.Relay) (*hook.Relay, error) {
	matcher, err := hook.NewMatcher(hook.MatcherConfig{
		SearchPattern:   cfg.SearchPattern,
		MultiLine:       cfg.MultiLine,
		InitPattern:     cfg.LineInitPattern,
		ConcludePattern: cfg.LineConcludePattern,
		LineLimit:       cfg.LineLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build match engine: %w", err)
	}

	publisher, err := hook.NewPublisher(hook.PublisherConfig{
		URL:           cfg.WebhookURL,
		APIKey:        cfg.WebhookAPIKey,
		BodyTemplate:  cfg.BodyTemplate,
		Headers:       cfg.Headers,
		MaxConcurrent: cfg.MaxConcurrentDispatch,
	}, logger, hook.WithResultCallback(func(r hook.DispatchResult) {
		outcome := "ok"
		if r.Err != nil {
			outcome = "error"
		}
		stats.DispatchesTotal.With(outcome).Inc()
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to build dispatch engine: %w", err)
	}

	return hook.NewRelay(matcher, publisher, logger, stats), nil
}

// dialTransport connects the configured chat transport.
func dialTransport(ctx context.Context, cfg *config.Config, logger *slog.Logger) (hook.LineSource, error) {
	dialCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	switch cfg.Transport {
	case config.TransportWebSocket:
		return ws.Dial(dialCtx, cfg.WebSocketURL, logger)
	default:
		return irc.Dial(dialCtx, irc.Config{
			Server:     cfg.Server,
			Port:       cfg.Port,
			TLS:        cfg.TLS,
			SocksProxy: cfg.SocksProxy,
			Nick:       cfg.Nick,
			Password:   cfg.Password,
			Channels:   cfg.Channels,
		}, logger)
	}
}
