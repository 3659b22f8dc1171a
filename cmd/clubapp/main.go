package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cedarclub/client"
	"cedarclub/clock"
	"cedarclub/config"
	"cedarclub/session"
	"cedarclub/telemetry"
	"cedarclub/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var configFile string

	root := &cobra.Command{
		Use:          "clubapp",
		Short:        "Terminal client for Cedar Club members and staff",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), configFile, func(a *app) error {
				return a.run(cmd.Context())
			})
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: config.yaml in ., ./config or $HOME/.cedarclub)")

	root.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Print the user of the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), configFile, func(a *app) error {
				a.whoami()
				return nil
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), configFile, func(a *app) error {
				return a.session.Logout(cmd.Context())
			})
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// withApp builds the client stack from configuration, runs fn and tears the
// stack down again.
func withApp(ctx context.Context, configFile string, fn func(*app) error) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	shutdown := telemetry.Setup(ctx, "cedarclub-app", cfg.OTLPEndpoint, cfg.OTLPInsecure, logger)
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	store, err := session.Open(ctx, storage, logger)
	if err != nil {
		return err
	}

	api := client.New(cfg.APIBaseURL, store,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(logger),
	)
	a := newApp(cfg, api, store, clock.NewSystem(), logger, os.Stdin, os.Stdout)
	return fn(a)
}

func openStorage(ctx context.Context, cfg config.Config) (session.Storage, func(), error) {
	noop := func() {}
	switch cfg.SessionBackend {
	case "memory":
		return session.NewMemoryStorage(), noop, nil
	case "redis":
		rdb, err := utils.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisSessionDB)
		if err != nil {
			return nil, noop, err
		}
		return session.NewRedisStorage(rdb, cfg.DeviceID), func() { _ = rdb.Close() }, nil
	case "file", "":
		fs, err := session.NewFileStorage(cfg.SessionFile)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
