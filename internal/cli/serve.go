package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/awsutil"
	"github.com/piwi3910/BoardCut/internal/config"
	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/orders"
	"github.com/piwi3910/BoardCut/internal/server"
	"github.com/piwi3910/BoardCut/internal/storage"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			srv, err := buildServer(cmd.Context(), a.cfg, a)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, a.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// buildServer wires storage, the order recorder and the access gate from
// the runtime config.
func buildServer(ctx context.Context, cfg config.Config, a *app) (*server.Server, error) {
	store, recorder, err := buildOrderBackends(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc := orders.NewService(store, recorder, orders.WithLogger(a.logger))

	settings := model.DefaultSettings()
	settings.RotationPolicy = cfg.RotationPolicy()

	opts := []server.Option{
		server.WithLogger(a.logger),
		server.WithSettings(settings),
		server.WithTrustedProxies(cfg.Server.TrustedProxies...),
		server.WithEngineOptions(engine.WithLogger(a.logger)),
	}
	if cfg.Gate.Password != "" {
		opts = append(opts, server.WithGate(server.NewGate(cfg.Gate.Password, cfg.Gate.MaxAttempts, cfg.Gate.Block)))
	}
	return server.New(svc, opts...), nil
}

func buildOrderBackends(ctx context.Context, cfg config.Config) (storage.BlobStore, orders.Recorder, error) {
	needAWS := cfg.Storage.Backend == "s3" || cfg.Orders.Recorder == "dynamodb"
	if !needAWS {
		return storage.NewLocalStore(cfg.Storage.Root), orders.NewFileRecorder(cfg.Orders.Path), nil
	}

	sdkCfg, err := awsutil.LoadConfig(ctx, cfg.Storage.Region, cfg.Storage.Profile, cfg.Storage.Endpoint)
	if err != nil {
		return nil, nil, err
	}

	var store storage.BlobStore
	switch cfg.Storage.Backend {
	case "s3":
		store = storage.NewS3Store(sdkCfg, cfg.Storage.Bucket)
	default:
		store = storage.NewLocalStore(cfg.Storage.Root)
	}

	var recorder orders.Recorder
	switch cfg.Orders.Recorder {
	case "dynamodb":
		recorder = orders.NewDynamoRecorder(sdkCfg, cfg.Orders.Table)
	default:
		recorder = orders.NewFileRecorder(cfg.Orders.Path)
	}
	return store, recorder, nil
}
