package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sartorproj/tsdiag/batch"
	"github.com/sartorproj/tsdiag/internal/cache"
	"github.com/sartorproj/tsdiag/internal/config"
	"github.com/sartorproj/tsdiag/internal/httpapi"
	"github.com/sartorproj/tsdiag/internal/logging"
	"github.com/sartorproj/tsdiag/internal/metrics"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return inputError(err)
			}
			cfg := *cliCtx.Config
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := runServer(ctx, &cfg, cliCtx.Logger); err != nil {
				return inputError(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultServerHost, "listen host (overrides server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultServerPort, "listen port (overrides server.port)")
	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	gin.SetMode(cfg.Server.Mode)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	var analysisCache *cache.AnalysisCache
	if cfg.Cache.Enabled {
		client := cache.NewClient(cfg.Cache)
		analysisCache = cache.New(client, cfg.Cache.TTL, cfg.Cache.KeyPrefix, logger, m)
		defer analysisCache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := analysisCache.Ping(pingCtx); err != nil {
			logger.Warn("redis unavailable, responses will be recomputed", logging.String("addr", cfg.Cache.Addr), logging.Err(err))
		}
		cancel()
	}

	router := httpapi.NewRouter(httpapi.Options{
		Logger:         logger,
		Metrics:        m,
		Cache:          analysisCache,
		Batch:          &batch.Options{Workers: cfg.Batch.Workers},
		MaxBatchModels: cfg.Batch.MaxModels,
		MetricsPath:    cfg.Metrics.Path,
		Version:        Version,
	})
	srv := httpapi.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := srv.Stop(context.Background()); err != nil {
		return err
	}
	return <-errCh
}
