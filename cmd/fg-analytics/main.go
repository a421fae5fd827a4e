package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/graph"
	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	logger, err := logging.New(logging.FromEnv())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	pg, err := store.NewPostgres(cfg.Store, logger)
	if err != nil {
		logger.Fatal("failed to connect to flow store", zap.Error(err))
	}
	defer pg.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	services := graph.ServicesFromConfig(cfg.Analytics.Services)
	builder := graph.NewBuilder(pg, services, cfg.Analytics.OutputDir, logger)

	graphs, err := builder.BuildGraphs(ctx)
	if err != nil {
		logger.Fatal("graph build failed", zap.Error(err))
	}
	logger.Info("graph build complete",
		zap.Int("graphs", len(graphs)),
		zap.String("output_dir", cfg.Analytics.OutputDir))
}
