package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	v1 "github.com/steelegbr/flowgraph/api/gen/v1"
	"github.com/steelegbr/flowgraph/internal/api"
	"github.com/steelegbr/flowgraph/internal/config"
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

	service := api.NewFlowQueryServer(pg, logger)

	grpcServer := grpc.NewServer()
	v1.RegisterFlowQueryServiceServer(grpcServer, service)

	lis, err := net.Listen("tcp", cfg.API.GrpcListenAddr)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("addr", cfg.API.GrpcListenAddr), zap.Error(err))
	}
	go func() {
		logger.Info("grpc api server starting", zap.String("addr", cfg.API.GrpcListenAddr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("grpc server failed", zap.Error(err))
		}
	}()

	httpServer := &http.Server{
		Addr:    cfg.API.HttpListenAddr,
		Handler: api.NewHTTPHandler(service),
	}
	go func() {
		logger.Info("http api server starting", zap.String("addr", cfg.API.HttpListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("servers shutting down")

	grpcServer.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)

	logger.Info("all servers exited")
}
