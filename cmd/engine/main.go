package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/Slopex/pkg/engine"
	"github.com/lintang-b-s/Slopex/pkg/http"
	"github.com/lintang-b-s/Slopex/pkg/http/usecases"
	"github.com/lintang-b-s/Slopex/pkg/logger"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"go.uber.org/zap"
)

var (
	graphPath    = flag.String("graph", "", "road network file (.json or .json.bz2), overrides graph_path of data/config.yaml")
	useRateLimit = flag.Bool("rate_limit", false, "enable the api rate limiter")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(); err != nil {
		logger.Warn("config file not loaded, using defaults", zap.Error(err))
	}
	config := engine.LoadConfig()
	if *graphPath != "" {
		config.GraphPath = *graphPath
	}

	slopeEngine, err := engine.NewEngine(config, logger)
	if err != nil {
		logger.Fatal("failed to load road network", zap.Error(err))
	}

	api := http.NewServer(logger)
	routingService := usecases.NewRoutingService(logger, slopeEngine)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService); err != nil {
		logger.Fatal("failed to start api", zap.Error(err))
	}

	signal := http.GracefulShutdown(api.Done())
	cleanup()
	err = api.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
	}

	if signal == nil {
		logger.Fatal("Slopex Routing Engine Server Stopped without a shutdown signal", zap.Error(err))
	}
	logger.Info("Slopex Routing Engine Server Stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
