// Command server runs the sidewalk analysis HTTP service.
package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	sidewalkanalyzer "github.com/safestreets/sidewalk-analyzer"
	"github.com/safestreets/sidewalk-analyzer/internal/config"
	"github.com/safestreets/sidewalk-analyzer/internal/logger"
	"github.com/safestreets/sidewalk-analyzer/internal/server"
	"github.com/safestreets/sidewalk-analyzer/pkg/processing"
	"github.com/safestreets/sidewalk-analyzer/pkg/segformer"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config.yaml (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger := logger.New(cfg.Server.Debug)
	defer zapLogger.Sync()

	segmenter, err := segformer.NewClient(cfg.Segmenter.URL,
		segformer.WithModel(cfg.Segmenter.Model),
		segformer.WithTimeout(cfg.Segmenter.Timeout),
	)
	if err != nil {
		zapLogger.Fatal("failed to create segmentation client", zap.Error(err))
	}

	processor := processing.NewProcessor(
		processing.WithFetchTimeout(cfg.Fetch.Timeout),
		processing.WithFetchRetries(cfg.Fetch.Retries),
	)

	analyzer := sidewalkanalyzer.New(segmenter,
		sidewalkanalyzer.WithProcessor(processor),
		sidewalkanalyzer.WithSendOptions(cfg.Processing.SendFormat, cfg.Processing.SendMaxDim, cfg.Processing.SendQuality),
		sidewalkanalyzer.WithBatchWorkers(cfg.Batch.Workers),
	)

	srv := server.New(analyzer, cfg.Segmenter.Model, zapLogger)
	router := srv.Router(cfg.Server.Debug)

	zapLogger.Info("starting sidewalk analysis service",
		zap.String("addr", cfg.Addr()),
		zap.String("model", cfg.Segmenter.Model),
	)
	if err := router.Run(cfg.Addr()); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
