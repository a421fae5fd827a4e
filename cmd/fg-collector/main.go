package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/collector"
	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/export"
	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/internal/model"
	"github.com/steelegbr/flowgraph/internal/netflow"
	"github.com/steelegbr/flowgraph/internal/store"
	"github.com/steelegbr/flowgraph/internal/store/archive"
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

	// Persistence first so ingest never starts against a broken store.
	pg, err := store.NewPostgres(cfg.Store, logger)
	if err != nil {
		logger.Fatal("failed to connect to flow store", zap.Error(err))
	}
	defer pg.Close()

	var archiveWriter *archive.Writer
	if cfg.Archive.Enabled {
		archiveWriter, err = archive.NewWriter(cfg.Archive, logger)
		if err != nil {
			logger.Fatal("failed to connect to clickhouse archive", zap.Error(err))
		}
		defer archiveWriter.Close()
	}

	var sink store.FlowSink
	if cfg.Publisher.Enabled {
		publisher, err := export.NewPublisher(cfg.Publisher, logger)
		if err != nil {
			logger.Fatal("failed to connect to nats", zap.Error(err))
		}
		defer publisher.Close()
		sink = publisher
	}

	// Ingest pipeline: UDP listener -> bounded packet queue -> decoder ->
	// record channel -> correlator (sole store writer).
	queue := collector.NewPacketQueue(cfg.Listener.QueueSize)
	listener, err := collector.NewListener(cfg.Listener.Host, cfg.Listener.Port, queue, logger)
	if err != nil {
		logger.Fatal("failed to bind udp listener", zap.Error(err))
	}

	table := netflow.NewTemplateTable()
	decoder := netflow.NewDecoder(queue, table, cfg.Decoder, logger)

	corrIn := make(chan model.FlowRecord, cfg.Decoder.RecordQueueSize)
	correlator := store.NewCorrelator(pg, corrIn, sink, logger)

	// Tee decoded records to the correlator and, when enabled, the archive.
	teeDone := make(chan struct{})
	go func() {
		defer close(teeDone)
		for rec := range decoder.Records() {
			if archiveWriter != nil {
				archiveWriter.Add(rec)
			}
			corrIn <- rec
		}
		close(corrIn)
	}()

	correlator.Start()
	decoder.Start()
	listener.Start()
	logger.Info("collector running",
		zap.String("listen", listener.LocalAddr().String()),
		zap.Bool("archive", cfg.Archive.Enabled),
		zap.Bool("publisher", cfg.Publisher.Enabled))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	// Stop order drains the pipeline front to back: no new datagrams, then
	// the decoder flushes its output channel, then the correlator finishes
	// the remaining records.
	listener.Stop()
	decoder.Stop()
	<-teeDone
	correlator.Stop()

	if archiveWriter != nil {
		if err := archiveWriter.Flush(); err != nil {
			logger.Warn("final archive flush failed", zap.Error(err))
		}
	}
	logger.Info("collector stopped")
}
