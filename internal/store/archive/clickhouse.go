// Package archive provides an optional append-only ClickHouse sink that
// records every decoded flow record before correlation, for ad-hoc analytics
// over the raw event stream.
package archive

import (
	"context"
	"fmt"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/internal/model"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS flow_events (
    SrcAddr   String,
    DstAddr   String,
    SrcPort   UInt16,
    DstPort   UInt16,
    Protocol  UInt8,
    StartTime DateTime64(3),
    EndTime   DateTime64(3)
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(StartTime)
ORDER BY (StartTime, SrcAddr);
`

// Writer batches decoded flow records into the flow_events table.
type Writer struct {
	conn      driver.Conn
	batchSize int
	logger    *zap.Logger

	mu  sync.Mutex
	buf []model.FlowRecord
}

// NewWriter connects to ClickHouse and ensures the archive table exists.
func NewWriter(cfg config.ClickHouseConfig, logger *zap.Logger) (*Writer, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	if err := conn.Exec(context.Background(), createTableStatement); err != nil {
		return nil, fmt.Errorf("failed to ensure flow_events table: %w", err)
	}

	logger = logger.With(logging.Component("archive"))
	logger.Info("connected to clickhouse archive", zap.String("host", cfg.Host))
	return &Writer{
		conn:      conn,
		batchSize: cfg.BatchSize,
		logger:    logger,
	}, nil
}

func connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}
	return conn, nil
}

// Add buffers a record, flushing a full batch to ClickHouse.
func (w *Writer) Add(rec model.FlowRecord) {
	w.mu.Lock()
	w.buf = append(w.buf, rec)
	flush := len(w.buf) >= w.batchSize
	w.mu.Unlock()

	if flush {
		if err := w.Flush(); err != nil {
			w.logger.Error("failed to flush archive batch", zap.Error(err))
		}
	}
}

// Flush writes any buffered records as a single batch.
func (w *Writer) Flush() error {
	w.mu.Lock()
	pending := w.buf
	w.buf = nil
	w.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	batch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO flow_events")
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}
	for _, rec := range pending {
		err := batch.Append(
			rec.SrcAddr.String(),
			rec.DstAddr.String(),
			rec.SrcPort,
			rec.DstPort,
			rec.Protocol,
			rec.StartTime,
			rec.EndTime,
		)
		if err != nil {
			return fmt.Errorf("failed to append record to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	w.logger.Debug("archived flow records", zap.Int("count", len(pending)))
	return nil
}

// Close flushes any remaining records and closes the connection.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.logger.Error("failed to flush archive on close", zap.Error(err))
	}
	return w.conn.Close()
}
