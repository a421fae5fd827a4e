package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/internal/model"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS flows (
    id                  UUID PRIMARY KEY,
    source_address      INET NOT NULL,
    destination_address INET NOT NULL,
    source_port         INTEGER,
    destination_port    INTEGER,
    protocol            INTEGER,
    "start"             TIMESTAMPTZ,
    "end"               TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS flows_service_idx
    ON flows (protocol, destination_port);
CREATE INDEX IF NOT EXISTS flows_source_idx
    ON flows (protocol, destination_port, source_address, "start");
`

const flowColumns = `id, source_address, destination_address, source_port, destination_port, protocol, "start", "end"`

// Postgres is the durable flow store. It implements model.Store; only the
// correlator may call the mutating methods.
type Postgres struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgres connects to the database and ensures the flows table exists.
func NewPostgres(cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.Database,
		RawQuery: "sslmode=" + cfg.SSLMode,
	}

	db, err := sql.Open("postgres", dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open flow store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping flow store: %w", err)
	}
	if _, err := db.Exec(createTableStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure flows table: %w", err)
	}

	logger = logger.With(logging.Component("store"))
	logger.Info("connected to flow store",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
	)
	return &Postgres{db: db, logger: logger}, nil
}

// FindBidirectional returns flows matching the record in either orientation
// with the same protocol and start time.
func (p *Postgres) FindBidirectional(ctx context.Context, rec model.FlowRecord) ([]model.PersistedFlow, error) {
	query := `SELECT ` + flowColumns + ` FROM flows
		WHERE protocol = $5 AND "start" = $6 AND (
			(source_address = $1::inet AND destination_address = $2::inet
				AND source_port = $3 AND destination_port = $4)
			OR
			(source_address = $2::inet AND destination_address = $1::inet
				AND source_port = $4 AND destination_port = $3)
		)`
	rows, err := p.db.QueryContext(ctx, query,
		rec.SrcAddr.String(), rec.DstAddr.String(),
		int(rec.SrcPort), int(rec.DstPort),
		int(rec.Protocol), rec.StartTime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matching flows: %w", err)
	}
	return scanFlows(rows)
}

// AdvanceEnd moves a flow's end time forward.
func (p *Postgres) AdvanceEnd(ctx context.Context, id uuid.UUID, end time.Time) error {
	if _, err := p.db.ExecContext(ctx, `UPDATE flows SET "end" = $2 WHERE id = $1`, id, end); err != nil {
		return fmt.Errorf("failed to advance flow end time: %w", err)
	}
	return nil
}

// Insert persists a new flow with a fresh identifier.
func (p *Postgres) Insert(ctx context.Context, rec model.FlowRecord) (model.PersistedFlow, error) {
	flow := model.PersistedFlow{
		ID:       uuid.New(),
		SrcAddr:  rec.SrcAddr.String(),
		DstAddr:  rec.DstAddr.String(),
		SrcPort:  rec.SrcPort,
		DstPort:  rec.DstPort,
		Protocol: rec.Protocol,
		Start:    rec.StartTime,
		End:      rec.EndTime,
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO flows (`+flowColumns+`)
		VALUES ($1, $2::inet, $3::inet, $4, $5, $6, $7, $8)`,
		flow.ID, flow.SrcAddr, flow.DstAddr,
		int(flow.SrcPort), int(flow.DstPort), int(flow.Protocol),
		flow.Start, flow.End,
	)
	if err != nil {
		return model.PersistedFlow{}, fmt.Errorf("failed to insert flow: %w", err)
	}
	return flow, nil
}

// WideSearch returns every flow with the given protocol and destination port.
func (p *Postgres) WideSearch(ctx context.Context, protocol uint8, port uint16) ([]model.PersistedFlow, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+flowColumns+` FROM flows
		WHERE protocol = $1 AND destination_port = $2`,
		int(protocol), int(port),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run wide search: %w", err)
	}
	return scanFlows(rows)
}

// DeepSearch returns flows from a specific source whose start time falls
// within [notBefore, notAfter].
func (p *Postgres) DeepSearch(ctx context.Context, protocol uint8, port uint16, srcAddr string, notBefore, notAfter time.Time) ([]model.PersistedFlow, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+flowColumns+` FROM flows
		WHERE protocol = $1 AND destination_port = $2 AND source_address = $3::inet
			AND "start" >= $4 AND "start" <= $5`,
		int(protocol), int(port), srcAddr, notBefore, notAfter,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run deep search: %w", err)
	}
	return scanFlows(rows)
}

// Close releases the database connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func scanFlows(rows *sql.Rows) ([]model.PersistedFlow, error) {
	defer rows.Close()
	var flows []model.PersistedFlow
	for rows.Next() {
		var (
			flow             model.PersistedFlow
			srcPort, dstPort int
			protocol         int
		)
		if err := rows.Scan(&flow.ID, &flow.SrcAddr, &flow.DstAddr,
			&srcPort, &dstPort, &protocol, &flow.Start, &flow.End); err != nil {
			return nil, fmt.Errorf("failed to scan flow row: %w", err)
		}
		flow.SrcPort = uint16(srcPort)
		flow.DstPort = uint16(dstPort)
		flow.Protocol = uint8(protocol)
		flows = append(flows, flow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading flow rows: %w", err)
	}
	return flows, nil
}
