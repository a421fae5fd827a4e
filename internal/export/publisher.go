// Package export publishes correlated flows to downstream consumers over NATS.
package export

import (
	"fmt"

	v1 "github.com/steelegbr/flowgraph/api/gen/v1"
	"github.com/steelegbr/flowgraph/internal/config"
	"github.com/steelegbr/flowgraph/internal/model"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Publisher serializes persisted flows to Protobuf and publishes them to a
// NATS subject. Every insert and every end-time advance produces one message,
// so a subscriber sees the flow table converge in real time.
type Publisher struct {
	nc      *nats.Conn
	subject string
	logger  *zap.Logger
}

// NewPublisher connects to the NATS server named in the config.
func NewPublisher(cfg config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", cfg.URL, err)
	}
	logger.Info("connected to nats", zap.String("url", cfg.URL), zap.String("subject", cfg.Subject))
	return &Publisher{nc: nc, subject: cfg.Subject, logger: logger}, nil
}

// Publish converts the flow to its wire form and publishes it.
func (p *Publisher) Publish(flow model.PersistedFlow) error {
	msg := flowToProto(flow)
	data, err := proto.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshalling flow %s: %w", flow.ID, err)
	}
	return p.nc.Publish(p.subject, data)
}

// Close drains in-flight messages and closes the connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			p.logger.Warn("draining nats connection", zap.Error(err))
		}
	}
}

func flowToProto(flow model.PersistedFlow) *v1.Flow {
	return &v1.Flow{
		Id:                 flow.ID.String(),
		SourceAddress:      flow.SrcAddr,
		DestinationAddress: flow.DstAddr,
		SourcePort:         uint32(flow.SrcPort),
		DestinationPort:    uint32(flow.DstPort),
		Protocol:           uint32(flow.Protocol),
		StartTime:          timestamppb.New(flow.Start),
		EndTime:            timestamppb.New(flow.End),
	}
}
