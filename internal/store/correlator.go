package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/internal/model"
)

// FlowSink receives every flow the correlator persists or extends. Used to
// fan merged flows out to external consumers.
type FlowSink interface {
	Publish(flow model.PersistedFlow) error
}

// Correlator is the sole writer to the flow store. It consumes decoded flow
// records one at a time and merges bidirectional duplicate reports of the
// same logical flow into a single persisted row. The single-consumer loop is
// what makes the find-then-update-or-insert sequence race-free.
type Correlator struct {
	store  model.Store
	in     <-chan model.FlowRecord
	sink   FlowSink
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewCorrelator creates a correlator consuming from in. sink may be nil.
func NewCorrelator(store model.Store, in <-chan model.FlowRecord, sink FlowSink, logger *zap.Logger) *Correlator {
	return &Correlator{
		store:  store,
		in:     in,
		sink:   sink,
		logger: logger.With(logging.Component("correlator")),
	}
}

// Start launches the consume loop. The loop exits when the input channel is
// closed.
func (c *Correlator) Start() {
	c.wg.Add(1)
	go c.consumeLoop()
	c.logger.Info("correlator started")
}

// Stop waits for the consume loop to drain. Callers must close the input
// channel first.
func (c *Correlator) Stop() {
	c.wg.Wait()
	c.logger.Info("correlator stopped")
}

func (c *Correlator) consumeLoop() {
	defer c.wg.Done()
	for rec := range c.in {
		if err := c.apply(context.Background(), rec); err != nil {
			// No retry path for store failures: the unit of work is
			// abandoned and the loop moves on.
			c.logger.Error("store write failed", zap.Error(err), zap.Stringer("flow", rec))
		}
	}
}

// apply merges the record into the store: every persisted flow matching in
// either orientation has its end time extended, otherwise a new row is
// created.
func (c *Correlator) apply(ctx context.Context, rec model.FlowRecord) error {
	matches, err := c.store.FindBidirectional(ctx, rec)
	if err != nil {
		return err
	}

	if len(matches) > 0 {
		for _, match := range matches {
			// End times only move forward across merges.
			if rec.EndTime.After(match.End) {
				if err := c.store.AdvanceEnd(ctx, match.ID, rec.EndTime); err != nil {
					return err
				}
				match.End = rec.EndTime
			}
			c.logger.Debug("updated flow", zap.Stringer("flow", match))
			c.publish(match)
		}
		return nil
	}

	flow, err := c.store.Insert(ctx, rec)
	if err != nil {
		return err
	}
	c.logger.Debug("created flow", zap.Stringer("flow", flow))
	c.publish(flow)
	return nil
}

func (c *Correlator) publish(flow model.PersistedFlow) {
	if c.sink == nil {
		return
	}
	if err := c.sink.Publish(flow); err != nil {
		c.logger.Warn("failed to publish flow", zap.Error(err))
	}
}
