package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Searcher is the read-only view of the flow store used by the graph builder
// and the query API.
type Searcher interface {
	// WideSearch returns every persisted flow with the given protocol number
	// and destination port. Result order is store-native and callers must not
	// depend on it.
	WideSearch(ctx context.Context, protocol uint8, port uint16) ([]PersistedFlow, error)

	// DeepSearch returns every persisted flow with the given protocol number,
	// destination port and source address whose start time falls within
	// [notBefore, notAfter].
	DeepSearch(ctx context.Context, protocol uint8, port uint16, srcAddr string, notBefore, notAfter time.Time) ([]PersistedFlow, error)
}

// Store is the full flow store contract. The correlator is the only component
// permitted to call the mutating methods; everything else takes a Searcher.
type Store interface {
	Searcher

	// FindBidirectional returns persisted flows matching the record in either
	// orientation: same endpoints and ports, or both pairs swapped, with the
	// same protocol and start time.
	FindBidirectional(ctx context.Context, rec FlowRecord) ([]PersistedFlow, error)

	// AdvanceEnd moves a persisted flow's end time forward.
	AdvanceEnd(ctx context.Context, id uuid.UUID, end time.Time) error

	// Insert persists a new flow and returns it with its assigned identifier.
	Insert(ctx context.Context, rec FlowRecord) (PersistedFlow, error)

	Close() error
}
