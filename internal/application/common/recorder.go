package common

import (
	"context"

	"github.com/shopspring/decimal"
)

// Stock movement directions reported to a Recorder
const (
	StockAllocated        = "allocated"
	StockReleased         = "released"
	StockReceived         = "received"
	StockReturnedSupplier = "returned_to_supplier"
)

// Recorder receives business measurements from the engines. Implementations
// must be safe for concurrent use.
type Recorder interface {
	// StockMoved records a committed change of stock quantity
	StockMoved(ctx context.Context, direction string, quantity int64)
	// CashPosted records a cash movement applied to the register
	CashPosted(ctx context.Context, kind string, amount decimal.Decimal)
	// OperationRejected records an operation that failed with a domain error
	OperationRejected(ctx context.Context, operation string, err error)
}

// NoopRecorder discards every measurement
type NoopRecorder struct{}

func (NoopRecorder) StockMoved(context.Context, string, int64) {}
func (NoopRecorder) CashPosted(context.Context, string, decimal.Decimal) {}
func (NoopRecorder) OperationRejected(context.Context, string, error) {}

var _ Recorder = NoopRecorder{}
