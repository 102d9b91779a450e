package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/shared"
)

// LedgerMetrics records engine outcomes as OpenTelemetry instruments:
//
//	ledger.stock.moved        units of stock by direction
//	ledger.cash.movements     cash movements applied, by kind
//	ledger.cash.amount        absolute cash moved, by kind and sign
//	ledger.operations.rejected operations refused with a domain error, by code
type LedgerMetrics struct {
	stockMoved    metric.Int64Counter
	cashMovements metric.Int64Counter
	cashAmount    metric.Float64Counter
	rejected      metric.Int64Counter
}

// NewLedgerMetrics creates the instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	stockMoved, err := meter.Int64Counter("ledger.stock.moved",
		metric.WithDescription("Units of stock moved by the ledger engines"),
		metric.WithUnit("{unit}"))
	if err != nil {
		return nil, err
	}
	cashMovements, err := meter.Int64Counter("ledger.cash.movements",
		metric.WithDescription("Cash movements applied to the register"),
		metric.WithUnit("{movement}"))
	if err != nil {
		return nil, err
	}
	cashAmount, err := meter.Float64Counter("ledger.cash.amount",
		metric.WithDescription("Absolute cash amount applied to the register"))
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter("ledger.operations.rejected",
		metric.WithDescription("Ledger operations rejected with a domain error"),
		metric.WithUnit("{operation}"))
	if err != nil {
		return nil, err
	}

	return &LedgerMetrics{
		stockMoved:    stockMoved,
		cashMovements: cashMovements,
		cashAmount:    cashAmount,
		rejected:      rejected,
	}, nil
}

// StockMoved implements common.Recorder
func (m *LedgerMetrics) StockMoved(ctx context.Context, direction string, quantity int64) {
	m.stockMoved.Add(ctx, quantity, metric.WithAttributes(attribute.String("direction", direction)))
}

// CashPosted implements common.Recorder
func (m *LedgerMetrics) CashPosted(ctx context.Context, kind string, amount decimal.Decimal) {
	sign := "credit"
	if amount.IsNegative() {
		sign = "debit"
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind), attribute.String("sign", sign))
	m.cashMovements.Add(ctx, 1, attrs)
	m.cashAmount.Add(ctx, amount.Abs().InexactFloat64(), attrs)
}

// OperationRejected implements common.Recorder
func (m *LedgerMetrics) OperationRejected(ctx context.Context, operation string, err error) {
	code := "UNKNOWN"
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code = domainErr.Code
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("code", code),
	))
}

var _ common.Recorder = (*LedgerMetrics)(nil)
