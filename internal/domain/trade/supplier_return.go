package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/shared"
)

// SupplierReturnStatus represents the status of a return to a supplier
type SupplierReturnStatus string

const (
	SupplierReturnPending   SupplierReturnStatus = "pending"
	SupplierReturnAccepted  SupplierReturnStatus = "accepted"
	SupplierReturnRejected  SupplierReturnStatus = "rejected"
	SupplierReturnExchanged SupplierReturnStatus = "exchanged"
)

// IsValid checks if the status is a valid SupplierReturnStatus
func (s SupplierReturnStatus) IsValid() bool {
	switch s {
	case SupplierReturnPending, SupplierReturnAccepted, SupplierReturnRejected, SupplierReturnExchanged:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s SupplierReturnStatus) CanTransitionTo(target SupplierReturnStatus) bool {
	if s != SupplierReturnPending {
		return false
	}
	return target == SupplierReturnAccepted || target == SupplierReturnRejected || target == SupplierReturnExchanged
}

// SupplierReturn sends stock back to a supplier. When a lot is referenced the
// stock leaves that lot as soon as the return is created.
type SupplierReturn struct {
	shared.BaseEntity
	ProductID     uuid.UUID
	LotID         *uuid.UUID
	SupplierID    uuid.UUID
	Quantity      int64
	Reason        string
	Notes         string
	Status        SupplierReturnStatus
	OpenedAt      time.Time
	ResolvedAt    *time.Time
	StockRestored bool
}

// NewSupplierReturn creates a pending supplier return
func NewSupplierReturn(productID uuid.UUID, lotID *uuid.UUID, supplierID uuid.UUID, quantity int64, reason, notes string) (*SupplierReturn, error) {
	reason = strings.TrimSpace(reason)
	if productID == uuid.Nil || supplierID == uuid.Nil {
		return nil, shared.InvalidInput("Product and supplier are required")
	}
	if quantity <= 0 {
		return nil, shared.InvalidInput("Quantity must be positive")
	}
	if reason == "" {
		return nil, shared.InvalidInput("Return reason cannot be empty")
	}
	base := shared.NewBaseEntity()
	return &SupplierReturn{
		BaseEntity: base,
		ProductID:  productID,
		LotID:      lotID,
		SupplierID: supplierID,
		Quantity:   quantity,
		Reason:     reason,
		Notes:      strings.TrimSpace(notes),
		Status:     SupplierReturnPending,
		OpenedAt:   base.CreatedAt,
	}, nil
}

// TransitionTo moves the return to status. Saving the current status again is a no-op.
func (r *SupplierReturn) TransitionTo(status SupplierReturnStatus) error {
	if !status.IsValid() {
		return shared.InvalidInput(fmt.Sprintf("Unknown supplier return status %q", status))
	}
	if status == r.Status {
		return nil
	}
	if !r.Status.CanTransitionTo(status) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move supplier return from %s to %s", r.Status, status))
	}
	now := shared.Now()
	r.Status = status
	r.ResolvedAt = &now
	r.Touch()
	return nil
}

// NeedsStockRestore reports whether a rejected return still has to put its
// debited quantity back on the lot
func (r *SupplierReturn) NeedsStockRestore() bool {
	return r.Status == SupplierReturnRejected && r.LotID != nil && !r.StockRestored
}

// MarkStockRestored records that the debited quantity went back to the lot
func (r *SupplierReturn) MarkStockRestored() {
	r.StockRestored = true
	r.Touch()
}
