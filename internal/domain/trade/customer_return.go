package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

// CustomerReturnStatus represents the status of a customer return
type CustomerReturnStatus string

const (
	CustomerReturnPending  CustomerReturnStatus = "pending"
	CustomerReturnApproved CustomerReturnStatus = "approved"
	CustomerReturnRejected CustomerReturnStatus = "rejected"
)

// IsValid checks if the status is a valid CustomerReturnStatus
func (s CustomerReturnStatus) IsValid() bool {
	switch s {
	case CustomerReturnPending, CustomerReturnApproved, CustomerReturnRejected:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s CustomerReturnStatus) CanTransitionTo(target CustomerReturnStatus) bool {
	return s == CustomerReturnPending && (target == CustomerReturnApproved || target == CustomerReturnRejected)
}

// Resolution is how a customer is compensated for a return
type Resolution string

const (
	ResolutionRefund   Resolution = "refund"
	ResolutionExchange Resolution = "exchange"
	ResolutionCoupon   Resolution = "coupon"
)

// IsValid checks if the resolution is a valid Resolution
func (r Resolution) IsValid() bool {
	switch r {
	case ResolutionRefund, ResolutionExchange, ResolutionCoupon:
		return true
	}
	return false
}

// CustomerReturn takes goods back from a customer. Stock and cash effects
// fire once, when the return enters approved.
type CustomerReturn struct {
	shared.BaseEntity
	SaleLineID     *uuid.UUID
	ProductID      uuid.UUID
	Quantity       int64
	Reason         string
	Notes          string
	Status         CustomerReturnStatus
	Resolution     Resolution
	RefundAmount   decimal.Decimal
	OpenedAt       time.Time
	ProcessedAt    *time.Time
	EffectsApplied bool
}

// NewCustomerReturn creates a pending customer return
func NewCustomerReturn(productID uuid.UUID, saleLineID *uuid.UUID, quantity int64, reason, notes string, resolution Resolution, refundAmount decimal.Decimal) (*CustomerReturn, error) {
	reason = strings.TrimSpace(reason)
	if productID == uuid.Nil {
		return nil, shared.InvalidInput("Product is required")
	}
	if quantity <= 0 {
		return nil, shared.InvalidInput("Quantity must be positive")
	}
	if reason == "" {
		return nil, shared.InvalidInput("Return reason cannot be empty")
	}
	if resolution != "" && !resolution.IsValid() {
		return nil, shared.InvalidInput(fmt.Sprintf("Unknown resolution %q", resolution))
	}
	if refundAmount.IsNegative() {
		return nil, shared.InvalidInput("Refund amount cannot be negative")
	}
	base := shared.NewBaseEntity()
	return &CustomerReturn{
		BaseEntity:   base,
		SaleLineID:   saleLineID,
		ProductID:    productID,
		Quantity:     quantity,
		Reason:       reason,
		Notes:        strings.TrimSpace(notes),
		Status:       CustomerReturnPending,
		Resolution:   resolution,
		RefundAmount: refundAmount.Round(2),
		OpenedAt:     base.CreatedAt,
	}, nil
}

// TransitionTo moves the return to status, optionally setting the resolution
// while the return is still pending. It reports whether the return has just
// entered approved; saving the current status again changes nothing.
func (r *CustomerReturn) TransitionTo(status CustomerReturnStatus, resolution *Resolution) (bool, error) {
	if !status.IsValid() {
		return false, shared.InvalidInput(fmt.Sprintf("Unknown customer return status %q", status))
	}
	if resolution != nil && *resolution != "" && !resolution.IsValid() {
		return false, shared.InvalidInput(fmt.Sprintf("Unknown resolution %q", *resolution))
	}
	if status == r.Status {
		return false, nil
	}
	if !r.Status.CanTransitionTo(status) {
		return false, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move customer return from %s to %s", r.Status, status))
	}
	effective := r.Resolution
	if resolution != nil {
		effective = *resolution
	}
	if status == CustomerReturnApproved && effective == "" {
		return false, shared.InvalidInput("A resolution is required to approve a return")
	}

	now := shared.Now()
	r.Resolution = effective
	r.Status = status
	r.ProcessedAt = &now
	r.Touch()
	return status == CustomerReturnApproved, nil
}

// NeedsEffects reports whether the approval effects are still due
func (r *CustomerReturn) NeedsEffects() bool {
	return r.Status == CustomerReturnApproved && !r.EffectsApplied
}

// RefundDue returns the cash to pay back on approval, zero unless refunding
func (r *CustomerReturn) RefundDue() decimal.Decimal {
	if r.Resolution != ResolutionRefund {
		return decimal.Zero
	}
	return r.RefundAmount
}

// MarkEffectsApplied records that stock and cash effects have been applied
func (r *CustomerReturn) MarkEffectsApplied() {
	r.EffectsApplied = true
	r.Touch()
}
