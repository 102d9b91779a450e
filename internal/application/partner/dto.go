package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/partner"
)

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	CompanyName string `json:"company_name" binding:"required,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=15"`
	Address     string `json:"address"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	CompanyName string `json:"company_name" binding:"required,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=15"`
	Address     string `json:"address"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		CompanyName: s.CompanyName,
		Phone:       s.Phone,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
