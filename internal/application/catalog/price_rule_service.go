package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/shared"
)

// PriceRuleService handles manual edits of product pricing
type PriceRuleService struct {
	txScope       common.TransactionScope
	priceRuleRepo catalog.PriceRuleRepository
}

// NewPriceRuleService creates a new PriceRuleService
func NewPriceRuleService(txScope common.TransactionScope, priceRuleRepo catalog.PriceRuleRepository) *PriceRuleService {
	return &PriceRuleService{
		txScope:       txScope,
		priceRuleRepo: priceRuleRepo,
	}
}

// Get returns a product's price rule
func (s *PriceRuleService) Get(ctx context.Context, productID uuid.UUID) (*PriceRuleResponse, error) {
	rule, err := s.priceRuleRepo.FindByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrPriceNotDefined
		}
		return nil, err
	}
	resp := ToPriceRuleResponse(rule)
	return &resp, nil
}

// Set edits a product's pricing inputs and recomputes its net price,
// creating the rule when the product has none. The product row is locked
// so the edit cannot interleave with a purchase recomputing the cost.
func (s *PriceRuleService) Set(ctx context.Context, productID uuid.UUID, req SetPriceRuleRequest) (*PriceRuleResponse, error) {
	var rule *catalog.PriceRule
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		if _, err := repos.ProductRepo().FindByIDForUpdate(ctx, productID); err != nil {
			return err
		}

		current, err := repos.PriceRuleRepo().FindByProduct(ctx, productID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			current = nil
		case err != nil:
			return err
		}

		cost, margin, vat, discount := decimal.Zero, catalog.DefaultMargin, catalog.DefaultVAT, catalog.DefaultDiscount
		if current != nil {
			cost, margin, vat, discount = current.CostPrice, current.Margin, current.VAT, current.Discount
		}
		cost = valueOr(req.CostPrice, cost)
		margin = valueOr(req.Margin, margin)
		vat = valueOr(req.VAT, vat)
		discount = valueOr(req.Discount, discount)

		if current == nil {
			current, err = catalog.NewPriceRule(productID, cost, margin, vat, discount)
			if err != nil {
				return err
			}
		} else if err := current.Update(cost, margin, vat, discount); err != nil {
			return err
		}

		if err := repos.PriceRuleRepo().Save(ctx, current); err != nil {
			return err
		}
		rule = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToPriceRuleResponse(rule)
	return &resp, nil
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}
