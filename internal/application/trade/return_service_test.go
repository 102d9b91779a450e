package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnService_SupplierReturn(t *testing.T) {
	setup := func(t *testing.T) (*ledgerFixture, uuid.UUID, uuid.UUID) {
		f := newLedgerFixture(t)
		product := f.product(t, "SKU-BACK")
		lot := f.lot(t, product.ID, "L20240101-001", 10, nil, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		return f, product.ID, lot.ID
	}

	t.Run("debits the lot when it is created", func(t *testing.T) {
		f, productID, lotID := setup(t)

		ret, err := f.returns.CreateSupplierReturn(f.ctx, CreateSupplierReturnRequest{
			ProductID:  productID,
			LotID:      &lotID,
			SupplierID: f.supplier.ID,
			Quantity:   4,
			Reason:     "Damaged packaging",
		})
		require.NoError(t, err)
		assert.Equal(t, string(trade.SupplierReturnPending), ret.Status)
		assert.Equal(t, int64(6), f.lotQuantity(t, lotID))
	})

	t.Run("rejecting restores the lot exactly once", func(t *testing.T) {
		f, productID, lotID := setup(t)
		ret, err := f.returns.CreateSupplierReturn(f.ctx, CreateSupplierReturnRequest{
			ProductID: productID, LotID: &lotID, SupplierID: f.supplier.ID, Quantity: 4, Reason: "Wrong item",
		})
		require.NoError(t, err)

		rejected, err := f.returns.TransitionSupplierReturn(f.ctx, ret.ID, TransitionSupplierReturnRequest{Status: "rejected"})
		require.NoError(t, err)
		assert.True(t, rejected.StockRestored)
		assert.NotNil(t, rejected.ResolvedAt)
		assert.Equal(t, int64(10), f.lotQuantity(t, lotID))

		_, err = f.returns.TransitionSupplierReturn(f.ctx, ret.ID, TransitionSupplierReturnRequest{Status: "rejected"})
		require.NoError(t, err)
		assert.Equal(t, int64(10), f.lotQuantity(t, lotID))
	})

	t.Run("accepted is final", func(t *testing.T) {
		f, productID, lotID := setup(t)
		ret, err := f.returns.CreateSupplierReturn(f.ctx, CreateSupplierReturnRequest{
			ProductID: productID, LotID: &lotID, SupplierID: f.supplier.ID, Quantity: 2, Reason: "Expired",
		})
		require.NoError(t, err)

		_, err = f.returns.TransitionSupplierReturn(f.ctx, ret.ID, TransitionSupplierReturnRequest{Status: "accepted"})
		require.NoError(t, err)
		_, err = f.returns.TransitionSupplierReturn(f.ctx, ret.ID, TransitionSupplierReturnRequest{Status: "rejected"})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		assert.Equal(t, int64(8), f.lotQuantity(t, lotID))
	})

	t.Run("cannot take more than the lot holds", func(t *testing.T) {
		f, productID, lotID := setup(t)

		_, err := f.returns.CreateSupplierReturn(f.ctx, CreateSupplierReturnRequest{
			ProductID: productID, LotID: &lotID, SupplierID: f.supplier.ID, Quantity: 11, Reason: "Recall",
		})
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		assert.Equal(t, int64(10), f.lotQuantity(t, lotID))

		all, err := f.returns.ListSupplierReturns(f.ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("lot must belong to the product", func(t *testing.T) {
		f, _, lotID := setup(t)
		other := f.product(t, "SKU-OTHER")

		_, err := f.returns.CreateSupplierReturn(f.ctx, CreateSupplierReturnRequest{
			ProductID: other.ID, LotID: &lotID, SupplierID: f.supplier.ID, Quantity: 1, Reason: "Mixup",
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("without a lot no stock moves", func(t *testing.T) {
		f, productID, lotID := setup(t)

		ret, err := f.returns.CreateSupplierReturn(f.ctx, CreateSupplierReturnRequest{
			ProductID: productID, SupplierID: f.supplier.ID, Quantity: 3, Reason: "Claim",
		})
		require.NoError(t, err)
		_, err = f.returns.TransitionSupplierReturn(f.ctx, ret.ID, TransitionSupplierReturnRequest{Status: "rejected"})
		require.NoError(t, err)
		assert.Equal(t, int64(10), f.lotQuantity(t, lotID))
	})
}

func TestReturnService_CustomerReturn(t *testing.T) {
	// sold posts a sale of quantity and returns the line
	sold := func(t *testing.T, f *ledgerFixture, productID uuid.UUID, quantity int64) SaleLineResponse {
		t.Helper()
		receipt := f.openReceipt(t)
		result, err := f.sales.PostSaleLine(f.ctx, PostSaleLineRequest{ReceiptID: receipt.ID, ProductID: productID, Quantity: quantity})
		require.NoError(t, err)
		return result.Line
	}

	t.Run("approval releases stock and refunds once", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.openRegister(t)
		product := f.stockedProduct(t, "SKU-CR", 5)
		line := sold(t, f, product.ID, 2)
		require.True(t, dec("30").Equal(f.balance(t)))

		ret, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			SaleLineID: &line.ID,
			ProductID:  product.ID,
			Quantity:   1,
			Reason:     "Changed mind",
			Resolution: string(trade.ResolutionRefund),
		})
		require.NoError(t, err)
		assert.Equal(t, string(trade.CustomerReturnPending), ret.Status)
		assert.True(t, dec("15").Equal(ret.RefundAmount), "refund defaults to the line price")
		assert.Equal(t, int64(3), f.stock(t, product.ID))

		for i := 0; i < 2; i++ {
			approved, err := f.returns.TransitionCustomerReturn(f.ctx, ret.ID, TransitionCustomerReturnRequest{Status: "approved"})
			require.NoError(t, err)
			assert.True(t, approved.EffectsApplied)
			assert.Equal(t, int64(4), f.stock(t, product.ID))
			assert.True(t, dec("15").Equal(f.balance(t)))
		}

		refund, err := f.repos.CashMovementRepo().FindByKey(f.ctx, finance.RefundKey(ret.ID))
		require.NoError(t, err)
		assert.True(t, dec("-15").Equal(refund.Amount))
		assert.Equal(t, finance.MovementRefund, refund.Kind)
	})

	t.Run("created as approved applies effects immediately", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.openRegister(t)
		product := f.stockedProduct(t, "SKU-NOW", 5)

		ret, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			ProductID:    product.ID,
			Quantity:     2,
			Reason:       "Defective",
			Status:       string(trade.CustomerReturnApproved),
			Resolution:   string(trade.ResolutionRefund),
			RefundAmount: decPtr("12.50"),
		})
		require.NoError(t, err)
		assert.True(t, ret.EffectsApplied)
		assert.Equal(t, int64(7), f.stock(t, product.ID))
		assert.True(t, dec("-12.5").Equal(f.balance(t)))

		_, err = f.returns.TransitionCustomerReturn(f.ctx, ret.ID, TransitionCustomerReturnRequest{Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), f.stock(t, product.ID))
		assert.True(t, dec("-12.5").Equal(f.balance(t)))
	})

	t.Run("exchange releases stock without cash", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.openRegister(t)
		product := f.stockedProduct(t, "SKU-EX", 5)
		exchange := string(trade.ResolutionExchange)

		ret, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			ProductID: product.ID, Quantity: 1, Reason: "Wrong size", RefundAmount: decPtr("9"),
		})
		require.NoError(t, err)
		_, err = f.returns.TransitionCustomerReturn(f.ctx, ret.ID, TransitionCustomerReturnRequest{Status: "approved", Resolution: &exchange})
		require.NoError(t, err)

		assert.Equal(t, int64(6), f.stock(t, product.ID))
		assert.True(t, f.balance(t).IsZero())
	})

	t.Run("approval requires a resolution", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.stockedProduct(t, "SKU-NORES", 5)
		ret, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			ProductID: product.ID, Quantity: 1, Reason: "Unwanted",
		})
		require.NoError(t, err)

		_, err = f.returns.TransitionCustomerReturn(f.ctx, ret.ID, TransitionCustomerReturnRequest{Status: "approved"})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.Equal(t, int64(5), f.stock(t, product.ID))
	})

	t.Run("rejected return has no effects and is final", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.stockedProduct(t, "SKU-REJ", 5)
		ret, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			ProductID: product.ID, Quantity: 1, Reason: "Used item", Resolution: string(trade.ResolutionRefund), RefundAmount: decPtr("5"),
		})
		require.NoError(t, err)

		_, err = f.returns.TransitionCustomerReturn(f.ctx, ret.ID, TransitionCustomerReturnRequest{Status: "rejected"})
		require.NoError(t, err)
		_, err = f.returns.TransitionCustomerReturn(f.ctx, ret.ID, TransitionCustomerReturnRequest{Status: "approved"})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		assert.Equal(t, int64(5), f.stock(t, product.ID))
	})

	t.Run("cannot return more than was sold", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.stockedProduct(t, "SKU-MORE", 5)
		line := sold(t, f, product.ID, 2)

		_, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			SaleLineID: &line.ID, ProductID: product.ID, Quantity: 3, Reason: "Too many",
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("earlier returns count against the sale line", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.openRegister(t)
		product := f.stockedProduct(t, "SKU-AGAIN", 10)
		line := sold(t, f, product.ID, 2)
		require.True(t, dec("30").Equal(f.balance(t)))

		refundOne := func() (*CustomerReturnResponse, error) {
			return f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
				SaleLineID: &line.ID,
				ProductID:  product.ID,
				Quantity:   1,
				Reason:     "Returned again",
				Status:     string(trade.CustomerReturnApproved),
				Resolution: string(trade.ResolutionRefund),
			})
		}

		first, err := refundOne()
		require.NoError(t, err)
		_, err = refundOne()
		require.NoError(t, err)

		_, err = refundOne()
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.Equal(t, int64(10), f.stock(t, product.ID))
		assert.True(t, f.balance(t).IsZero())

		pendingLine := sold(t, f, product.ID, 2)
		pending, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			SaleLineID: &pendingLine.ID, ProductID: product.ID, Quantity: 2, Reason: "Undecided",
		})
		require.NoError(t, err)
		_, err = f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			SaleLineID: &pendingLine.ID, ProductID: product.ID, Quantity: 1, Reason: "Undecided",
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput), "pending returns hold their quantity")

		_, err = f.returns.TransitionCustomerReturn(f.ctx, pending.ID, TransitionCustomerReturnRequest{Status: "rejected"})
		require.NoError(t, err)
		_, err = f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			SaleLineID: &pendingLine.ID, ProductID: product.ID, Quantity: 2, Reason: "Decided",
		})
		assert.NoError(t, err, "rejected returns free their quantity")
		assert.True(t, first.EffectsApplied)
	})

	t.Run("explicit zero refund is kept", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.openRegister(t)
		product := f.stockedProduct(t, "SKU-ZERO", 5)
		line := sold(t, f, product.ID, 1)

		ret, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			SaleLineID:   &line.ID,
			ProductID:    product.ID,
			Quantity:     1,
			Reason:       "Goodwill",
			Status:       string(trade.CustomerReturnApproved),
			Resolution:   string(trade.ResolutionRefund),
			RefundAmount: decPtr("0"),
		})
		require.NoError(t, err)
		assert.True(t, ret.RefundAmount.IsZero())
		assert.True(t, dec("15").Equal(f.balance(t)), "no cash leaves the register")
		assert.Equal(t, int64(5), f.stock(t, product.ID))
	})

	t.Run("sale line must match the product", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.stockedProduct(t, "SKU-LINE", 5)
		other := f.product(t, "SKU-ELSE")
		line := sold(t, f, product.ID, 1)

		_, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			SaleLineID: &line.ID, ProductID: other.ID, Quantity: 1, Reason: "Mixup",
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("returned stock goes to a returns lot when no lot exists", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.product(t, "SKU-GONE")

		_, err := f.returns.CreateCustomerReturn(f.ctx, CreateCustomerReturnRequest{
			ProductID: product.ID, Quantity: 2, Reason: "Found in bag",
			Status: string(trade.CustomerReturnApproved), Resolution: string(trade.ResolutionCoupon),
		})
		require.NoError(t, err)

		lots, err := f.repos.LotRepo().FindByProduct(f.ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.Equal(t, int64(2), lots[0].Quantity)
		assert.Equal(t, "RETURNS", lots[0].Location)
	})
}
