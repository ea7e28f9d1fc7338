package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deferredSaleFor(t *testing.T, customerID uuid.UUID, number string, total float64, createdAt time.Time) *Sale {
	t.Helper()
	sale, err := NewSale(number, &customerID, "Test Customer",
		testItems(t, total), decimal.Zero, PaymentTypeDeferred, "")
	require.NoError(t, err)
	sale.CreatedAt = createdAt
	return sale
}

func generalPayment(t *testing.T, customerID uuid.UUID, amount float64) *Payment {
	t.Helper()
	p, err := NewPayment("P-20250101-00001", customerID, nil,
		valueobject.NewMoneyPENFromFloat(amount), PaymentMethodCash, "")
	require.NoError(t, err)
	return p
}

func TestSettlementService_Settle_General(t *testing.T) {
	service := NewSettlementService()
	customerID := uuid.New()
	now := time.Now()

	t.Run("distributes FIFO across open sales", func(t *testing.T) {
		older := deferredSaleFor(t, customerID, "V-1", 30.00, now.Add(-48*time.Hour))
		newer := deferredSaleFor(t, customerID, "V-2", 50.00, now.Add(-24*time.Hour))
		payment := generalPayment(t, customerID, 40.00)

		result, err := service.Settle(payment, []*Sale{newer, older})
		require.NoError(t, err)

		assert.Equal(t, SaleStatusCompleted, older.Status)
		assert.True(t, older.PendingAmount.IsZero())
		assert.Equal(t, SaleStatusPending, newer.Status)
		assert.True(t, newer.PendingAmount.Equal(decimal.NewFromFloat(40.00)))

		assert.True(t, result.TotalApplied.Equal(decimal.NewFromFloat(40.00)))
		assert.True(t, result.Remainder.IsZero())
		assert.Equal(t, []uuid.UUID{older.ID}, result.SalesCompleted)
	})

	t.Run("settles everything when payment covers full debt", func(t *testing.T) {
		first := deferredSaleFor(t, customerID, "V-3", 20.00, now.Add(-72*time.Hour))
		second := deferredSaleFor(t, customerID, "V-4", 35.00, now.Add(-24*time.Hour))
		payment := generalPayment(t, customerID, 55.00)

		result, err := service.Settle(payment, []*Sale{first, second})
		require.NoError(t, err)

		assert.Equal(t, SaleStatusCompleted, first.Status)
		assert.Equal(t, SaleStatusCompleted, second.Status)
		assert.Len(t, result.SalesCompleted, 2)
		assert.True(t, result.Remainder.IsZero())
	})

	t.Run("reports remainder when no open sale can absorb it", func(t *testing.T) {
		only := deferredSaleFor(t, customerID, "V-5", 10.00, now.Add(-time.Hour))
		payment := generalPayment(t, customerID, 25.00)

		result, err := service.Settle(payment, []*Sale{only})
		require.NoError(t, err)

		assert.True(t, result.TotalApplied.Equal(decimal.NewFromFloat(10.00)))
		assert.True(t, result.Remainder.Equal(decimal.NewFromFloat(15.00)))
	})

	t.Run("rejects sales belonging to another customer", func(t *testing.T) {
		foreign := deferredSaleFor(t, uuid.New(), "V-6", 10.00, now)
		payment := generalPayment(t, customerID, 10.00)

		_, err := service.Settle(payment, []*Sale{foreign})
		assert.Error(t, err)
	})
}

func TestSettlementService_Settle_Targeted(t *testing.T) {
	service := NewSettlementService()
	customerID := uuid.New()
	now := time.Now()

	t.Run("applies only to the target sale even when older sales are open", func(t *testing.T) {
		older := deferredSaleFor(t, customerID, "V-1", 30.00, now.Add(-48*time.Hour))
		target := deferredSaleFor(t, customerID, "V-2", 50.00, now.Add(-24*time.Hour))

		payment, err := NewPayment("P-1", customerID, &target.ID,
			valueobject.NewMoneyPENFromFloat(20.00), PaymentMethodWallet, "")
		require.NoError(t, err)

		result, err := service.Settle(payment, []*Sale{older, target})
		require.NoError(t, err)

		assert.True(t, older.PendingAmount.Equal(decimal.NewFromFloat(30.00)))
		assert.True(t, target.PendingAmount.Equal(decimal.NewFromFloat(30.00)))
		assert.True(t, result.TotalApplied.Equal(decimal.NewFromFloat(20.00)))
	})

	t.Run("clamps targeted overpayment to pending amount", func(t *testing.T) {
		target := deferredSaleFor(t, customerID, "V-3", 25.00, now.Add(-time.Hour))

		payment, err := NewPayment("P-2", customerID, &target.ID,
			valueobject.NewMoneyPENFromFloat(60.00), PaymentMethodCash, "")
		require.NoError(t, err)

		result, err := service.Settle(payment, []*Sale{target})
		require.NoError(t, err)

		assert.Equal(t, SaleStatusCompleted, target.Status)
		assert.True(t, result.TotalApplied.Equal(decimal.NewFromFloat(25.00)))
		assert.True(t, result.Remainder.Equal(decimal.NewFromFloat(35.00)))
	})

	t.Run("fails when target sale is already completed", func(t *testing.T) {
		target := deferredSaleFor(t, customerID, "V-4", 10.00, now)
		_, err := target.ApplySettlement(valueobject.NewMoneyPENFromFloat(10.00), uuid.New())
		require.NoError(t, err)

		payment, err := NewPayment("P-3", customerID, &target.ID,
			valueobject.NewMoneyPENFromFloat(5.00), PaymentMethodCash, "")
		require.NoError(t, err)

		_, err = service.Settle(payment, []*Sale{target})
		assert.Error(t, err)
	})
}

func TestSettlementService_Preview(t *testing.T) {
	service := NewSettlementService()
	customerID := uuid.New()
	now := time.Now()

	older := deferredSaleFor(t, customerID, "V-1", 30.00, now.Add(-48*time.Hour))
	newer := deferredSaleFor(t, customerID, "V-2", 50.00, now.Add(-24*time.Hour))

	plan, err := service.Preview(valueobject.NewMoneyPENFromFloat(40.00), nil, []Sale{*older, *newer})
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, older.ID, plan.Allocations[0].TargetID)

	// Preview must not touch the aggregates
	assert.True(t, older.PendingAmount.Equal(decimal.NewFromFloat(30.00)))
	assert.True(t, newer.PendingAmount.Equal(decimal.NewFromFloat(50.00)))
}

func TestNewPayment(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates general payment", func(t *testing.T) {
		p, err := NewPayment("P-1", customerID, nil,
			valueobject.NewMoneyPENFromFloat(15.00), PaymentMethodTransfer, "quincena")
		require.NoError(t, err)
		assert.False(t, p.IsTargeted())
		assert.Equal(t, "quincena", p.Note)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment("P-2", customerID, nil,
			valueobject.ZeroPEN(), PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid method", func(t *testing.T) {
		_, err := NewPayment("P-3", customerID, nil,
			valueobject.NewMoneyPENFromFloat(10.00), PaymentMethod("CHECK"), "")
		assert.Error(t, err)
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		_, err := NewPayment("P-4", uuid.Nil, nil,
			valueobject.NewMoneyPENFromFloat(10.00), PaymentMethodCash, "")
		assert.Error(t, err)
	})
}
