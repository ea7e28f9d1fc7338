package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/puestoweb/backend/internal/infrastructure/persistence/models"
)

func setupCustomerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.CustomerModel{})
	require.NoError(t, err)

	return db
}

func customerWithDebt(t *testing.T, name string, debt float64) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(name, "Perez", "999888777", "", "", decimal.NewFromInt(500))
	require.NoError(t, err)
	if debt > 0 {
		require.NoError(t, c.IncreaseDebt(decimal.NewFromFloat(debt)))
	}
	return c
}

func TestGormCustomerRepository_SaveAndFind(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	customer := customerWithDebt(t, "Maria", 0)
	require.NoError(t, repo.Save(ctx, customer))

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Maria", found.Name)
	assert.True(t, found.CreditLimit.Equal(decimal.NewFromInt(500)))

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormCustomerRepository_Debtors(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	heavy := customerWithDebt(t, "Rosa", 120.00)
	light := customerWithDebt(t, "Juan", 35.50)
	clean := customerWithDebt(t, "Pedro", 0)

	for _, c := range []*partner.Customer{light, clean, heavy} {
		require.NoError(t, repo.Save(ctx, c))
	}

	debtors, err := repo.FindDebtors(ctx)
	require.NoError(t, err)
	require.Len(t, debtors, 2)
	assert.Equal(t, "Rosa", debtors[0].Name)
	assert.Equal(t, "Juan", debtors[1].Name)

	count, err := repo.CountDebtors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err := repo.SumDebtTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromFloat(155.50)), "got %s", total)
}

func TestGormCustomerRepository_SaveWithLock(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	customer := customerWithDebt(t, "Maria", 0)
	require.NoError(t, repo.Save(ctx, customer))

	require.NoError(t, customer.IncreaseDebt(decimal.NewFromFloat(50.00)))
	require.NoError(t, repo.SaveWithLock(ctx, customer))

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, found.DebtTotal.Equal(decimal.NewFromFloat(50.00)))

	t.Run("rejects stale version", func(t *testing.T) {
		err := repo.SaveWithLock(ctx, customer)
		assert.Error(t, err)
	})
}

func TestGormCustomerRepository_FindAllFilters(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	debtor := customerWithDebt(t, "Rosa", 80.00)
	clean := customerWithDebt(t, "Juan", 0)
	require.NoError(t, repo.Save(ctx, debtor))
	require.NoError(t, repo.Save(ctx, clean))

	filter := partner.CustomerFilter{Debtors: true}
	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Rosa", found[0].Name)

	filter = partner.CustomerFilter{}
	filter.Search = "Jua"
	found, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Juan", found[0].Name)
}
