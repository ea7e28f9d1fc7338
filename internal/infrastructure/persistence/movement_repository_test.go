package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/puestoweb/backend/internal/infrastructure/persistence/models"
)

func setupMovementTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.StockMovementModel{})
	require.NoError(t, err)

	return db
}

func storedMovement(t *testing.T, productID uuid.UUID, movementType inventory.MovementType, quantity, resulting int) *inventory.StockMovement {
	t.Helper()
	m, err := inventory.NewStockMovement(productID, "Leche Gloria", movementType, quantity, resulting, "Reposicion", inventory.SourceTypeManual, nil)
	require.NoError(t, err)
	return m
}

func TestGormMovementRepository_SaveAndFind(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	movement := storedMovement(t, productID, inventory.MovementTypeEntry, 10, 34)
	require.NoError(t, repo.Save(ctx, movement))

	found, err := repo.FindByID(ctx, movement.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, productID, found.ProductID)
	assert.Equal(t, inventory.MovementTypeEntry, found.Type)
	assert.Equal(t, 10, found.Quantity)
	assert.Equal(t, 34, found.ResultingStock)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormMovementRepository_FindByProduct(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	older := storedMovement(t, productID, inventory.MovementTypeEntry, 10, 34)
	older.OccurredAt = time.Now().Add(-24 * time.Hour)
	newer := storedMovement(t, productID, inventory.MovementTypeExit, 4, 30)
	foreign := storedMovement(t, uuid.New(), inventory.MovementTypeEntry, 5, 5)

	for _, m := range []*inventory.StockMovement{older, newer, foreign} {
		require.NoError(t, repo.Save(ctx, m))
	}

	movements, err := repo.FindByProduct(ctx, productID, inventory.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, inventory.MovementTypeExit, movements[0].Type)
	assert.Equal(t, inventory.MovementTypeEntry, movements[1].Type)
}

func TestGormMovementRepository_CountByType(t *testing.T) {
	db := setupMovementTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	require.NoError(t, repo.Save(ctx, storedMovement(t, productID, inventory.MovementTypeEntry, 10, 10)))
	require.NoError(t, repo.Save(ctx, storedMovement(t, productID, inventory.MovementTypeExit, 3, 7)))
	require.NoError(t, repo.Save(ctx, storedMovement(t, productID, inventory.MovementTypeExit, 2, 5)))

	exit := inventory.MovementTypeExit
	count, err := repo.Count(ctx, inventory.MovementFilter{Type: &exit})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
