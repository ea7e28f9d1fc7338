package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/puestoweb/backend/internal/domain/inventory"
	"github.com/puestoweb/backend/internal/domain/shared"
)

// MovementService records manual stock movements. Sale-driven exits are
// recorded by the checkout service; everything else (restocks, losses,
// count corrections) goes through here.
type MovementService struct {
	productRepo  catalog.ProductRepository
	movementRepo inventory.MovementRepository
	txScope      TransactionScope
}

// NewMovementService creates a new MovementService
func NewMovementService(
	productRepo catalog.ProductRepository,
	movementRepo inventory.MovementRepository,
	txScope TransactionScope,
) *MovementService {
	return &MovementService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		txScope:      txScope,
	}
}

// RecordMovementRequest represents a request to record a stock movement
type RecordMovementRequest struct {
	ProductID uuid.UUID
	Type      inventory.MovementType
	Quantity  int // for ADJUSTMENT this is the new absolute stock level
	Reason    string
}

// RecordMovement applies a manual stock change and logs it. Product stock
// and the movement record move in the same transaction.
func (s *MovementService) RecordMovement(ctx context.Context, req RecordMovementRequest) (*inventory.StockMovement, error) {
	if !req.Type.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Movement type is not valid")
	}

	var movement *inventory.StockMovement
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil {
			return shared.NewDomainError("NOT_FOUND", "Product not found")
		}

		quantity := req.Quantity
		switch req.Type {
		case inventory.MovementTypeEntry:
			if err := product.AddStock(req.Quantity); err != nil {
				return err
			}
		case inventory.MovementTypeExit:
			if err := product.RemoveStock(req.Quantity); err != nil {
				return err
			}
		case inventory.MovementTypeAdjustment:
			// Quantity logged is the size of the correction
			previous := product.CurrentStock
			if err := product.SetStock(req.Quantity); err != nil {
				return err
			}
			quantity = req.Quantity - previous
			if quantity < 0 {
				quantity = -quantity
			}
			if quantity == 0 {
				return shared.NewDomainError("VALIDATION_ERROR", "Adjustment does not change the stock level")
			}
		}

		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}

		movement, err = inventory.NewStockMovement(product.ID, product.Name,
			req.Type, quantity, product.CurrentStock, req.Reason,
			inventory.SourceTypeManual, nil)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return fmt.Errorf("failed to save movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

// ListMovements lists stock movements, newest first
func (s *MovementService) ListMovements(ctx context.Context, filter inventory.MovementFilter) (*shared.Paginated[inventory.StockMovement], error) {
	movements, err := s.movementRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	total, err := s.movementRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count movements: %w", err)
	}
	page := shared.NewPaginated(movements, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ProductHistory lists a product's movements, newest first
func (s *MovementService) ProductHistory(ctx context.Context, productID uuid.UUID, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return s.movementRepo.FindByProduct(ctx, productID, filter)
}
