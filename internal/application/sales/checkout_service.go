package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/application/collections"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/puestoweb/backend/internal/domain/inventory"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/puestoweb/backend/internal/domain/partner"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CheckoutService turns a cart into a recorded sale. Stock decrements,
// movement records and the customer debt increase for deferred sales all
// run in the same transaction as the sale insert.
type CheckoutService struct {
	saleRepo     ledger.SaleRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	txScope      TransactionScope
	cache        collections.DebtSummaryCache
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	saleRepo ledger.SaleRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	txScope TransactionScope,
	cache collections.DebtSummaryCache,
) *CheckoutService {
	return &CheckoutService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		txScope:      txScope,
		cache:        cache,
	}
}

// CartLine is one product line of a checkout request
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutRequest represents a request to record a sale
type CheckoutRequest struct {
	CustomerID     *uuid.UUID // required for deferred sales, optional otherwise
	Lines          []CartLine
	Discount       decimal.Decimal
	PaymentType    ledger.PaymentType
	AmountReceived *decimal.Decimal // cash handed over; change is computed from it
	Notes          string
}

// CheckoutResult represents the outcome of a recorded sale
type CheckoutResult struct {
	SaleID     uuid.UUID         `json:"sale_id"`
	SaleNumber string            `json:"sale_number"`
	Status     ledger.SaleStatus `json:"status"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Discount   decimal.Decimal   `json:"discount"`
	Total      decimal.Decimal   `json:"total"`
	Change     *decimal.Decimal  `json:"change,omitempty"`
	DebtTotal  *decimal.Decimal  `json:"debt_total,omitempty"` // customer debt after a deferred sale
}

// Checkout validates the cart and records the sale. Line prices and product
// names are snapshotted from the catalog at the moment of sale.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Cart cannot be empty")
	}
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Line quantity must be positive")
		}
	}
	if !req.PaymentType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment type is not valid")
	}
	if req.PaymentType == ledger.PaymentTypeDeferred && req.CustomerID == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Deferred sale requires a customer")
	}

	customerName := ""
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get customer: %w", err)
		}
		if customer == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		if !customer.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", "Customer is inactive")
		}
		customerName = customer.FullName()
	}

	var result *CheckoutResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		items, products, err := s.buildItems(ctx, repos.ProductRepo(), req.Lines)
		if err != nil {
			return err
		}

		number, err := repos.SaleRepo().GenerateSaleNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate sale number: %w", err)
		}

		sale, err := ledger.NewSale(number, req.CustomerID, customerName,
			items, req.Discount, req.PaymentType, req.Notes)
		if err != nil {
			return err
		}

		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}

		for i, line := range req.Lines {
			product := products[i]
			if err := product.RemoveStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return fmt.Errorf("failed to save product %s: %w", product.Name, err)
			}

			movement, err := inventory.NewStockMovement(product.ID, product.Name,
				inventory.MovementTypeExit, line.Quantity, product.CurrentStock,
				fmt.Sprintf("Sale %s", sale.SaleNumber), inventory.SourceTypeSale, &sale.ID)
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return fmt.Errorf("failed to save stock movement: %w", err)
			}
		}

		result = &CheckoutResult{
			SaleID:     sale.ID,
			SaleNumber: sale.SaleNumber,
			Status:     sale.Status,
			Subtotal:   sale.Subtotal,
			Discount:   sale.Discount,
			Total:      sale.Total,
		}

		if sale.IsDeferred() {
			txCustomer, err := repos.CustomerRepo().FindByID(ctx, *req.CustomerID)
			if err != nil {
				return fmt.Errorf("failed to get customer: %w", err)
			}
			if txCustomer == nil {
				return shared.NewDomainError("NOT_FOUND", "Customer not found")
			}
			if err := txCustomer.IncreaseDebt(sale.Total); err != nil {
				return err
			}
			if err := repos.CustomerRepo().SaveWithLock(ctx, txCustomer); err != nil {
				return fmt.Errorf("failed to save customer: %w", err)
			}
			debt := txCustomer.DebtTotal
			result.DebtTotal = &debt
		} else if req.AmountReceived != nil {
			if req.AmountReceived.LessThan(sale.Total) {
				return shared.NewDomainError("VALIDATION_ERROR", "Amount received is less than the sale total")
			}
			change := req.AmountReceived.Sub(sale.Total).Round(2)
			result.Change = &change
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.DebtTotal != nil && s.cache != nil {
		// A deferred sale moves the portfolio totals
		_ = s.cache.Invalidate(ctx)
	}

	return result, nil
}

// buildItems loads the products behind the cart lines and snapshots their
// names and prices into sale items. Inactive products and lines exceeding
// available stock fail the whole checkout.
func (s *CheckoutService) buildItems(ctx context.Context, productRepo catalog.ProductRepository, lines []CartLine) ([]ledger.SaleItem, []*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	found, err := productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	items := make([]ledger.SaleItem, 0, len(lines))
	products := make([]*catalog.Product, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", line.ProductID))
		}
		if !product.IsActive() {
			return nil, nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Product %s is inactive", product.Name))
		}
		if !product.HasStock(line.Quantity) {
			return nil, nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Product %s has %d in stock, %d requested", product.Name, product.CurrentStock, line.Quantity))
		}

		item, err := ledger.NewSaleItem(product.ID, product.Name, line.Quantity, product.SalePrice)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, *item)
		products = append(products, product)
	}

	return items, products, nil
}

// GetSale returns a sale by ID
func (s *CheckoutService) GetSale(ctx context.Context, id uuid.UUID) (*ledger.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *CheckoutService) ListSales(ctx context.Context, filter ledger.SaleFilter) (*shared.Paginated[ledger.Sale], error) {
	sales, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	total, err := s.saleRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}
	page := shared.NewPaginated(sales, total, filter.Page, filter.PageSize)
	return &page, nil
}
