package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/application/collections"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReportService produces the dashboard and sales reports. Everything here
// is a projection over the stored aggregates; nothing is written.
type ReportService struct {
	saleRepo    ledger.SaleRepository
	productRepo catalog.ProductRepository
	debtService *collections.DebtService
}

// NewReportService creates a new ReportService
func NewReportService(
	saleRepo ledger.SaleRepository,
	productRepo catalog.ProductRepository,
	debtService *collections.DebtService,
) *ReportService {
	return &ReportService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		debtService: debtService,
	}
}

// Dashboard is the store's front-page summary
type Dashboard struct {
	TodaySalesCount int64                    `json:"today_sales_count"`
	TodaySalesTotal decimal.Decimal          `json:"today_sales_total"`
	LowStockCount   int64                    `json:"low_stock_count"`
	Debt            *collections.DebtSummary `json:"debt"`
}

// Dashboard builds today's overview: sales so far, products running low
// and the debt portfolio summary.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.saleRepo.CountByDateRange(ctx, dayStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's sales: %w", err)
	}
	total, err := s.saleRepo.SumTotalByDateRange(ctx, dayStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to sum today's sales: %w", err)
	}
	lowStock, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}
	debt, err := s.debtService.PortfolioSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build debt summary: %w", err)
	}

	return &Dashboard{
		TodaySalesCount: count,
		TodaySalesTotal: total,
		LowStockCount:   lowStock,
		Debt:            debt,
	}, nil
}

// DailySales is one day's row of the sales-by-day report
type DailySales struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	SalesCount int             `json:"sales_count"`
	Total      decimal.Decimal `json:"total"`
}

// SalesByDay aggregates sales per calendar day over the given range,
// oldest day first. Days without sales are omitted.
func (s *ReportService) SalesByDay(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Date range end is before its start")
	}

	sales, err := s.saleRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	byDay := make(map[string]*DailySales)
	for _, sale := range sales {
		day := sale.CreatedAt.Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &DailySales{Date: day, Total: decimal.Zero}
			byDay[day] = row
		}
		row.SalesCount++
		row.Total = row.Total.Add(sale.Total)
	}

	rows := make([]DailySales, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	return rows, nil
}

// ProductSales is one row of the top-products report
type ProductSales struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"` // snapshot from the sale lines
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// TopProducts ranks products by quantity sold over the given range.
// Names come from the sale line snapshots, so deactivated products
// still report correctly.
func (s *ReportService) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Date range end is before its start")
	}
	if limit <= 0 {
		limit = 10
	}

	sales, err := s.saleRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	byProduct := make(map[uuid.UUID]*ProductSales)
	for _, sale := range sales {
		for _, item := range sale.Items {
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &ProductSales{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Total:       decimal.Zero,
				}
				byProduct[item.ProductID] = row
			}
			row.Quantity += item.Quantity
			row.Total = row.Total.Add(item.Subtotal)
		}
	}

	rows := make([]ProductSales, 0, len(byProduct))
	for _, row := range byProduct {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Quantity != rows[j].Quantity {
			return rows[i].Quantity > rows[j].Quantity
		}
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	return rows, nil
}
