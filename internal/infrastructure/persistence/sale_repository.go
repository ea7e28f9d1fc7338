package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/puestoweb/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID. Returns nil without error when missing.
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySaleNumber finds a sale by its sequential number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*ledger.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "sale_number = ?", saleNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter ledger.SaleFilter) ([]ledger.Sale, error) {
	var saleModels []models.SaleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]ledger.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales, nil
}

// FindByCustomer finds sales for a customer
func (r *GormSaleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter ledger.SaleFilter) ([]ledger.Sale, error) {
	filter.CustomerID = &customerID
	return r.FindAll(ctx, filter)
}

// FindOpenByCustomer finds the customer's open sales ordered oldest first.
// The settlement allocator walks this slice in order, so the ordering here
// is what makes allocation first-in first-out.
func (r *GormSaleRepository) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]ledger.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ? AND pending_amount > ?", customerID, ledger.SaleStatusPending, decimal.Zero).
		Order("created_at ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]ledger.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales, nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *ledger.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a sale with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *ledger.Sale) error {
	model := models.SaleModelFromDomain(sale)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", sale.ID, sale.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "The sale record has been modified by another transaction")
	}
	return nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter ledger.SaleFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumPendingByCustomer calculates the customer's total outstanding amount
func (r *GormSaleRepository) SumPendingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Select("COALESCE(SUM(pending_amount), 0) as total").
		Where("customer_id = ?", customerID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// FindByDateRange finds all sales created inside a date range, unpaginated
func (r *GormSaleRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]ledger.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]ledger.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales, nil
}

// SumTotalByDateRange sums sale totals inside a date range
func (r *GormSaleRepository) SumTotalByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Select("COALESCE(SUM(total), 0) as total").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CountByDateRange counts sales inside a date range
func (r *GormSaleRepository) CountByDateRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateSaleNumber generates the next sequential sale number.
// Format: V-YYYYMMDD-NNNNN, sequence resets daily.
func (r *GormSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	today := time.Now().Format("20060102")
	prefix := fmt.Sprintf("V-%s-", today)

	var maxNumber string
	err := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Select("sale_number").
		Where("sale_number LIKE ?", prefix+"%").
		Order("sale_number DESC").
		Limit(1).
		Pluck("sale_number", &maxNumber).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	nextSeq := 1
	if maxNumber != "" {
		var seq int
		if _, err := fmt.Sscanf(maxNumber[len(prefix):], "%05d", &seq); err == nil {
			nextSeq = seq + 1
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextSeq), nil
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter ledger.SaleFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.SaleFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sale_number LIKE ? OR customer_name LIKE ?", searchPattern, searchPattern)
	}

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaymentType != nil {
		query = query.Where("payment_type = ?", *filter.PaymentType)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ ledger.SaleRepository = (*GormSaleRepository)(nil)
