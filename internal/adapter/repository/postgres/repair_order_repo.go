package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

// repairOrderRepository implements domain.RepairOrderRepository
type repairOrderRepository struct {
	db *DB
}

// NewRepairOrderRepository creates a new repair order repository
func NewRepairOrderRepository(db *DB) domain.RepairOrderRepository {
	return &repairOrderRepository{db: db}
}

// Create creates a new repair order
func (r *repairOrderRepository) Create(ctx context.Context, ro *domain.RepairOrder) error {
	query := `
		INSERT INTO repair_orders (id, shop_name, opened_on, total)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, ro.ID, ro.ShopName, ro.OpenedOn, ro.Total.String())
	if err != nil {
		return fmt.Errorf("failed to insert repair order: %w", err)
	}

	return nil
}

// ListByRange retrieves repair orders opened inside the range
func (r *repairOrderRepository) ListByRange(ctx context.Context, dateRange domain.DateRange) ([]*domain.RepairOrder, error) {
	query := `
		SELECT id, shop_name, opened_on, total
		FROM repair_orders
		WHERE ($1::date IS NULL OR opened_on >= $1::date)
		  AND ($2::date IS NULL OR opened_on <= $2::date)
		ORDER BY opened_on ASC, shop_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, nullDate(dateRange.From), nullDate(dateRange.To))
	if err != nil {
		return nil, fmt.Errorf("failed to query repair orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.RepairOrder, 0)
	for rows.Next() {
		var ro domain.RepairOrder
		var totalStr string

		if err := rows.Scan(&ro.ID, &ro.ShopName, &ro.OpenedOn, &totalStr); err != nil {
			return nil, fmt.Errorf("failed to scan repair order: %w", err)
		}

		total, err := decimal.NewFromString(totalStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse repair order total: %w", err)
		}
		ro.Total = total

		orders = append(orders, &ro)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repair orders: %w", err)
	}

	return orders, nil
}
