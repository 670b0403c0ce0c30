package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

// salesDataRepository implements domain.SalesDataRepository
type salesDataRepository struct {
	db *DB
}

// NewSalesDataRepository creates a new sales data repository
func NewSalesDataRepository(db *DB) domain.SalesDataRepository {
	return &salesDataRepository{db: db}
}

// Create creates a new sales row
func (r *salesDataRepository) Create(ctx context.Context, row *domain.SalesData) error {
	query := `
		INSERT INTO sales_data (id, date, customer_name, region, revenue, orders, sessions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.Date,
		row.CustomerName,
		row.Region,
		row.Revenue.String(),
		row.Orders,
		row.Sessions,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sales data: %w", err)
	}

	return nil
}

// ListByRange retrieves sales rows inside the range, ordered by date ascending.
// A zero bound leaves that side of the range open.
func (r *salesDataRepository) ListByRange(ctx context.Context, dateRange domain.DateRange) ([]*domain.SalesData, error) {
	query := `
		SELECT id, date, customer_name, region, revenue, orders, sessions
		FROM sales_data
		WHERE ($1::date IS NULL OR date >= $1::date)
		  AND ($2::date IS NULL OR date <= $2::date)
		ORDER BY date ASC, customer_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, nullDate(dateRange.From), nullDate(dateRange.To))
	if err != nil {
		return nil, fmt.Errorf("failed to query sales data: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.SalesData, 0)
	for rows.Next() {
		var row domain.SalesData
		var revenueStr string

		if err := rows.Scan(
			&row.ID,
			&row.Date,
			&row.CustomerName,
			&row.Region,
			&revenueStr,
			&row.Orders,
			&row.Sessions,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sales data: %w", err)
		}

		// Parse revenue (NUMERIC)
		revenue, err := decimal.NewFromString(revenueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse revenue: %w", err)
		}
		row.Revenue = revenue

		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales data: %w", err)
	}

	return result, nil
}
