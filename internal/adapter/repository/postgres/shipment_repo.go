package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

// shipmentRepository implements domain.ShipmentRepository
type shipmentRepository struct {
	db *DB
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *DB) domain.ShipmentRepository {
	return &shipmentRepository{db: db}
}

// Create creates a new shipment
func (r *shipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	query := `
		INSERT INTO shipments (id, order_number, customer_name, status, packing_started_at, value)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		shipment.ID,
		shipment.OrderNumber,
		shipment.CustomerName,
		string(shipment.Status),
		shipment.PackingStartedAt,
		shipment.Value.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert shipment: %w", err)
	}

	return nil
}

// ListByStatus retrieves shipments in the given status, oldest packing start first
func (r *shipmentRepository) ListByStatus(ctx context.Context, status domain.ShipmentStatus) ([]*domain.Shipment, error) {
	query := `
		SELECT id, order_number, customer_name, status, packing_started_at, value
		FROM shipments
		WHERE status = $1
		ORDER BY packing_started_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query shipments: %w", err)
	}
	defer rows.Close()

	shipments := make([]*domain.Shipment, 0)
	for rows.Next() {
		var shipment domain.Shipment
		var statusStr, valueStr string

		if err := rows.Scan(
			&shipment.ID,
			&shipment.OrderNumber,
			&shipment.CustomerName,
			&statusStr,
			&shipment.PackingStartedAt,
			&valueStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shipment: %w", err)
		}

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse shipment value: %w", err)
		}
		shipment.Status = domain.ShipmentStatus(statusStr)
		shipment.Value = value

		shipments = append(shipments, &shipment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shipments: %w", err)
	}

	return shipments, nil
}
