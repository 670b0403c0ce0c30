package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a lookup matches no row
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// GetByUsername retrieves a user by username
	// Returns an error wrapping ErrNotFound if no such user exists
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create creates a new user
	Create(ctx context.Context, user *User) error
}

// SalesDataRepository defines the interface for sales_data persistence operations
type SalesDataRepository interface {
	// Create creates a new sales row
	Create(ctx context.Context, row *SalesData) error

	// ListByRange retrieves sales rows inside the range, ordered by date ascending
	ListByRange(ctx context.Context, dateRange DateRange) ([]*SalesData, error)
}

// RepairOrderRepository defines the interface for repair order persistence operations
type RepairOrderRepository interface {
	// Create creates a new repair order
	Create(ctx context.Context, ro *RepairOrder) error

	// ListByRange retrieves repair orders opened inside the range, ordered by open date ascending
	ListByRange(ctx context.Context, dateRange DateRange) ([]*RepairOrder, error)
}

// ShipmentRepository defines the interface for shipment persistence operations
type ShipmentRepository interface {
	// Create creates a new shipment
	Create(ctx context.Context, shipment *Shipment) error

	// ListByStatus retrieves shipments in the given status, oldest packing start first
	ListByStatus(ctx context.Context, status ShipmentStatus) ([]*Shipment, error)
}
