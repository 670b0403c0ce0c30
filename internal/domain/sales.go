package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesData represents one day of sales for a customer in the sales_data table
type SalesData struct {
	ID           uuid.UUID
	Date         time.Time
	CustomerName string
	Region       string
	Revenue      decimal.Decimal
	Orders       int
	Sessions     int // storefront visits, the denominator of conversion rate
}

// Validate ensures the sales row adheres to domain rules
func (s *SalesData) Validate() error {
	if s.CustomerName == "" {
		return errors.New("customer name cannot be empty")
	}
	if s.Region == "" {
		return errors.New("region cannot be empty")
	}
	if s.Date.IsZero() {
		return errors.New("sales date must be set")
	}
	if s.Revenue.IsNegative() {
		return errors.New("revenue must not be negative")
	}
	if s.Orders < 0 || s.Sessions < 0 {
		return errors.New("orders and sessions must not be negative")
	}
	return nil
}

// RepairOrder represents a repair order (RO) sent to a vendor shop
type RepairOrder struct {
	ID       uuid.UUID
	ShopName string
	OpenedOn time.Time
	Total    decimal.Decimal
}

// Validate ensures the repair order adheres to domain rules
func (r *RepairOrder) Validate() error {
	if r.ShopName == "" {
		return errors.New("shop name cannot be empty")
	}
	if r.OpenedOn.IsZero() {
		return errors.New("repair order open date must be set")
	}
	if r.Total.IsNegative() {
		return errors.New("repair order total must not be negative")
	}
	return nil
}

// ShipmentStatus represents the fulfillment stage of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPacking   ShipmentStatus = "PACKING"
	ShipmentStatusShipped   ShipmentStatus = "SHIPPED"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
)

// Shipment represents an outbound parts shipment
type Shipment struct {
	ID               uuid.UUID
	OrderNumber      string
	CustomerName     string
	Status           ShipmentStatus
	PackingStartedAt time.Time
	Value            decimal.Decimal
}

// Validate ensures the shipment adheres to domain rules
func (s *Shipment) Validate() error {
	if s.OrderNumber == "" {
		return errors.New("order number cannot be empty")
	}
	if s.CustomerName == "" {
		return errors.New("customer name cannot be empty")
	}
	if s.Status != ShipmentStatusPacking &&
		s.Status != ShipmentStatusShipped &&
		s.Status != ShipmentStatusDelivered {
		return errors.New("shipment status must be PACKING, SHIPPED, or DELIVERED")
	}
	if s.PackingStartedAt.IsZero() {
		return errors.New("packing start time must be set")
	}
	if s.Value.IsNegative() {
		return errors.New("shipment value must not be negative")
	}
	return nil
}
