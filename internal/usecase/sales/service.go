package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

// RecordSaleInput represents the input for recording a day of customer sales
type RecordSaleInput struct {
	Date         time.Time
	CustomerName string
	Region       string
	Revenue      decimal.Decimal
	Orders       int
	Sessions     int
}

// RecordRepairOrderInput represents the input for recording a repair order
type RecordRepairOrderInput struct {
	ShopName string
	OpenedOn time.Time
	Total    decimal.Decimal
}

// RecordShipmentInput represents the input for recording a shipment
type RecordShipmentInput struct {
	OrderNumber      string
	CustomerName     string
	Status           domain.ShipmentStatus
	PackingStartedAt time.Time
	Value            decimal.Decimal
}

// SalesService records the facts the dashboard panels are computed from
type SalesService struct {
	SalesRepo       domain.SalesDataRepository
	RepairOrderRepo domain.RepairOrderRepository
	ShipmentRepo    domain.ShipmentRepository
}

// NewSalesService creates a new SalesService instance
func NewSalesService(
	salesRepo domain.SalesDataRepository,
	repairOrderRepo domain.RepairOrderRepository,
	shipmentRepo domain.ShipmentRepository,
) *SalesService {
	return &SalesService{
		SalesRepo:       salesRepo,
		RepairOrderRepo: repairOrderRepo,
		ShipmentRepo:    shipmentRepo,
	}
}

// RecordSale validates and stores a sales row
func (s *SalesService) RecordSale(ctx context.Context, input RecordSaleInput) (*domain.SalesData, error) {
	row := &domain.SalesData{
		ID:           uuid.New(),
		Date:         input.Date,
		CustomerName: strings.TrimSpace(input.CustomerName),
		Region:       strings.TrimSpace(input.Region),
		Revenue:      input.Revenue,
		Orders:       input.Orders,
		Sessions:     input.Sessions,
	}

	if err := row.Validate(); err != nil {
		return nil, err
	}

	if err := s.SalesRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	return row, nil
}

// RecordRepairOrder validates and stores a repair order
func (s *SalesService) RecordRepairOrder(ctx context.Context, input RecordRepairOrderInput) (*domain.RepairOrder, error) {
	ro := &domain.RepairOrder{
		ID:       uuid.New(),
		ShopName: strings.TrimSpace(input.ShopName),
		OpenedOn: input.OpenedOn,
		Total:    input.Total,
	}

	if err := ro.Validate(); err != nil {
		return nil, err
	}

	if err := s.RepairOrderRepo.Create(ctx, ro); err != nil {
		return nil, err
	}

	return ro, nil
}

// RecordShipment validates and stores a shipment.
// A shipment without a status starts in PACKING.
func (s *SalesService) RecordShipment(ctx context.Context, input RecordShipmentInput) (*domain.Shipment, error) {
	status := input.Status
	if status == "" {
		status = domain.ShipmentStatusPacking
	}

	shipment := &domain.Shipment{
		ID:               uuid.New(),
		OrderNumber:      strings.TrimSpace(input.OrderNumber),
		CustomerName:     strings.TrimSpace(input.CustomerName),
		Status:           status,
		PackingStartedAt: input.PackingStartedAt,
		Value:            input.Value,
	}

	if err := shipment.Validate(); err != nil {
		return nil, err
	}

	if err := s.ShipmentRepo.Create(ctx, shipment); err != nil {
		return nil, err
	}

	return shipment, nil
}
