package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

// MockSalesDataRepository is a mock implementation of SalesDataRepository for testing
type MockSalesDataRepository struct {
	mock.Mock
}

func (m *MockSalesDataRepository) Create(ctx context.Context, row *domain.SalesData) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockSalesDataRepository) ListByRange(ctx context.Context, dateRange domain.DateRange) ([]*domain.SalesData, error) {
	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SalesData), args.Error(1)
}

// MockRepairOrderRepository is a mock implementation of RepairOrderRepository for testing
type MockRepairOrderRepository struct {
	mock.Mock
}

func (m *MockRepairOrderRepository) Create(ctx context.Context, ro *domain.RepairOrder) error {
	args := m.Called(ctx, ro)
	return args.Error(0)
}

func (m *MockRepairOrderRepository) ListByRange(ctx context.Context, dateRange domain.DateRange) ([]*domain.RepairOrder, error) {
	args := m.Called(ctx, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RepairOrder), args.Error(1)
}

// MockShipmentRepository is a mock implementation of ShipmentRepository for testing
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) ListByStatus(ctx context.Context, status domain.ShipmentStatus) ([]*domain.Shipment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shipment), args.Error(1)
}

func newService() (*SalesService, *MockSalesDataRepository, *MockRepairOrderRepository, *MockShipmentRepository) {
	salesRepo := new(MockSalesDataRepository)
	roRepo := new(MockRepairOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	return NewSalesService(salesRepo, roRepo, shipmentRepo), salesRepo, roRepo, shipmentRepo
}

func TestRecordSale(t *testing.T) {
	ctx := context.Background()
	service, salesRepo, _, _ := newService()

	salesRepo.On("Create", ctx, mock.MatchedBy(func(row *domain.SalesData) bool {
		return row.CustomerName == "Acme Aero" &&
			row.Region == "West" &&
			row.Revenue.Equal(decimal.NewFromInt(1200)) &&
			row.Orders == 3
	})).Return(nil)

	row, err := service.RecordSale(ctx, RecordSaleInput{
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CustomerName: "  Acme Aero ",
		Region:       "West",
		Revenue:      decimal.NewFromInt(1200),
		Orders:       3,
		Sessions:     60,
	})

	assert.NoError(t, err)
	assert.NotNil(t, row)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", row.ID.String())
	salesRepo.AssertExpectations(t)
}

func TestRecordSale_InvalidInputIsNotStored(t *testing.T) {
	ctx := context.Background()
	service, salesRepo, _, _ := newService()

	row, err := service.RecordSale(ctx, RecordSaleInput{
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CustomerName: "Acme Aero",
		Region:       "West",
		Revenue:      decimal.NewFromInt(-1),
	})

	assert.Error(t, err)
	assert.Nil(t, row)
	assert.Contains(t, err.Error(), "revenue must not be negative")
	salesRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordSale_RepositoryError(t *testing.T) {
	ctx := context.Background()
	service, salesRepo, _, _ := newService()
	salesRepo.On("Create", ctx, mock.Anything).Return(errors.New("duplicate key"))

	_, err := service.RecordSale(ctx, RecordSaleInput{
		Date:         time.Now(),
		CustomerName: "Acme Aero",
		Region:       "West",
		Revenue:      decimal.NewFromInt(1),
	})
	assert.EqualError(t, err, "duplicate key")
}

func TestRecordRepairOrder(t *testing.T) {
	ctx := context.Background()
	service, _, roRepo, _ := newService()
	roRepo.On("Create", ctx, mock.AnythingOfType("*domain.RepairOrder")).Return(nil)

	ro, err := service.RecordRepairOrder(ctx, RecordRepairOrderInput{
		ShopName: "Hangar 9 Avionics",
		OpenedOn: time.Now(),
		Total:    decimal.NewFromInt(2500),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Hangar 9 Avionics", ro.ShopName)

	_, err = service.RecordRepairOrder(ctx, RecordRepairOrderInput{OpenedOn: time.Now()})
	assert.EqualError(t, err, "shop name cannot be empty")
	roRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestRecordShipment_DefaultsToPacking(t *testing.T) {
	ctx := context.Background()
	service, _, _, shipmentRepo := newService()
	shipmentRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.Shipment) bool {
		return s.Status == domain.ShipmentStatusPacking
	})).Return(nil)

	shipment, err := service.RecordShipment(ctx, RecordShipmentInput{
		OrderNumber:      "SO-1001",
		CustomerName:     "Acme Aero",
		PackingStartedAt: time.Now(),
		Value:            decimal.NewFromInt(450),
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.ShipmentStatusPacking, shipment.Status)
	shipmentRepo.AssertExpectations(t)
}
