package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/export"
	"github.com/simaogato/partsdash-backend/internal/usecase/formatter"
	"github.com/simaogato/partsdash-backend/internal/usecase/rollup"
	"github.com/simaogato/partsdash-backend/internal/usecase/table"
)

// ErrUnknownPanel is returned for a panel ID missing from the catalog
var ErrUnknownPanel = errors.New("unknown panel")

// PanelRequest carries everything a panel query may need.
// Fields a panel does not use are ignored.
type PanelRequest struct {
	Range   domain.DateRange
	View    domain.ViewState
	Period  domain.Period
	Now     time.Time
	MinDays int
}

// DashboardService assembles dashboard panels from stored sales, repair
// order and shipment facts
type DashboardService struct {
	SalesRepo       domain.SalesDataRepository
	RepairOrderRepo domain.RepairOrderRepository
	ShipmentRepo    domain.ShipmentRepository

	panels   []domain.PanelSpec
	panelIdx map[string]int
}

// NewDashboardService creates a new DashboardService instance.
// panels is the catalog of mounted panels, in navigation order.
func NewDashboardService(
	salesRepo domain.SalesDataRepository,
	repairOrderRepo domain.RepairOrderRepository,
	shipmentRepo domain.ShipmentRepository,
	panels []domain.PanelSpec,
) (*DashboardService, error) {
	idx := make(map[string]int, len(panels))
	for i := range panels {
		if err := panels[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid panel %q: %w", panels[i].ID, err)
		}
		if _, dup := idx[panels[i].ID]; dup {
			return nil, fmt.Errorf("duplicate panel %q", panels[i].ID)
		}
		idx[panels[i].ID] = i
	}

	return &DashboardService{
		SalesRepo:       salesRepo,
		RepairOrderRepo: repairOrderRepo,
		ShipmentRepo:    shipmentRepo,
		panels:          panels,
		panelIdx:        idx,
	}, nil
}

// Panels returns the catalog, optionally restricted to one navigation category
func (s *DashboardService) Panels(category string) []domain.PanelSpec {
	out := make([]domain.PanelSpec, 0, len(s.panels))
	for _, p := range s.panels {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Panel looks up a panel by ID
func (s *DashboardService) Panel(id string) (domain.PanelSpec, error) {
	i, ok := s.panelIdx[id]
	if !ok {
		return domain.PanelSpec{}, fmt.Errorf("%w: %q", ErrUnknownPanel, id)
	}
	return s.panels[i], nil
}

// CustomerLeaderboard ranks customers by their sales inside the range.
// Logic:
//   - Revenue, orders and sessions are summed per customer
//   - AOV = revenue / orders, conversion = orders / sessions (zero when the divisor is zero)
//   - Last purchase is the latest day with at least one order
//   - Region is the most recently recorded region
func (s *DashboardService) CustomerLeaderboard(ctx context.Context, dateRange domain.DateRange, view domain.ViewState) ([]domain.CustomerLeaderboardRow, error) {
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	sales, err := s.SalesRepo.ListByRange(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales data: %w", err)
	}

	type totals struct {
		name         string
		region       string
		revenue      decimal.Decimal
		orders       int
		sessions     int
		lastPurchase time.Time
	}

	order := make([]string, 0)
	byCustomer := make(map[string]*totals)
	for _, row := range sales {
		t, ok := byCustomer[row.CustomerName]
		if !ok {
			t = &totals{name: row.CustomerName}
			byCustomer[row.CustomerName] = t
			order = append(order, row.CustomerName)
		}
		t.revenue = t.revenue.Add(row.Revenue)
		t.orders += row.Orders
		t.sessions += row.Sessions
		t.region = row.Region
		if row.Orders > 0 && row.Date.After(t.lastPurchase) {
			t.lastPurchase = row.Date
		}
	}

	rows := make([]domain.CustomerLeaderboardRow, 0, len(order))
	for _, name := range order {
		t := byCustomer[name]
		orders := decimal.NewFromInt(int64(t.orders))
		rows = append(rows, domain.CustomerLeaderboardRow{
			Name:           t.name,
			Revenue:        formatter.Currency(t.revenue),
			Orders:         t.orders,
			AOV:            formatter.Currency(formatter.SafeDivide(t.revenue, orders)),
			ConversionRate: formatter.Percent(formatter.SafePercent(orders, decimal.NewFromInt(int64(t.sessions)))),
			LastPurchase:   formatter.Date(t.lastPurchase),
			Region:         t.region,
		})
	}

	return applyView(s, PanelCustomerLeaderboard, CustomerLeaderboardTable, rows, view)
}

// VendorRecap summarizes repair orders per shop inside the range.
// Average cost per RO and share of the grand total fall back to zero when
// their divisor is zero.
func (s *DashboardService) VendorRecap(ctx context.Context, dateRange domain.DateRange, view domain.ViewState) ([]domain.VendorRecapRow, error) {
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	ros, err := s.RepairOrderRepo.ListByRange(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to list repair orders: %w", err)
	}

	type totals struct {
		count int
		total decimal.Decimal
	}

	order := make([]string, 0)
	byShop := make(map[string]*totals)
	grandTotal := decimal.Zero
	for _, ro := range ros {
		t, ok := byShop[ro.ShopName]
		if !ok {
			t = &totals{}
			byShop[ro.ShopName] = t
			order = append(order, ro.ShopName)
		}
		t.count++
		t.total = t.total.Add(ro.Total)
		grandTotal = grandTotal.Add(ro.Total)
	}

	rows := make([]domain.VendorRecapRow, 0, len(order))
	for _, shop := range order {
		t := byShop[shop]
		rows = append(rows, domain.VendorRecapRow{
			ShopName:     shop,
			ROCount:      t.count,
			ROTotal:      formatter.Currency(t.total),
			ROTotalValue: t.total,
			AvgCostPerRO: formatter.Currency(formatter.SafeDivide(t.total, decimal.NewFromInt(int64(t.count)))),
			ShareOfTotal: formatter.Percent(formatter.SafePercent(t.total, grandTotal)),
		})
	}

	return applyView(s, PanelVendorInsights, VendorRecapTable, rows, view)
}

// StuckPackingShipments lists shipments that have been in packing for at
// least minDays whole days as of now
func (s *DashboardService) StuckPackingShipments(ctx context.Context, now time.Time, minDays int, view domain.ViewState) ([]domain.StuckShipmentRow, error) {
	if minDays < 0 {
		return nil, errors.New("minimum days in packing must not be negative")
	}

	shipments, err := s.ShipmentRepo.ListByStatus(ctx, domain.ShipmentStatusPacking)
	if err != nil {
		return nil, fmt.Errorf("failed to list packing shipments: %w", err)
	}

	rows := make([]domain.StuckShipmentRow, 0, len(shipments))
	for _, sh := range shipments {
		days := int(now.Sub(sh.PackingStartedAt).Hours() / 24)
		if days < minDays {
			continue
		}
		rows = append(rows, domain.StuckShipmentRow{
			OrderNumber:   sh.OrderNumber,
			Customer:      sh.CustomerName,
			Status:        string(sh.Status),
			DaysInPacking: days,
			Value:         formatter.Currency(sh.Value),
		})
	}

	return applyView(s, PanelStuckPacking, StuckShipmentsTable, rows, view)
}

// SalesTrend rolls daily revenue inside the range up by period
func (s *DashboardService) SalesTrend(ctx context.Context, dateRange domain.DateRange, period domain.Period) ([]domain.TrendPoint, error) {
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}
	if period == "" {
		period = domain.PeriodDaily
	}

	sales, err := s.SalesRepo.ListByRange(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales data: %w", err)
	}

	points := rollup.InRange(dailyRevenue(sales), dateRange)
	return rollup.Aggregate(points, period)
}

// FinanceSummary builds the headline cards for a closed range.
// Logic:
//   - Revenue, orders and AOV cover the range itself
//   - Growth compares revenue with the equally long period just before it
//   - YTD revenue runs from January 1 of the range's end year to its end
func (s *DashboardService) FinanceSummary(ctx context.Context, dateRange domain.DateRange) ([]domain.SummaryCard, error) {
	if dateRange.From.IsZero() || dateRange.To.IsZero() {
		return nil, errors.New("finance summary needs a closed date range")
	}
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	days := int(dateRange.To.Sub(dateRange.From).Hours()/24) + 1
	previous := domain.DateRange{
		From: dateRange.From.AddDate(0, 0, -days),
		To:   dateRange.From.AddDate(0, 0, -1),
	}
	ytd := domain.DateRange{
		From: time.Date(dateRange.To.Year(), time.January, 1, 0, 0, 0, 0, dateRange.To.Location()),
		To:   dateRange.To,
	}

	from := previous.From
	if ytd.From.Before(from) {
		from = ytd.From
	}
	sales, err := s.SalesRepo.ListByRange(ctx, domain.DateRange{From: from, To: dateRange.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list sales data: %w", err)
	}

	var revenue, prevRevenue, ytdRevenue decimal.Decimal
	orders := 0
	for _, row := range sales {
		if dateRange.Contains(row.Date) {
			revenue = revenue.Add(row.Revenue)
			orders += row.Orders
		}
		if previous.Contains(row.Date) {
			prevRevenue = prevRevenue.Add(row.Revenue)
		}
		if ytd.Contains(row.Date) {
			ytdRevenue = ytdRevenue.Add(row.Revenue)
		}
	}

	growth := formatter.SafePercent(revenue.Sub(prevRevenue), prevRevenue)
	return []domain.SummaryCard{
		{Title: "Revenue", Value: formatter.Currency(revenue), Change: formatter.SignedPercent(growth)},
		{Title: "Orders", Value: fmt.Sprintf("%d", orders)},
		{Title: "Average Order Value", Value: formatter.Currency(formatter.SafeDivide(revenue, decimal.NewFromInt(int64(orders))))},
		{Title: "YTD Revenue", Value: formatter.Currency(ytdRevenue)},
	}, nil
}

// Query returns the rows of any panel, typed per panel
func (s *DashboardService) Query(ctx context.Context, panelID string, req PanelRequest) (any, error) {
	if _, err := s.Panel(panelID); err != nil {
		return nil, err
	}

	switch panelID {
	case PanelCustomerLeaderboard:
		return s.CustomerLeaderboard(ctx, req.Range, req.View)
	case PanelVendorInsights:
		return s.VendorRecap(ctx, req.Range, req.View)
	case PanelStuckPacking:
		return s.StuckPackingShipments(ctx, nowOr(req.Now), req.MinDays, req.View)
	case PanelSalesTrend:
		return s.SalesTrend(ctx, req.Range, req.Period)
	case PanelFinanceSummary:
		return s.FinanceSummary(ctx, req.Range)
	default:
		return nil, fmt.Errorf("%w: %q has no data source", ErrUnknownPanel, panelID)
	}
}

// Export renders a panel, after its view state is applied, as a CSV document
// named by the panel catalog
func (s *DashboardService) Export(ctx context.Context, panelID string, req PanelRequest) (*export.Document, error) {
	spec, err := s.Panel(panelID)
	if err != nil {
		return nil, err
	}
	if spec.ExportFilename == "" {
		return nil, fmt.Errorf("panel %q does not support export", panelID)
	}

	switch panelID {
	case PanelCustomerLeaderboard:
		rows, err := s.CustomerLeaderboard(ctx, req.Range, req.View)
		if err != nil {
			return nil, err
		}
		return export.NewDocument(spec.ExportFilename, CustomerLeaderboardTable.Columns(), rows)
	case PanelVendorInsights:
		rows, err := s.VendorRecap(ctx, req.Range, req.View)
		if err != nil {
			return nil, err
		}
		return export.NewDocument(spec.ExportFilename, VendorRecapTable.Columns(), rows)
	case PanelStuckPacking:
		rows, err := s.StuckPackingShipments(ctx, nowOr(req.Now), req.MinDays, req.View)
		if err != nil {
			return nil, err
		}
		return export.NewDocument(spec.ExportFilename, StuckShipmentsTable.Columns(), rows)
	case PanelSalesTrend:
		points, err := s.SalesTrend(ctx, req.Range, req.Period)
		if err != nil {
			return nil, err
		}
		return export.NewDocument(spec.ExportFilename, TrendTable.Columns(), points)
	case PanelFinanceSummary:
		cards, err := s.FinanceSummary(ctx, req.Range)
		if err != nil {
			return nil, err
		}
		return export.NewDocument(spec.ExportFilename, SummaryTable.Columns(), cards)
	default:
		return nil, fmt.Errorf("%w: %q has no data source", ErrUnknownPanel, panelID)
	}
}

// applyView fills the panel's default ordering into view and applies it
func applyView[T any](s *DashboardService, panelID string, tbl *table.Table[T], rows []T, view domain.ViewState) ([]T, error) {
	if spec, err := s.Panel(panelID); err == nil {
		view = view.WithDefaults(spec.DefaultSortKey, spec.DefaultDirection)
	}
	return tbl.Apply(rows, view)
}

// dailyRevenue sums revenue per calendar day, in the order days first appear
func dailyRevenue(sales []*domain.SalesData) []domain.DailyPoint {
	points := make([]domain.DailyPoint, 0)
	index := make(map[string]int)
	for _, row := range sales {
		key := formatter.Date(row.Date)
		if i, ok := index[key]; ok {
			points[i].Value = points[i].Value.Add(row.Revenue)
			continue
		}
		index[key] = len(points)
		y, m, d := row.Date.Date()
		points = append(points, domain.DailyPoint{
			Date:  time.Date(y, m, d, 0, 0, 0, 0, row.Date.Location()),
			Value: row.Revenue,
		})
	}
	return points
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
