package dashboard

import (
	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/formatter"
	"github.com/simaogato/partsdash-backend/internal/usecase/table"
)

// Panel IDs, as named in the panel catalog
const (
	PanelCustomerLeaderboard = "customer-leaderboard"
	PanelVendorInsights      = "vendor-insights"
	PanelStuckPacking        = "stuck-packing-shipments"
	PanelSalesTrend          = "sales-trend"
	PanelFinanceSummary      = "finance-summary"
)

// CustomerLeaderboardTable defines the columns of the customer leaderboard
var CustomerLeaderboardTable = table.MustNew(
	table.Column[domain.CustomerLeaderboardRow]{
		Key: "name", Header: "Customer", Searchable: true,
		Accessor: func(r domain.CustomerLeaderboardRow) domain.Value { return domain.Text(r.Name) },
	},
	table.Column[domain.CustomerLeaderboardRow]{
		Key: "revenue", Header: "Revenue",
		Accessor: func(r domain.CustomerLeaderboardRow) domain.Value { return domain.Text(r.Revenue) },
	},
	table.Column[domain.CustomerLeaderboardRow]{
		Key: "orders", Header: "Orders",
		Accessor: func(r domain.CustomerLeaderboardRow) domain.Value { return domain.Int(r.Orders) },
	},
	table.Column[domain.CustomerLeaderboardRow]{
		Key: "aov", Header: "AOV",
		Accessor: func(r domain.CustomerLeaderboardRow) domain.Value { return domain.Text(r.AOV) },
	},
	table.Column[domain.CustomerLeaderboardRow]{
		Key: "conversionRate", Header: "Conversion Rate",
		Accessor: func(r domain.CustomerLeaderboardRow) domain.Value { return domain.Text(r.ConversionRate) },
	},
	table.Column[domain.CustomerLeaderboardRow]{
		Key: "lastPurchase", Header: "Last Purchase",
		Accessor: func(r domain.CustomerLeaderboardRow) domain.Value { return optionalText(r.LastPurchase) },
	},
	table.Column[domain.CustomerLeaderboardRow]{
		Key: "region", Header: "Region", Searchable: true,
		Accessor: func(r domain.CustomerLeaderboardRow) domain.Value { return domain.Text(r.Region) },
	},
)

// VendorRecapTable defines the columns of the vendor (repair shop) recap
var VendorRecapTable = table.MustNew(
	table.Column[domain.VendorRecapRow]{
		Key: "shopName", Header: "Shop", Searchable: true,
		Accessor: func(r domain.VendorRecapRow) domain.Value { return domain.Text(r.ShopName) },
	},
	table.Column[domain.VendorRecapRow]{
		Key: "roCount", Header: "RO Count",
		Accessor: func(r domain.VendorRecapRow) domain.Value { return domain.Int(r.ROCount) },
	},
	table.Column[domain.VendorRecapRow]{
		Key: "roTotal", Header: "RO Total",
		Accessor: func(r domain.VendorRecapRow) domain.Value { return domain.Text(r.ROTotal) },
	},
	table.Column[domain.VendorRecapRow]{
		Key: "avgCostPerRo", Header: "Avg Cost / RO",
		Accessor: func(r domain.VendorRecapRow) domain.Value { return domain.Text(r.AvgCostPerRO) },
	},
	table.Column[domain.VendorRecapRow]{
		Key: "shareOfTotal", Header: "Share of Total",
		Accessor: func(r domain.VendorRecapRow) domain.Value { return domain.Text(r.ShareOfTotal) },
	},
)

// StuckShipmentsTable defines the columns of the stuck-in-packing list
var StuckShipmentsTable = table.MustNew(
	table.Column[domain.StuckShipmentRow]{
		Key: "orderNumber", Header: "Order #", Searchable: true,
		Accessor: func(r domain.StuckShipmentRow) domain.Value { return domain.Text(r.OrderNumber) },
	},
	table.Column[domain.StuckShipmentRow]{
		Key: "customer", Header: "Customer", Searchable: true,
		Accessor: func(r domain.StuckShipmentRow) domain.Value { return domain.Text(r.Customer) },
	},
	table.Column[domain.StuckShipmentRow]{
		Key: "status", Header: "Status",
		Accessor: func(r domain.StuckShipmentRow) domain.Value { return domain.Text(r.Status) },
	},
	table.Column[domain.StuckShipmentRow]{
		Key: "daysInPacking", Header: "Days In Packing",
		Accessor: func(r domain.StuckShipmentRow) domain.Value { return domain.Int(r.DaysInPacking) },
	},
	table.Column[domain.StuckShipmentRow]{
		Key: "value", Header: "Value",
		Accessor: func(r domain.StuckShipmentRow) domain.Value { return domain.Text(r.Value) },
	},
)

// TrendTable defines the columns of an exported trend series
var TrendTable = table.MustNew(
	table.Column[domain.TrendPoint]{
		Key: "label", Header: "Period", Searchable: true,
		Accessor: func(p domain.TrendPoint) domain.Value { return domain.Text(p.Label) },
	},
	table.Column[domain.TrendPoint]{
		Key: "date", Header: "Date",
		Accessor: func(p domain.TrendPoint) domain.Value { return domain.Text(formatter.Date(p.Date)) },
	},
	table.Column[domain.TrendPoint]{
		Key: "value", Header: "Revenue",
		Accessor: func(p domain.TrendPoint) domain.Value { return domain.Number(p.Value) },
	},
)

// SummaryTable defines the columns of exported finance cards
var SummaryTable = table.MustNew(
	table.Column[domain.SummaryCard]{
		Key: "title", Header: "Metric", Searchable: true,
		Accessor: func(c domain.SummaryCard) domain.Value { return domain.Text(c.Title) },
	},
	table.Column[domain.SummaryCard]{
		Key: "value", Header: "Value",
		Accessor: func(c domain.SummaryCard) domain.Value { return domain.Text(c.Value) },
	},
	table.Column[domain.SummaryCard]{
		Key: "change", Header: "Change",
		Accessor: func(c domain.SummaryCard) domain.Value { return optionalText(c.Change) },
	},
)

func optionalText(s string) domain.Value {
	if s == "" {
		return domain.Missing()
	}
	return domain.Text(s)
}
