package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The types below are view-models: pre-formatted, immutable records handed
// to the dashboard. Currency strings carry a "$" prefix and percentages a
// "%" suffix so that the generic table coercion can sort them numerically.

// CustomerLeaderboardRow is one customer on the sales leaderboard
type CustomerLeaderboardRow struct {
	Name           string `json:"name"`
	Revenue        string `json:"revenue"`
	Orders         int    `json:"orders"`
	AOV            string `json:"aov"`
	ConversionRate string `json:"conversionRate"`
	LastPurchase   string `json:"lastPurchase"`
	Region         string `json:"region"`
}

// VendorRecapRow is one repair shop on the vendor recap panel
type VendorRecapRow struct {
	ShopName     string          `json:"shopName"`
	ROCount      int             `json:"roCount"`
	ROTotal      string          `json:"roTotal"`
	ROTotalValue decimal.Decimal `json:"roTotalValue"`
	AvgCostPerRO string          `json:"avgCostPerRo"`
	ShareOfTotal string          `json:"shareOfTotal"`
}

// StuckShipmentRow is one shipment that has been sitting in packing
type StuckShipmentRow struct {
	OrderNumber   string `json:"orderNumber"`
	Customer      string `json:"customer"`
	Status        string `json:"status"`
	DaysInPacking int    `json:"daysInPacking"`
	Value         string `json:"value"`
}

// DailyPoint is one day of a numeric series
type DailyPoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// TrendPoint is one bucket of a rolled-up series
type TrendPoint struct {
	Label string          `json:"label"`
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// SummaryCard is a single headline metric
type SummaryCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change,omitempty"`
}

// PanelKind represents how the dashboard renders a panel
type PanelKind string

const (
	PanelKindTable PanelKind = "table"
	PanelKindChart PanelKind = "chart"
	PanelKindCards PanelKind = "cards"
)

// PanelSpec describes one panel of the dashboard: where it is mounted, how
// it sorts by default, and the file name its export downloads as
type PanelSpec struct {
	ID               string        `yaml:"id" json:"id"`
	Category         string        `yaml:"category" json:"category"`
	Title            string        `yaml:"title" json:"title"`
	Kind             PanelKind     `yaml:"kind" json:"kind"`
	ExportFilename   string        `yaml:"export_filename" json:"exportFilename"`
	DefaultSortKey   string        `yaml:"default_sort_key" json:"defaultSortKey,omitempty"`
	DefaultDirection SortDirection `yaml:"default_direction" json:"defaultDirection,omitempty"`
}

// Validate ensures the panel spec is usable
func (p *PanelSpec) Validate() error {
	if p.ID == "" {
		return errors.New("panel id cannot be empty")
	}
	if p.Category == "" {
		return errors.New("panel category cannot be empty")
	}
	if p.Kind != PanelKindTable && p.Kind != PanelKindChart && p.Kind != PanelKindCards {
		return errors.New("panel kind must be table, chart, or cards")
	}
	if p.ExportFilename != "" && !strings.HasSuffix(p.ExportFilename, ".csv") {
		return errors.New("panel export filename must end in .csv")
	}
	switch p.DefaultDirection {
	case "", SortAscending, SortDescending:
	default:
		return errors.New("panel default direction must be asc or desc")
	}
	return nil
}
