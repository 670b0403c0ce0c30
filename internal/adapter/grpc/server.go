package grpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/account"
	"github.com/simaogato/partsdash-backend/internal/usecase/dashboard"
	"github.com/simaogato/partsdash-backend/internal/usecase/formatter"
	"github.com/simaogato/partsdash-backend/internal/usecase/rollup"
	"github.com/simaogato/partsdash-backend/internal/usecase/sales"
	"github.com/simaogato/partsdash-backend/internal/usecase/table"
)

// Server implements the DashboardService gRPC server.
//
// Query-style methods accept the string fields from, to (YYYY-MM-DD), sort,
// dir, q, period, the list field fields and the number field min_days.
type Server struct {
	DashboardService *dashboard.DashboardService
	SalesService     *sales.SalesService

	defaultMinDays int
}

// NewServer creates a new gRPC server instance
func NewServer(
	dashboardService *dashboard.DashboardService,
	salesService *sales.SalesService,
	defaultMinDays int,
) *Server {
	return &Server{
		DashboardService: dashboardService,
		SalesService:     salesService,
		defaultMinDays:   defaultMinDays,
	}
}

// ListPanels handles the ListPanels RPC.
// Optional field: category. Response: {panels: [...]}
func (s *Server) ListPanels(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	panels := s.DashboardService.Panels(stringField(req, "category"))
	return response(map[string]any{"panels": panels})
}

// QueryPanel handles the QueryPanel RPC.
// Required field: panel. Response: {panel, rows: [...]}
func (s *Server) QueryPanel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	panelID := stringField(req, "panel")
	if panelID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "panel is required")
	}

	panelReq, err := s.panelRequest(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.DashboardService.Query(ctx, panelID, panelReq)
	if err != nil {
		return nil, mapError(err)
	}

	return response(map[string]any{"panel": panelID, "rows": rows})
}

// GetSalesTrend handles the GetSalesTrend RPC.
// Response: {period, points: [{label, date, value}]}
func (s *Server) GetSalesTrend(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	panelReq, err := s.panelRequest(req)
	if err != nil {
		return nil, err
	}

	points, err := s.DashboardService.SalesTrend(ctx, panelReq.Range, panelReq.Period)
	if err != nil {
		return nil, mapError(err)
	}

	period := panelReq.Period
	if period == "" {
		period = domain.PeriodDaily
	}
	return response(map[string]any{"period": period, "points": points})
}

// GetFinanceSummary handles the GetFinanceSummary RPC.
// Required fields: from, to. Response: {cards: [{title, value, change}]}
func (s *Server) GetFinanceSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	panelReq, err := s.panelRequest(req)
	if err != nil {
		return nil, err
	}

	cards, err := s.DashboardService.FinanceSummary(ctx, panelReq.Range)
	if err != nil {
		return nil, mapError(err)
	}

	return response(map[string]any{"cards": cards})
}

// ExportPanel handles the ExportPanel RPC.
// Response: {filename, content_type, body} where body is base64 encoded CSV.
func (s *Server) ExportPanel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	panelID := stringField(req, "panel")
	if panelID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "panel is required")
	}

	panelReq, err := s.panelRequest(req)
	if err != nil {
		return nil, err
	}

	doc, err := s.DashboardService.Export(ctx, panelID, panelReq)
	if err != nil {
		return nil, mapError(err)
	}

	return response(map[string]any{
		"filename":     doc.Filename,
		"content_type": doc.ContentType,
		"body":         base64.StdEncoding.EncodeToString(doc.Body),
	})
}

// RecordSale handles the RecordSale RPC.
// Fields: date, customer_name, region, revenue (decimal string), orders, sessions.
// Response: {id, date}
func (s *Server) RecordSale(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	date, err := time.Parse(formatter.DateLayout, stringField(req, "date"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid date format: %v", err)
	}

	revenue, err := decimal.NewFromString(stringField(req, "revenue"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid revenue format: %v", err)
	}

	orders, err := intField(req, "orders")
	if err != nil {
		return nil, err
	}
	sessions, err := intField(req, "sessions")
	if err != nil {
		return nil, err
	}

	input := sales.RecordSaleInput{
		Date:         date,
		CustomerName: stringField(req, "customer_name"),
		Region:       stringField(req, "region"),
		Revenue:      revenue,
	}
	if orders != nil {
		input.Orders = *orders
	}
	if sessions != nil {
		input.Sessions = *sessions
	}

	row, err := s.SalesService.RecordSale(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return response(map[string]any{
		"id":   row.ID.String(),
		"date": formatter.Date(row.Date),
	})
}

// RecordRepairOrder handles the RecordRepairOrder RPC.
// Fields: shop_name, opened_on (YYYY-MM-DD), total (decimal string).
// Response: {id, opened_on}
func (s *Server) RecordRepairOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	openedOn, err := time.Parse(formatter.DateLayout, stringField(req, "opened_on"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid opened_on format: %v", err)
	}

	total, err := decimal.NewFromString(stringField(req, "total"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid total format: %v", err)
	}

	ro, err := s.SalesService.RecordRepairOrder(ctx, sales.RecordRepairOrderInput{
		ShopName: stringField(req, "shop_name"),
		OpenedOn: openedOn,
		Total:    total,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return response(map[string]any{
		"id":        ro.ID.String(),
		"opened_on": formatter.Date(ro.OpenedOn),
	})
}

// RecordShipment handles the RecordShipment RPC.
// Fields: order_number, customer_name, status (defaults to PACKING),
// packing_started_at (RFC 3339), value (decimal string).
// Response: {id, status}
func (s *Server) RecordShipment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	startedAt, err := time.Parse(time.RFC3339, stringField(req, "packing_started_at"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid packing_started_at format: %v", err)
	}

	value, err := decimal.NewFromString(stringField(req, "value"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid value format: %v", err)
	}

	shipment, err := s.SalesService.RecordShipment(ctx, sales.RecordShipmentInput{
		OrderNumber:      stringField(req, "order_number"),
		CustomerName:     stringField(req, "customer_name"),
		Status:           domain.ShipmentStatus(strings.ToUpper(stringField(req, "status"))),
		PackingStartedAt: startedAt,
		Value:            value,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return response(map[string]any{
		"id":     shipment.ID.String(),
		"status": string(shipment.Status),
	})
}

// panelRequest parses the common query fields of a request
func (s *Server) panelRequest(req *structpb.Struct) (dashboard.PanelRequest, error) {
	minDays, err := intField(req, "min_days")
	if err != nil {
		return dashboard.PanelRequest{}, err
	}

	params := dashboard.QueryParams{
		From:    stringField(req, "from"),
		To:      stringField(req, "to"),
		Sort:    stringField(req, "sort"),
		Dir:     stringField(req, "dir"),
		Query:   rawStringField(req, "q"),
		Fields:  listField(req, "fields"),
		Period:  stringField(req, "period"),
		MinDays: minDays,
	}

	panelReq, err := params.Request(s.defaultMinDays)
	if err != nil {
		return dashboard.PanelRequest{}, status.Errorf(codes.InvalidArgument, "%s", err.Error())
	}
	return panelReq, nil
}

// stringField returns a trimmed string field, or "" when absent or not a string
func stringField(req *structpb.Struct, key string) string {
	return strings.TrimSpace(rawStringField(req, key))
}

// rawStringField returns a string field exactly as sent
func rawStringField(req *structpb.Struct, key string) string {
	if req == nil {
		return ""
	}
	v, ok := req.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

// listField returns a string list field; a plain string is treated as a one-element list
func listField(req *structpb.Struct, key string) []string {
	if req == nil {
		return nil
	}
	v, ok := req.GetFields()[key]
	if !ok {
		return nil
	}
	if s, isString := v.GetKind().(*structpb.Value_StringValue); isString {
		return []string{s.StringValue}
	}
	out := make([]string, 0)
	for _, item := range v.GetListValue().GetValues() {
		if str := item.GetStringValue(); str != "" {
			out = append(out, str)
		}
	}
	return out
}

// intField returns a whole-number field, nil when absent
func intField(req *structpb.Struct, key string) (*int, error) {
	if req == nil {
		return nil, nil
	}
	v, ok := req.GetFields()[key]
	if !ok {
		return nil, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a whole number", key)
	}
	i := int(n.NumberValue)
	return &i, nil
}

// response converts a payload of view-models into a protobuf Struct via their JSON form
func response(payload map[string]any) (*structpb.Struct, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	out, err := structpb.NewStruct(generic)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, dashboard.ErrUnknownPanel), errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, table.ErrUnknownColumn), errors.Is(err, rollup.ErrUnknownPeriod):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		return status.Errorf(codes.Unauthenticated, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	}

	errorMsg := err.Error()

	// Map common validation errors to InvalidArgument
	if strings.Contains(errorMsg, "must") ||
		strings.Contains(errorMsg, "cannot be empty") ||
		strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "needs") ||
		strings.Contains(errorMsg, "does not support") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
