package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the dashboard service
const ServiceName = "partsdash.v1.DashboardService"

// Method names of the dashboard service
const (
	MethodListPanels        = "ListPanels"
	MethodQueryPanel        = "QueryPanel"
	MethodGetSalesTrend     = "GetSalesTrend"
	MethodGetFinanceSummary = "GetFinanceSummary"
	MethodExportPanel       = "ExportPanel"
	MethodRecordSale        = "RecordSale"
	MethodRecordRepairOrder = "RecordRepairOrder"
	MethodRecordShipment    = "RecordShipment"
)

// DashboardServiceServer is the server API for the dashboard service.
// Requests and responses are free-form structs; the field names each method
// reads and writes are documented on Server.
type DashboardServiceServer interface {
	ListPanels(context.Context, *structpb.Struct) (*structpb.Struct, error)
	QueryPanel(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSalesTrend(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetFinanceSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportPanel(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordSale(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordRepairOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordShipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// DashboardServiceDesc describes the dashboard service for grpc.Server.RegisterService
var DashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodListPanels, Handler: unaryHandler(MethodListPanels, DashboardServiceServer.ListPanels)},
		{MethodName: MethodQueryPanel, Handler: unaryHandler(MethodQueryPanel, DashboardServiceServer.QueryPanel)},
		{MethodName: MethodGetSalesTrend, Handler: unaryHandler(MethodGetSalesTrend, DashboardServiceServer.GetSalesTrend)},
		{MethodName: MethodGetFinanceSummary, Handler: unaryHandler(MethodGetFinanceSummary, DashboardServiceServer.GetFinanceSummary)},
		{MethodName: MethodExportPanel, Handler: unaryHandler(MethodExportPanel, DashboardServiceServer.ExportPanel)},
		{MethodName: MethodRecordSale, Handler: unaryHandler(MethodRecordSale, DashboardServiceServer.RecordSale)},
		{MethodName: MethodRecordRepairOrder, Handler: unaryHandler(MethodRecordRepairOrder, DashboardServiceServer.RecordRepairOrder)},
		{MethodName: MethodRecordShipment, Handler: unaryHandler(MethodRecordShipment, DashboardServiceServer.RecordShipment)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "partsdash/v1/dashboard.proto",
}

// RegisterDashboardServiceServer registers srv on s
func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardServiceDesc, srv)
}

type unaryMethod func(DashboardServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a method expression to the grpc.MethodDesc handler shape
func unaryHandler(name string, method unaryMethod) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + name
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(DashboardServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return method(srv.(DashboardServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DashboardServiceClient is the client API for the dashboard service
type DashboardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDashboardServiceClient creates a client on an established connection
func NewDashboardServiceClient(cc grpc.ClientConnInterface) *DashboardServiceClient {
	return &DashboardServiceClient{cc: cc}
}

// Call invokes one dashboard method by name
func (c *DashboardServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
