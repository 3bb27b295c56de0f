package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const DepartmentsService = "attendance.Departments"

type DepartmentsServer interface {
	Create(context.Context, *CreateDepartmentRequest) (*CreateDepartmentResponse, error)
	Update(context.Context, *UpdateDepartmentRequest) (*emptypb.Empty, error)
	Delete(context.Context, *DeleteDepartmentRequest) (*emptypb.Empty, error)
	List(context.Context, *emptypb.Empty) (*ListDepartmentsResponse, error)
}

type UnimplementedDepartmentsServer struct{}

func (UnimplementedDepartmentsServer) Create(context.Context, *CreateDepartmentRequest) (*CreateDepartmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Create not implemented")
}

func (UnimplementedDepartmentsServer) Update(context.Context, *UpdateDepartmentRequest) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Update not implemented")
}

func (UnimplementedDepartmentsServer) Delete(context.Context, *DeleteDepartmentRequest) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Delete not implemented")
}

func (UnimplementedDepartmentsServer) List(context.Context, *emptypb.Empty) (*ListDepartmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method List not implemented")
}

var Departments_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DepartmentsService,
	HandlerType: (*DepartmentsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DepartmentsService, "Create", DepartmentsServer.Create),
		unary(DepartmentsService, "Update", DepartmentsServer.Update),
		unary(DepartmentsService, "Delete", DepartmentsServer.Delete),
		unary(DepartmentsService, "List", DepartmentsServer.List),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterDepartmentsServer(s grpc.ServiceRegistrar, srv DepartmentsServer) {
	s.RegisterService(&Departments_ServiceDesc, srv)
}

type DepartmentsClient interface {
	Create(ctx context.Context, in *CreateDepartmentRequest, opts ...grpc.CallOption) (*CreateDepartmentResponse, error)
	Update(ctx context.Context, in *UpdateDepartmentRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Delete(ctx context.Context, in *DeleteDepartmentRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListDepartmentsResponse, error)
}

type departmentsClient struct {
	cc grpc.ClientConnInterface
}

func NewDepartmentsClient(cc grpc.ClientConnInterface) DepartmentsClient {
	return &departmentsClient{cc}
}

func (c *departmentsClient) Create(ctx context.Context, in *CreateDepartmentRequest, opts ...grpc.CallOption) (*CreateDepartmentResponse, error) {
	return invoke[CreateDepartmentResponse](ctx, c.cc, fullMethod(DepartmentsService, "Create"), in, opts)
}

func (c *departmentsClient) Update(ctx context.Context, in *UpdateDepartmentRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, fullMethod(DepartmentsService, "Update"), in, opts)
}

func (c *departmentsClient) Delete(ctx context.Context, in *DeleteDepartmentRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, fullMethod(DepartmentsService, "Delete"), in, opts)
}

func (c *departmentsClient) List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListDepartmentsResponse, error) {
	return invoke[ListDepartmentsResponse](ctx, c.cc, fullMethod(DepartmentsService, "List"), in, opts)
}
