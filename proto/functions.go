package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const FunctionsService = "attendance.Functions"

type FunctionsServer interface {
	CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error)
}

type UnimplementedFunctionsServer struct{}

func (UnimplementedFunctionsServer) CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateUser not implemented")
}

func (UnimplementedFunctionsServer) DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteUser not implemented")
}

var Functions_ServiceDesc = grpc.ServiceDesc{
	ServiceName: FunctionsService,
	HandlerType: (*FunctionsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(FunctionsService, "CreateUser", FunctionsServer.CreateUser),
		unary(FunctionsService, "DeleteUser", FunctionsServer.DeleteUser),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterFunctionsServer(s grpc.ServiceRegistrar, srv FunctionsServer) {
	s.RegisterService(&Functions_ServiceDesc, srv)
}

type FunctionsClient interface {
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error)
	DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error)
}

type functionsClient struct {
	cc grpc.ClientConnInterface
}

func NewFunctionsClient(cc grpc.ClientConnInterface) FunctionsClient {
	return &functionsClient{cc}
}

func (c *functionsClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error) {
	return invoke[CreateUserResponse](ctx, c.cc, fullMethod(FunctionsService, "CreateUser"), in, opts)
}

func (c *functionsClient) DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error) {
	return invoke[DeleteUserResponse](ctx, c.cc, fullMethod(FunctionsService, "DeleteUser"), in, opts)
}
