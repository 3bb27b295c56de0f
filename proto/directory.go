package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const DirectoryService = "attendance.Directory"

type DirectoryServer interface {
	GetUser(context.Context, *GetUserRequest) (*User, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	ListStudentsForTeacher(context.Context, *ListStudentsRequest) (*ListUsersResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*emptypb.Empty, error)
	AssignTeacher(context.Context, *AssignTeacherRequest) (*emptypb.Empty, error)
	CredentialEvents(context.Context, *GetUserRequest) (*CredentialEventsResponse, error)
}

type UnimplementedDirectoryServer struct{}

func (UnimplementedDirectoryServer) GetUser(context.Context, *GetUserRequest) (*User, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetUser not implemented")
}

func (UnimplementedDirectoryServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListUsers not implemented")
}

func (UnimplementedDirectoryServer) ListStudentsForTeacher(context.Context, *ListStudentsRequest) (*ListUsersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListStudentsForTeacher not implemented")
}

func (UnimplementedDirectoryServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateProfile not implemented")
}

func (UnimplementedDirectoryServer) AssignTeacher(context.Context, *AssignTeacherRequest) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssignTeacher not implemented")
}

func (UnimplementedDirectoryServer) CredentialEvents(context.Context, *GetUserRequest) (*CredentialEventsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CredentialEvents not implemented")
}

var Directory_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DirectoryService,
	HandlerType: (*DirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DirectoryService, "GetUser", DirectoryServer.GetUser),
		unary(DirectoryService, "ListUsers", DirectoryServer.ListUsers),
		unary(DirectoryService, "ListStudentsForTeacher", DirectoryServer.ListStudentsForTeacher),
		unary(DirectoryService, "UpdateProfile", DirectoryServer.UpdateProfile),
		unary(DirectoryService, "AssignTeacher", DirectoryServer.AssignTeacher),
		unary(DirectoryService, "CredentialEvents", DirectoryServer.CredentialEvents),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterDirectoryServer(s grpc.ServiceRegistrar, srv DirectoryServer) {
	s.RegisterService(&Directory_ServiceDesc, srv)
}

type DirectoryClient interface {
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*User, error)
	ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error)
	ListStudentsForTeacher(ctx context.Context, in *ListStudentsRequest, opts ...grpc.CallOption) (*ListUsersResponse, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	AssignTeacher(ctx context.Context, in *AssignTeacherRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	CredentialEvents(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*CredentialEventsResponse, error)
}

type directoryClient struct {
	cc grpc.ClientConnInterface
}

func NewDirectoryClient(cc grpc.ClientConnInterface) DirectoryClient {
	return &directoryClient{cc}
}

func (c *directoryClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, fullMethod(DirectoryService, "GetUser"), in, opts)
}

func (c *directoryClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, fullMethod(DirectoryService, "ListUsers"), in, opts)
}

func (c *directoryClient) ListStudentsForTeacher(ctx context.Context, in *ListStudentsRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, fullMethod(DirectoryService, "ListStudentsForTeacher"), in, opts)
}

func (c *directoryClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, fullMethod(DirectoryService, "UpdateProfile"), in, opts)
}

func (c *directoryClient) AssignTeacher(ctx context.Context, in *AssignTeacherRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, fullMethod(DirectoryService, "AssignTeacher"), in, opts)
}

func (c *directoryClient) CredentialEvents(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*CredentialEventsResponse, error) {
	return invoke[CredentialEventsResponse](ctx, c.cc, fullMethod(DirectoryService, "CredentialEvents"), in, opts)
}
