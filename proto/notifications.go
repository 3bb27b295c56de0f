package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const NotificationsService = "attendance.Notifications"

type NotificationsServer interface {
	List(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error)
	MarkRead(context.Context, *MarkReadRequest) (*Notification, error)
	Send(context.Context, *SendNotificationRequest) (*Notification, error)
	Subscribe(*SubscribeRequest, Sender[ListNotificationsResponse]) error
}

type UnimplementedNotificationsServer struct{}

func (UnimplementedNotificationsServer) List(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method List not implemented")
}

func (UnimplementedNotificationsServer) MarkRead(context.Context, *MarkReadRequest) (*Notification, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MarkRead not implemented")
}

func (UnimplementedNotificationsServer) Send(context.Context, *SendNotificationRequest) (*Notification, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Send not implemented")
}

func (UnimplementedNotificationsServer) Subscribe(*SubscribeRequest, Sender[ListNotificationsResponse]) error {
	return status.Errorf(codes.Unimplemented, "method Subscribe not implemented")
}

var Notifications_ServiceDesc = grpc.ServiceDesc{
	ServiceName: NotificationsService,
	HandlerType: (*NotificationsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(NotificationsService, "List", NotificationsServer.List),
		unary(NotificationsService, "MarkRead", NotificationsServer.MarkRead),
		unary(NotificationsService, "Send", NotificationsServer.Send),
	},
	Streams: []grpc.StreamDesc{
		serverStream("Subscribe", NotificationsServer.Subscribe),
	},
}

func RegisterNotificationsServer(s grpc.ServiceRegistrar, srv NotificationsServer) {
	s.RegisterService(&Notifications_ServiceDesc, srv)
}

type NotificationsClient interface {
	List(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (*ListNotificationsResponse, error)
	MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*Notification, error)
	Send(ctx context.Context, in *SendNotificationRequest, opts ...grpc.CallOption) (*Notification, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (Receiver[ListNotificationsResponse], error)
}

type notificationsClient struct {
	cc grpc.ClientConnInterface
}

func NewNotificationsClient(cc grpc.ClientConnInterface) NotificationsClient {
	return &notificationsClient{cc}
}

func (c *notificationsClient) List(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (*ListNotificationsResponse, error) {
	return invoke[ListNotificationsResponse](ctx, c.cc, fullMethod(NotificationsService, "List"), in, opts)
}

func (c *notificationsClient) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*Notification, error) {
	return invoke[Notification](ctx, c.cc, fullMethod(NotificationsService, "MarkRead"), in, opts)
}

func (c *notificationsClient) Send(ctx context.Context, in *SendNotificationRequest, opts ...grpc.CallOption) (*Notification, error) {
	return invoke[Notification](ctx, c.cc, fullMethod(NotificationsService, "Send"), in, opts)
}

func (c *notificationsClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (Receiver[ListNotificationsResponse], error) {
	return openStream[ListNotificationsResponse](ctx, c.cc, &Notifications_ServiceDesc.Streams[0], fullMethod(NotificationsService, "Subscribe"), in, opts)
}
