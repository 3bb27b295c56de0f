package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const AttendanceService = "attendance.Attendance"

type AttendanceServer interface {
	Mark(context.Context, *MarkAttendanceRequest) (*AttendanceRecord, error)
	List(context.Context, *ListAttendanceRequest) (*ListAttendanceResponse, error)
	ListForTeacher(context.Context, *ListForTeacherRequest) (*ListAttendanceResponse, error)
	Stats(context.Context, *ListAttendanceRequest) (*StatsResponse, error)
	DailySummary(context.Context, *DayRequest) (*DailySummaryResponse, error)
	AbsentOn(context.Context, *DayRequest) (*ListAttendanceResponse, error)
	Subscribe(*SubscribeRequest, Sender[ListAttendanceResponse]) error
}

type UnimplementedAttendanceServer struct{}

func (UnimplementedAttendanceServer) Mark(context.Context, *MarkAttendanceRequest) (*AttendanceRecord, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Mark not implemented")
}

func (UnimplementedAttendanceServer) List(context.Context, *ListAttendanceRequest) (*ListAttendanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method List not implemented")
}

func (UnimplementedAttendanceServer) ListForTeacher(context.Context, *ListForTeacherRequest) (*ListAttendanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListForTeacher not implemented")
}

func (UnimplementedAttendanceServer) Stats(context.Context, *ListAttendanceRequest) (*StatsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Stats not implemented")
}

func (UnimplementedAttendanceServer) DailySummary(context.Context, *DayRequest) (*DailySummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DailySummary not implemented")
}

func (UnimplementedAttendanceServer) AbsentOn(context.Context, *DayRequest) (*ListAttendanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AbsentOn not implemented")
}

func (UnimplementedAttendanceServer) Subscribe(*SubscribeRequest, Sender[ListAttendanceResponse]) error {
	return status.Errorf(codes.Unimplemented, "method Subscribe not implemented")
}

var Attendance_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AttendanceService,
	HandlerType: (*AttendanceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AttendanceService, "Mark", AttendanceServer.Mark),
		unary(AttendanceService, "List", AttendanceServer.List),
		unary(AttendanceService, "ListForTeacher", AttendanceServer.ListForTeacher),
		unary(AttendanceService, "Stats", AttendanceServer.Stats),
		unary(AttendanceService, "DailySummary", AttendanceServer.DailySummary),
		unary(AttendanceService, "AbsentOn", AttendanceServer.AbsentOn),
	},
	Streams: []grpc.StreamDesc{
		serverStream("Subscribe", AttendanceServer.Subscribe),
	},
}

func RegisterAttendanceServer(s grpc.ServiceRegistrar, srv AttendanceServer) {
	s.RegisterService(&Attendance_ServiceDesc, srv)
}

type AttendanceClient interface {
	Mark(ctx context.Context, in *MarkAttendanceRequest, opts ...grpc.CallOption) (*AttendanceRecord, error)
	List(ctx context.Context, in *ListAttendanceRequest, opts ...grpc.CallOption) (*ListAttendanceResponse, error)
	ListForTeacher(ctx context.Context, in *ListForTeacherRequest, opts ...grpc.CallOption) (*ListAttendanceResponse, error)
	Stats(ctx context.Context, in *ListAttendanceRequest, opts ...grpc.CallOption) (*StatsResponse, error)
	DailySummary(ctx context.Context, in *DayRequest, opts ...grpc.CallOption) (*DailySummaryResponse, error)
	AbsentOn(ctx context.Context, in *DayRequest, opts ...grpc.CallOption) (*ListAttendanceResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (Receiver[ListAttendanceResponse], error)
}

type attendanceClient struct {
	cc grpc.ClientConnInterface
}

func NewAttendanceClient(cc grpc.ClientConnInterface) AttendanceClient {
	return &attendanceClient{cc}
}

func (c *attendanceClient) Mark(ctx context.Context, in *MarkAttendanceRequest, opts ...grpc.CallOption) (*AttendanceRecord, error) {
	return invoke[AttendanceRecord](ctx, c.cc, fullMethod(AttendanceService, "Mark"), in, opts)
}

func (c *attendanceClient) List(ctx context.Context, in *ListAttendanceRequest, opts ...grpc.CallOption) (*ListAttendanceResponse, error) {
	return invoke[ListAttendanceResponse](ctx, c.cc, fullMethod(AttendanceService, "List"), in, opts)
}

func (c *attendanceClient) ListForTeacher(ctx context.Context, in *ListForTeacherRequest, opts ...grpc.CallOption) (*ListAttendanceResponse, error) {
	return invoke[ListAttendanceResponse](ctx, c.cc, fullMethod(AttendanceService, "ListForTeacher"), in, opts)
}

func (c *attendanceClient) Stats(ctx context.Context, in *ListAttendanceRequest, opts ...grpc.CallOption) (*StatsResponse, error) {
	return invoke[StatsResponse](ctx, c.cc, fullMethod(AttendanceService, "Stats"), in, opts)
}

func (c *attendanceClient) DailySummary(ctx context.Context, in *DayRequest, opts ...grpc.CallOption) (*DailySummaryResponse, error) {
	return invoke[DailySummaryResponse](ctx, c.cc, fullMethod(AttendanceService, "DailySummary"), in, opts)
}

func (c *attendanceClient) AbsentOn(ctx context.Context, in *DayRequest, opts ...grpc.CallOption) (*ListAttendanceResponse, error) {
	return invoke[ListAttendanceResponse](ctx, c.cc, fullMethod(AttendanceService, "AbsentOn"), in, opts)
}

func (c *attendanceClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (Receiver[ListAttendanceResponse], error) {
	return openStream[ListAttendanceResponse](ctx, c.cc, &Attendance_ServiceDesc.Streams[0], fullMethod(AttendanceService, "Subscribe"), in, opts)
}
