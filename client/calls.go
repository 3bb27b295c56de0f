package client

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"

	pb "attendance-backend/proto"
)

func (c *Client) GetUser(ctx context.Context, id string) (*pb.User, error) {
	return call(c, ctx, func(ctx context.Context) (*pb.User, error) {
		return c.directory.GetUser(ctx, &pb.GetUserRequest{Id: id})
	})
}

func (c *Client) ListUsers(ctx context.Context, role string) ([]*pb.User, error) {
	res, err := call(c, ctx, func(ctx context.Context) (*pb.ListUsersResponse, error) {
		return c.directory.ListUsers(ctx, &pb.ListUsersRequest{Role: role})
	})
	if err != nil {
		return nil, err
	}
	return res.Users, nil
}

func (c *Client) ListStudentsForTeacher(ctx context.Context, teacherID string) ([]*pb.User, error) {
	res, err := call(c, ctx, func(ctx context.Context) (*pb.ListUsersResponse, error) {
		return c.directory.ListStudentsForTeacher(ctx, &pb.ListStudentsRequest{TeacherId: teacherID})
	})
	if err != nil {
		return nil, err
	}
	return res.Users, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *pb.UpdateProfileRequest) error {
	_, err := call(c, ctx, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.directory.UpdateProfile(ctx, req)
	})
	return err
}

func (c *Client) CreateUser(ctx context.Context, req *pb.CreateUserRequest) (*pb.CreateUserResponse, error) {
	return call(c, ctx, func(ctx context.Context) (*pb.CreateUserResponse, error) {
		return c.functions.CreateUser(ctx, req)
	})
}

func (c *Client) DeleteUser(ctx context.Context, userID string) (*pb.DeleteUserResponse, error) {
	return call(c, ctx, func(ctx context.Context) (*pb.DeleteUserResponse, error) {
		return c.functions.DeleteUser(ctx, &pb.DeleteUserRequest{UserId: userID})
	})
}

func (c *Client) MarkAttendance(ctx context.Context, studentID, status, notes string) (*pb.AttendanceRecord, error) {
	return call(c, ctx, func(ctx context.Context) (*pb.AttendanceRecord, error) {
		return c.attendance.Mark(ctx, &pb.MarkAttendanceRequest{StudentId: studentID, Status: status, Notes: notes})
	})
}

func (c *Client) ListAttendance(ctx context.Context, studentID, startDate, endDate string) ([]*pb.AttendanceRecord, error) {
	res, err := call(c, ctx, func(ctx context.Context) (*pb.ListAttendanceResponse, error) {
		return c.attendance.List(ctx, &pb.ListAttendanceRequest{StudentId: studentID, StartDate: startDate, EndDate: endDate})
	})
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

func (c *Client) AttendanceStats(ctx context.Context, studentID, startDate, endDate string) (*pb.StatsResponse, error) {
	return call(c, ctx, func(ctx context.Context) (*pb.StatsResponse, error) {
		return c.attendance.Stats(ctx, &pb.ListAttendanceRequest{StudentId: studentID, StartDate: startDate, EndDate: endDate})
	})
}

func (c *Client) Notifications(ctx context.Context, studentID string) ([]*pb.Notification, error) {
	res, err := call(c, ctx, func(ctx context.Context) (*pb.ListNotificationsResponse, error) {
		return c.notifications.List(ctx, &pb.ListNotificationsRequest{StudentId: studentID})
	})
	if err != nil {
		return nil, err
	}
	return res.Notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*pb.Notification, error) {
	return call(c, ctx, func(ctx context.Context) (*pb.Notification, error) {
		return c.notifications.MarkRead(ctx, &pb.MarkReadRequest{Id: id})
	})
}

func (c *Client) Departments(ctx context.Context) ([]*pb.Department, error) {
	res, err := call(c, ctx, func(ctx context.Context) (*pb.ListDepartmentsResponse, error) {
		return c.departments.List(ctx, &emptypb.Empty{})
	})
	if err != nil {
		return nil, err
	}
	return res.Departments, nil
}

func (c *Client) CreateDepartment(ctx context.Context, req *pb.CreateDepartmentRequest) (string, error) {
	res, err := call(c, ctx, func(ctx context.Context) (*pb.CreateDepartmentResponse, error) {
		return c.departments.Create(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return res.Id, nil
}

func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	_, err := call(c, ctx, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.departments.Delete(ctx, &pb.DeleteDepartmentRequest{Id: id})
	})
	return err
}
