package handler

import (
	"context"

	"go.uber.org/zap"

	"attendance-backend/entity"
	"attendance-backend/jwt"
	pb "attendance-backend/proto"
	"attendance-backend/service"
)

type attendanceHandler struct {
	guard
	recorder *service.Recorder

	pb.UnimplementedAttendanceServer
}

func (h *attendanceHandler) Mark(ctx context.Context, req *pb.MarkAttendanceRequest) (*pb.AttendanceRecord, error) {
	claims, err := requireRole(ctx, entity.RoleAdmin, entity.RoleTeacher)
	if err != nil {
		return nil, err
	}

	rec, err := h.recorder.MarkAttendance(ctx, service.MarkInput{
		StudentID: req.StudentId,
		Status:    entity.Status(req.Status),
		MarkedBy:  claims.UserID,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, err
	}

	requestLogger(claims).Debug("attendance marked", zap.String("recordID", rec.ID), zap.String("status", req.Status))
	return toRecord(rec), nil
}

func (h *attendanceHandler) list(ctx context.Context, req *pb.ListAttendanceRequest) ([]*entity.AttendanceRecord, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	studentID, err := studentScope(claims, req.StudentId)
	if err != nil {
		return nil, err
	}

	return h.recorder.ListAttendance(ctx, studentID, service.DateRange{From: req.StartDate, To: req.EndDate})
}

func (h *attendanceHandler) List(ctx context.Context, req *pb.ListAttendanceRequest) (*pb.ListAttendanceResponse, error) {
	records, err := h.list(ctx, req)
	if err != nil {
		return nil, err
	}
	return &pb.ListAttendanceResponse{Records: toRecords(records)}, nil
}

func (h *attendanceHandler) ListForTeacher(ctx context.Context, req *pb.ListForTeacherRequest) (*pb.ListAttendanceResponse, error) {
	claims, err := requireRole(ctx, entity.RoleAdmin, entity.RoleTeacher)
	if err != nil {
		return nil, err
	}

	teacherID, err := selfOrAdmin(claims, req.TeacherId)
	if err != nil {
		return nil, err
	}

	records, err := h.recorder.ListForTeacher(ctx, teacherID, service.DateRange{From: req.StartDate, To: req.EndDate})
	if err != nil {
		return nil, err
	}
	return &pb.ListAttendanceResponse{Records: toRecords(records)}, nil
}

func (h *attendanceHandler) Stats(ctx context.Context, req *pb.ListAttendanceRequest) (*pb.StatsResponse, error) {
	records, err := h.list(ctx, req)
	if err != nil {
		return nil, err
	}

	s := service.ComputeStats(records)
	return &pb.StatsResponse{
		Total:          int32(s.Total),
		Present:        int32(s.Present),
		Absent:         int32(s.Absent),
		Late:           int32(s.Late),
		PresentPercent: int32(s.PresentPercent),
	}, nil
}

func (h *attendanceHandler) DailySummary(ctx context.Context, req *pb.DayRequest) (*pb.DailySummaryResponse, error) {
	if _, err := requireRole(ctx, entity.RoleAdmin, entity.RoleTeacher); err != nil {
		return nil, err
	}

	s, err := h.recorder.DailySummary(ctx, req.Date, req.TeacherId)
	if err != nil {
		return nil, err
	}
	return &pb.DailySummaryResponse{
		Date:     s.Date,
		Total:    int32(s.Total),
		Present:  int32(s.Present),
		Absent:   int32(s.Absent),
		Late:     int32(s.Late),
		Unmarked: int32(s.Unmarked),
	}, nil
}

func (h *attendanceHandler) AbsentOn(ctx context.Context, req *pb.DayRequest) (*pb.ListAttendanceResponse, error) {
	if _, err := requireRole(ctx, entity.RoleAdmin, entity.RoleTeacher); err != nil {
		return nil, err
	}

	records, err := h.recorder.AbsentOn(ctx, req.Date, req.TeacherId)
	if err != nil {
		return nil, err
	}
	return &pb.ListAttendanceResponse{Records: toRecords(records)}, nil
}

func (h *attendanceHandler) Subscribe(req *pb.SubscribeRequest, stream pb.Sender[pb.ListAttendanceResponse]) error {
	ctx := stream.Context()
	claims, err := caller(ctx)
	if err != nil {
		return err
	}

	studentID, err := studentScope(claims, req.StudentId)
	if err != nil {
		return err
	}

	sub, err := h.recorder.Subscribe(ctx, studentID)
	if err != nil {
		return err
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case records, ok := <-sub.C:
			if !ok {
				return nil
			}
			if err := stream.Send(&pb.ListAttendanceResponse{Records: toRecords(records)}); err != nil {
				return err
			}
		}
	}
}

func NewAttendanceHandler(tokens *jwt.Issuer, recorder *service.Recorder) *attendanceHandler {
	return &attendanceHandler{
		guard:    newGuard(tokens),
		recorder: recorder,
	}
}
