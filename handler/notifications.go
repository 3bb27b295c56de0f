package handler

import (
	"context"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/jwt"
	pb "attendance-backend/proto"
	"attendance-backend/service"
)

type notificationsHandler struct {
	guard
	fanOut *service.FanOut

	pb.UnimplementedNotificationsServer
}

func (h *notificationsHandler) List(ctx context.Context, req *pb.ListNotificationsRequest) (*pb.ListNotificationsResponse, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	studentID, err := selfOrAdmin(claims, req.StudentId)
	if err != nil {
		return nil, err
	}

	list, err := h.fanOut.List(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &pb.ListNotificationsResponse{Notifications: toNotifications(list)}, nil
}

func (h *notificationsHandler) MarkRead(ctx context.Context, req *pb.MarkReadRequest) (*pb.Notification, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	n, err := h.fanOut.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if n.StudentID != claims.UserID && claims.Role != entity.RoleAdmin {
		return nil, errs.ErrPermissionDenied
	}

	n, err = h.fanOut.MarkRead(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return toNotification(n), nil
}

func (h *notificationsHandler) Send(ctx context.Context, req *pb.SendNotificationRequest) (*pb.Notification, error) {
	claims, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	n, err := h.fanOut.Send(ctx, req.StudentId, req.Message, claims.UserID)
	if err != nil {
		return nil, err
	}
	return toNotification(n), nil
}

func (h *notificationsHandler) Subscribe(req *pb.SubscribeRequest, stream pb.Sender[pb.ListNotificationsResponse]) error {
	ctx := stream.Context()
	claims, err := caller(ctx)
	if err != nil {
		return err
	}

	studentID, err := selfOrAdmin(claims, req.StudentId)
	if err != nil {
		return err
	}

	sub, err := h.fanOut.Subscribe(ctx, studentID)
	if err != nil {
		return err
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case list, ok := <-sub.C:
			if !ok {
				return nil
			}
			if err := stream.Send(&pb.ListNotificationsResponse{Notifications: toNotifications(list)}); err != nil {
				return err
			}
		}
	}
}

func NewNotificationsHandler(tokens *jwt.Issuer, fanOut *service.FanOut) *notificationsHandler {
	return &notificationsHandler{
		guard:  newGuard(tokens),
		fanOut: fanOut,
	}
}
