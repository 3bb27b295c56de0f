package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/jwt"
	pb "attendance-backend/proto"
	"attendance-backend/service"
)

type directoryHandler struct {
	guard
	directory *service.Directory

	pb.UnimplementedDirectoryServer
}

func (h *directoryHandler) GetUser(ctx context.Context, req *pb.GetUserRequest) (*pb.User, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	id := req.Id
	if id == "" {
		id = claims.UserID
	}
	if claims.Role == entity.RoleStudent && id != claims.UserID {
		return nil, errs.ErrPermissionDenied
	}

	u, err := h.directory.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUser(u), nil
}

func (h *directoryHandler) ListUsers(ctx context.Context, req *pb.ListUsersRequest) (*pb.ListUsersResponse, error) {
	if _, err := requireRole(ctx, entity.RoleAdmin, entity.RoleTeacher); err != nil {
		return nil, err
	}

	users, err := h.directory.ListAll(ctx, entity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	return &pb.ListUsersResponse{Users: toUsers(users)}, nil
}

func (h *directoryHandler) ListStudentsForTeacher(ctx context.Context, req *pb.ListStudentsRequest) (*pb.ListUsersResponse, error) {
	claims, err := requireRole(ctx, entity.RoleAdmin, entity.RoleTeacher)
	if err != nil {
		return nil, err
	}

	teacherID, err := selfOrAdmin(claims, req.TeacherId)
	if err != nil {
		return nil, err
	}

	users, err := h.directory.ListStudentsForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return &pb.ListUsersResponse{Users: toUsers(users)}, nil
}

func (h *directoryHandler) UpdateProfile(ctx context.Context, req *pb.UpdateProfileRequest) (*emptypb.Empty, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	id, err := selfOrAdmin(claims, req.Id)
	if err != nil {
		return nil, err
	}

	err = h.directory.UpdateProfile(ctx, id, service.ProfileUpdate{
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (h *directoryHandler) AssignTeacher(ctx context.Context, req *pb.AssignTeacherRequest) (*emptypb.Empty, error) {
	claims, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.directory.AssignTeacher(ctx, req.StudentId, req.TeacherId); err != nil {
		return nil, err
	}
	requestLogger(claims).Info("teacher assigned")
	return &emptypb.Empty{}, nil
}

func (h *directoryHandler) CredentialEvents(ctx context.Context, req *pb.GetUserRequest) (*pb.CredentialEventsResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	list, err := h.directory.CredentialEvents(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &pb.CredentialEventsResponse{Events: toCredentialEvents(list)}, nil
}

func NewDirectoryHandler(tokens *jwt.Issuer, directory *service.Directory) *directoryHandler {
	return &directoryHandler{
		guard:     newGuard(tokens),
		directory: directory,
	}
}
