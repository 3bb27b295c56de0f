package handler

import (
	"context"

	"attendance-backend/entity"
	"attendance-backend/jwt"
	pb "attendance-backend/proto"
	"attendance-backend/service"
)

type functionsHandler struct {
	guard
	functions *service.Functions

	pb.UnimplementedFunctionsServer
}

func (h *functionsHandler) CreateUser(ctx context.Context, req *pb.CreateUserRequest) (*pb.CreateUserResponse, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.functions.CreateUser(ctx, claims.UserID, service.CreateUserInput{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Role:            entity.Role(req.Role),
		AssignedTeacher: req.AssignedTeacher,
	})
	if err != nil {
		return nil, err
	}

	return &pb.CreateUserResponse{Success: true, Uid: res.ID, Message: res.Message}, nil
}

func (h *functionsHandler) DeleteUser(ctx context.Context, req *pb.DeleteUserRequest) (*pb.DeleteUserResponse, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.functions.DeleteUser(ctx, claims.UserID, req.UserId)
	if err != nil {
		return nil, err
	}

	return &pb.DeleteUserResponse{Success: true, Message: res.Message}, nil
}

func NewFunctionsHandler(tokens *jwt.Issuer, functions *service.Functions) *functionsHandler {
	return &functionsHandler{
		guard:     newGuard(tokens),
		functions: functions,
	}
}
