package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"

	"attendance-backend/jwt"
	pb "attendance-backend/proto"
	"attendance-backend/service"
)

type departmentsHandler struct {
	guard
	departments *service.Departments

	pb.UnimplementedDepartmentsServer
}

func (h *departmentsHandler) Create(ctx context.Context, req *pb.CreateDepartmentRequest) (*pb.CreateDepartmentResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	id, err := h.departments.Create(ctx, service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		TeacherIDs:  req.TeacherIds,
	})
	if err != nil {
		return nil, err
	}
	return &pb.CreateDepartmentResponse{Id: id}, nil
}

func (h *departmentsHandler) Update(ctx context.Context, req *pb.UpdateDepartmentRequest) (*emptypb.Empty, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	err := h.departments.Update(ctx, req.Id, service.DepartmentUpdate{
		Name:        req.Name,
		Description: req.Description,
		TeacherIDs:  req.TeacherIds,
	})
	if err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (h *departmentsHandler) Delete(ctx context.Context, req *pb.DeleteDepartmentRequest) (*emptypb.Empty, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := h.departments.Delete(ctx, req.Id); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (h *departmentsHandler) List(ctx context.Context, _ *emptypb.Empty) (*pb.ListDepartmentsResponse, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}

	list, err := h.departments.List(ctx)
	if err != nil {
		return nil, err
	}
	return &pb.ListDepartmentsResponse{Departments: toDepartments(list)}, nil
}

func NewDepartmentsHandler(tokens *jwt.Issuer, departments *service.Departments) *departmentsHandler {
	return &departmentsHandler{
		guard:       newGuard(tokens),
		departments: departments,
	}
}
