package handler

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"

	"attendance-backend/jwt"
	"attendance-backend/log"
	pb "attendance-backend/proto"
	"attendance-backend/service"
)

type authHandler struct {
	guard
	identity *service.Identity

	pb.UnimplementedAuthServer
}

func (h *authHandler) SignIn(ctx context.Context, req *pb.SignInRequest) (*pb.SignInResponse, error) {
	session, err := h.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		log.Logger.Debug("sign in failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	return &pb.SignInResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         toUser(session.User),
	}, nil
}

func (h *authHandler) SignOut(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.identity.SignOut(ctx, claims.UserID); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (h *authHandler) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	token, err := h.identity.Refresh(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	return &pb.RefreshTokenResponse{Token: token}, nil
}

func (h *authHandler) RequestPasswordReset(ctx context.Context, req *pb.PasswordResetRequest) (*pb.MessageResponse, error) {
	msg, err := h.identity.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	return &pb.MessageResponse{Message: msg}, nil
}

func (h *authHandler) ConfirmPasswordReset(ctx context.Context, req *pb.ConfirmPasswordResetRequest) (*emptypb.Empty, error) {
	if err := h.identity.ConfirmPasswordReset(ctx, req.Token, req.NewPassword); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (h *authHandler) ChangePassword(ctx context.Context, req *pb.ChangePasswordRequest) (*emptypb.Empty, error) {
	claims, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.identity.ChangePassword(ctx, claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return nil, err
	}
	requestLogger(claims).Info("password changed")
	return &emptypb.Empty{}, nil
}

func NewAuthHandler(tokens *jwt.Issuer, identity *service.Identity) *authHandler {
	return &authHandler{
		guard: newGuard(tokens,
			"/"+pb.AuthService+"/SignIn",
			"/"+pb.AuthService+"/RefreshToken",
			"/"+pb.AuthService+"/RequestPasswordReset",
			"/"+pb.AuthService+"/ConfirmPasswordReset",
		),
		identity: identity,
	}
}
