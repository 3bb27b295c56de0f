package handler

import (
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_auth "github.com/grpc-ecosystem/go-grpc-middleware/auth"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpc_ratelimit "github.com/grpc-ecosystem/go-grpc-middleware/ratelimit"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"attendance-backend/jwt"
	"attendance-backend/log"
	pb "attendance-backend/proto"
	"attendance-backend/service"
)

type Services struct {
	Tokens      *jwt.Issuer
	Identity    *service.Identity
	Directory   *service.Directory
	Recorder    *service.Recorder
	FanOut      *service.FanOut
	Departments *service.Departments
	Functions   *service.Functions
	// Limiter rejects requests over the server-wide rate. Optional.
	Limiter grpc_ratelimit.Limiter
}

func recoverPanic(p interface{}) error {
	log.Logger.Error("panic in handler", zap.Any("panic", p), zap.Stack("stack"))
	return status.Error(codes.Internal, "internal error")
}

// NewServer builds the gRPC server with every attendance service registered.
func NewServer(s Services, opts ...grpc.ServerOption) *grpc.Server {
	recoveryOpts := []grpc_recovery.Option{grpc_recovery.WithRecoveryHandler(recoverPanic)}

	unary := []grpc.UnaryServerInterceptor{
		grpc_ctxtags.UnaryServerInterceptor(),
		grpc_zap.UnaryServerInterceptor(log.Logger),
		grpc_recovery.UnaryServerInterceptor(recoveryOpts...),
	}
	stream := []grpc.StreamServerInterceptor{
		grpc_ctxtags.StreamServerInterceptor(),
		grpc_zap.StreamServerInterceptor(log.Logger),
		grpc_recovery.StreamServerInterceptor(recoveryOpts...),
	}
	if s.Limiter != nil {
		unary = append(unary, grpc_ratelimit.UnaryServerInterceptor(s.Limiter))
		stream = append(stream, grpc_ratelimit.StreamServerInterceptor(s.Limiter))
	}
	unary = append(unary, grpc_auth.UnaryServerInterceptor(s.Tokens.AuthFunc))
	stream = append(stream, grpc_auth.StreamServerInterceptor(s.Tokens.AuthFunc))

	opts = append(opts,
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(unary...)),
		grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(stream...)),
	)

	server := grpc.NewServer(opts...)
	pb.RegisterAuthServer(server, NewAuthHandler(s.Tokens, s.Identity))
	pb.RegisterDirectoryServer(server, NewDirectoryHandler(s.Tokens, s.Directory))
	pb.RegisterAttendanceServer(server, NewAttendanceHandler(s.Tokens, s.Recorder))
	pb.RegisterNotificationsServer(server, NewNotificationsHandler(s.Tokens, s.FanOut))
	pb.RegisterDepartmentsServer(server, NewDepartmentsHandler(s.Tokens, s.Departments))
	pb.RegisterFunctionsServer(server, NewFunctionsHandler(s.Tokens, s.Functions))

	return server
}
