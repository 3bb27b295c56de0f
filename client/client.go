// Package client is the session side of the attendance backend: it keeps the
// signed-in identity, attaches credentials to calls and follows live feeds.
package client

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"attendance-backend/entity"
	"attendance-backend/errs"
	pb "attendance-backend/proto"
)

// Identity is the signed-in principal as the auth layer knows it.
type Identity struct {
	UserID string
	Email  string
	Role   entity.Role
}

type session struct {
	identity     *Identity
	accessToken  string
	refreshToken string
}

type Client struct {
	auth          pb.AuthClient
	directory     pb.DirectoryClient
	attendance    pb.AttendanceClient
	notifications pb.NotificationsClient
	departments   pb.DepartmentsClient
	functions     pb.FunctionsClient

	mu        sync.Mutex
	session   *session
	listeners map[uuid.UUID]func(*Identity)
}

func New(cc grpc.ClientConnInterface) *Client {
	return &Client{
		auth:          pb.NewAuthClient(cc),
		directory:     pb.NewDirectoryClient(cc),
		attendance:    pb.NewAttendanceClient(cc),
		notifications: pb.NewNotificationsClient(cc),
		departments:   pb.NewDepartmentsClient(cc),
		functions:     pb.NewFunctionsClient(cc),
		listeners:     make(map[uuid.UUID]func(*Identity)),
	}
}

// Identity returns the signed-in identity, or nil.
func (c *Client) Identity() *Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	id := *c.session.identity
	return &id
}

// OnAuthStateChange calls fn with the current identity right away and again
// after every sign-in and sign-out. A nil identity means signed out.
func (c *Client) OnAuthStateChange(fn func(*Identity)) (cancel func()) {
	key := uuid.New()

	c.mu.Lock()
	c.listeners[key] = fn
	c.mu.Unlock()

	fn(c.Identity())

	return func() {
		c.mu.Lock()
		delete(c.listeners, key)
		c.mu.Unlock()
	}
}

func (c *Client) setSession(s *session) {
	c.mu.Lock()
	c.session = s
	listeners := make([]func(*Identity), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	var id *Identity
	if s != nil {
		v := *s.identity
		id = &v
	}
	for _, fn := range listeners {
		fn(id)
	}
}

// Context returns ctx carrying the session's bearer token, for calls made
// with the raw service stubs.
func (c *Client) Context(ctx context.Context) context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "bearer "+c.session.accessToken)
}

func isBackendError(err error, target *errs.Error) bool {
	if err == nil {
		return false
	}
	return strings.HasPrefix(status.Convert(err).Message(), target.Code+":")
}

// call runs fn with credentials attached. An expired access token is
// refreshed once and the call retried.
func call[T any](c *Client, ctx context.Context, fn func(context.Context) (*T, error)) (*T, error) {
	res, err := fn(c.Context(ctx))
	if isBackendError(err, errs.ErrTokenExpired) {
		if rerr := c.Refresh(ctx); rerr == nil {
			res, err = fn(c.Context(ctx))
		}
	}
	return res, err
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	res, err := c.auth.SignIn(ctx, &pb.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	id := &Identity{UserID: res.User.Id, Email: res.User.Email, Role: entity.Role(res.User.Role)}
	c.setSession(&session{identity: id, accessToken: res.AccessToken, refreshToken: res.RefreshToken})
	return id, nil
}

// SignOut ends the session on the server and locally. The local session is
// dropped even when the server call fails.
func (c *Client) SignOut(ctx context.Context) error {
	if c.Identity() == nil {
		return nil
	}
	_, err := c.auth.SignOut(c.Context(ctx), &emptypb.Empty{})
	c.setSession(nil)
	return err
}

func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return errs.ErrUnauthorized
	}

	res, err := c.auth.RefreshToken(ctx, &pb.RefreshTokenRequest{Token: s.refreshToken})
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.session == s {
		c.session = &session{identity: s.identity, accessToken: res.Token, refreshToken: s.refreshToken}
	}
	c.mu.Unlock()
	return nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	res, err := c.auth.RequestPasswordReset(ctx, &pb.PasswordResetRequest{Email: email})
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	_, err := c.auth.ConfirmPasswordReset(ctx, &pb.ConfirmPasswordResetRequest{Token: token, NewPassword: newPassword})
	return err
}

func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	_, err := call(c, ctx, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.auth.ChangePassword(ctx, &pb.ChangePasswordRequest{CurrentPassword: current, NewPassword: newPassword})
	})
	return err
}

// Profile loads the signed-in user's profile. A session without a profile is
// signed out.
func (c *Client) Profile(ctx context.Context) (*pb.User, error) {
	if c.Identity() == nil {
		return nil, errs.ErrUnauthorized
	}

	u, err := call(c, ctx, func(ctx context.Context) (*pb.User, error) {
		return c.directory.GetUser(ctx, &pb.GetUserRequest{})
	})
	if errs.KindOf(err) == errs.NotFound {
		c.setSession(nil)
	}
	return u, err
}
