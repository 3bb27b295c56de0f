// Package testenv runs the whole backend in-process: an in-memory store, the
// local event bus, a console mailer and the gRPC server over bufconn.
package testenv

import (
	"context"
	"net"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"attendance-backend/entity"
	"attendance-backend/events"
	"attendance-backend/handler"
	"attendance-backend/internal/ratelimit"
	"attendance-backend/jwt"
	"attendance-backend/mail"
	"attendance-backend/service"
	"attendance-backend/store/memstore"
)

var Key = []byte("test-key")

const bufSize = 1024 * 1024

// Clock is a settable time source.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type Env struct {
	Store    *memstore.DB
	Bus      *events.Local
	Mailer   *mail.Console
	Tokens   *jwt.Issuer
	Clock    *Clock
	Deps     service.Deps
	Services handler.Services
	Server   *grpc.Server
	Conn     *grpc.ClientConn

	listener *bufconn.Listener
}

type Option func(*Env)

// WithProfileCache puts c in front of profile reads.
func WithProfileCache(c service.ProfileCache) Option {
	return func(e *Env) {
		e.Deps.Cache = c
	}
}

// New starts a server. The clock starts at a fixed morning in UTC.
func New(opts ...Option) (*Env, error) {
	service.PasswordCost = bcrypt.MinCost

	e := &Env{
		Store:  memstore.New(),
		Bus:    events.NewLocal(),
		Mailer: mail.NewConsole(),
		Tokens: jwt.NewIssuer(Key, "attendance-test", time.Hour, 24*time.Hour),
		Clock:  NewClock(time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)),
	}
	e.Deps = service.Deps{
		Store:    e.Store,
		Bus:      e.Bus,
		Now:      e.Clock.Now,
		Location: time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}

	directory := service.NewDirectory(e.Deps)
	fanOut := service.NewFanOut(e.Deps)
	e.Services = handler.Services{
		Tokens: e.Tokens,
		Identity: service.NewIdentity(e.Deps, e.Tokens, e.Mailer, ratelimit.New(3, 3), service.IdentityConfig{
			ResetURL: "http://localhost/reset",
			ResetTTL: time.Hour,
		}),
		Directory:   directory,
		Recorder:    service.NewRecorder(e.Deps, fanOut),
		FanOut:      fanOut,
		Departments: service.NewDepartments(e.Deps),
		Functions:   service.NewFunctions(directory),
	}

	e.listener = bufconn.Listen(bufSize)
	e.Server = handler.NewServer(e.Services)
	go func() {
		_ = e.Server.Serve(e.listener)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return e.listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		e.Server.Stop()
		return nil, err
	}
	e.Conn = conn

	return e, nil
}

func (e *Env) Close() {
	_ = e.Conn.Close()
	e.Server.Stop()
	_ = e.Bus.Close()
}

// CreateUser creates an account directly through the directory.
func (e *Env) CreateUser(ctx context.Context, email, password, name string, role entity.Role, createdBy string) (string, error) {
	res, err := e.Services.Directory.CreateUser(ctx, service.CreateUserInput{
		Email:     email,
		Password:  password,
		Name:      name,
		Role:      role,
		CreatedBy: createdBy,
	})
	if err != nil {
		return "", err
	}
	return res.ID, nil
}
