package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"attendance-backend/cache"
	"attendance-backend/events"
	"attendance-backend/handler"
	"attendance-backend/internal/config"
	"attendance-backend/internal/ops"
	"attendance-backend/internal/ratelimit"
	"attendance-backend/jwt"
	"attendance-backend/log"
	"attendance-backend/mail"
	"attendance-backend/service"
	"attendance-backend/store/mongostore"
)

const amqpAttempts = 6

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.EnsureLogger(cfg.Production)
	defer log.Logger.Sync()

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Logger.Fatal("failed connecting to database", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db := mongostore.New(client, cfg.MongoDatabase)
	if err := db.EnsureIndexes(connectCtx); err != nil {
		log.Logger.Fatal("failed creating indexes", zap.Error(err))
	}

	var bus events.Bus = events.NewLocal()
	if cfg.RabbitMQURL != "" {
		bus, err = events.Dial(cfg.RabbitMQURL, amqpAttempts)
		if err != nil {
			log.Logger.Fatal("failed connecting to rabbitmq", zap.Error(err))
		}
	}
	defer bus.Close()

	checks := map[string]ops.Pinger{"mongo": db}
	deps := service.Deps{Store: db, Bus: bus, Location: cfg.Timezone}
	if cfg.RedisAddr != "" {
		profiles := cache.NewProfiles(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.CacheTTL)
		deps.Cache = profiles
		checks["redis"] = profiles
	}

	var mailer mail.Mailer = mail.NewConsole()
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		mailer = mail.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)
	}

	tokens := jwt.NewIssuer([]byte(cfg.JWTKey), cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	directory := service.NewDirectory(deps)
	fanOut := service.NewFanOut(deps)

	services := handler.Services{
		Tokens: tokens,
		Identity: service.NewIdentity(deps, tokens, mailer, ratelimit.New(cfg.ResetPerMinute, cfg.ResetPerMinute), service.IdentityConfig{
			ResetURL: cfg.ResetURL,
			ResetTTL: cfg.ResetTTL,
		}),
		Directory:   directory,
		Recorder:    service.NewRecorder(deps, fanOut),
		FanOut:      fanOut,
		Departments: service.NewDepartments(deps),
		Functions:   service.NewFunctions(directory),
	}
	if cfg.RateLimitPerMinute > 0 {
		services.Limiter = ratelimit.New(0, cfg.RateLimitPerMinute)
	}
	grpcServer := handler.NewServer(services)

	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%s", cfg.Port))
	if err != nil {
		log.Logger.Fatal("failed to listen", zap.Error(err))
	}
	log.Logger.Info(fmt.Sprintf("Listening on port: %s", cfg.Port))

	opsServer := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%s", cfg.OpsPort),
		Handler: ops.NewRouter(checks),
	}
	go func() {
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Error("ops server stopped", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		log.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = opsServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
	}()

	if err := grpcServer.Serve(lis); err != nil {
		log.Logger.Fatal("couldn't serve grpcServer", zap.Error(err))
	}
}
