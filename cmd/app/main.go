package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OWAISARSHED/LearnPak/config"
	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/security"
	"github.com/OWAISARSHED/LearnPak/internal/middleware"
	grpc_server "github.com/OWAISARSHED/LearnPak/internal/transport/grpc"
	handlers "github.com/OWAISARSHED/LearnPak/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		log.Fatal("ACCESS_SECRET and REFRESH_SECRET must be set")
	}

	ctx := context.Background()
	store := openStorage(ctx, cfg)
	defer store.close()

	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)

	authUC := usecase.NewAuthUseCase(store.users, store.tokens, hasher, tokenManager)
	courseUC := usecase.NewCourseUseCase(store.courses, store.enrollments, store.courseCache)
	enrollmentUC := usecase.NewEnrollmentUseCase(store.enrollments, store.courses, store.emotions)
	payoutUC := usecase.NewPayoutUseCase(store.payouts)
	adminUC := usecase.NewAdminUseCase(store.users, store.courses)

	if cfg.UseMemoryStorage() && cfg.AdminPassword != "" {
		if _, err := authUC.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Admin account %s ready", cfg.AdminEmail)
	}

	router := handlers.NewRouter(handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authUC, false),
		Course:      handlers.NewCourseHandler(courseUC),
		Enrollment:  handlers.NewEnrollmentHandler(enrollmentUC),
		Payout:      handlers.NewPayoutHandler(payoutUC),
		Admin:       handlers.NewAdminHandler(adminUC),
		Limiter:     middleware.NewRateLimiter(store.redis),
		Authn:       authUC,
		AllowOrigin: cfg.Origins(),
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, healthServer := grpc_server.NewServer(authUC,
		grpc_server.NewLearningServer(enrollmentUC, payoutUC, courseUC))
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}

	go func() {
		log.Printf("HTTP API running on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()
	go func() {
		log.Printf("gRPC LearningService running on %s", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down...")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	grpcServer.GracefulStop()
	log.Println("Stopped")
}
