package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/OWAISARSHED/LearnPak/config"
	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/cache"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/memory"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/repository"
)

type storage struct {
	users       usecase.UserRepository
	courses     usecase.CourseRepository
	enrollments usecase.EnrollmentRepository
	payouts     usecase.PayoutRepository
	emotions    usecase.EmotionRepository
	tokens      usecase.TokenStore
	courseCache usecase.CourseCache
	redis       *redis.Client
	close       func()
}

func openStorage(ctx context.Context, cfg config.Config) storage {
	var s storage
	s.close = func() {}

	if cfg.UseMemoryStorage() {
		mem := memory.NewStore()
		s.users, s.courses, s.enrollments = mem.Users(), mem.Courses(), mem.Enrollments()
		s.payouts, s.emotions, s.tokens = mem.Payouts(), mem.Emotions(), mem.Tokens()
		log.Println("Using in-memory storage, data is lost on restart")
	} else {
		db, err := repository.Open(repository.DSN(cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort))
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
		s.users = repository.NewUserRepository(db)
		s.courses = repository.NewCourseRepository(db)
		s.enrollments = repository.NewEnrollmentRepository(db)
		s.payouts = repository.NewPayoutRepository(db)
		s.emotions = repository.NewEmotionRepository(db)
		s.tokens = memory.NewStore().Tokens()
		s.close = func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		log.Printf("Connected to Postgres at %s:%s", cfg.DBHost, cfg.DBPort)
	}

	s.courseCache = usecase.NoCache
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set: course cache and login rate limit disabled")
		return s
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis at", cfg.RedisAddr)

	s.redis = rdb
	s.tokens = cache.NewTokenCache(rdb)
	s.courseCache = cache.NewCourseCache(rdb)
	closeDB := s.close
	s.close = func() {
		rdb.Close()
		closeDB()
	}
	return s
}
