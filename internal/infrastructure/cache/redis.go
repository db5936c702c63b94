package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

const (
	courseTTL  = time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

func courseKey(id uuid.UUID) string {
	return "course:detail:" + id.String()
}

// CourseCache stores course detail, lessons included, as JSON.
type CourseCache struct {
	client *redis.Client
}

func NewCourseCache(client *redis.Client) *CourseCache {
	return &CourseCache{client: client}
}

func (c *CourseCache) Get(ctx context.Context, id uuid.UUID) (*domain.Course, bool) {
	val, err := c.client.Get(ctx, courseKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var course domain.Course
	if err := json.Unmarshal(val, &course); err != nil {
		return nil, false
	}
	// CourseID is not serialized on content rows
	for i := range course.Lessons {
		course.Lessons[i].CourseID = course.ID
	}
	return &course, true
}

// Fill stores course only when no entry exists (SET NX).
func (c *CourseCache) Fill(ctx context.Context, course *domain.Course) {
	data, err := json.Marshal(course)
	if err != nil {
		return
	}
	if err := c.client.SetNX(ctx, courseKey(course.ID), data, courseTTL).Err(); err != nil {
		log.Printf("fill course %s: %v", course.ID, err)
	}
}

// Set overwrites the entry after a write to the course.
func (c *CourseCache) Set(ctx context.Context, course *domain.Course) {
	data, err := json.Marshal(course)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, courseKey(course.ID), data, courseTTL).Err(); err != nil {
		log.Printf("cache course %s: %v", course.ID, err)
	}
}

func (c *CourseCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, courseKey(id)).Err(); err != nil {
		log.Printf("invalidate course %s: %v", id, err)
	}
}

type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) SaveRefresh(ctx context.Context, userID string, refreshToken string) error {
	return c.client.Set(ctx, "refresh_token:"+refreshToken, userID, refreshTTL).Err()
}

// ConsumeRefresh redeems refreshToken with GETDEL; of two concurrent callers only one
// sees the user id.
func (c *TokenCache) ConsumeRefresh(ctx context.Context, refreshToken string) (string, error) {
	val, err := c.client.GetDel(ctx, "refresh_token:"+refreshToken).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenRevoked
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *TokenCache) DeleteRefresh(ctx context.Context, refreshToken string) error {
	return c.client.Del(ctx, "refresh_token:"+refreshToken).Err()
}
