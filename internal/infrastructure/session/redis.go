// Package session records the current refresh token per user so a rotated
// or dropped token stops working before it expires. Redis being down is not
// fatal: refresh validation then falls back to signature checks alone.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Sessions struct {
	client *redis.Client
	logger *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedisSessions(logger *log.Logger) *Sessions {
	host := strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("REDIS_PORT"))
	if port == "" {
		port = "6379"
	}
	pass := strings.TrimSpace(os.Getenv("REDIS_PASSWORD"))

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: pass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Session] Redis unavailable, refresh rotation disabled: %v", err)
		}
		_ = client.Close()
		return &Sessions{client: nil, logger: logger}
	}

	return &Sessions{client: client, logger: logger}
}

func (s *Sessions) isUnavailable() bool {
	return s == nil || s.client == nil
}

func (s *Sessions) warnUnavailableOnce(err error) {
	if s == nil || s.logger == nil {
		return
	}
	if s.warnedUnavailable.CompareAndSwap(false, true) {
		s.logger.Printf("[Session] Redis unavailable, refresh rotation disabled: %v", err)
	}
}

func (s *Sessions) Ping(ctx context.Context) error {
	if s.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return s.client.Ping(ctx).Err()
}

// SaveRefreshToken records token as the one live refresh token for the user.
func (s *Sessions) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	if s.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if err := s.client.Set(ctx, refreshKey(userID), token, ttl).Err(); err != nil {
		s.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// IsCurrentRefreshToken reports whether token matches the recorded one.
// With Redis unavailable it answers true, leaving only the signature check.
func (s *Sessions) IsCurrentRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	if s.isUnavailable() {
		return true, nil
	}
	stored, err := s.client.Get(ctx, refreshKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		s.warnUnavailableOnce(err)
		return true, nil
	}
	return stored == token, nil
}

// DropRefreshToken forgets the user's refresh token (logout).
func (s *Sessions) DropRefreshToken(ctx context.Context, userID uuid.UUID) error {
	if s.isUnavailable() {
		return nil
	}
	if err := s.client.Del(ctx, refreshKey(userID)).Err(); err != nil {
		s.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func refreshKey(userID uuid.UUID) string {
	return "session:refresh:" + userID.String()
}
