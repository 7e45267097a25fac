package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vetclinic-booking/internal/domain/entity"
	domainRepo "vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const bookingSessionKeyPrefix = "booking:session:"

// bookingSessionStore keeps booking drafts in redis under a TTL. An
// abandoned draft simply expires; nothing was persisted, so no
// compensating action is needed.
type bookingSessionStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewBookingSessionStore(redisClient *redis.Client, ttl time.Duration) domainRepo.BookingSessionRepository {
	return &bookingSessionStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (s *bookingSessionStore) key(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", bookingSessionKeyPrefix, id.String())
}

func (s *bookingSessionStore) Save(ctx context.Context, session *entity.BookingSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal booking session: %w", err)
	}
	if err := s.redisClient.Set(ctx, s.key(session.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store booking session: %w", err)
	}
	return nil
}

func (s *bookingSessionStore) Find(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error) {
	payload, err := s.redisClient.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch booking session: %w", err)
	}
	var session entity.BookingSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal booking session: %w", err)
	}
	return &session, nil
}

func (s *bookingSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.redisClient.Del(ctx, s.key(id)).Err()
}
