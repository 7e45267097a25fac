package repository

import (
	"context"

	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingSessionRepository stores in-progress booking drafts. Drafts are
// ephemeral: they live in redis under a TTL and are never written to the
// database.
type BookingSessionRepository interface {
	Save(ctx context.Context, session *entity.BookingSession) error
	Find(ctx context.Context, id uuid.UUID) (*entity.BookingSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
