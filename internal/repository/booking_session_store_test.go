package repository

import (
	"context"
	"testing"
	"time"

	"vetclinic-booking/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionStore(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestBookingSessionStoreRoundTrip(t *testing.T) {
	_, client := newTestSessionStore(t)
	store := NewBookingSessionStore(client, 30*time.Minute)
	ctx := context.Background()

	clientID := uuid.New()
	session := entity.NewBookingSession(entity.OriginClientSelf, &clientID, "client@example.com")
	require.NoError(t, session.SelectPet(uuid.New(), "Milo"))
	require.NoError(t, session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "vaccination", decimal.NewFromInt(500)))

	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Find(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, entity.SessionSelectingPayment, loaded.State)
	assert.Equal(t, "Milo", loaded.PetName)
	assert.Equal(t, "2026-09-01", loaded.Date)
	assert.True(t, loaded.Price.Equal(decimal.NewFromInt(500)))
}

func TestBookingSessionStoreMissing(t *testing.T) {
	_, client := newTestSessionStore(t)
	store := NewBookingSessionStore(client, 30*time.Minute)

	loaded, err := store.Find(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestBookingSessionStoreExpiry(t *testing.T) {
	mr, client := newTestSessionStore(t)
	store := NewBookingSessionStore(client, 30*time.Minute)
	ctx := context.Background()

	clientID := uuid.New()
	session := entity.NewBookingSession(entity.OriginClientSelf, &clientID, "client@example.com")
	require.NoError(t, store.Save(ctx, session))

	mr.FastForward(31 * time.Minute)

	loaded, err := store.Find(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestBookingSessionStoreDelete(t *testing.T) {
	_, client := newTestSessionStore(t)
	store := NewBookingSessionStore(client, 30*time.Minute)
	ctx := context.Background()

	clientID := uuid.New()
	session := entity.NewBookingSession(entity.OriginClientSelf, &clientID, "client@example.com")
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	loaded, err := store.Find(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
