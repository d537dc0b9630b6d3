package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"headpointer/internal/domain/entity"
	"headpointer/internal/infrastructure/storage"
)

func TestSubscriberService_SubscribeAndMute(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriberService(repo)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateSubscribed, sub.State)

	sub, err = svc.Mute(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMuted, sub.State)
}

func TestSubscriberService_Active(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriberService(repo)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, 1, 10)
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, 2, 20)
	require.NoError(t, err)
	_, err = svc.Mute(ctx, 2, 20)
	require.NoError(t, err)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, int64(10), active[0].ChatID)
}
