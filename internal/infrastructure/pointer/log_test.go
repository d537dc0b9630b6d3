package pointer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"headpointer/internal/domain/entity"
)

func TestLogPointer(t *testing.T) {
	p := NewLogPointer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	require.NoError(t, p.MoveCursorBy(ctx, -1, 0))
	require.NoError(t, p.MoveCursorBy(ctx, -2, 1))
	require.NoError(t, p.ClickPrimaryButton(ctx))

	require.Equal(t, entity.Point{X: -3, Y: 1}, p.Position())
	require.Equal(t, 1, p.Clicks())
}
