package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headpointer/internal/domain/entity"
	"headpointer/internal/infrastructure/vision"
)

type sessionFixture struct {
	source   *fakeSource
	pointer  *fakePointer
	notifier *fakeNotifier
	overlay  *fakeOverlay
	session  *Session
}

func newSessionFixture(frames []*entity.Frame, opts SessionOptions) *sessionFixture {
	f := &sessionFixture{
		source:   &fakeSource{frames: frames},
		pointer:  &fakePointer{},
		notifier: &fakeNotifier{},
		overlay:  &fakeOverlay{},
	}
	f.session = NewSession(SessionDeps{
		Engine:   vision.NewEngine(),
		Source:   f.source,
		Pointer:  f.pointer,
		Overlay:  f.overlay,
		Notifier: f.notifier,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, opts)
	return f
}

func TestSession_NoseMovesCursor(t *testing.T) {
	f := newSessionFixture([]*entity.Frame{
		noseFrame(0, 0),
		noseFrame(5, 0),
		noseFrame(10, 0),
		noseFrame(15, 0),
	}, SessionOptions{})

	f.session.SelectRegion(noseCenter)
	require.NoError(t, f.session.Run(context.Background()))

	require.Equal(t, []entity.Point{{X: -1}, {X: -2}, {X: -3}}, f.pointer.moves)
	require.Equal(t, 3, f.overlay.calls)
	require.Contains(t, f.notifier.kinds(), entity.EventNoseArmed)

	st := f.session.Status()
	assert.Equal(t, f.session.ID(), st.SessionID)
	assert.Equal(t, int64(3), st.Frames)
	assert.Equal(t, int64(3), st.Moves)
	assert.True(t, st.NoseArmed)
	assert.Equal(t, entity.Point{X: -3}, st.Velocity)
	assert.Equal(t, 0.0, st.MeanNoseScore)
}

func TestSession_BlinkClicks(t *testing.T) {
	f := newSessionFixture(eyeScene(), SessionOptions{})

	require.NoError(t, f.session.Run(context.Background()))

	require.Equal(t, 1, f.pointer.clicks)
	require.Empty(t, f.pointer.moves)
	require.Equal(t, []entity.EventKind{entity.EventEyeAcquired, entity.EventBlink}, f.notifier.kinds())

	st := f.session.Status()
	assert.Equal(t, int64(1), st.Clicks)
	assert.Equal(t, entity.EyeTracking, st.EyeStage)
	assert.False(t, st.NoseArmed)
}

func TestSession_OverlayShowsEyeWindow(t *testing.T) {
	frames := eyeScene()
	f := newSessionFixture(frames[:2], SessionOptions{})

	require.NoError(t, f.session.Run(context.Background()))
	require.Equal(t, []entity.OverlayRect{
		{Color: entity.ColorSearch, Rect: entity.Rect{X: 35, Y: 45, Width: 30, Height: 30}, Label: "eye window"},
		{Color: entity.ColorEye, Rect: eyeRect, Label: "eye"},
	}, f.overlay.last)
}

func TestSession_ResetRestartsEyeSearch(t *testing.T) {
	frames := eyeScene()
	f := newSessionFixture(frames, SessionOptions{})
	ctx := context.Background()

	require.NoError(t, f.session.Start(ctx))
	report, err := f.session.Tick(ctx, frames[1])
	require.NoError(t, err)
	require.True(t, report.Eye.Acquired)

	f.session.RequestReset()
	report, err = f.session.Tick(ctx, frames[2])
	require.NoError(t, err)
	require.True(t, report.Eye.Reset)
	require.Equal(t, entity.EyeSearching, f.session.Status().EyeStage)
	require.Equal(t, []entity.EventKind{entity.EventEyeAcquired, entity.EventEyeLost}, f.notifier.kinds())
}

func TestSession_LostObject(t *testing.T) {
	f := newSessionFixture([]*entity.Frame{
		noseFrame(0, 0),
		noseFrame(0, 0),
		flatFrame(200, 150, 0),
	}, SessionOptions{})

	f.session.SelectRegion(noseCenter)
	require.NoError(t, f.session.Run(context.Background()))

	require.Equal(t, []entity.EventKind{entity.EventNoseArmed, entity.EventNoseLost}, f.notifier.kinds())
	require.Empty(t, f.pointer.moves)
	require.False(t, f.session.Status().NoseArmed)
}

func TestSession_StopEndsRun(t *testing.T) {
	frames := make([]*entity.Frame, 10)
	for i := range frames {
		frames[i] = flatFrame(160, 120, background)
	}
	f := newSessionFixture(frames, SessionOptions{})

	f.session.Stop()
	require.NoError(t, f.session.Run(context.Background()))
	require.Zero(t, f.session.Status().Frames)
	// только первый кадр из Start, следующий уже не запрашивается
	require.Equal(t, 1, f.source.next)
	require.Zero(t, f.overlay.calls)
}

func TestSession_TickAfterStopDoesNothing(t *testing.T) {
	f := newSessionFixture([]*entity.Frame{noseFrame(0, 0)}, SessionOptions{})
	ctx := context.Background()

	require.NoError(t, f.session.Start(ctx))
	f.session.SelectRegion(noseCenter)
	report, err := f.session.Tick(ctx, noseFrame(0, 0))
	require.NoError(t, err)
	require.True(t, report.Nose.Armed)
	require.False(t, report.Stopped)

	f.session.Stop()
	report, err = f.session.Tick(ctx, noseFrame(6, 0))
	require.NoError(t, err)
	require.True(t, report.Stopped)
	require.False(t, report.Nose.Moved)
	require.Empty(t, f.pointer.moves)
	require.Zero(t, f.pointer.clicks)
	require.Equal(t, int64(1), f.session.Status().Frames)
	require.Equal(t, 1, f.overlay.calls)
}

func TestSession_ReselectClearsScoreHistory(t *testing.T) {
	f := newSessionFixture([]*entity.Frame{noseFrame(0, 0)}, SessionOptions{})
	ctx := context.Background()
	require.NoError(t, f.session.Start(ctx))

	// образец найден, но не точно: оценка больше нуля
	dimmed := noseFrame(0, 0)
	brighten(dimmed, entity.Rect{X: 60, Y: 60, Width: 10, Height: 10}, 10)

	f.session.SelectRegion(noseCenter)
	report, err := f.session.Tick(ctx, dimmed)
	require.NoError(t, err)
	require.True(t, report.Nose.Armed)
	require.Greater(t, f.session.Status().MeanNoseScore, 0.0)

	report, err = f.session.Tick(ctx, flatFrame(200, 150, 0))
	require.NoError(t, err)
	require.True(t, report.Nose.Lost)

	_, err = f.session.Tick(ctx, noseFrame(0, 0))
	require.NoError(t, err)

	f.session.SelectRegion(noseCenter)
	report, err = f.session.Tick(ctx, noseFrame(0, 0))
	require.NoError(t, err)
	require.True(t, report.Nose.Armed)
	require.Equal(t, 0.0, f.session.Status().MeanNoseScore)
}

func TestSession_FrameSizeMismatch(t *testing.T) {
	f := newSessionFixture([]*entity.Frame{
		flatFrame(160, 120, background),
		flatFrame(100, 80, background),
	}, SessionOptions{})

	err := f.session.Run(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, entity.ErrPrecondition))
}

func TestSession_NilFrame(t *testing.T) {
	f := newSessionFixture(nil, SessionOptions{})

	_, err := f.session.Tick(context.Background(), nil)
	require.True(t, errors.Is(err, entity.ErrPrecondition))
}

func TestSession_FirstFrameUnavailable(t *testing.T) {
	f := newSessionFixture(nil, SessionOptions{})

	err := f.session.Run(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, entity.ErrEndOfStream))
	require.Contains(t, err.Error(), "cannot query first frame")
}

func TestSession_NoSource(t *testing.T) {
	s := NewSession(SessionDeps{Engine: vision.NewEngine()}, SessionOptions{})

	err := s.Start(context.Background())
	require.True(t, errors.Is(err, entity.ErrNotConfigured))
}

func TestSession_CancelledContext(t *testing.T) {
	f := newSessionFixture(eyeScene(), SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.session.Run(ctx))
	require.Zero(t, f.session.Status().Frames)
}

func TestSession_FullControlQueueDropsCommands(t *testing.T) {
	f := newSessionFixture(eyeScene(), SessionOptions{ControlQueue: 1})

	f.session.Stop()
	f.session.RequestReset()
	f.session.SelectRegion(noseCenter)

	require.NoError(t, f.session.Run(context.Background()))
	require.Zero(t, f.session.Status().Frames)
	require.NotContains(t, f.notifier.kinds(), entity.EventNoseArmed)
}
