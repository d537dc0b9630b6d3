package app

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"headpointer/internal/domain/entity"
	"headpointer/internal/domain/port"
)

const (
	defaultControlQueue = 16
	scoreHistory        = 32
)

type controlKind int

const (
	controlSelect controlKind = iota
	controlReset
	controlStop
)

type control struct {
	kind  controlKind
	point entity.Point
}

// SessionDeps внешние зависимости сессии. Overlay и Notifier необязательны.
type SessionDeps struct {
	Engine   port.ImageEngine
	Source   port.FrameSource
	Pointer  port.Pointer
	Overlay  port.OverlayRenderer
	Notifier port.EventNotifier
	Logger   *slog.Logger
}

// SessionOptions настройки сессии
type SessionOptions struct {
	NoseFixedReference bool // окна носа остаются у точки выбора
	ControlQueue       int  // размер очереди команд
}

// TickReport итог одного кадра
type TickReport struct {
	Frame   int64
	Eye     EyeOutcome
	Nose    NoseOutcome
	Overlay []entity.OverlayRect
	Stopped bool
}

// Status снимок состояния сессии
type Status struct {
	SessionID     string
	Frames        int64
	EyeStage      entity.EyeStage
	NoseArmed     bool
	Clicks        int64
	Moves         int64
	Velocity      entity.Point
	MeanNoseScore float64
}

// Session владеет состоянием трекинга и проводит кадры через оба конвейера.
// Всё изменяемое состояние принадлежит циклу кадров; команды от других
// горутин приходят через очередь и применяются на границе кадра.
type Session struct {
	id       string
	source   port.FrameSource
	pointer  port.Pointer
	overlay  port.OverlayRenderer
	notifier port.EventNotifier
	logger   *slog.Logger

	eye  *EyeTracker
	nose *NosePointer

	prev     *entity.Frame
	frames   int64
	clicks   int64
	moves    int64
	scores   []float64
	stopping bool

	controls chan control
	status   atomic.Pointer[Status]
}

// NewSession создаёт сессию в стадии поиска глаз с выключенным трекингом носа
func NewSession(deps SessionDeps, opts SessionOptions) *Session {
	queue := opts.ControlQueue
	if queue <= 0 {
		queue = defaultControlQueue
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		source:   deps.Source,
		pointer:  deps.Pointer,
		overlay:  deps.Overlay,
		notifier: deps.Notifier,
		logger:   logger.With("session", id),
		eye:      NewEyeTracker(deps.Engine),
		nose:     NewNosePointer(deps.Engine, opts.NoseFixedReference),
		controls: make(chan control, queue),
	}
	s.publishStatus()
	return s
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// SelectRegion ставит в очередь выбор области для трекинга носа
func (s *Session) SelectRegion(center entity.Point) {
	s.enqueue(control{kind: controlSelect, point: center})
}

// RequestReset ставит в очередь сброс трекинга глаза
func (s *Session) RequestReset() {
	s.enqueue(control{kind: controlReset})
}

// Stop просит цикл завершиться на ближайшей границе кадра
func (s *Session) Stop() {
	s.enqueue(control{kind: controlStop})
}

func (s *Session) enqueue(c control) {
	select {
	case s.controls <- c:
	default:
		s.logger.Warn("control queue is full, command dropped", "kind", c.kind)
	}
}

// Status возвращает последний снимок состояния. Безопасно из любой горутины.
func (s *Session) Status() Status {
	return *s.status.Load()
}

// Start получает первый кадр. Ошибка здесь фатальна.
func (s *Session) Start(ctx context.Context) error {
	if s.source == nil {
		return errors.Wrap(entity.ErrNotConfigured, "frame source")
	}
	frame, err := s.source.NextFrame(ctx)
	if err != nil {
		return errors.Wrap(err, "cannot query first frame")
	}
	s.prev = frame.Clone()
	s.logger.Info("session started", "width", frame.Width, "height", frame.Height)
	return nil
}

// Run крутит цикл кадров до конца потока, Stop или отмены контекста.
// Возвращает ошибку только при нарушении предусловий или сбое источника.
func (s *Session) Run(ctx context.Context) error {
	if s.prev == nil {
		if err := s.Start(ctx); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session cancelled", "frames", s.frames)
			return nil
		default:
		}

		// команды применяются до ожидания кадра, после Stop кадр уже не нужен
		if err := s.drainControls(ctx); err != nil {
			return err
		}
		if s.stopping {
			s.logger.Info("session stopped", "frames", s.frames)
			return nil
		}

		frame, err := s.source.NextFrame(ctx)
		switch {
		case errors.Is(err, entity.ErrEndOfStream):
			s.logger.Info("end of stream", "frames", s.frames)
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.logger.Info("session cancelled", "frames", s.frames)
			return nil
		case err != nil:
			return errors.Wrap(err, "next frame")
		}

		report, err := s.Tick(ctx, frame)
		if err != nil {
			return err
		}
		if report.Stopped {
			s.logger.Info("session stopped", "frames", s.frames)
			return nil
		}
	}
}

// Tick проводит один кадр через конвейер глаз и конвейер носа
func (s *Session) Tick(ctx context.Context, frame *entity.Frame) (TickReport, error) {
	if frame == nil {
		return TickReport{}, errors.Wrap(entity.ErrPrecondition, "nil frame")
	}
	if s.prev == nil {
		s.prev = frame.Clone()
	}
	if !frame.SameSize(s.prev) {
		return TickReport{}, errors.Wrapf(entity.ErrPrecondition, "frame %dx%d differs from previous %dx%d",
			frame.Width, frame.Height, s.prev.Width, s.prev.Height)
	}

	if err := s.drainControls(ctx); err != nil {
		return TickReport{}, err
	}
	// после Stop кадр не обрабатывается: ни кликов, ни движения курсора
	if s.stopping {
		s.publishStatus()
		return TickReport{Frame: s.frames, Stopped: true}, nil
	}

	s.frames++
	report := TickReport{Frame: s.frames}

	eyeOut, err := s.eye.Step(frame, s.prev)
	if err != nil {
		return TickReport{}, errors.Wrap(err, "eye tracking")
	}
	report.Eye = eyeOut
	s.handleEye(ctx, eyeOut)

	s.prev = frame.Clone()

	noseOut, err := s.nose.Step(frame)
	if err != nil {
		return TickReport{}, errors.Wrap(err, "nose tracking")
	}
	report.Nose = noseOut
	s.handleNose(ctx, noseOut)

	report.Overlay = overlayRects(eyeOut, noseOut)
	if s.overlay != nil {
		if err := s.overlay.DrawOverlay(ctx, frame, report.Overlay); err != nil {
			s.logger.Warn("draw overlay failed", "error", err)
		}
	}

	report.Stopped = s.stopping
	s.publishStatus()
	return report, nil
}

// drainControls применяет накопленные команды. Область носа захватывается
// с предыдущего кадра: именно его видел пользователь.
func (s *Session) drainControls(ctx context.Context) error {
	for {
		select {
		case c := <-s.controls:
			switch c.kind {
			case controlSelect:
				if err := s.nose.Arm(s.prev, c.point); err != nil {
					return errors.Wrap(err, "select region")
				}
				s.scores = s.scores[:0]
				s.logger.Info("Template selected. Start tracking...", "x", c.point.X, "y", c.point.Y)
				s.notify(ctx, entity.EventNoseArmed, c.point)
			case controlReset:
				s.eye.Reset()
			case controlStop:
				s.stopping = true
			}
		default:
			return nil
		}
	}
}

func (s *Session) handleEye(ctx context.Context, out EyeOutcome) {
	if out.Acquired {
		s.logger.Info("eye pair found", "eye", out.Eye.String())
		s.notify(ctx, entity.EventEyeAcquired, out.Eye.Center())
	}

	if out.Blink {
		s.logger.Info("Eye blinked!", "eye", out.Eye.String())
		if s.pointer != nil {
			if err := s.pointer.ClickPrimaryButton(ctx); err != nil {
				s.logger.Warn("click failed", "error", err)
			}
		}
		s.clicks++
		s.notify(ctx, entity.EventBlink, out.Eye.Center())
	}

	if out.Lost || out.Reset {
		s.logger.Debug("eye tracking restarted", "lost", out.Lost, "reset", out.Reset, "score", out.Score)
		s.notify(ctx, entity.EventEyeLost, out.Eye.Center())
	}
}

func (s *Session) handleNose(ctx context.Context, out NoseOutcome) {
	if out.Lost {
		s.logger.Info("Lost object.", "score", out.Score)
		s.notify(ctx, entity.EventNoseLost, out.SearchWindow.Center())
		return
	}
	if !out.Armed {
		return
	}

	s.scores = append(s.scores, out.Score)
	if len(s.scores) > scoreHistory {
		s.scores = s.scores[len(s.scores)-scoreHistory:]
	}

	if out.Moved {
		s.logger.Debug("move cursor", "dx", out.DX, "dy", out.DY)
		if s.pointer != nil {
			if err := s.pointer.MoveCursorBy(ctx, out.DX, out.DY); err != nil {
				s.logger.Warn("move cursor failed", "error", err)
			}
		}
		s.moves++
	}
}

func (s *Session) notify(ctx context.Context, kind entity.EventKind, p entity.Point) {
	if s.notifier == nil {
		return
	}
	ev := entity.Event{Kind: kind, Frame: s.frames, At: time.Now().UTC(), Point: p}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.logger.Warn("notify failed", "kind", kind, "error", err)
	}
}

func (s *Session) publishStatus() {
	nose := s.nose.State()
	st := &Status{
		SessionID: s.id,
		Frames:    s.frames,
		EyeStage:  s.eye.State().Stage,
		NoseArmed: nose.Armed,
		Clicks:    s.clicks,
		Moves:     s.moves,
		Velocity:  entity.Point{X: nose.VelocityX, Y: nose.VelocityY},
	}
	if len(s.scores) > 0 {
		st.MeanNoseScore = stat.Mean(s.scores, nil)
	}
	s.status.Store(st)
}

func overlayRects(eye EyeOutcome, nose NoseOutcome) []entity.OverlayRect {
	var rects []entity.OverlayRect
	if eye.Tracked {
		rects = append(rects,
			entity.OverlayRect{Color: entity.ColorSearch, Rect: eye.Window, Label: "eye window"},
			entity.OverlayRect{Color: entity.ColorEye, Rect: eye.Eye, Label: "eye"},
		)
	}
	if nose.Armed {
		rects = append(rects,
			entity.OverlayRect{Color: entity.ColorMatch, Rect: nose.Match, Label: "nose"},
			entity.OverlayRect{Color: entity.ColorSearch, Rect: nose.SearchWindow, Label: "search"},
			entity.OverlayRect{Color: entity.ColorBoundary, Rect: nose.BoundaryWindow, Label: "boundary"},
		)
	}
	return rects
}

// Проверка реализации интерфейса
var _ port.Controls = (*Session)(nil)
