package app

import (
	"context"
	"sync"

	"headpointer/internal/domain/entity"
)

const background = 20

func flatFrame(w, h int, v uint8) *entity.Frame {
	f := entity.NewFrame(w, h)
	f.Fill(f.Bounds(), v)
	return f
}

// paintPatch заливает область неповторяющейся текстурой со значениями 40..239
func paintPatch(f *entity.Frame, r entity.Rect) {
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			f.Set(r.X+x, r.Y+y, uint8((x*x*3+y*5+x*y*7+y*y*11)%200+40))
		}
	}
}

func brighten(f *entity.Frame, r entity.Rect, delta uint8) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			f.Set(x, y, f.At(x, y)+delta)
		}
	}
}

var (
	leftEye  = entity.Rect{X: 40, Y: 50, Width: 20, Height: 20}
	rightEye = entity.Rect{X: 100, Y: 50, Width: 20, Height: 20}
	// центр левой компоненты (50,60), окно глаза 15×15 вокруг него
	eyeRect   = entity.Rect{X: 43, Y: 53, Width: 15, Height: 15}
	blinkBlob = entity.Rect{X: 45, Y: 55, Width: 10, Height: 10}
)

// eyeScene кадры: фон, появление пары глаз, покой, моргание
func eyeScene() []*entity.Frame {
	still := flatFrame(160, 120, background)

	eyes := still.Clone()
	paintPatch(eyes, leftEye)
	paintPatch(eyes, rightEye)

	blink := eyes.Clone()
	brighten(blink, blinkBlob, 10)

	return []*entity.Frame{still, eyes, eyes.Clone(), blink}
}

var nosePatch = entity.Rect{X: 55, Y: 55, Width: 20, Height: 20}

// noseFrame кадр с текстурой носа, сдвинутой на dx, dy
func noseFrame(dx, dy int) *entity.Frame {
	f := flatFrame(200, 150, 0)
	r := nosePatch
	r.X += dx
	r.Y += dy
	paintPatch(f, r)
	return f
}

// носовой образец берётся в точке (65,65): угол (60,60)
var noseCenter = entity.Point{X: 65, Y: 65}

type fakeSource struct {
	frames []*entity.Frame
	next   int
	closed bool
}

func (s *fakeSource) NextFrame(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.frames) {
		return nil, entity.ErrEndOfStream
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type fakePointer struct {
	moves  []entity.Point
	clicks int
}

func (p *fakePointer) MoveCursorBy(ctx context.Context, dx, dy int) error {
	p.moves = append(p.moves, entity.Point{X: dx, Y: dy})
	return nil
}

func (p *fakePointer) ClickPrimaryButton(ctx context.Context) error {
	p.clicks++
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []entity.EventKind
}

func (n *fakeNotifier) Notify(ctx context.Context, ev entity.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev.Kind)
	return nil
}

func (n *fakeNotifier) kinds() []entity.EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.EventKind(nil), n.events...)
}

type fakeOverlay struct {
	calls int
	last  []entity.OverlayRect
}

func (o *fakeOverlay) DrawOverlay(ctx context.Context, frame *entity.Frame, rects []entity.OverlayRect) error {
	o.calls++
	o.last = rects
	return nil
}
