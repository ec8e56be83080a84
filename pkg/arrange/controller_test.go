package arrange

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/deck"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/interact"
	"github.com/matzehuels/nameplate/pkg/layout"
	"github.com/matzehuels/nameplate/pkg/random"
)

type recorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *recorder) listen(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *recorder) all() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

func (r *recorder) count(t Trigger) int {
	n := 0
	for _, f := range r.all() {
		if f.Trigger == t {
			n++
		}
	}
	return n
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append([]Option{WithRandom(random.New(42)), WithListener(rec.listen)}, opts...)
	return New(opts...), rec
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "Name " + string(rune('A'+i%26))
	}
	return out
}

func TestLoadBeforeResize(t *testing.T) {
	c, rec := newTestController(t)

	dropped, err := c.Load(names(6))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if dropped != 0 {
		t.Errorf("Load() dropped = %d, want 0", dropped)
	}

	frames := rec.all()
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	f := frames[0]
	if f.Trigger != TriggerLoad {
		t.Errorf("Trigger = %s, want %s", f.Trigger, TriggerLoad)
	}
	if len(f.Cards) != 6 {
		t.Errorf("len(Cards) = %d, want 6", len(f.Cards))
	}
	if len(f.Transitions) != 0 {
		t.Errorf("unsized board got %d transitions, want none", len(f.Transitions))
	}
	for i, c := range f.Cards {
		if c.ZIndex != i {
			t.Errorf("card %d ZIndex = %d, want %d", i, c.ZIndex, i)
		}
	}
}

func TestResizeArranges(t *testing.T) {
	c, rec := newTestController(t, WithStrategy(layout.Circular))
	if _, err := c.Load(names(4)); err != nil {
		t.Fatal(err)
	}
	before := c.Snapshot()

	f, ok := c.Resize(800, 600)
	if !ok {
		t.Fatal("Resize() = false, want a frame")
	}
	if f.Trigger != TriggerResize || f.Strategy != layout.Circular {
		t.Errorf("frame = %s/%s, want resize/circular", f.Trigger, f.Strategy)
	}
	if len(f.Transitions) != 4 {
		t.Errorf("len(Transitions) = %d, want 4", len(f.Transitions))
	}
	for i, got := range f.Cards {
		if got.ID != before[i].ID || got.Value != before[i].Value {
			t.Errorf("card %d identity changed on resize", i)
		}
		want := layout.Compute(i, 4, 800, 600, layout.Circular, nil)
		if got.X != want.X || got.Y != want.Y {
			t.Errorf("card %d at (%v, %v), want (%v, %v)", i, got.X, got.Y, want.X, want.Y)
		}
	}

	if _, ok := c.Resize(800, 600); ok {
		t.Error("Resize() with unchanged size should not publish")
	}
	if _, ok := c.Resize(0, 600); ok {
		t.Error("Resize() to an empty container should not publish")
	}
	if n := rec.count(TriggerResize); n != 1 {
		t.Errorf("saw %d resize frames, want 1", n)
	}
	if w, h := c.Size(); w != 0 || h != 600 {
		t.Errorf("Size() = (%v, %v), want (0, 600)", w, h)
	}
}

func TestFrameSeqIncreases(t *testing.T) {
	c, rec := newTestController(t)
	c.Load(names(3))
	c.Resize(400, 300)
	c.Refresh()
	c.Refresh()

	var last uint64
	for _, f := range rec.all() {
		if f.Seq <= last {
			t.Errorf("Seq %d not greater than %d", f.Seq, last)
		}
		last = f.Seq
	}
	if cur := c.Current(); cur.Seq != last {
		t.Errorf("Current().Seq = %d, want %d", cur.Seq, last)
	}
}

func TestPinnedStrategy(t *testing.T) {
	c, _ := newTestController(t, WithStrategy(layout.Spiral))
	c.Load(names(5))
	c.Resize(500, 500)
	for range 5 {
		if f := c.Refresh(); f.Strategy != layout.Spiral {
			t.Fatalf("Refresh() strategy = %s, want spiral", f.Strategy)
		}
	}
}

func TestInvalidPinnedStrategyIgnored(t *testing.T) {
	c := New(WithStrategy("hexagon"), WithRandom(random.New(1)))
	if !c.Strategy().Valid() {
		t.Errorf("Strategy() = %q, want a built-in strategy", c.Strategy())
	}
}

func TestRefreshPicksVariedStrategies(t *testing.T) {
	c, _ := newTestController(t)
	c.Load(names(5))
	c.Resize(500, 500)

	seen := make(map[layout.Strategy]bool)
	for range 60 {
		seen[c.Refresh().Strategy] = true
	}
	if len(seen) != len(layout.Strategies) {
		t.Errorf("saw strategies %v, want all %d", seen, len(layout.Strategies))
	}
}

func TestLoadOverflow(t *testing.T) {
	tests := []struct {
		name        string
		overflow    deck.Overflow
		n           int
		wantCards   int
		wantDropped int
		wantErr     bool
	}{
		{"exact deck", deck.OverflowCap, deck.Size, deck.Size, 0, false},
		{"cap drops extras", deck.OverflowCap, 60, deck.Size, 8, false},
		{"reject", deck.OverflowReject, 60, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t, WithOverflow(tt.overflow))
			dropped, err := c.Load(names(tt.n))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("Load() code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
				}
				return
			}
			if dropped != tt.wantDropped {
				t.Errorf("Load() dropped = %d, want %d", dropped, tt.wantDropped)
			}
			if got := len(c.Snapshot()); got != tt.wantCards {
				t.Errorf("len(Snapshot()) = %d, want %d", got, tt.wantCards)
			}
		})
	}
}

func TestRunArrangesAndStops(t *testing.T) {
	c, rec := newTestController(t, WithInterval(5*time.Millisecond))
	c.Load(names(4))
	c.Resize(640, 480)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for rec.count(TriggerTimer) < 2 {
		select {
		case <-deadline:
			t.Fatal("timer never fired twice")
		case <-time.After(time.Millisecond):
		}
	}
	if rec.count(TriggerMount) != 1 {
		t.Errorf("saw %d mount frames, want 1", rec.count(TriggerMount))
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	after := rec.count(TriggerTimer)
	time.Sleep(30 * time.Millisecond)
	if got := rec.count(TriggerTimer); got != after {
		t.Errorf("timer fired %d times after Run returned", got-after)
	}
}

func TestDragThroughController(t *testing.T) {
	c, rec := newTestController(t, WithStrategy(layout.Grid))
	c.Load(names(3))
	c.Resize(900, 600)

	cards := c.Snapshot()
	id := cards[0].ID
	start := cards[0].Pose()

	f, err := c.DragStart(id)
	if err != nil {
		t.Fatalf("DragStart() error: %v", err)
	}
	if f.Mode != "dragging" || f.Target == nil || *f.Target != id {
		t.Errorf("DragStart frame mode=%s target=%v, want dragging %d", f.Mode, f.Target, id)
	}
	if _, err := c.DragMove(5, 5); err != nil {
		t.Fatalf("DragMove() error: %v", err)
	}

	f, err = c.DragEnd(20, -10)
	if err != nil {
		t.Fatalf("DragEnd() error: %v", err)
	}
	if f.Action != ActionDragEnd || f.Trigger != TriggerInteract {
		t.Errorf("frame = %s/%s, want interact/drag_end", f.Trigger, f.Action)
	}
	got := f.Cards[card.IndexOf(f.Cards, id)]
	if got.X != start.X+20 || got.Y != start.Y-10 {
		t.Errorf("dropped at (%v, %v), want (%v, %v)", got.X, got.Y, start.X+20, start.Y-10)
	}
	if got.ZIndex != 3 {
		t.Errorf("ZIndex = %d, want 3", got.ZIndex)
	}
	if c.Mode() != interact.Idle {
		t.Errorf("Mode() = %s, want idle", c.Mode())
	}
	if n := rec.count(TriggerInteract); n != 3 {
		t.Errorf("saw %d interact frames, want 3", n)
	}
}

func TestDragIsAtomic(t *testing.T) {
	c, rec := newTestController(t, WithStrategy(layout.Grid))
	c.Load(names(3))
	c.Resize(900, 600)

	cards := c.Snapshot()
	id, other := cards[0].ID, cards[1].ID
	start, otherStart := cards[0].Pose(), cards[1].Pose()

	// A gesture from another client lands as soon as any frame is seen.
	var once sync.Once
	c.Subscribe(func(Frame) {
		once.Do(func() { c.DragStart(other) })
	})

	f, err := c.Drag(id, 50, 50)
	if err != nil {
		t.Fatalf("Drag() error: %v", err)
	}
	if f.Action != ActionDrag || f.Mode != "idle" {
		t.Errorf("frame = %s/%s, want drag/idle", f.Action, f.Mode)
	}
	got := f.Cards[card.IndexOf(f.Cards, id)]
	if got.X != start.X+50 || got.Y != start.Y+50 || got.ZIndex != 3 {
		t.Errorf("dragged card = (%v, %v) z%d, want (%v, %v) z3", got.X, got.Y, got.ZIndex, start.X+50, start.Y+50)
	}

	now := c.Snapshot()
	if p := now[card.IndexOf(now, other)].Pose(); p != otherStart {
		t.Errorf("other card moved to %+v, want %+v", p, otherStart)
	}
	drags := 0
	for _, f := range rec.all() {
		if f.Action == ActionDrag {
			drags++
		}
	}
	if drags != 1 {
		t.Errorf("published %d drag frames, want 1", drags)
	}
	if c.Mode() != interact.Dragging {
		t.Errorf("Mode() = %s, want dragging from the later gesture", c.Mode())
	}
}

func TestDragErrors(t *testing.T) {
	c, _ := newTestController(t)
	c.Load(names(2))
	c.Resize(400, 300)
	id := c.Snapshot()[1].ID

	if _, err := c.Drag(99, 1, 1); !errors.Is(err, errors.ErrCodeCardNotFound) {
		t.Errorf("Drag(99) error = %v, want CARD_NOT_FOUND", err)
	}

	// An open editor is abandoned by a later drag.
	if _, err := c.Select(id); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Drag(id, 0, 0); err != nil {
		t.Fatalf("Drag() while editing error: %v", err)
	}
	if c.Mode() != interact.Idle {
		t.Errorf("Mode() = %s, want idle", c.Mode())
	}
}

func TestEditThroughController(t *testing.T) {
	c, _ := newTestController(t)
	c.Load([]string{"Ada", "Grace"})
	c.Resize(400, 400)
	id := c.Snapshot()[1].ID

	f, err := c.Select(id)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if f.Mode != "editing" || f.Scratch != "Grace" || f.Origin == nil {
		t.Errorf("Select frame = %+v, want editing Grace with origin", f)
	}
	if _, err := c.Edit("Grace Hopper"); err != nil {
		t.Fatal(err)
	}
	f, err = c.Done()
	if err != nil {
		t.Fatalf("Done() error: %v", err)
	}
	if v := f.Cards[card.IndexOf(f.Cards, id)].Value; v != "Grace Hopper" {
		t.Errorf("Value = %q, want %q", v, "Grace Hopper")
	}
	if f.Scratch != "" || f.Origin != nil || f.Target != nil {
		t.Error("idle frame should carry no gesture state")
	}
}

func TestGestureErrors(t *testing.T) {
	c, rec := newTestController(t)
	c.Load(names(2))
	before := len(rec.all())

	tests := []struct {
		name string
		call func() (Frame, error)
		want errors.Code
	}{
		{"drag unknown card", func() (Frame, error) { return c.DragStart(99) }, errors.ErrCodeCardNotFound},
		{"select unknown card", func() (Frame, error) { return c.Select(-5) }, errors.ErrCodeCardNotFound},
		{"move while idle", func() (Frame, error) { return c.DragMove(1, 1) }, errors.ErrCodeInvalidState},
		{"drop while idle", func() (Frame, error) { return c.DragEnd(1, 1) }, errors.ErrCodeInvalidState},
		{"edit while idle", func() (Frame, error) { return c.Edit("x") }, errors.ErrCodeInvalidState},
		{"done while idle", c.Done, errors.ErrCodeInvalidState},
		{"cancel while idle", c.Cancel, errors.ErrCodeInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
	if got := len(rec.all()); got != before {
		t.Errorf("rejected gestures published %d frames", got-before)
	}
}

func TestLoadResetsGesture(t *testing.T) {
	c, _ := newTestController(t)
	c.Load(names(3))
	if _, err := c.Select(c.Snapshot()[0].ID); err != nil {
		t.Fatal(err)
	}
	c.Load(names(2))
	if c.Mode() != interact.Idle {
		t.Errorf("Mode() after Load = %s, want idle", c.Mode())
	}
}

func TestSubscribeCancel(t *testing.T) {
	c := New(WithRandom(random.New(2)))
	var n int
	cancel := c.Subscribe(func(Frame) { n++ })
	c.Refresh()
	cancel()
	c.Refresh()
	if n != 1 {
		t.Errorf("listener called %d times, want 1", n)
	}
}

func TestListenerMayCallBack(t *testing.T) {
	c := New(WithRandom(random.New(3)))
	var got layout.Strategy
	c.Subscribe(func(f Frame) { got = c.Strategy() })

	done := make(chan struct{})
	go func() {
		c.Refresh()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener calling back into controller deadlocked")
	}
	if !got.Valid() {
		t.Errorf("listener saw strategy %q", got)
	}
}
