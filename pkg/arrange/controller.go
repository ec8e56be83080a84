package arrange

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/deck"
	"github.com/matzehuels/nameplate/pkg/interact"
	"github.com/matzehuels/nameplate/pkg/layout"
	"github.com/matzehuels/nameplate/pkg/observability"
	"github.com/matzehuels/nameplate/pkg/random"
)

// DefaultInterval is how often Run re-arranges the board.
const DefaultInterval = 5 * time.Minute

// Trigger says why a frame was published.
type Trigger string

const (
	TriggerLoad     Trigger = "load"
	TriggerMount    Trigger = "mount"
	TriggerResize   Trigger = "resize"
	TriggerTimer    Trigger = "timer"
	TriggerRefresh  Trigger = "refresh"
	TriggerInteract Trigger = "interact"
)

// Frame is the board state handed to the rendering layer after a change.
//
// Frames are published outside the controller lock, so concurrent events
// may deliver them out of order; consumers should drop frames whose Seq is
// not newer than the last one drawn.
type Frame struct {
	Seq         uint64          `json:"seq"`
	Trigger     Trigger         `json:"trigger"`
	Action      string          `json:"action,omitempty"`
	Strategy    layout.Strategy `json:"strategy"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Cards       []card.Card     `json:"cards"`
	Transitions []Transition    `json:"transitions,omitempty"`
	Mode        string          `json:"mode"`
	Target      *int            `json:"target,omitempty"`
	Scratch     string          `json:"scratch,omitempty"`
	Origin      *card.Pose      `json:"origin,omitempty"`
}

// Listener receives published frames. It runs on the goroutine that caused
// the change and must not block.
type Listener func(Frame)

// Option configures a Controller.
type Option func(*Controller)

// WithRandom sets the random source for dealing, strategy choice, entry
// poses and grid jitter.
func WithRandom(rng random.Source) Option { return func(c *Controller) { c.rng = rng } }

// WithInterval sets the timer period used by Run.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithListener registers a frame listener at construction.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.Subscribe(l) }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithOverflow sets the policy for name lists longer than the deck.
func WithOverflow(o deck.Overflow) Option { return func(c *Controller) { c.overflow = o } }

// WithStrategy pins the strategy used by every trigger instead of a random
// pick. Invalid strategies are ignored.
func WithStrategy(s layout.Strategy) Option {
	return func(c *Controller) {
		if s.Valid() {
			c.pinned = s
		}
	}
}

// Controller owns one live board. All methods are safe for concurrent use;
// events are applied one at a time.
type Controller struct {
	mu       sync.Mutex
	cards    []card.Card
	machine  interact.Machine
	width    float64
	height   float64
	strategy layout.Strategy
	pinned   layout.Strategy
	rng      random.Source
	interval time.Duration
	overflow deck.Overflow
	logger   *log.Logger
	seq      uint64
	ctx      context.Context

	lmu       sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// New returns an empty controller with no cards and an unknown container
// size.
func New(opts ...Option) *Controller {
	c := &Controller{
		interval:  DefaultInterval,
		logger:    log.New(io.Discard),
		ctx:       context.Background(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng, _ = random.Seeded(0)
	}
	c.strategy = c.pick()
	return c
}

// Subscribe registers l and returns a function that removes it.
func (c *Controller) Subscribe(l Listener) (cancel func()) {
	c.lmu.Lock()
	defer c.lmu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	return func() {
		c.lmu.Lock()
		defer c.lmu.Unlock()
		delete(c.listeners, id)
	}
}

// Load replaces the whole card set with a fresh deal of names, resets any
// gesture and picks a new strategy. The set is arranged at once when the
// container size is known. It returns the number of names dropped by the
// overflow policy.
func (c *Controller) Load(names []string) (dropped int, err error) {
	c.mu.Lock()
	cards, dropped, err := deck.Deal(names, c.rng, c.overflow)
	if err != nil {
		c.mu.Unlock()
		return 0, err
	}
	if dropped > 0 {
		c.logger.Warn("Too many names, extra names dropped", "dealt", len(cards), "dropped", dropped)
	}
	c.cards = cards
	c.machine.Reset()
	f := c.retrigger(TriggerLoad)
	c.mu.Unlock()

	c.emit(f)
	return dropped, nil
}

// Resize records the container size. When the size changed and both sides
// are positive, a new strategy is picked and the board re-arranged.
func (c *Controller) Resize(width, height float64) (Frame, bool) {
	c.mu.Lock()
	if width == c.width && height == c.height {
		c.mu.Unlock()
		return Frame{}, false
	}
	c.width, c.height = width, height
	if !c.sized() {
		c.mu.Unlock()
		return Frame{}, false
	}
	f := c.retrigger(TriggerResize)
	c.mu.Unlock()

	c.emit(f)
	return f, true
}

// Refresh picks a new strategy and re-arranges the board.
func (c *Controller) Refresh() Frame {
	return c.trigger(TriggerRefresh)
}

// Run arranges the board once, then again every interval until ctx is done.
// The timer is stopped before Run returns, so nothing fires afterwards.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.ctx = context.Background()
		c.mu.Unlock()
	}()

	c.trigger(TriggerMount)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.trigger(TriggerTimer)
		}
	}
}

func (c *Controller) trigger(t Trigger) Frame {
	c.mu.Lock()
	f := c.retrigger(t)
	c.mu.Unlock()

	c.emit(f)
	return f
}

// retrigger picks a strategy and re-arranges if the size is known.
// Callers hold c.mu.
func (c *Controller) retrigger(t Trigger) Frame {
	c.strategy = c.pick()
	if !c.sized() || len(c.cards) == 0 {
		return c.publish(c.snapshot(t, "", nil))
	}

	start := time.Now()
	ts := Rearrange(c.cards, c.width, c.height, c.strategy, c.rng)
	elapsed := time.Since(start)

	observability.Arrange().OnArrange(c.ctx, string(c.strategy), len(c.cards), string(t), elapsed)
	c.logger.Debug("Arranged cards", "trigger", t, "strategy", c.strategy, "cards", len(c.cards),
		"size", [2]float64{c.width, c.height}, "took", elapsed)
	return c.publish(c.snapshot(t, "", ts))
}

func (c *Controller) pick() layout.Strategy {
	if c.pinned != "" {
		return c.pinned
	}
	return ChooseStrategy(c.rng)
}

func (c *Controller) sized() bool { return c.width > 0 && c.height > 0 }

// snapshot copies the board into a frame. Callers hold c.mu.
func (c *Controller) snapshot(t Trigger, action string, ts []Transition) Frame {
	f := Frame{
		Seq:         c.seq,
		Trigger:     t,
		Action:      action,
		Strategy:    c.strategy,
		Width:       c.width,
		Height:      c.height,
		Cards:       card.Clone(c.cards),
		Transitions: ts,
		Mode:        c.machine.Mode().String(),
	}
	if f.Cards == nil {
		f.Cards = []card.Card{}
	}
	if id, ok := c.machine.Target(); ok {
		f.Target = &id
	}
	if c.machine.Mode() == interact.Editing {
		origin := c.machine.Origin()
		f.Scratch = c.machine.Scratch()
		f.Origin = &origin
	}
	return f
}

// publish stamps f with the next sequence number. Callers hold c.mu.
func (c *Controller) publish(f Frame) Frame {
	c.seq++
	f.Seq = c.seq
	return f
}

func (c *Controller) emit(f Frame) {
	c.lmu.RLock()
	ls := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.lmu.RUnlock()

	for _, l := range ls {
		l(f)
	}
}

// Current returns the board as it is now, without publishing it.
func (c *Controller) Current() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot("", "", nil)
}

// Snapshot returns a copy of the cards.
func (c *Controller) Snapshot() []card.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	return card.Clone(c.cards)
}

// Strategy returns the strategy of the most recent trigger.
func (c *Controller) Strategy() layout.Strategy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy
}

// Size returns the last container size given to Resize.
func (c *Controller) Size() (width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Mode returns the gesture state.
func (c *Controller) Mode() interact.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Mode()
}

// Interval returns the timer period used by Run.
func (c *Controller) Interval() time.Duration { return c.interval }
