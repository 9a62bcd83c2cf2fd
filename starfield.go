// Package starfield animates a field of drifting points that react to the
// pointer, producing a parallax background.
//
// An Engine owns the points and advances them when asked: hosts call Frame
// (or Step and Render) once per display frame, or register the Engine with
// a driver.Driver which does so on a ticker. Nothing runs in the
// background.
package starfield

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/cursor"
	"github.com/plus3/starfield/driver"
	"github.com/plus3/starfield/field"
	"github.com/plus3/starfield/render"
	"github.com/plus3/starfield/sim"
)

var (
	ErrNoSurface = errors.New("starfield: no drawing surface")
	ErrNoSize    = errors.New("starfield: surface size unavailable")
	ErrDestroyed = errors.New("starfield: engine destroyed")
)

// DefaultMaxDelta bounds the time a single frame may cover. Longer gaps,
// such as a suspended window, are simulated as this much time.
const DefaultMaxDelta = 250 * time.Millisecond

// Container reports the extent of the drawing surface. ok is false when the
// surface cannot be resolved.
type Container interface {
	Size() (width, height float64, ok bool)
}

// FixedSize is a Container with a constant extent.
type FixedSize struct {
	Width, Height float64
}

func (f FixedSize) Size() (float64, float64, bool) {
	return f.Width, f.Height, true
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRand replaces the random source, overriding the configured seed.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithMaxDelta overrides DefaultMaxDelta. Zero disables the bound.
func WithMaxDelta(d time.Duration) Option {
	return func(e *Engine) {
		e.maxDelta = d
	}
}

// Engine is a running starfield.
type Engine struct {
	id        uuid.UUID
	logger    *slog.Logger
	cfg       config.Config
	container Container
	surface   render.Surface

	rng      *rand.Rand
	field    *field.Field
	cursor   *cursor.State
	sim      *sim.Simulator
	renderer *render.Renderer
	maxDelta time.Duration

	drewLast  bool
	last      render.Stats
	destroyed bool
	resets    int64
}

// New validates cfg, resolves the surface size and creates the initial
// point set. A missing surface or size is reported as an error and leaves
// nothing running.
func New(cfg config.Config, container Container, surface render.Surface, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("starfield: %w", err)
	}
	if surface == nil {
		return nil, ErrNoSurface
	}
	if container == nil {
		return nil, ErrNoSize
	}
	width, height, ok := container.Size()
	if !ok {
		return nil, ErrNoSize
	}

	e := &Engine{
		id:        uuid.New(),
		logger:    slog.Default(),
		cfg:       cfg,
		container: container,
		surface:   surface,
		cursor:    cursor.New(cfg.MaxMouseSpeed, cfg.MouseSpeedDecay),
		renderer:  render.NewRenderer(),
		maxDelta:  DefaultMaxDelta,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = newRand(cfg.Seed)
	}
	e.logger = e.logger.With(slog.String("instance", e.id.String()))
	e.field = field.New(e.rng)
	e.sim = &sim.Simulator{Jitter: sim.NewJitter(cfg.Jitter, e.rng)}

	if err := e.field.Initialize(cfg.NumDots, width, height, cfg); err != nil {
		return nil, fmt.Errorf("starfield: %w", err)
	}
	if _, known := e.renderer.DotColor(&e.cfg); !known {
		e.logger.Warn("unrecognized dot color, using fallback", slog.String("color", cfg.DotColor))
	}

	e.logger.Debug("starfield initialized",
		slog.Int("points", cfg.NumDots),
		slog.Float64("width", width),
		slog.Float64("height", height))
	return e, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ID identifies the engine in log records.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Config returns the active configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Points exposes the current point set. Callers must not retain it across
// configuration changes, which replace it.
func (e *Engine) Points() []field.Point {
	return e.field.Points()
}

// Size returns the surface extent the points live on.
func (e *Engine) Size() field.Vec2 {
	return e.field.Size()
}

// Cursor returns a snapshot of the pointer state.
func (e *Engine) Cursor() cursor.State {
	return e.cursor.Snapshot()
}

// LastRender returns the shape counts of the most recent Render.
func (e *Engine) LastRender() render.Stats {
	return e.last
}

// Resets counts points whose state became non-finite and was repaired.
func (e *Engine) Resets() int64 {
	return e.resets
}

// Step advances every point by elapsed time.
func (e *Engine) Step(elapsed time.Duration) error {
	if e.destroyed {
		return ErrDestroyed
	}

	dt := sim.FrameDelta(e.clampDelta(elapsed))
	if n := e.sim.Step(e.field.Points(), sim.Input{
		Config: e.cfg,
		Cursor: e.cursor.Snapshot(),
		Size:   e.field.Size(),
		DT:     dt,
	}); n > 0 {
		e.resets += int64(n)
		e.logger.Warn("reset non-finite points", slog.Int("count", n))
	}
	e.cursor.Step(dt)
	return nil
}

// Render draws the background and every point. An engine that has nothing
// to draw issues no commands, except one clearing pass after its last
// points disappeared.
func (e *Engine) Render(elapsed time.Duration) (render.Stats, error) {
	if e.destroyed {
		return render.Stats{}, ErrDestroyed
	}

	points := e.field.Points()
	if len(points) == 0 {
		if e.drewLast {
			e.renderer.Background(e.surface, &e.cfg)
			e.drewLast = false
		}
		e.last = render.Stats{}
		return e.last, nil
	}

	e.renderer.Background(e.surface, &e.cfg)
	stats := e.renderer.Render(e.surface, points, &e.cfg, e.clampDelta(elapsed))
	e.drewLast = true
	e.last = stats
	return stats, nil
}

func (e *Engine) clampDelta(elapsed time.Duration) time.Duration {
	if elapsed < 0 {
		return 0
	}
	if e.maxDelta > 0 && elapsed > e.maxDelta {
		return e.maxDelta
	}
	return elapsed
}

// Frame steps and renders once.
func (e *Engine) Frame(elapsed time.Duration) (render.Stats, error) {
	if err := e.Step(elapsed); err != nil {
		return render.Stats{}, err
	}
	return e.Render(elapsed)
}

// Execute implements driver.System.
func (e *Engine) Execute(frame *driver.Frame) {
	if _, err := e.Frame(frame.Elapsed); err != nil && !errors.Is(err, ErrDestroyed) {
		e.logger.Error("frame failed", slog.Any("error", err))
	}
}

// Release implements driver.Releaser.
func (e *Engine) Release() {
	e.Destroy()
}

// UpdateConfig applies a partial configuration change. The point set is
// rebuilt only when the change alters its shape or the seed. An invalid patch is
// rejected and leaves the engine untouched.
func (e *Engine) UpdateConfig(p config.Patch) (recreated bool, err error) {
	if e.destroyed {
		return false, ErrDestroyed
	}

	next, recreate, err := e.cfg.Apply(p)
	if err != nil {
		e.logger.Warn("rejected configuration update", slog.Any("error", err))
		return false, err
	}

	reseed := next.Seed != e.cfg.Seed
	if recreate || reseed {
		rng, f := e.rng, e.field
		if reseed {
			rng = newRand(next.Seed)
			f = field.New(rng)
		}
		size := e.field.Size()
		if err := f.Initialize(next.NumDots, size.X, size.Y, next); err != nil {
			return false, fmt.Errorf("starfield: %w", err)
		}
		if f != e.field {
			e.field.Release()
		}
		e.rng, e.field = rng, f
		recreate = true
		e.logger.Debug("recreated points", slog.Int("points", next.NumDots), slog.Bool("reseeded", reseed))
	}
	if reseed || next.Jitter != e.cfg.Jitter {
		e.sim.Jitter = sim.NewJitter(next.Jitter, e.rng)
	}
	e.cursor.Configure(next.MaxMouseSpeed, next.MouseSpeedDecay)

	if _, known := e.renderer.DotColor(&next); !known && next.DotColor != e.cfg.DotColor {
		e.logger.Warn("unrecognized dot color, using fallback", slog.String("color", next.DotColor))
	}
	e.cfg = next
	return recreate, nil
}

// Resize moves the points onto a new surface extent. Hosts should debounce
// bursts of resize events, see driver.Debouncer.
func (e *Engine) Resize(width, height float64) error {
	if e.destroyed {
		return ErrDestroyed
	}
	if err := e.field.Resize(width, height); err != nil {
		return fmt.Errorf("starfield: %w", err)
	}
	e.logger.Debug("resized", slog.Float64("width", width), slog.Float64("height", height))
	return nil
}

// Refit re-reads the container size and resizes when it changed.
func (e *Engine) Refit() error {
	width, height, ok := e.container.Size()
	if !ok {
		return ErrNoSize
	}
	if size := e.field.Size(); size.X == width && size.Y == height {
		return nil
	}
	return e.Resize(width, height)
}

// PointerEnter, PointerLeave and PointerMove feed pointer events.
func (e *Engine) PointerEnter() {
	e.cursor.Enter()
}

func (e *Engine) PointerLeave() {
	e.cursor.Leave()
}

func (e *Engine) PointerMove(x, y float64) {
	e.cursor.Move(x, y)
}

// Destroy releases the points. Every later call reports ErrDestroyed.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.field.Release()
	e.logger.Debug("starfield destroyed")
}
