package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/starfield"
	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/driver"
	"github.com/plus3/starfield/surface"
)

// ResizeQuiet is how long the terminal size must be stable before the
// points are rescaled.
const ResizeQuiet = 150 * time.Millisecond

// Options configures the terminal host.
type Options struct {
	// FPS is the target frame rate.
	FPS    int
	Scale  float64
	Logger *slog.Logger
}

// Host runs an engine on a tcell screen. Input is read on its own
// goroutine and posted to the frame goroutine.
type Host struct {
	screen   tcell.Screen
	surface  *Surface
	engine   *starfield.Engine
	driver   *driver.Driver
	tracker  *surface.Tracker
	debounce *driver.Debouncer
	logger   *slog.Logger
	cancel   context.CancelFunc
}

// flusher copies the rendered buffer to the screen after the engine ran.
type flusher struct {
	host *Host
}

func (f flusher) Execute(frame *driver.Frame) {
	f.host.surface.Flush(f.host.screen)
	f.host.refit(time.Now())
}

// NewHost creates the engine on an initialized screen.
func NewHost(screen tcell.Screen, cfg config.Config, opts Options) (*Host, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cols, rows := screen.Size()
	h := &Host{
		screen:   screen,
		surface:  NewSurface(cols, rows, opts.Scale),
		driver:   driver.New(),
		debounce: driver.NewDebouncer(ResizeQuiet, cols, rows),
		logger:   logger,
		cancel:   func() {},
	}

	engine, err := starfield.New(cfg, h.surface, h.surface, starfield.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	h.engine = engine
	h.tracker = surface.NewTracker(engine)
	h.driver.Register(engine)
	h.driver.Register(flusher{host: h})
	return h, nil
}

// Engine returns the starfield shown by the host.
func (h *Host) Engine() *starfield.Engine {
	return h.engine
}

// Driver returns the driver advancing the engine.
func (h *Host) Driver() *driver.Driver {
	return h.driver
}

// Run opens the terminal and blocks until ctx is cancelled or the user
// quits with Escape, q or Ctrl-C.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	h, err := NewHost(screen, cfg, opts)
	if err != nil {
		return err
	}
	return h.Run(ctx, opts.FPS)
}

// Run drives frames at fps until ctx is cancelled or the user quits.
func (h *Host) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	ctx, h.cancel = context.WithCancel(ctx)
	defer h.cancel()
	defer h.driver.Stop()

	go h.pollEvents(ctx)

	h.logger.Info("terminal host started",
		slog.String("instance", h.engine.ID().String()),
		slog.Int("fps", fps))
	h.driver.Run(ctx, time.Second/time.Duration(fps))
	return nil
}

func (h *Host) pollEvents(ctx context.Context) {
	for ctx.Err() == nil {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		h.driver.Post(func() { h.HandleEvent(ev) })
	}
}

// HandleEvent applies one terminal event. It must run on the frame
// goroutine.
func (h *Host) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			h.cancel()
		case ev.Rune() == ' ':
			if h.driver.Paused() {
				h.driver.Resume()
			} else {
				h.driver.Pause()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		cols, rows := h.screen.Size()
		inside := col >= 0 && row >= 0 && col < cols && row < rows
		x, y := h.surface.ToSurface(col, row)
		h.tracker.Mouse(x, y, inside)

	case *tcell.EventFocus:
		if !ev.Focused {
			h.tracker.Mouse(0, 0, false)
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.debounce.Observe(cols, rows, time.Now())
		h.screen.Sync()
	}
}

// refit applies a settled terminal size. A field that is not responsive
// keeps its extent and only the visible grid changes.
func (h *Host) refit(now time.Time) {
	cols, rows, ok := h.debounce.Ready(now)
	if !ok {
		return
	}
	h.surface.Resize(cols, rows)
	if !h.engine.Config().Responsive {
		return
	}
	if err := h.engine.Refit(); err != nil {
		h.logger.Warn("resize failed", slog.Any("error", err))
	}
}
