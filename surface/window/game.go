package window

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/starfield"
	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/debugui"
	debugui_ebiten "github.com/plus3/starfield/debugui/ebiten"
	"github.com/plus3/starfield/driver"
	"github.com/plus3/starfield/surface"
)

// ResizeQuiet is how long the window size must be stable before the points
// are rescaled.
const ResizeQuiet = 150 * time.Millisecond

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	// Debug shows the settings and performance panels. F1 toggles them.
	Debug  bool
	Logger *slog.Logger
}

// Game implements ebiten.Game around a starfield engine.
type Game struct {
	engine   *starfield.Engine
	driver   *driver.Driver
	surface  *Surface
	tracker  *surface.Tracker
	debounce *driver.Debouncer
	logger   *slog.Logger

	overlay *debugui.Overlay
	imgui   *debugui_ebiten.ImguiBackend
	perf    *debugui.PerformancePanel

	touchIDs    []ebiten.TouchID
	touchPoints []surface.TouchPoint

	width, height int
	last          time.Time
	quit          atomic.Bool
}

// NewGame creates the engine and wires it to a driver. The window itself
// is opened by Run.
func NewGame(cfg config.Config, opts Options) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("window: invalid size %dx%d", opts.Width, opts.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		driver:   driver.New(),
		surface:  NewSurface(opts.Width, opts.Height),
		debounce: driver.NewDebouncer(ResizeQuiet, opts.Width, opts.Height),
		logger:   logger,
		width:    opts.Width,
		height:   opts.Height,
	}

	engine, err := starfield.New(cfg,
		starfield.FixedSize{Width: float64(opts.Width), Height: float64(opts.Height)},
		g.surface, starfield.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	g.engine = engine
	g.tracker = surface.NewTracker(engine)
	g.driver.Register(engine)

	if opts.Debug {
		g.imgui = debugui_ebiten.NewImguiBackend(opts.Title, opts.Width, opts.Height)
		g.perf = debugui.NewPerformancePanel(120)
		g.overlay = &debugui.Overlay{}

		tuning := debugui.NewTuningPanel(func(p config.Patch) error {
			_, err := g.engine.UpdateConfig(p)
			return err
		})
		g.overlay.Add(func() { tuning.Render(g.engine.Config()) })
		g.overlay.Add(func() {
			g.perf.Render(*g.driver.GetStats(), debugui.FieldStats{
				Points: len(g.engine.Points()),
				Resets: g.engine.Resets(),
				Width:  g.engine.Size().X,
				Height: g.engine.Size().Y,
				Render: g.engine.LastRender(),
			})
		})
		g.driver.Register(g.overlay)
	}

	return g, nil
}

// Engine returns the starfield shown by the window.
func (g *Game) Engine() *starfield.Engine {
	return g.engine
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g, err := NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.driver.Stop()

	stop := context.AfterFunc(ctx, func() { g.quit.Store(true) })
	defer stop()

	g.logger.Info("window opened",
		slog.String("instance", g.engine.ID().String()),
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height))

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	if g.quit.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	typing := g.overlay != nil && g.overlay.Input.WantCaptureKeyboard
	if g.overlay != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Hidden = !g.overlay.Hidden
	}
	if !typing && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.driver.Paused() {
			g.driver.Resume()
		} else {
			g.driver.Pause()
		}
	}

	now := time.Now()
	elapsed := driver.FramePeriod
	if !g.last.IsZero() {
		elapsed = now.Sub(g.last)
	}
	g.last = now

	g.pollPointer()
	g.refit(now)

	if g.perf != nil {
		g.perf.Record(elapsed)
	}
	if g.imgui != nil {
		g.imgui.BeginFrame()
	}
	if !g.driver.Once(elapsed) && g.overlay != nil && !g.overlay.Hidden {
		// Keep the panels up while paused.
		for _, item := range g.overlay.Items {
			item.Render()
		}
	}
	if g.imgui != nil {
		g.imgui.EndFrame()
	}
	return nil
}

func (g *Game) pollPointer() {
	if g.overlay != nil && !g.overlay.Hidden && g.overlay.Input.WantCaptureMouse {
		g.tracker.Mouse(0, 0, false)
		return
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	g.touchPoints = g.touchPoints[:0]
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.touchPoints = append(g.touchPoints, surface.TouchPoint{ID: int(id), X: float64(x), Y: float64(y)})
	}
	g.tracker.Touches(g.touchPoints)

	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < g.width && y < g.height
	g.tracker.Mouse(float64(x), float64(y), inside)
}

// refit rescales the points once the window size settles. A field that is
// not responsive keeps its original extent.
func (g *Game) refit(now time.Time) {
	if !g.engine.Config().Responsive {
		return
	}
	g.debounce.Observe(g.width, g.height, now)
	w, h, ok := g.debounce.Ready(now)
	if !ok {
		return
	}
	g.surface.Resize(w, h)
	if err := g.engine.Resize(float64(w), float64(h)); err != nil {
		g.logger.Warn("resize failed", slog.Any("error", err))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.surface.Image(), nil)
	if g.imgui != nil && !g.overlay.Hidden {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
