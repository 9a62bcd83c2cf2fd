package driver_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/starfield/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSystem struct {
	ExecuteCount int
	LastDelta    float64
	Released     bool
	order        *[]string
	name         string
}

func (s *countingSystem) Execute(frame *driver.Frame) {
	s.ExecuteCount++
	s.LastDelta = frame.DeltaTime
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
}

func (s *countingSystem) Release() {
	s.Released = true
}

func TestDriver(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		var order []string
		d := driver.New()
		d.Register(&countingSystem{name: "motion", order: &order})
		d.Register(&countingSystem{name: "render", order: &order})

		d.Once(driver.FramePeriod)
		d.Once(driver.FramePeriod)

		assert.Equal(t, []string{"motion", "render", "motion", "render"}, order)
	})

	t.Run("delta time is measured in frames", func(t *testing.T) {
		sys := &countingSystem{}
		d := driver.New()
		d.Register(sys)

		d.Once(2 * driver.FramePeriod)
		if sys.LastDelta < 1.999 || sys.LastDelta > 2.001 {
			t.Errorf("expected delta of 2 frames, got %f", sys.LastDelta)
		}
	})

	t.Run("pause and resume", func(t *testing.T) {
		sys := &countingSystem{}
		d := driver.New()
		d.Register(sys)

		d.Pause()
		assert.True(t, d.Paused())
		assert.False(t, d.Once(driver.FramePeriod))
		assert.Equal(t, 0, sys.ExecuteCount)

		d.Resume()
		assert.True(t, d.Once(driver.FramePeriod))
		assert.Equal(t, 1, sys.ExecuteCount)

		stats := d.GetStats()
		assert.Equal(t, int64(1), stats.FrameCount)
		assert.Equal(t, int64(1), stats.Skipped)
	})

	t.Run("stop releases systems once", func(t *testing.T) {
		sys := &countingSystem{}
		d := driver.New()
		d.Register(sys)

		d.Stop()
		d.Stop()
		assert.True(t, sys.Released)
		assert.True(t, d.Stopped())
		assert.False(t, d.Once(driver.FramePeriod))
		assert.Equal(t, 0, sys.ExecuteCount)
	})

	t.Run("posted work runs before the frame", func(t *testing.T) {
		var order []string
		d := driver.New()
		d.Register(&countingSystem{name: "system", order: &order})

		d.Post(func() { order = append(order, "posted") })
		d.Once(driver.FramePeriod)
		d.Once(driver.FramePeriod)

		assert.Equal(t, []string{"posted", "system", "system"}, order)
	})

	t.Run("deferred commands run after every system", func(t *testing.T) {
		var order []string
		d := driver.New()
		d.Register(deferringSystem{order: &order})
		d.Register(&countingSystem{name: "second", order: &order})

		d.Once(driver.FramePeriod)
		assert.Equal(t, []string{"first", "second", "deferred"}, order)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		sys := &countingSystem{}
		d := driver.New()
		d.Register(sys)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan bool)
		go func() {
			d.Run(ctx, time.Millisecond)
			done <- true
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancellation")
		}
		assert.Greater(t, sys.ExecuteCount, 0)
	})
}

type deferringSystem struct {
	order *[]string
}

func (s deferringSystem) Execute(frame *driver.Frame) {
	*s.order = append(*s.order, "first")
	frame.Commands.Defer(func() { *s.order = append(*s.order, "deferred") })
}

func TestStats(t *testing.T) {
	d := driver.New()
	d.Register(&countingSystem{})
	d.Register(deferringSystem{order: new([]string)})

	for i := 0; i < 5; i++ {
		d.Once(driver.FramePeriod)
	}

	stats := d.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, "countingSystem", stats.Systems[0].Name)
	assert.Equal(t, "deferringSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(5), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
	}
}

func TestDebouncer(t *testing.T) {
	start := time.Unix(0, 0)
	d := driver.NewDebouncer(100*time.Millisecond, 640, 480)

	d.Observe(640, 480, start)
	_, _, ok := d.Ready(start.Add(time.Second))
	assert.False(t, ok, "unchanged size must not fire")

	d.Observe(700, 500, start)
	d.Observe(800, 600, start.Add(50*time.Millisecond))
	_, _, ok = d.Ready(start.Add(120 * time.Millisecond))
	assert.False(t, ok, "burst restarts the quiet period")

	w, h, ok := d.Ready(start.Add(150 * time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	_, _, ok = d.Ready(start.Add(time.Second))
	assert.False(t, ok, "settled size fires once")
}
