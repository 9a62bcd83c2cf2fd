// Package driver advances registered systems once per display frame. It
// owns pause, resume and teardown so hosts and tests can drive a starfield
// explicitly instead of relying on a process wide animation callback.
package driver

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// System is advanced once per frame.
type System interface {
	Execute(frame *Frame)
}

// Releaser is implemented by systems holding resources that must be freed
// when the driver stops.
type Releaser interface {
	Release()
}

// Stats provides statistics about driver execution.
type Stats struct {
	SystemCount int
	FrameCount  int64
	Skipped     int64
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Driver runs systems in registration order.
type Driver struct {
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands

	mu     sync.Mutex
	posted []func()

	paused   atomic.Bool
	stopped  atomic.Bool
	frames   int64
	skipped  int64
	released bool
}

func New() *Driver {
	return &Driver{
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// Register appends a system.
func (d *Driver) Register(system System) {
	d.systems = append(d.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	d.systemStats = append(d.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Post queues fn to run on the frame goroutine before the next frame. It
// is safe to call from any goroutine.
func (d *Driver) Post(fn func()) {
	d.mu.Lock()
	d.posted = append(d.posted, fn)
	d.mu.Unlock()
}

// Once runs a single frame covering elapsed time. It reports whether the
// systems were executed: a paused or stopped driver only drains posted work.
func (d *Driver) Once(elapsed time.Duration) bool {
	if d.stopped.Load() {
		return false
	}

	d.drainPosted()

	if d.paused.Load() {
		d.skipped++
		return false
	}

	frame := newFrame(elapsed, d.frames, d.commands)
	for i, system := range d.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := d.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush()
	d.frames++
	return true
}

// Run executes frames at the given interval until the context is cancelled
// or the driver is stopped. Time spent paused does not count towards the
// next frame.
func (d *Driver) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if d.stopped.Load() {
				return
			}
			elapsed := now.Sub(lastTime)
			lastTime = now
			d.Once(elapsed)
		}
	}
}

// Pause stops executing systems until Resume.
func (d *Driver) Pause() {
	d.paused.Store(true)
}

func (d *Driver) Resume() {
	d.paused.Store(false)
}

func (d *Driver) Paused() bool {
	return d.paused.Load()
}

// Stop ends the driver permanently and releases every system that holds
// resources. It must be called from the frame goroutine.
func (d *Driver) Stop() {
	d.stopped.Store(true)
	if d.released {
		return
	}
	d.released = true

	for _, system := range d.systems {
		if r, ok := system.(Releaser); ok {
			r.Release()
		}
	}
}

func (d *Driver) Stopped() bool {
	return d.stopped.Load()
}

func (d *Driver) drainPosted() {
	d.mu.Lock()
	posted := d.posted
	d.posted = nil
	d.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
}

// GetStats returns statistics about system execution.
func (d *Driver) GetStats() *Stats {
	stats := &Stats{
		SystemCount: len(d.systems),
		FrameCount:  d.frames,
		Skipped:     d.skipped,
		Systems:     make([]SystemStats, len(d.systemStats)),
	}

	for i, internal := range d.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
