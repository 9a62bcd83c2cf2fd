package driver

import "time"

// FramePeriod is the elapsed time a DeltaTime of 1 stands for.
const FramePeriod = time.Second / 60

// Frame is handed to every system during one pass.
type Frame struct {
	Elapsed time.Duration
	// DeltaTime is Elapsed measured in 60 Hz frames.
	DeltaTime float64
	Index     int64
	Commands  *Commands
}

func newFrame(elapsed time.Duration, index int64, commands *Commands) *Frame {
	return &Frame{
		Elapsed:   elapsed,
		DeltaTime: float64(elapsed) / float64(FramePeriod),
		Index:     index,
		Commands:  commands,
	}
}

// Commands buffers work that must not run while systems iterate, such as
// replacing the point set. It is flushed at the end of every frame.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs every queued function in order and resets the buffer.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
