// Package render turns a particle field into drawing commands on a Surface.
package render

// Surface is the drawing target. Coordinates are in surface units with the
// origin at the top left corner. Implementations blend fills using the
// colour alpha.
type Surface interface {
	Clear()
	FillBackground(c Color)
	FillCircle(x, y, r float64, c Color)
	// FillEllipse draws an ellipse centred at (x, y) whose rx semi-axis is
	// rotated by rotation radians from the positive x axis.
	FillEllipse(x, y, rx, ry, rotation float64, c Color)
}

// Call is a single recorded drawing command.
type Call struct {
	Op                  string
	X, Y, RX, RY, Angle float64
	Color               Color
}

const (
	OpClear      = "clear"
	OpBackground = "background"
	OpCircle     = "circle"
	OpEllipse    = "ellipse"
)

// Recorder is a Surface that keeps every command it receives. It backs
// headless runs and tests.
type Recorder struct {
	Calls []Call
	// Discard drops commands after counting them.
	Discard bool
	counts  map[string]int
}

func (r *Recorder) record(c Call) {
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[c.Op]++
	if !r.Discard {
		r.Calls = append(r.Calls, c)
	}
}

func (r *Recorder) Clear() {
	r.record(Call{Op: OpClear})
}

func (r *Recorder) FillBackground(c Color) {
	r.record(Call{Op: OpBackground, Color: c})
}

func (r *Recorder) FillCircle(x, y, radius float64, c Color) {
	r.record(Call{Op: OpCircle, X: x, Y: y, RX: radius, RY: radius, Color: c})
}

func (r *Recorder) FillEllipse(x, y, rx, ry, rotation float64, c Color) {
	r.record(Call{Op: OpEllipse, X: x, Y: y, RX: rx, RY: ry, Angle: rotation, Color: c})
}

// Count returns how many commands of kind op were received.
func (r *Recorder) Count(op string) int {
	return r.counts[op]
}

// Total returns the number of commands received.
func (r *Recorder) Total() int {
	n := 0
	for _, c := range r.counts {
		n += c
	}
	return n
}

// Reset forgets every recorded command.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	clear(r.counts)
}
