// Package surface holds what the window, terminal and raster hosts share:
// turning raw mouse and touch input into pointer enter, move and leave
// events.
package surface

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/starfield/field"
)

// Sink receives pointer events. *starfield.Engine implements it.
type Sink interface {
	PointerEnter()
	PointerLeave()
	PointerMove(x, y float64)
}

// TouchPoint is one active touch.
type TouchPoint struct {
	ID   int
	X, Y float64
}

const noTouch = -1

// Tracker derives pointer events from polled input. The oldest active
// touch steers the pointer; while any touch is down mouse input is
// ignored.
type Tracker struct {
	sink Sink

	over  bool
	moved bool
	last  field.Vec2

	touches *intmap.Map[int, field.Vec2]
	ids     []int
	active  int
}

func NewTracker(sink Sink) *Tracker {
	return &Tracker{
		sink:    sink,
		touches: intmap.New[int, field.Vec2](8),
		active:  noTouch,
	}
}

// Over reports whether the pointer is currently over the surface.
func (t *Tracker) Over() bool {
	return t.over
}

// Mouse reports the polled mouse position. inside is false when the mouse
// is off the surface or the window lost focus.
func (t *Tracker) Mouse(x, y float64, inside bool) {
	if len(t.ids) > 0 {
		return
	}
	if !inside {
		t.leave()
		return
	}
	t.enter()
	t.move(x, y)
}

// Touches reports every touch that is currently down.
func (t *Tracker) Touches(points []TouchPoint) {
	if len(points) == 0 && len(t.ids) == 0 {
		return
	}

	kept := t.ids[:0]
	for _, id := range t.ids {
		if hasTouch(points, id) {
			kept = append(kept, id)
			continue
		}
		t.touches.Del(id)
		if id == t.active {
			t.active = noTouch
		}
	}
	t.ids = kept

	for _, p := range points {
		if _, ok := t.touches.Get(p.ID); !ok {
			t.ids = append(t.ids, p.ID)
		}
		t.touches.Put(p.ID, field.Vec2{X: p.X, Y: p.Y})
	}

	if len(t.ids) == 0 {
		t.leave()
		return
	}
	if t.active == noTouch {
		// A new steering touch must not inherit the displacement from the
		// previous one.
		t.active = t.ids[0]
		t.leave()
	}
	t.enter()
	pos, _ := t.touches.Get(t.active)
	t.move(pos.X, pos.Y)
}

func (t *Tracker) enter() {
	if t.over {
		return
	}
	t.over = true
	t.moved = false
	t.sink.PointerEnter()
}

func (t *Tracker) leave() {
	if !t.over {
		return
	}
	t.over = false
	t.sink.PointerLeave()
}

func (t *Tracker) move(x, y float64) {
	pos := field.Vec2{X: x, Y: y}
	if t.moved && pos == t.last {
		return
	}
	t.last = pos
	t.moved = true
	t.sink.PointerMove(x, y)
}

func hasTouch(points []TouchPoint, id int) bool {
	for _, p := range points {
		if p.ID == id {
			return true
		}
	}
	return false
}
