package surface

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type eventLog struct {
	events []string
}

func (l *eventLog) PointerEnter() { l.events = append(l.events, "enter") }
func (l *eventLog) PointerLeave() { l.events = append(l.events, "leave") }
func (l *eventLog) PointerMove(x, y float64) {
	l.events = append(l.events, fmt.Sprintf("move %.0f,%.0f", x, y))
}

func TestTrackerMouse(t *testing.T) {
	log := &eventLog{}
	tr := NewTracker(log)

	tr.Mouse(10, 10, false)
	assert.Empty(t, log.events, "leaving while outside is silent")

	tr.Mouse(10, 20, true)
	tr.Mouse(10, 20, true)
	tr.Mouse(15, 20, true)
	assert.True(t, tr.Over())

	tr.Mouse(-5, 20, false)
	assert.False(t, tr.Over())

	tr.Mouse(15, 20, true)

	assert.Equal(t, []string{
		"enter", "move 10,20", "move 15,20",
		"leave",
		"enter", "move 15,20",
	}, log.events)
}

func TestTrackerTouches(t *testing.T) {
	log := &eventLog{}
	tr := NewTracker(log)

	tr.Touches(nil)
	assert.Empty(t, log.events)

	tr.Touches([]TouchPoint{{ID: 3, X: 1, Y: 1}})
	tr.Touches([]TouchPoint{{ID: 3, X: 2, Y: 1}, {ID: 7, X: 50, Y: 50}})

	tr.Mouse(99, 99, true)

	tr.Touches([]TouchPoint{{ID: 7, X: 51, Y: 50}})
	tr.Touches(nil)

	assert.Equal(t, []string{
		"enter", "move 1,1",
		"move 2,1",
		"leave", "enter", "move 51,50",
		"leave",
	}, log.events)
	assert.False(t, tr.Over())
}
