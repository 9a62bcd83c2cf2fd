// Package debugui provides Dear ImGui panels for inspecting and tuning a
// running starfield.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starfield/driver"
)

// Item holds a Dear ImGui render function drawn once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether ImGui is consuming pointer or keyboard input.
// Hosts should not forward pointer events to the engine while
// WantCaptureMouse is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is a driver.System that queues every item's render function
// after the other systems have run.
type Overlay struct {
	Items []Item
	Input InputState
	// Hidden suppresses drawing without dropping the items.
	Hidden bool
}

// Add appends an item.
func (o *Overlay) Add(render func()) {
	o.Items = append(o.Items, Item{Render: render})
}

// Execute updates the input state and defers every render function.
func (o *Overlay) Execute(frame *driver.Frame) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if o.Hidden {
		return
	}
	for _, item := range o.Items {
		frame.Commands.Defer(item.Render)
	}
}
