// Package debugui provides Dear ImGui windows for inspecting a running world:
// tick and world statistics, a cell occupancy viewer and an entity browser.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// Item holds a Dear ImGui render function drawn once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Games should skip their own input handling while a capture flag is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders its items between a backend's BeginFrame and EndFrame.
type Overlay struct {
	Items []Item
	Input InputState
	// Hidden suppresses every item without discarding window state.
	Hidden bool
}

// Add appends a render function to the overlay.
func (o *Overlay) Add(render func()) {
	o.Items = append(o.Items, Item{Render: render})
}

// Render updates the input state and draws every item.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if o.Hidden {
		return
	}
	for _, item := range o.Items {
		item.Render()
	}
}
