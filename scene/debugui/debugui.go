// Package debugui provides immediate-mode GUI overlays for scene graph
// applications using Dear ImGui. It exposes browser, inspector and
// statistics windows that read the live graph each frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/retained/scene"
)

// InputState tracks Dear ImGui's input capture state. When ImGui wants the
// mouse or keyboard, the application should withhold hit-testing and key
// routing from scene nodes for that frame.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Window is a debug overlay window drawn once per frame.
type Window interface {
	Render(frame *scene.Frame)
}

// ImguiPass drives the registered debug windows from the scene pipeline.
// Window renders are deferred through the frame's command buffer so they run
// after all structural edits of the frame have been applied and the windows
// observe a settled graph.
type ImguiPass struct {
	Input   InputState
	windows []Window
}

// Attach registers a window to render every frame.
func (p *ImguiPass) Attach(w Window) {
	p.windows = append(p.windows, w)
}

// Execute updates input capture state and queues all window renders.
func (p *ImguiPass) Execute(frame *scene.Frame) {
	p.Input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	p.Input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, w := range p.windows {
		frame.Commands.Defer(func() {
			w.Render(frame)
		})
	}
}
