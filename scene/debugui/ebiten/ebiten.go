// Package ebiten provides Dear ImGui backend integration for the Ebiten
// game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend. Call BeginFrame
// before running the scene pipeline, EndFrame after it, and Draw from the
// Ebiten draw callback to composite the overlay on top of the scene.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}
