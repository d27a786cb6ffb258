package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ContextState tracks where a RenderContext is in its lifecycle.
// Valid transitions: Unopened → Active → Ended (normal frame), or
// Unopened → Skipped (no drawable surface image; EndFrame is a no-op).
type ContextState int

const (
	// ContextUnopened is the zero value; BeginFrame never returns it.
	ContextUnopened ContextState = iota

	// ContextActive is a live frame: the render pass is open and the draw
	// functions may be called any number of times before EndFrame.
	ContextActive

	// ContextSkipped means BeginFrame could not acquire a surface image.
	// Draw calls against a skipped context return an error and EndFrame
	// performs no GPU work.
	ContextSkipped

	// ContextEnded means EndFrame has run; the context must not be reused.
	ContextEnded
)

// RenderContext is the per-frame transient triple of presentable surface
// image, command encoder, and open render pass. It is valid only between a
// successful BeginFrame and the matching EndFrame, and is never reused across
// frames. A RenderContext must stay on the thread that created it.
type RenderContext struct {
	state ContextState

	surface *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

// State returns the context's lifecycle state.
//
// Returns:
//   - ContextState: the current state
func (c *RenderContext) State() ContextState {
	return c.state
}

// Skipped reports whether BeginFrame failed to acquire a surface image for
// this frame. A skipped frame carries no encoder; the caller should issue no
// draw calls and may call EndFrame, which is a no-op.
//
// Returns:
//   - bool: true if the frame was skipped
func (c *RenderContext) Skipped() bool {
	return c != nil && c.state == ContextSkipped
}

// active reports whether draw commands may currently be encoded.
func (c *RenderContext) active() bool {
	return c != nil && c.state == ContextActive && c.pass != nil
}

// frame repackages the context's GPU objects for backend submission.
func (c *RenderContext) frame() *acquiredFrame {
	return &acquiredFrame{
		surface: c.surface,
		view:    c.view,
		encoder: c.encoder,
		pass:    c.pass,
	}
}
