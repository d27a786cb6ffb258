package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption configures a renderer during NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the color the surface is cleared to at the start of
// every frame. Defaults to opaque black.
//
// Parameters:
//   - r, g, b, a: color components in [0,1]
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithClearColor(r, g, b, a float64) RendererBuilderOption {
	return func(rd *renderer) {
		rd.clearColor = wgpu.Color{R: r, G: g, B: b, A: a}
	}
}

// WithWarmupFrameCount sets how many initial frames block until GPU
// completion before returning from EndFrame. Warm-up frames surface driver
// and pipeline errors deterministically during bring-up. Defaults to 3;
// zero disables the warm-up wait entirely.
//
// Parameters:
//   - count: the number of blocking warm-up frames
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithWarmupFrameCount(count int) RendererBuilderOption {
	return func(rd *renderer) {
		if count < 0 {
			count = 0
		}
		rd.warmupFrameCount = count
	}
}

// WithPresentMode sets how finished frames are delivered to the display.
// Defaults to PresentModeVSync.
//
// Parameters:
//   - mode: the present mode to use
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(rd *renderer) {
		rd.presentMode = mode
	}
}

// WithForceFallbackAdapter forces adapter selection to the software fallback,
// useful for headless environments and driver triage.
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithForceFallbackAdapter() RendererBuilderOption {
	return func(rd *renderer) {
		rd.forceFallbackAdapter = true
	}
}
