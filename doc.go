// Package sable provides a minimal native window and a GPU-backed 2D
// overlay/sprite renderer: window creation, an input-polling event loop, and an
// immediate-mode draw API for textured quads, filled rectangles, and ring
// outlines, built on WebGPU command buffers.
//
// The library surface is consumed by a host loop:
//
//	win := window.NewWindow(window.WithTitle("Overlay"), window.WithWidth(800), window.WithHeight(600))
//	win.Show()
//	r, err := renderer.NewRenderer(win)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for win.PollEvents() {
//	    ctx := r.BeginFrame()
//	    r.DrawFilledRect(ctx, 0, 0, 800, 600, 0.76, 0.66, 0.46, 1.0)
//	    r.EndFrame(ctx)
//	}
//
// Subpackages:
//   - engine/window: platform window and input snapshots
//   - engine/renderer: device binding, pipelines, textures, frame lifecycle, draw API
//   - engine/loader: CPU-side image decoding to BGRA8 staging data
//   - engine/profiler: per-interval frame statistics
package sable
