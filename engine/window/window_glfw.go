package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent *engineWindow
	window *glfw.Window
}

// glfwInitOnce guards library initialization. GLFW must be initialized exactly
// once, on a locked OS thread, before any window exists; on macOS this is also
// what promotes the hosting process to a foreground GUI application.
var (
	glfwInitOnce sync.Once
	glfwInitErr  error
)

func initPlatform() error {
	glfwInitOnce.Do(func() {
		runtime.LockOSThread()
		glfwInitErr = glfw.Init()
	})
	return glfwInitErr
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	if err := initPlatform(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	// The window is created hidden; Show orders it to front once the caller is
	// ready, at which point queued events are drained.
	glfw.WindowHint(glfw.Visible, glfw.False)

	if w.resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}

	// Center on the primary monitor.
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			win.SetPos((mode.Width-w.width)/2, (mode.Height-w.height)/2)
		}
	}

	gw := &glfwWindow{
		parent: w,
		window: win,
	}
	w.internalWindow = gw

	// Register GLFW callbacks that feed the input snapshots. Keys and buttons
	// not handled here fall through to GLFW's default processing, so window
	// chrome keeps working.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			w.applyKeyEvent(uint32(key), true)
		case glfw.Release:
			w.applyKeyEvent(uint32(key), false)
		}
		if w.shouldClose {
			win.SetShouldClose(true)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft && button != glfw.MouseButtonRight {
			return
		}
		w.applyMouseButtonEvent(button == glfw.MouseButtonLeft, action == glfw.Press)
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// The renderer requires pixel dimensions for correct surface configuration.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// platformShowWindow makes the window visible, focuses it, and drains any
// events queued while it was hidden.
func platformShowWindow(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.window.Show()
	gw.window.Focus()
	glfw.PollEvents()
}

// platformHideWindow removes the window from the screen without destroying it.
func platformHideWindow(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.window.Hide()
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformMousePosition returns the cursor position in window-local, top-left
// origin pixel coordinates. GLFW reports the cursor in logical screen units
// with a top-left origin, so no Y flip is needed; the position is scaled by the
// content scale to land in the same pixel space as the framebuffer.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.GetCursorPos
func platformMousePosition(w *engineWindow) (float32, float32) {
	if w.internalWindow == nil {
		return 0, 0
	}
	gw := w.internalWindow.(*glfwWindow)
	x, y := gw.window.GetCursorPos()
	sx, sy := gw.window.GetContentScale()
	return float32(x) * sx, float32(y) * sy
}

// platformCloseWindow destroys the GLFW window.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	w.shouldClose = true
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
// Input callbacks registered in newPlatformWindow fire from inside PollEvents.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) {
	glfw.PollEvents()
	if w.internalWindow == nil {
		w.shouldClose = true
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	if gw.window.ShouldClose() {
		w.shouldClose = true
	}
}
