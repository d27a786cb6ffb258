package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sablegfx/sable/common"
)

// Window provides platform windowing and poll-based input handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// Show orders the window to front, gives it input focus, and drains any
	// events that were queued before the window became visible.
	Show()

	// Hide removes the window from the screen without destroying it.
	Hide()

	// PollEvents drains all pending platform input events and updates the
	// keyboard and mouse snapshots. The mouse "clicked" edge flags are reset at
	// the start of every call, so a press is reported for exactly one poll.
	// Unrecognized events flow through the platform's default dispatch so
	// standard window chrome (close button, drag, minimize) keeps working.
	//
	// Returns:
	//   - bool: true while the window should stay open, false once a close was requested
	PollEvents() bool

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// KeyboardState returns a snapshot of the tracked keys as of the last poll.
	//
	// Returns:
	//   - common.KeyboardState: the current tracked-key snapshot
	KeyboardState() common.KeyboardState

	// MouseButtonState returns a snapshot of the mouse buttons as of the last poll.
	//
	// Returns:
	//   - common.MouseButtonState: the current mouse-button snapshot
	MouseButtonState() common.MouseButtonState

	// MousePosition returns the current pointer position in window-local,
	// top-left-origin pixel coordinates.
	//
	// Returns:
	//   - float32: x position in pixels
	//   - float32: y position in pixels
	MousePosition() (float32, float32)

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and the input snapshots.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// resizable controls whether the user may resize the window.
	resizable bool

	// keyboard holds the tracked-key snapshot, mutated only by the event pump.
	keyboard common.KeyboardState

	// mouse holds the mouse-button snapshot, mutated only by the event pump.
	// The clicked edge flags are cleared at the start of every PollEvents call.
	mouse common.MouseButtonState

	// shouldClose is set by the platform's quit gesture or the close button.
	shouldClose bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order. The window is
// created titled, closable, and minimizable, centered on the primary monitor,
// with all input fields initialized to false. Call Show to make it visible.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:  "Default Window Title",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) Show() {
	platformShowWindow(w)
}

func (w *engineWindow) Hide() {
	platformHideWindow(w)
}

func (w *engineWindow) PollEvents() bool {
	w.beginPoll()
	platformProcessMessages(w)
	return !w.shouldClose
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) KeyboardState() common.KeyboardState {
	return w.keyboard
}

func (w *engineWindow) MouseButtonState() common.MouseButtonState {
	return w.mouse
}

func (w *engineWindow) MousePosition() (float32, float32) {
	return platformMousePosition(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

// applyKeyEvent updates the tracked-key snapshot for a single key transition.
// Untracked keys are ignored. The platform quit gesture (Escape) requests close.
//
// Parameters:
//   - keyCode: the virtual key code (common.Key*)
//   - pressed: true for a press, false for a release
func (w *engineWindow) applyKeyEvent(keyCode uint32, pressed bool) {
	switch keyCode {
	case common.KeyUp:
		w.keyboard.Up = pressed
	case common.KeyDown:
		w.keyboard.Down = pressed
	case common.KeyLeft:
		w.keyboard.Left = pressed
	case common.KeyRight:
		w.keyboard.Right = pressed
	case common.KeyW:
		w.keyboard.W = pressed
	case common.KeyA:
		w.keyboard.A = pressed
	case common.KeyS:
		w.keyboard.S = pressed
	case common.KeyD:
		w.keyboard.D = pressed
	case common.KeyEsc:
		if pressed {
			w.shouldClose = true
		}
	}
}

// applyMouseButtonEvent updates the mouse-button snapshot for a single button
// transition. A press sets both the down and clicked flags; a release clears
// only the down flag, leaving any clicked edge from the same poll intact.
//
// Parameters:
//   - left: true for the left button, false for the right
//   - pressed: true for a press, false for a release
func (w *engineWindow) applyMouseButtonEvent(left, pressed bool) {
	switch {
	case left && pressed:
		w.mouse.LeftDown = true
		w.mouse.LeftClicked = true
	case left && !pressed:
		w.mouse.LeftDown = false
	case !left && pressed:
		w.mouse.RightDown = true
		w.mouse.RightClicked = true
	default:
		w.mouse.RightDown = false
	}
}

// beginPoll resets the one-poll click edges. Called at the start of every
// PollEvents before the platform event queue is drained.
func (w *engineWindow) beginPoll() {
	w.mouse.LeftClicked = false
	w.mouse.RightClicked = false
}
