package window

import (
	"testing"

	"github.com/sablegfx/sable/common"
)

// pollWith simulates one PollEvents call: reset click edges, then apply the
// given events as the platform pump would.
func pollWith(w *engineWindow, events func()) {
	w.beginPoll()
	if events != nil {
		events()
	}
}

func TestKeyEdgeIndependence(t *testing.T) {
	w := &engineWindow{}

	w.applyKeyEvent(common.KeyA, true)
	w.applyKeyEvent(common.KeyW, true)
	w.applyKeyEvent(common.KeyA, false)

	ks := w.KeyboardState()
	if ks.A {
		t.Errorf("A should be released, got %+v", ks)
	}
	if !ks.W {
		t.Errorf("W should still be held, got %+v", ks)
	}
	if ks.S || ks.D || ks.Up || ks.Down || ks.Left || ks.Right {
		t.Errorf("untouched keys changed state: %+v", ks)
	}
}

func TestKeyEdgeIndependenceOrderReversed(t *testing.T) {
	w := &engineWindow{}

	w.applyKeyEvent(common.KeyW, true)
	w.applyKeyEvent(common.KeyA, true)
	w.applyKeyEvent(common.KeyA, false)

	ks := w.KeyboardState()
	if ks.A || !ks.W {
		t.Errorf("state should be {A:false W:true} regardless of press order, got %+v", ks)
	}
}

func TestUntrackedKeyIgnored(t *testing.T) {
	w := &engineWindow{}

	w.applyKeyEvent(9999, true)
	if w.KeyboardState() != (common.KeyboardState{}) {
		t.Errorf("untracked key mutated the snapshot: %+v", w.KeyboardState())
	}
	if w.shouldClose {
		t.Error("untracked key requested close")
	}
}

func TestArrowKeysTracked(t *testing.T) {
	w := &engineWindow{}

	w.applyKeyEvent(common.KeyUp, true)
	w.applyKeyEvent(common.KeyLeft, true)

	ks := w.KeyboardState()
	if !ks.Up || !ks.Left {
		t.Errorf("arrow keys not tracked: %+v", ks)
	}

	w.applyKeyEvent(common.KeyUp, false)
	ks = w.KeyboardState()
	if ks.Up || !ks.Left {
		t.Errorf("releasing Up affected other keys: %+v", ks)
	}
}

func TestEscapeRequestsClose(t *testing.T) {
	w := &engineWindow{}

	w.applyKeyEvent(common.KeyEsc, false)
	if w.shouldClose {
		t.Error("escape release should not request close")
	}

	w.applyKeyEvent(common.KeyEsc, true)
	if !w.shouldClose {
		t.Error("escape press should request close")
	}
}

func TestMouseClickSinglePoll(t *testing.T) {
	w := &engineWindow{}

	// Poll k: press observed.
	pollWith(w, func() {
		w.applyMouseButtonEvent(true, true)
	})
	ms := w.MouseButtonState()
	if !ms.LeftDown || !ms.LeftClicked {
		t.Errorf("poll k: want left down+clicked, got %+v", ms)
	}

	// Poll k+1: button still held, no new events.
	pollWith(w, nil)
	ms = w.MouseButtonState()
	if !ms.LeftDown {
		t.Errorf("poll k+1: left should remain down, got %+v", ms)
	}
	if ms.LeftClicked {
		t.Errorf("poll k+1: clicked edge must not persist, got %+v", ms)
	}
}

func TestMouseReleaseClearsOnlyDown(t *testing.T) {
	w := &engineWindow{}

	// Press and release within the same poll: the click edge survives the poll.
	pollWith(w, func() {
		w.applyMouseButtonEvent(true, true)
		w.applyMouseButtonEvent(true, false)
	})
	ms := w.MouseButtonState()
	if ms.LeftDown {
		t.Errorf("left should be released, got %+v", ms)
	}
	if !ms.LeftClicked {
		t.Errorf("click edge should survive a same-poll release, got %+v", ms)
	}
}

func TestMouseButtonsIndependent(t *testing.T) {
	w := &engineWindow{}

	pollWith(w, func() {
		w.applyMouseButtonEvent(true, true)
		w.applyMouseButtonEvent(false, true)
	})
	ms := w.MouseButtonState()
	if !ms.LeftDown || !ms.RightDown || !ms.LeftClicked || !ms.RightClicked {
		t.Errorf("both buttons pressed, got %+v", ms)
	}

	pollWith(w, func() {
		w.applyMouseButtonEvent(false, false)
	})
	ms = w.MouseButtonState()
	if !ms.LeftDown {
		t.Errorf("releasing right cleared left, got %+v", ms)
	}
	if ms.RightDown || ms.LeftClicked || ms.RightClicked {
		t.Errorf("poll after release: want only left down, got %+v", ms)
	}
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("Overlay"),
		WithWidth(800),
		WithHeight(600),
		WithResizable(true),
	} {
		opt(w)
	}

	if w.title != "Overlay" || w.width != 800 || w.height != 600 || !w.resizable {
		t.Errorf("options not applied: %+v", w)
	}
}
