package renderer

import "testing"

func TestContextZeroValueInactive(t *testing.T) {
	var ctx RenderContext
	if ctx.State() != ContextUnopened {
		t.Errorf("zero-value context state = %v, want ContextUnopened", ctx.State())
	}
	if ctx.active() {
		t.Error("zero-value context must not be active")
	}
	if ctx.Skipped() {
		t.Error("zero-value context must not report skipped")
	}
}

func TestSkippedContextRejectsDrawing(t *testing.T) {
	ctx := &RenderContext{state: ContextSkipped}
	if !ctx.Skipped() {
		t.Error("skipped context must report Skipped")
	}
	if ctx.active() {
		t.Error("skipped context must not be active")
	}
}

func TestEndedContextRejectsDrawing(t *testing.T) {
	ctx := &RenderContext{state: ContextEnded}
	if ctx.active() {
		t.Error("ended context must not be active")
	}
	if ctx.Skipped() {
		t.Error("ended context must not report skipped")
	}
}

func TestActiveRequiresOpenPass(t *testing.T) {
	// A context claiming to be active without an open render pass is a bug;
	// active() guards against encoding into nil.
	ctx := &RenderContext{state: ContextActive}
	if ctx.active() {
		t.Error("active state without a pass must not report active")
	}
}

func TestNilContextIsSafe(t *testing.T) {
	var ctx *RenderContext
	if ctx.Skipped() {
		t.Error("nil context must not report skipped")
	}
	if ctx.active() {
		t.Error("nil context must not be active")
	}
}
