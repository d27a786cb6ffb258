package profiler

import (
	"testing"
	"time"
)

func TestTickBeforeIntervalNoLog(t *testing.T) {
	p := NewProfiler()
	if p.Tick() {
		t.Error("tick before interval elapsed should not log")
	}
}

func TestTickAfterIntervalLogs(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = time.Millisecond

	p.Tick()
	time.Sleep(5 * time.Millisecond)

	if !p.Tick() {
		t.Error("tick after interval elapsed should log")
	}
	if p.frameCount != 0 {
		t.Errorf("frame count not reset after log: %d", p.frameCount)
	}
}

func TestAddDrawCallsAccumulates(t *testing.T) {
	p := NewProfiler()
	p.AddDrawCalls(3)
	p.AddDrawCalls(2)
	if got := p.drawCalls.Load(); got != 5 {
		t.Errorf("draw calls = %d, want 5", got)
	}
}

func TestAddDrawCallsIgnoresNonPositive(t *testing.T) {
	p := NewProfiler()
	p.AddDrawCalls(0)
	p.AddDrawCalls(-4)
	if got := p.drawCalls.Load(); got != 0 {
		t.Errorf("draw calls = %d, want 0", got)
	}
}

func TestTickResetsDrawCalls(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = time.Millisecond
	p.AddDrawCalls(10)

	time.Sleep(5 * time.Millisecond)
	p.Tick()

	if got := p.drawCalls.Load(); got != 0 {
		t.Errorf("draw calls not reset after log: %d", got)
	}
}
