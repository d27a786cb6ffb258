package common

import "testing"

func TestCoalesceFirstNonZero(t *testing.T) {
	if got := Coalesce(0, 0, 7, 9); got != 7 {
		t.Errorf("Coalesce = %d, want 7", got)
	}
	if got := Coalesce(uint32(640), uint32(1280)); got != 640 {
		t.Errorf("Coalesce = %d, want 640", got)
	}
}

func TestCoalesceAllZero(t *testing.T) {
	if got := Coalesce(0, 0, 0); got != 0 {
		t.Errorf("Coalesce = %d, want 0", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("Coalesce = %q, want empty", got)
	}
}
