package renderer

import (
	"errors"
	"testing"
)

func TestTextureTableAddLookup(t *testing.T) {
	tt := newTextureTable()

	handle := tt.add(nil, nil, nil, 32, 16)
	if handle.Width() != 32 || handle.Height() != 16 {
		t.Errorf("handle dimensions = %dx%d, want 32x16", handle.Width(), handle.Height())
	}

	if _, err := tt.lookup(handle); err != nil {
		t.Errorf("lookup of live handle failed: %v", err)
	}
}

func TestTextureTableStaleAfterRemove(t *testing.T) {
	tt := newTextureTable()

	handle := tt.add(nil, nil, nil, 8, 8)
	tt.remove(handle)

	if _, err := tt.lookup(handle); !errors.Is(err, ErrTextureStale) {
		t.Errorf("lookup after remove = %v, want ErrTextureStale", err)
	}
}

func TestTextureTableDoubleRemove(t *testing.T) {
	tt := newTextureTable()

	handle := tt.add(nil, nil, nil, 8, 8)
	tt.remove(handle)
	tt.remove(handle) // must not panic or disturb other entries
}

func TestTextureTableZeroHandleStale(t *testing.T) {
	tt := newTextureTable()

	if _, err := tt.lookup(Texture{}); !errors.Is(err, ErrTextureStale) {
		t.Errorf("lookup of zero handle = %v, want ErrTextureStale", err)
	}
}

func TestTextureTableHandlesAreDistinct(t *testing.T) {
	tt := newTextureTable()

	a := tt.add(nil, nil, nil, 4, 4)
	b := tt.add(nil, nil, nil, 4, 4)

	tt.remove(a)

	if _, err := tt.lookup(b); err != nil {
		t.Errorf("removing one handle invalidated another: %v", err)
	}
}

func TestTextureTableRemoveAll(t *testing.T) {
	tt := newTextureTable()

	a := tt.add(nil, nil, nil, 4, 4)
	b := tt.add(nil, nil, nil, 4, 4)

	tt.removeAll()

	if _, err := tt.lookup(a); !errors.Is(err, ErrTextureStale) {
		t.Errorf("lookup after removeAll = %v, want ErrTextureStale", err)
	}
	if _, err := tt.lookup(b); !errors.Is(err, ErrTextureStale) {
		t.Errorf("lookup after removeAll = %v, want ErrTextureStale", err)
	}
}
