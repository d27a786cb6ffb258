package renderer

import (
	"errors"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrTextureStale is returned when a Texture handle refers to a texture
	// that has been destroyed, or to a slot that was never created.
	ErrTextureStale = errors.New("texture handle is stale or was never created")

	// ErrContextNotActive is returned when a draw is issued against a render
	// context that is skipped, already ended, or was never opened.
	ErrContextNotActive = errors.New("render context is not active")

	// ErrInvalidPixelData is returned when texture staging data fails
	// validation before upload.
	ErrInvalidPixelData = errors.New("invalid texture pixel data")
)

// Texture is an opaque handle to a GPU texture owned by the renderer. Handles
// carry a generation counter so a handle that outlives its texture is detected
// on use rather than reading freed GPU state.
type Texture struct {
	id         uint64
	generation uint64
	width      uint32
	height     uint32
}

// Width returns the texture width in pixels.
func (t Texture) Width() uint32 {
	return t.width
}

// Height returns the texture height in pixels.
func (t Texture) Height() uint32 {
	return t.height
}

type textureEntry struct {
	texture    *wgpu.Texture
	view       *wgpu.TextureView
	bindGroup  *wgpu.BindGroup
	generation uint64
}

// textureTable tracks live textures by handle ID. Destroying a texture bumps
// the slot's generation so outstanding handles with the old generation fail
// lookup with ErrTextureStale.
type textureTable struct {
	mu      sync.Mutex
	nextID  uint64
	entries map[uint64]*textureEntry
}

func newTextureTable() *textureTable {
	return &textureTable{
		entries: make(map[uint64]*textureEntry),
	}
}

func (tt *textureTable) add(tex *wgpu.Texture, view *wgpu.TextureView, bindGroup *wgpu.BindGroup, width, height uint32) Texture {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	tt.nextID++
	id := tt.nextID
	tt.entries[id] = &textureEntry{
		texture:    tex,
		view:       view,
		bindGroup:  bindGroup,
		generation: 1,
	}

	return Texture{
		id:         id,
		generation: 1,
		width:      width,
		height:     height,
	}
}

func (tt *textureTable) lookup(handle Texture) (*textureEntry, error) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	entry, ok := tt.entries[handle.id]
	if !ok || entry.generation != handle.generation {
		return nil, ErrTextureStale
	}
	return entry, nil
}

// remove releases the GPU resources for the handle's slot. Removing an
// already-destroyed or unknown handle is a no-op; double-destroy is legal.
func (tt *textureTable) remove(handle Texture) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	entry, ok := tt.entries[handle.id]
	if !ok || entry.generation != handle.generation {
		return
	}

	releaseTextureEntry(entry)
	delete(tt.entries, handle.id)
}

// removeAll releases every live texture. Used on renderer teardown.
func (tt *textureTable) removeAll() {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	for id, entry := range tt.entries {
		releaseTextureEntry(entry)
		delete(tt.entries, id)
	}
}

func releaseTextureEntry(entry *textureEntry) {
	if entry.bindGroup != nil {
		entry.bindGroup.Release()
	}
	if entry.view != nil {
		entry.view.Release()
	}
	if entry.texture != nil {
		entry.texture.Release()
	}
}
