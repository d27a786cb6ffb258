package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// frameArenaChunkSize is the byte capacity of one arena chunk. Large enough
// for several rings; frames that draw more roll over into additional chunks,
// which are retained and reused on later frames.
const frameArenaChunkSize = 64 * 1024

// frameArena bump-allocates vertex data into a growing set of GPU buffers.
// Every draw in a frame gets its own disjoint byte range, so recorded draw
// commands keep reading their own geometry after later draws write theirs;
// queue writes land on the queue timeline before the frame's command buffer
// executes, which would make a single rewritten buffer show only the last
// write. reset rewinds the arena at the start of each frame; chunks are only
// created, never freed, until release.
type frameArena struct {
	label     string
	chunkSize uint64

	createBuffer func(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error)
	writeBuffer  func(buf *wgpu.Buffer, offset uint64, data []byte)

	chunks []*wgpu.Buffer
	cur    int
	offset uint64
}

func newFrameArena(
	label string,
	chunkSize uint64,
	createBuffer func(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error),
	writeBuffer func(buf *wgpu.Buffer, offset uint64, data []byte),
) *frameArena {
	return &frameArena{
		label:        label,
		chunkSize:    chunkSize,
		createBuffer: createBuffer,
		writeBuffer:  writeBuffer,
	}
}

// reset rewinds the arena to the start of its first chunk. Called once per
// frame before any draw allocates.
func (a *frameArena) reset() {
	a.cur = 0
	a.offset = 0
}

// alloc uploads data into the next free range and returns the buffer and byte
// offset to bind it at. Offsets stay 4-byte aligned as required for vertex
// buffer binding; the vertex strides in use (16 and 24 bytes) already satisfy
// that, so only defensively-sized inputs need padding.
//
// Parameters:
//   - data: the vertex bytes to upload
//
// Returns:
//   - *wgpu.Buffer: the chunk holding the data
//   - uint64: the byte offset of the data within the chunk
//   - error: an error if the allocation cannot fit a chunk or chunk creation fails
func (a *frameArena) alloc(data []byte) (*wgpu.Buffer, uint64, error) {
	size := uint64(len(data))
	if size == 0 {
		return nil, 0, fmt.Errorf("empty vertex allocation")
	}
	if size > a.chunkSize {
		return nil, 0, fmt.Errorf("vertex allocation of %d bytes exceeds chunk size %d", size, a.chunkSize)
	}

	if a.offset+size > a.chunkSize && len(a.chunks) > 0 {
		a.cur++
		a.offset = 0
	}

	for a.cur >= len(a.chunks) {
		chunk, err := a.createBuffer(
			fmt.Sprintf("%s %d", a.label, len(a.chunks)),
			a.chunkSize,
			wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst,
		)
		if err != nil {
			return nil, 0, err
		}
		a.chunks = append(a.chunks, chunk)
	}

	buf := a.chunks[a.cur]
	offset := a.offset
	a.writeBuffer(buf, offset, data)

	a.offset += (size + 3) &^ 3

	return buf, offset, nil
}

// release frees every chunk. The arena is unusable afterwards.
func (a *frameArena) release() {
	for _, chunk := range a.chunks {
		if chunk != nil {
			chunk.Release()
		}
	}
	a.chunks = nil
	a.cur = 0
	a.offset = 0
}
