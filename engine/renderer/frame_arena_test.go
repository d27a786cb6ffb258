package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

type arenaWrite struct {
	chunk  int
	offset uint64
	size   uint64
}

// testArena wires a frameArena to fakes that record every chunk creation and
// write without touching a GPU. Chunks are identified by creation order.
func testArena(chunkSize uint64) (*frameArena, *[]arenaWrite) {
	writes := &[]arenaWrite{}
	created := 0
	chunkIndex := map[*wgpu.Buffer]int{}

	a := newFrameArena("Test Arena", chunkSize,
		func(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
			buf := &wgpu.Buffer{}
			chunkIndex[buf] = created
			created++
			return buf, nil
		},
		func(buf *wgpu.Buffer, offset uint64, data []byte) {
			*writes = append(*writes, arenaWrite{chunk: chunkIndex[buf], offset: offset, size: uint64(len(data))})
		},
	)
	return a, writes
}

func rangesOverlap(a, b arenaWrite) bool {
	return a.chunk == b.chunk && a.offset < b.offset+b.size && b.offset < a.offset+a.size
}

func TestFrameArenaDrawsGetDisjointRanges(t *testing.T) {
	a, writes := testArena(frameArenaChunkSize)

	// One frame: a filled rect then a ring, both through the solid pipeline's
	// vertex path. Each must land in its own byte range so the recorded draws
	// read their own geometry after submission.
	rect := make([]byte, QuadVertexCount*24)
	ring := make([]byte, RingVertexCount*24)

	if _, _, err := a.alloc(rect); err != nil {
		t.Fatalf("rect alloc failed: %v", err)
	}
	if _, _, err := a.alloc(ring); err != nil {
		t.Fatalf("ring alloc failed: %v", err)
	}

	if len(*writes) != 2 {
		t.Fatalf("got %d writes, want 2", len(*writes))
	}
	if rangesOverlap((*writes)[0], (*writes)[1]) {
		t.Errorf("allocations overlap: %+v and %+v", (*writes)[0], (*writes)[1])
	}
}

func TestFrameArenaManyAllocationsStayDisjoint(t *testing.T) {
	a, writes := testArena(frameArenaChunkSize)

	quad := make([]byte, QuadVertexCount*16)
	for i := 0; i < 200; i++ {
		if _, _, err := a.alloc(quad); err != nil {
			t.Fatalf("alloc %d failed: %v", i, err)
		}
	}

	for i := range *writes {
		for j := i + 1; j < len(*writes); j++ {
			if rangesOverlap((*writes)[i], (*writes)[j]) {
				t.Fatalf("allocations %d and %d overlap: %+v, %+v", i, j, (*writes)[i], (*writes)[j])
			}
		}
	}
}

func TestFrameArenaRollsOverToNewChunk(t *testing.T) {
	a, writes := testArena(256)

	big := make([]byte, 200)
	if _, _, err := a.alloc(big); err != nil {
		t.Fatalf("first alloc failed: %v", err)
	}
	if _, _, err := a.alloc(big); err != nil {
		t.Fatalf("second alloc failed: %v", err)
	}

	if (*writes)[0].chunk == (*writes)[1].chunk {
		t.Errorf("second allocation should roll over to a new chunk: %+v, %+v", (*writes)[0], (*writes)[1])
	}
	if (*writes)[1].offset != 0 {
		t.Errorf("rollover allocation offset = %d, want 0", (*writes)[1].offset)
	}
}

func TestFrameArenaResetReusesChunks(t *testing.T) {
	a, writes := testArena(256)

	data := make([]byte, 200)
	a.alloc(data)
	a.alloc(data) // rolls into chunk 1

	a.reset()
	a.alloc(data)

	last := (*writes)[len(*writes)-1]
	if last.chunk != 0 || last.offset != 0 {
		t.Errorf("after reset, allocation = %+v, want chunk 0 offset 0", last)
	}
	if len(a.chunks) != 2 {
		t.Errorf("reset freed chunks: have %d, want 2 retained", len(a.chunks))
	}
}

func TestFrameArenaOffsetsAligned(t *testing.T) {
	a, writes := testArena(frameArenaChunkSize)

	odd := make([]byte, 10)
	a.alloc(odd)
	a.alloc(odd)

	for i, w := range *writes {
		if w.offset%4 != 0 {
			t.Errorf("write %d offset %d not 4-byte aligned", i, w.offset)
		}
	}
}

func TestFrameArenaRejectsOversizedAndEmpty(t *testing.T) {
	a, _ := testArena(64)

	if _, _, err := a.alloc(make([]byte, 65)); err == nil {
		t.Error("oversized allocation accepted")
	}
	if _, _, err := a.alloc(nil); err == nil {
		t.Error("empty allocation accepted")
	}
}
