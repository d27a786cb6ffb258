package renderer

import (
	"encoding/binary"
	"math"
	"testing"
)

func float32At(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func TestVertexMarshalLayout(t *testing.T) {
	v := Vertex{Position: [2]float32{1.5, -2.5}, UV: [2]float32{0.25, 0.75}}

	buf := v.Marshal()
	if len(buf) != v.Size() {
		t.Fatalf("marshal length %d != Size() %d", len(buf), v.Size())
	}

	if got := float32At(buf, 0); got != 1.5 {
		t.Errorf("position.x = %v, want 1.5", got)
	}
	if got := float32At(buf, 4); got != -2.5 {
		t.Errorf("position.y = %v, want -2.5", got)
	}
	if got := float32At(buf, 8); got != 0.25 {
		t.Errorf("uv.x = %v, want 0.25", got)
	}
	if got := float32At(buf, 12); got != 0.75 {
		t.Errorf("uv.y = %v, want 0.75", got)
	}
}

func TestColorVertexMarshalLayout(t *testing.T) {
	v := ColorVertex{Position: [2]float32{3, 4}, Color: [4]float32{0.1, 0.2, 0.3, 0.4}}

	buf := v.Marshal()
	if len(buf) != v.Size() {
		t.Fatalf("marshal length %d != Size() %d", len(buf), v.Size())
	}

	if got := float32At(buf, 8); got != 0.1 {
		t.Errorf("color.r = %v, want 0.1", got)
	}
	if got := float32At(buf, 20); got != 0.4 {
		t.Errorf("color.a = %v, want 0.4", got)
	}
}

func TestMarshalVerticesConcatenates(t *testing.T) {
	verts := []Vertex{
		{Position: [2]float32{1, 2}},
		{Position: [2]float32{3, 4}},
	}

	buf := marshalVertices(verts)
	if len(buf) != 32 {
		t.Fatalf("buffer length = %d, want 32", len(buf))
	}
	if got := float32At(buf, 16); got != 3 {
		t.Errorf("second vertex position.x = %v, want 3", got)
	}
}

func TestViewportUniformBlock(t *testing.T) {
	buf := viewportUniform(800, 600)

	if len(buf) != viewportUniformSize {
		t.Fatalf("uniform block length = %d, want %d", len(buf), viewportUniformSize)
	}
	if got := float32At(buf, 0); got != 800 {
		t.Errorf("viewport width = %v, want 800", got)
	}
	if got := float32At(buf, 4); got != 600 {
		t.Errorf("viewport height = %v, want 600", got)
	}
	// Padding lanes stay zero.
	if got := float32At(buf, 8); got != 0 {
		t.Errorf("pad.x = %v, want 0", got)
	}
}
