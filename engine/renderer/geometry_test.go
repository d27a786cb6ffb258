package renderer

import (
	"math"
	"testing"
)

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestPixelToNDCCorners(t *testing.T) {
	const vw, vh = 800, 600

	cases := []struct {
		name       string
		px, py     float32
		wantX      float32
		wantY      float32
	}{
		{"top-left", 0, 0, -1, 1},
		{"top-right", vw, 0, 1, 1},
		{"bottom-left", 0, vh, -1, -1},
		{"bottom-right", vw, vh, 1, -1},
		{"center", vw / 2, vh / 2, 0, 0},
	}

	for _, tc := range cases {
		gotX, gotY := pixelToNDC(tc.px, tc.py, vw, vh)
		if !approxEqual(gotX, tc.wantX) || !approxEqual(gotY, tc.wantY) {
			t.Errorf("%s: pixelToNDC(%v, %v) = (%v, %v), want (%v, %v)", tc.name, tc.px, tc.py, gotX, gotY, tc.wantX, tc.wantY)
		}
	}
}

func TestPixelToNDCYAxisPointsDown(t *testing.T) {
	_, yTop := pixelToNDC(0, 100, 800, 600)
	_, yBottom := pixelToNDC(0, 500, 800, 600)
	if yTop <= yBottom {
		t.Errorf("larger pixel y should map to smaller NDC y: got top=%v bottom=%v", yTop, yBottom)
	}
}

func TestTexturedQuadVerticesUVCorners(t *testing.T) {
	verts := make([]Vertex, QuadVertexCount)
	texturedQuadVertices(verts, 10, 20, 100, 50)

	// Each position corner must carry its matching UV corner.
	wantUV := map[[2]float32][2]float32{
		{10, 20}:   {0, 0},
		{110, 20}:  {1, 0},
		{10, 70}:   {0, 1},
		{110, 70}:  {1, 1},
	}

	for i, v := range verts {
		want, ok := wantUV[v.Position]
		if !ok {
			t.Fatalf("vertex %d has unexpected position %v", i, v.Position)
		}
		if v.UV != want {
			t.Errorf("vertex %d at %v has UV %v, want %v", i, v.Position, v.UV, want)
		}
	}
}

func TestTexturedQuadVerticesCoversAllCorners(t *testing.T) {
	verts := make([]Vertex, QuadVertexCount)
	texturedQuadVertices(verts, 0, 0, 10, 10)

	seen := map[[2]float32]int{}
	for _, v := range verts {
		seen[v.Position]++
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct corners, got %d: %v", len(seen), seen)
	}
	// The shared diagonal corners appear twice across the two triangles.
	var doubles int
	for _, n := range seen {
		if n == 2 {
			doubles++
		}
	}
	if doubles != 2 {
		t.Errorf("expected 2 corners shared between triangles, got %d", doubles)
	}
}

func TestFilledRectVerticesColor(t *testing.T) {
	verts := make([]ColorVertex, QuadVertexCount)
	filledRectVertices(verts, 0, 0, 50, 50, 0.2, 0.4, 0.6, 0.8)

	want := [4]float32{0.2, 0.4, 0.6, 0.8}
	for i, v := range verts {
		if v.Color != want {
			t.Errorf("vertex %d has color %v, want %v", i, v.Color, want)
		}
	}
}

func TestRingVerticesCount(t *testing.T) {
	verts := make([]ColorVertex, RingVertexCount)
	ringVertices(verts, 0, 0, 50, 2, RingSegments, 1, 1, 1, 1)

	if RingVertexCount != RingSegments*6 {
		t.Fatalf("RingVertexCount = %d, want %d", RingVertexCount, RingSegments*6)
	}
}

func TestRingVerticesRadii(t *testing.T) {
	const (
		cx, cy    = 100.0, 200.0
		radius    = 50.0
		thickness = 4.0
	)

	verts := make([]ColorVertex, RingVertexCount)
	ringVertices(verts, cx, cy, radius, thickness, RingSegments, 1, 0, 0, 1)

	// Every vertex must sit on either the inner or the outer radius.
	inner := float64(radius - thickness/2)
	outer := float64(radius + thickness/2)

	for i, v := range verts {
		dx := float64(v.Position[0] - cx)
		dy := float64(v.Position[1] - cy)
		dist := math.Sqrt(dx*dx + dy*dy)
		if math.Abs(dist-inner) > 1e-3 && math.Abs(dist-outer) > 1e-3 {
			t.Fatalf("vertex %d at distance %v, want %v or %v", i, dist, inner, outer)
		}
	}
}

func TestRingVerticesClosed(t *testing.T) {
	verts := make([]ColorVertex, RingVertexCount)
	ringVertices(verts, 0, 0, 10, 2, RingSegments, 1, 1, 1, 1)

	// The last segment's trailing edge must land back on the first segment's
	// leading edge so the annulus has no gap.
	firstInner := verts[0].Position
	firstOuter := verts[1].Position
	lastInner := verts[RingVertexCount-1].Position
	lastOuter := verts[RingVertexCount-2].Position

	if !approxEqual(firstInner[0], lastInner[0]) || !approxEqual(firstInner[1], lastInner[1]) {
		t.Errorf("inner seam mismatch: first %v, last %v", firstInner, lastInner)
	}
	if !approxEqual(firstOuter[0], lastOuter[0]) || !approxEqual(firstOuter[1], lastOuter[1]) {
		t.Errorf("outer seam mismatch: first %v, last %v", firstOuter, lastOuter)
	}
}
