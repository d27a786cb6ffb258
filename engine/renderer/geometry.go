package renderer

import "math"

const (
	// QuadVertexCount is the number of vertices in a two-triangle quad.
	QuadVertexCount = 6

	// RingSegments is the fixed segment count used to tessellate rings.
	RingSegments = 64

	// RingVertexCount is the total vertex count of a tessellated ring:
	// two triangles per segment.
	RingVertexCount = RingSegments * 6

	// ringThickness is the fixed ring outline thickness in pixels.
	ringThickness = 2.0
)

// pixelToNDC converts a pixel-space position to normalized device coordinates
// for the given viewport. This mirrors the transform both WGSL vertex stages
// perform on the GPU; it exists on the CPU side for documentation and tests.
func pixelToNDC(px, py, vw, vh float32) (float32, float32) {
	return 2*px/vw - 1, 1 - 2*py/vh
}

// texturedQuadVertices fills dst with the two triangles covering the pixel
// rectangle (x, y, w, h), each vertex paired with its UV corner: top-left
// (0,0) through bottom-right (1,1). Triangle order: (TL, TR, BL), (TR, BR, BL).
//
// Parameters:
//   - dst: destination slice, at least QuadVertexCount long
//   - x, y: top-left corner of the rectangle in pixels
//   - w, h: rectangle extent in pixels
func texturedQuadVertices(dst []Vertex, x, y, w, h float32) {
	x2, y2 := x+w, y+h
	dst[0] = Vertex{Position: [2]float32{x, y}, UV: [2]float32{0, 0}}
	dst[1] = Vertex{Position: [2]float32{x2, y}, UV: [2]float32{1, 0}}
	dst[2] = Vertex{Position: [2]float32{x, y2}, UV: [2]float32{0, 1}}
	dst[3] = Vertex{Position: [2]float32{x2, y}, UV: [2]float32{1, 0}}
	dst[4] = Vertex{Position: [2]float32{x2, y2}, UV: [2]float32{1, 1}}
	dst[5] = Vertex{Position: [2]float32{x, y2}, UV: [2]float32{0, 1}}
}

// filledRectVertices fills dst with the two triangles covering the pixel
// rectangle (x, y, w, h), every vertex tagged with the given RGBA color.
// Same triangle layout as texturedQuadVertices.
//
// Parameters:
//   - dst: destination slice, at least QuadVertexCount long
//   - x, y: top-left corner of the rectangle in pixels
//   - w, h: rectangle extent in pixels
//   - r, g, b, a: vertex color components in [0,1]
func filledRectVertices(dst []ColorVertex, x, y, w, h, r, g, b, a float32) {
	x2, y2 := x+w, y+h
	color := [4]float32{r, g, b, a}
	dst[0] = ColorVertex{Position: [2]float32{x, y}, Color: color}
	dst[1] = ColorVertex{Position: [2]float32{x2, y}, Color: color}
	dst[2] = ColorVertex{Position: [2]float32{x, y2}, Color: color}
	dst[3] = ColorVertex{Position: [2]float32{x2, y}, Color: color}
	dst[4] = ColorVertex{Position: [2]float32{x2, y2}, Color: color}
	dst[5] = ColorVertex{Position: [2]float32{x, y2}, Color: color}
}

// ringVertices fills dst with a closed annulus centered on (cx, cy) between
// radii radius-thickness/2 and radius+thickness/2. For each of the segments
// the quad between the inner and outer arc is emitted as two triangles, so the
// output is segments*6 vertices forming segments*2 triangles.
//
// Parameters:
//   - dst: destination slice, at least segments*6 long
//   - cx, cy: ring center in pixels
//   - radius: ring center-line radius in pixels
//   - thickness: ring outline thickness in pixels
//   - segments: number of arc segments
//   - r, g, b, a: vertex color components in [0,1]
func ringVertices(dst []ColorVertex, cx, cy, radius, thickness float32, segments int, r, g, b, a float32) {
	inner := radius - thickness/2
	outer := radius + thickness/2
	color := [4]float32{r, g, b, a}

	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)

		cos0, sin0 := float32(math.Cos(a0)), float32(math.Sin(a0))
		cos1, sin1 := float32(math.Cos(a1)), float32(math.Sin(a1))

		innerA := [2]float32{cx + inner*cos0, cy + inner*sin0}
		outerA := [2]float32{cx + outer*cos0, cy + outer*sin0}
		innerB := [2]float32{cx + inner*cos1, cy + inner*sin1}
		outerB := [2]float32{cx + outer*cos1, cy + outer*sin1}

		base := i * 6
		dst[base+0] = ColorVertex{Position: innerA, Color: color}
		dst[base+1] = ColorVertex{Position: outerA, Color: color}
		dst[base+2] = ColorVertex{Position: innerB, Color: color}
		dst[base+3] = ColorVertex{Position: outerA, Color: color}
		dst[base+4] = ColorVertex{Position: outerB, Color: color}
		dst[base+5] = ColorVertex{Position: innerB, Color: color}
	}
}
