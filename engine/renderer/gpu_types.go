package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Vertex is the GPU-aligned representation of a textured-quad vertex.
// Matches the WGSL VertexInput struct of the textured-quad shader exactly.
// Size: 16 bytes.
type Vertex struct {
	Position [2]float32 // offset 0: position in pixel space (8 bytes)
	UV       [2]float32 // offset 8: texture coordinate in [0,1] (8 bytes)
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the Vertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.UV[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.UV[1]))
	return buf
}

// ColorVertex is the GPU-aligned representation of a solid-color vertex.
// Matches the WGSL VertexInput struct of the solid-color shader exactly.
// Size: 24 bytes.
type ColorVertex struct {
	Position [2]float32 // offset 0: position in pixel space (8 bytes)
	Color    [4]float32 // offset 8: RGBA color in [0,1] (16 bytes)
}

// Size returns the size of the ColorVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *ColorVertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the ColorVertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (v *ColorVertex) Marshal() []byte {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Color[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Color[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Color[2]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Color[3]))
	return buf
}

// marshalVertices serializes a slice of textured vertices for GPU upload.
func marshalVertices(verts []Vertex) []byte {
	buf := make([]byte, 0, len(verts)*16)
	for i := range verts {
		buf = append(buf, verts[i].Marshal()...)
	}
	return buf
}

// marshalColorVertices serializes a slice of color vertices for GPU upload.
func marshalColorVertices(verts []ColorVertex) []byte {
	buf := make([]byte, 0, len(verts)*24)
	for i := range verts {
		buf = append(buf, verts[i].Marshal()...)
	}
	return buf
}

// viewportUniformSize is the byte size of the viewport uniform block shared
// by both pipelines: vec2f size plus vec2f padding for 16-byte alignment.
const viewportUniformSize = 16

// viewportUniform serializes the viewport size into the uniform block.
func viewportUniform(width, height float32) []byte {
	buf := make([]byte, viewportUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(width))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(height))
	return buf
}
