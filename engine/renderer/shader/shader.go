// Package shader holds the overlay renderer's two fixed WGSL programs. Both
// are embedded at build time; nothing is loaded from disk or parsed at runtime.
package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the entry-point stage within a shader program.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage, used for the pixel-to-NDC transform.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage, paired with the vertex stage in
	// a single WGSL module.
	ShaderTypeFragment
)

//go:embed assets/textured_quad.wgsl
var texturedQuadSource string

//go:embed assets/solid_color.wgsl
var solidColorSource string

// shader is the implementation of the Shader interface. It holds the embedded
// source of one WGSL module containing both entry points, plus the CPU-side
// layout metadata the renderer needs to build the matching pipeline.
type shader struct {
	key           string
	source        string
	entryPoints   map[ShaderType]string
	vertexLayouts []wgpu.VertexBufferLayout
}

// Shader defines the interface for one of the overlay renderer's fixed WGSL
// programs. It exposes the program's unique key, source code, per-stage entry
// points, and vertex buffer layout needed for pipeline creation.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labeling GPU objects.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// EntryPoint retrieves the entry-point function name for the given stage.
	//
	// Parameters:
	//   - shaderType: the stage to look up (vertex or fragment)
	//
	// Returns:
	//   - string: the entry-point name, or "" if the stage is not present
	EntryPoint(shaderType ShaderType) string

	// VertexLayouts retrieves the vertex buffer layouts consumed by the vertex stage.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts for pipeline creation
	VertexLayouts() []wgpu.VertexBufferLayout
}

var _ Shader = &shader{}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(shaderType ShaderType) string {
	return s.entryPoints[shaderType]
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

// TexturedQuad returns the textured-quad shader program: the vertex stage
// transforms pixel positions to NDC and passes UVs through; the fragment stage
// samples the bound texture. Vertex layout: position vec2f + uv vec2f,
// 16 bytes per vertex.
//
// Returns:
//   - Shader: the textured-quad shader program
func TexturedQuad() Shader {
	return &shader{
		key:    "overlay_textured_quad",
		source: texturedQuadSource,
		entryPoints: map[ShaderType]string{
			ShaderTypeVertex:   "vs_main",
			ShaderTypeFragment: "fs_main",
		},
		vertexLayouts: []wgpu.VertexBufferLayout{
			{
				ArrayStride: 16,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				},
			},
		},
	}
}

// SolidColor returns the solid-color shader program: the vertex stage
// transforms pixel positions to NDC and passes the per-vertex color through;
// the fragment stage outputs it directly. Vertex layout: position vec2f +
// color vec4f, 24 bytes per vertex.
//
// Returns:
//   - Shader: the solid-color shader program
func SolidColor() Shader {
	return &shader{
		key:    "overlay_solid_color",
		source: solidColorSource,
		entryPoints: map[ShaderType]string{
			ShaderTypeVertex:   "vs_main",
			ShaderTypeFragment: "fs_main",
		},
		vertexLayouts: []wgpu.VertexBufferLayout{
			{
				ArrayStride: 24,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
				},
			},
		},
	}
}
