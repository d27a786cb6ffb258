package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sablegfx/sable/engine/renderer/shader"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline object and the configuration
// used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and labeling
	pipelineKey string

	// program is the WGSL shader module (vertex + fragment entry points) this pipeline compiles
	program shader.Shader

	// renderPipeline is the compiled GPU pipeline, set by the backend after registration
	renderPipeline *wgpu.RenderPipeline

	// The following properties are used to configure the pipeline during creation
	// and can be set with the builder options.

	blendEnabled bool
	blendState   *wgpu.BlendState
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	cullMode     wgpu.CullMode
	writeMask    wgpu.ColorWriteMask
}

// Pipeline defines the interface for a GPU render pipeline used by the overlay
// renderer. It holds the shader program and all configuration state required
// for pipeline creation including blend, cull, and topology settings.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and labeling.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Program retrieves the shader program this pipeline compiles.
	//
	// Returns:
	//   - shader.Shader: the shader program
	Program() shader.Shader

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline, or nil if blending is not enabled
	BlendState() *wgpu.BlendState

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology (e.g., wgpu.PrimitiveTopologyTriangleList)
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order (e.g., wgpu.FrontFaceCCW)
	FrontFace() wgpu.FrontFace

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode (e.g., wgpu.CullModeNone)
	CullMode() wgpu.CullMode

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask (e.g., wgpu.ColorWriteMaskAll)
	WriteMask() wgpu.ColorWriteMask

	// RenderPipeline returns the compiled GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled render pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the compiled GPU pipeline on this Pipeline.
	// Called by the renderer backend after successful registration.
	//
	// Parameters:
	//   - p: the compiled render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// SourceOverBlendState returns the standard "source-over" alpha blend state:
// SrcAlpha / OneMinusSrcAlpha with additive operation on both the color and
// alpha channels.
//
// Returns:
//   - *wgpu.BlendState: the source-over blend state
func SourceOverBlendState() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		},
	}
}

// NewPipeline creates a new Pipeline for the given shader program with the
// specified options. Defaults: triangle-list topology, CCW front face, no
// culling, full color write mask, and source-over alpha blending enabled —
// the configuration both overlay pipelines share.
//
// Parameters:
//   - key: the unique identifier for this pipeline
//   - program: the shader program to compile
//   - options: functional options to adjust the configuration
//
// Returns:
//   - Pipeline: the configured pipeline (not yet registered with a backend)
func NewPipeline(key string, program shader.Shader, options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:  key,
		program:      program,
		blendEnabled: true,
		blendState:   SourceOverBlendState(),
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		cullMode:     wgpu.CullModeNone,
		writeMask:    wgpu.ColorWriteMaskAll,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Program() shader.Shader {
	return p.program
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	if !p.blendEnabled {
		return nil
	}
	return p.blendState
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
