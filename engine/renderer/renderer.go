package renderer

import (
	"fmt"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sablegfx/sable"
	"github.com/sablegfx/sable/common"
	"github.com/sablegfx/sable/engine/renderer/pipeline"
	"github.com/sablegfx/sable/engine/renderer/shader"
	"github.com/sablegfx/sable/engine/window"
)

const (
	defaultWarmupFrameCount = 3
	skipLogInterval         = time.Second
)

type renderer struct {
	backend wgpuRendererBackend
	window  window.Window

	texturedPipeline pipeline.Pipeline
	solidPipeline    pipeline.Pipeline

	viewportLayout *wgpu.BindGroupLayout
	textureLayout  *wgpu.BindGroupLayout

	viewportBuffer *wgpu.Buffer
	viewportGroup  *wgpu.BindGroup
	sampler        *wgpu.Sampler

	// vertexArena hands every draw in a frame its own disjoint byte range, so
	// recorded draw commands keep reading their own geometry after later
	// draws in the same frame upload theirs.
	vertexArena *frameArena

	textures *textureTable

	clearColor       wgpu.Color
	warmupFrameCount int
	framesSubmitted  uint64

	skipLogLast  time.Time
	skipsElided  int
	drawsElided  int
	viewportSize [2]float32

	forceFallbackAdapter bool
	presentMode          PresentMode

	released bool
}

// Renderer draws a 2D overlay onto a window surface: textured quads, filled
// rectangles, and rings, composited back-to-front with source-over blending.
type Renderer interface {
	// CreateTexture uploads BGRA8 pixel data as a GPU texture and returns an
	// opaque handle for use with DrawTexturedQuad.
	//
	// Parameters:
	//   - staging: validated BGRA8 pixel data with dimensions
	//
	// Returns:
	//   - Texture: the handle for the created texture
	//   - error: ErrInvalidPixelData if the staging data is malformed, or a
	//     GPU error if creation fails
	CreateTexture(staging common.TextureStagingData) (Texture, error)

	// DestroyTexture releases the GPU texture behind the handle. Outstanding
	// copies of the handle become stale; destroying an already-destroyed
	// handle is a no-op.
	//
	// Parameters:
	//   - handle: the texture to destroy
	DestroyTexture(handle Texture)

	// BeginFrame opens a frame for drawing. The returned context is Active on
	// success; when no surface image is available (window occluded, mid-resize)
	// the context is Skipped and all draws against it are rejected until the
	// matching EndFrame. BeginFrame never returns nil.
	//
	// Returns:
	//   - *RenderContext: the per-frame drawing context
	BeginFrame() *RenderContext

	// DrawTexturedQuad draws a texture stretched over an axis-aligned
	// rectangle in pixel coordinates.
	//
	// Parameters:
	//   - ctx: the active render context
	//   - handle: the texture to sample
	//   - x, y: top-left corner in pixels
	//   - width, height: quad size in pixels
	//
	// Returns:
	//   - error: ErrContextNotActive, ErrTextureStale, or nil
	DrawTexturedQuad(ctx *RenderContext, handle Texture, x, y, width, height float32) error

	// DrawFilledRect draws a solid axis-aligned rectangle in pixel
	// coordinates with the given straight-alpha color.
	//
	// Parameters:
	//   - ctx: the active render context
	//   - x, y: top-left corner in pixels
	//   - width, height: rectangle size in pixels
	//   - r, g, b, a: color components in [0,1]
	//
	// Returns:
	//   - error: ErrContextNotActive or nil
	DrawFilledRect(ctx *RenderContext, x, y, width, height, r, g, b, a float32) error

	// DrawRing draws a circular ring outline centered at (cx, cy) in pixel
	// coordinates, tessellated as a closed triangle annulus.
	//
	// Parameters:
	//   - ctx: the active render context
	//   - cx, cy: ring center in pixels
	//   - radius: ring centerline radius in pixels
	//   - r, g, b, a: color components in [0,1]
	//
	// Returns:
	//   - error: ErrContextNotActive or nil
	DrawRing(ctx *RenderContext, cx, cy, radius, r, g, b, a float32) error

	// EndFrame closes the frame. For an active context this submits the
	// recorded commands and presents; for a skipped context it is a cheap
	// no-op. The context transitions to Ended either way and further draws
	// against it fail with ErrContextNotActive.
	//
	// Parameters:
	//   - ctx: the context returned by the matching BeginFrame
	EndFrame(ctx *RenderContext)

	// Resize reconfigures the surface for new pixel dimensions. Called by the
	// window resize callback; safe to call with zero dimensions (ignored).
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)

	// ViewportSize returns the pixel dimensions draws are currently mapped
	// against.
	//
	// Returns:
	//   - float32: viewport width in pixels
	//   - float32: viewport height in pixels
	ViewportSize() (float32, float32)

	// Destroy releases all GPU resources owned by the renderer, including any
	// textures still alive. The renderer is unusable afterwards.
	Destroy()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer bound to the window's surface. The surface
// is configured at the window's current framebuffer size and both overlay
// pipelines are compiled up front; any failure here is fatal to rendering, so
// errors propagate rather than degrade.
//
// Parameters:
//   - win: the window supplying the native surface
//   - options: optional configuration overrides
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if device acquisition or pipeline setup fails
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		window:           win,
		textures:         newTextureTable(),
		clearColor:       wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		warmupFrameCount: defaultWarmupFrameCount,
		presentMode:      PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
	if err != nil {
		return nil, err
	}
	r.backend = backend

	backend.SetPresentMode(r.presentMode)
	backend.ConfigureSurface(win.Width(), win.Height())

	if err := r.setupBindGroupLayouts(); err != nil {
		r.backend.Release()
		return nil, err
	}
	if err := r.setupPipelines(); err != nil {
		r.backend.Release()
		return nil, err
	}
	if err := r.setupSharedResources(); err != nil {
		r.backend.Release()
		return nil, err
	}

	sable.Logger().Info("renderer ready",
		"width", win.Width(),
		"height", win.Height(),
		"warmup_frames", r.warmupFrameCount,
	)

	return r, nil
}

func (r *renderer) setupBindGroupLayouts() error {
	viewportLayout, err := r.backend.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Viewport Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					MinBindingSize:   viewportUniformSize,
					HasDynamicOffset: false,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	r.viewportLayout = viewportLayout

	textureLayout, err := r.backend.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay Texture Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	r.textureLayout = textureLayout

	return nil
}

func (r *renderer) setupPipelines() error {
	r.texturedPipeline = pipeline.NewPipeline("Overlay Textured", shader.TexturedQuad())
	if err := r.backend.RegisterRenderPipeline(r.texturedPipeline, []*wgpu.BindGroupLayout{r.viewportLayout, r.textureLayout}); err != nil {
		return fmt.Errorf("failed to register textured pipeline: %w", err)
	}

	r.solidPipeline = pipeline.NewPipeline("Overlay Solid", shader.SolidColor())
	if err := r.backend.RegisterRenderPipeline(r.solidPipeline, []*wgpu.BindGroupLayout{r.viewportLayout}); err != nil {
		return fmt.Errorf("failed to register solid pipeline: %w", err)
	}

	return nil
}

func (r *renderer) setupSharedResources() error {
	viewportBuffer, err := r.backend.CreateBuffer("Viewport Uniform Buffer", viewportUniformSize, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	r.viewportBuffer = viewportBuffer

	viewportGroup, err := r.backend.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Viewport Bind Group",
		Layout: r.viewportLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  r.viewportBuffer,
				Size:    viewportUniformSize,
			},
		},
	})
	if err != nil {
		return err
	}
	r.viewportGroup = viewportGroup

	sampler, err := r.backend.CreateSampler()
	if err != nil {
		return err
	}
	r.sampler = sampler

	r.vertexArena = newFrameArena("Overlay Frame Vertex Buffer", frameArenaChunkSize, r.backend.CreateBuffer, r.backend.WriteBuffer)

	return nil
}

func (r *renderer) CreateTexture(staging common.TextureStagingData) (Texture, error) {
	if err := staging.Validate(); err != nil {
		return Texture{}, fmt.Errorf("%w: %v", ErrInvalidPixelData, err)
	}

	tex, view, err := r.backend.CreateTexture2D(staging.Width, staging.Height, staging.Pixels)
	if err != nil {
		return Texture{}, err
	}

	bindGroup, err := r.backend.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Overlay Texture Bind Group",
		Layout: r.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: view,
			},
			{
				Binding: 1,
				Sampler: r.sampler,
			},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return Texture{}, err
	}

	return r.textures.add(tex, view, bindGroup, staging.Width, staging.Height), nil
}

func (r *renderer) DestroyTexture(handle Texture) {
	r.textures.remove(handle)
}

func (r *renderer) BeginFrame() *RenderContext {
	width, height := r.backend.SurfaceSize()
	width = common.Coalesce(width, uint32(r.window.Width()))
	height = common.Coalesce(height, uint32(r.window.Height()))
	r.viewportSize = [2]float32{float32(width), float32(height)}

	frame, err := r.backend.AcquireFrame(r.clearColor)
	if err != nil {
		r.logSkippedFrame(err)
		return &RenderContext{state: ContextSkipped}
	}

	r.vertexArena.reset()

	r.backend.WriteBuffer(r.viewportBuffer, 0, viewportUniform(r.viewportSize[0], r.viewportSize[1]))

	return &RenderContext{
		state:   ContextActive,
		surface: frame.surface,
		view:    frame.view,
		encoder: frame.encoder,
		pass:    frame.pass,
	}
}

// logSkippedFrame reports surface acquisition failures at most once per
// second; skips come in bursts during resizes and occlusion, and per-frame
// logging at display rate would bury everything else.
func (r *renderer) logSkippedFrame(err error) {
	now := time.Now()
	if now.Sub(r.skipLogLast) < skipLogInterval {
		r.skipsElided++
		return
	}

	sable.Logger().Warn("frame skipped: no surface image available",
		"error", err,
		"elided", r.skipsElided,
	)
	r.skipLogLast = now
	r.skipsElided = 0
}

// logRejectedDraw reports draws against inactive contexts at the same
// once-per-second cadence as skipped frames.
func (r *renderer) logRejectedDraw(op string, state ContextState) {
	now := time.Now()
	if now.Sub(r.skipLogLast) < skipLogInterval {
		r.drawsElided++
		return
	}

	sable.Logger().Warn("draw rejected: context not active",
		"op", op,
		"state", state,
		"elided", r.drawsElided,
	)
	r.skipLogLast = now
	r.drawsElided = 0
}

func (r *renderer) DrawTexturedQuad(ctx *RenderContext, handle Texture, x, y, width, height float32) error {
	if !ctx.active() {
		r.logRejectedDraw("textured_quad", ctx.State())
		return ErrContextNotActive
	}

	entry, err := r.textures.lookup(handle)
	if err != nil {
		return err
	}

	vertices := make([]Vertex, QuadVertexCount)
	texturedQuadVertices(vertices, x, y, width, height)
	data := marshalVertices(vertices)
	buf, offset, err := r.vertexArena.alloc(data)
	if err != nil {
		return err
	}

	r.backend.EncodeDraw(ctx.frame(), r.texturedPipeline, buf, offset, uint64(len(data)), QuadVertexCount, []*wgpu.BindGroup{r.viewportGroup, entry.bindGroup})

	return nil
}

func (r *renderer) DrawFilledRect(ctx *RenderContext, x, y, width, height, red, green, blue, alpha float32) error {
	if !ctx.active() {
		r.logRejectedDraw("filled_rect", ctx.State())
		return ErrContextNotActive
	}

	vertices := make([]ColorVertex, QuadVertexCount)
	filledRectVertices(vertices, x, y, width, height, red, green, blue, alpha)
	data := marshalColorVertices(vertices)
	buf, offset, err := r.vertexArena.alloc(data)
	if err != nil {
		return err
	}

	r.backend.EncodeDraw(ctx.frame(), r.solidPipeline, buf, offset, uint64(len(data)), QuadVertexCount, []*wgpu.BindGroup{r.viewportGroup})

	return nil
}

func (r *renderer) DrawRing(ctx *RenderContext, cx, cy, radius, red, green, blue, alpha float32) error {
	if !ctx.active() {
		r.logRejectedDraw("ring", ctx.State())
		return ErrContextNotActive
	}

	vertices := make([]ColorVertex, RingVertexCount)
	ringVertices(vertices, cx, cy, radius, ringThickness, RingSegments, red, green, blue, alpha)
	data := marshalColorVertices(vertices)
	buf, offset, err := r.vertexArena.alloc(data)
	if err != nil {
		return err
	}

	r.backend.EncodeDraw(ctx.frame(), r.solidPipeline, buf, offset, uint64(len(data)), RingVertexCount, []*wgpu.BindGroup{r.viewportGroup})

	return nil
}

func (r *renderer) EndFrame(ctx *RenderContext) {
	if ctx == nil {
		return
	}

	switch ctx.state {
	case ContextActive:
		r.framesSubmitted++
		r.backend.SubmitFrame(ctx.frame(), r.framesSubmitted <= uint64(r.warmupFrameCount))
	case ContextSkipped:
		// Nothing was acquired; nothing to submit.
	}

	ctx.state = ContextEnded
	ctx.surface = nil
	ctx.view = nil
	ctx.encoder = nil
	ctx.pass = nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) ViewportSize() (float32, float32) {
	return r.viewportSize[0], r.viewportSize[1]
}

func (r *renderer) Destroy() {
	if r.released {
		return
	}
	r.released = true

	r.textures.removeAll()

	if r.vertexArena != nil {
		r.vertexArena.release()
	}
	if r.sampler != nil {
		r.sampler.Release()
	}
	if r.viewportGroup != nil {
		r.viewportGroup.Release()
	}
	if r.viewportBuffer != nil {
		r.viewportBuffer.Release()
	}
	if r.texturedPipeline != nil && r.texturedPipeline.RenderPipeline() != nil {
		r.texturedPipeline.RenderPipeline().Release()
	}
	if r.solidPipeline != nil && r.solidPipeline.RenderPipeline() != nil {
		r.solidPipeline.RenderPipeline().Release()
	}
	if r.textureLayout != nil {
		r.textureLayout.Release()
	}
	if r.viewportLayout != nil {
		r.viewportLayout.Release()
	}

	r.backend.Release()
}
