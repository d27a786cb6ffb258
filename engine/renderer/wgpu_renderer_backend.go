package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sablegfx/sable"
	"github.com/sablegfx/sable/engine/renderer/pipeline"
	"github.com/sablegfx/sable/engine/renderer/shader"
)

// acquiredFrame bundles the per-frame GPU objects produced by AcquireFrame.
// The renderer wraps it in a RenderContext; the backend takes it back in
// SubmitFrame to finish, present, and release.
type acquiredFrame struct {
	surface *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	// surfaceFormat is fixed to BGRA8Unorm; the surface is configured
	// framebuffer-only (render attachment usage, no read-back).
	surfaceFormat wgpu.TextureFormat

	presentMode wgpu.PresentMode

	// surfaceWidth/surfaceHeight mirror the most recent ConfigureSurface call,
	// in pixels. Zero until the surface has been configured.
	surfaceWidth  uint32
	surfaceHeight uint32

	// dropLogLast/dropsElided rate-limit the command-encoding failure warning.
	dropLogLast time.Time
	dropsElided int
}

type wgpuRendererBackend interface {
	// Device returns the GPU device.
	Device() *wgpu.Device

	// Queue returns the command-submission queue.
	Queue() *wgpu.Queue

	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SurfaceSize returns the pixel dimensions of the most recent surface
	// configuration. Both are zero before the first ConfigureSurface.
	//
	// Returns:
	//   - uint32: surface width in pixels
	//   - uint32: surface height in pixels
	SurfaceSize() (uint32, uint32)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to ConfigureSurface is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline compiles the pipeline's shader program into a
	// shader module and builds the wgpu render pipeline with the pipeline's
	// blend/topology configuration, the given bind group layouts, and the
	// fixed BGRA8 color target. The compiled pipeline is stored on p.
	//
	// Parameters:
	//   - p: the pipeline object holding the shader program and configuration
	//   - bindGroupLayouts: the bind group layouts, indexed by group number
	//
	// Returns:
	//   - error: an error if shader or pipeline creation fails
	RegisterRenderPipeline(p pipeline.Pipeline, bindGroupLayouts []*wgpu.BindGroupLayout) error

	// CreateBindGroupLayout creates a bind group layout from the descriptor.
	//
	// Parameters:
	//   - desc: the layout descriptor
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the created layout
	//   - error: an error if creation fails
	CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)

	// CreateBindGroup creates a bind group from the descriptor.
	//
	// Parameters:
	//   - desc: the bind group descriptor
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if creation fails
	CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)

	// CreateBuffer creates a GPU buffer of the given size and usage.
	//
	// Parameters:
	//   - label: debug label for the buffer
	//   - size: buffer size in bytes
	//   - usage: buffer usage flags
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if creation fails
	CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error)

	// WriteBuffer writes data into a GPU buffer via the queue.
	//
	// Parameters:
	//   - buf: the target buffer
	//   - offset: byte offset into the buffer
	//   - data: the bytes to write
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte)

	// CreateSampler creates the overlay sampler: linear filtering with
	// clamp-to-edge addressing on all axes.
	//
	// Returns:
	//   - *wgpu.Sampler: the created sampler
	//   - error: an error if creation fails
	CreateSampler() (*wgpu.Sampler, error)

	// CreateTexture2D allocates a 2D BGRA8 texture and uploads the full pixel
	// buffer in one call with a row stride of width*4 bytes. No mipmaps.
	//
	// Parameters:
	//   - width: texture width in pixels
	//   - height: texture height in pixels
	//   - pixels: BGRA8 pixel data of length width*height*4
	//
	// Returns:
	//   - *wgpu.Texture: the created texture
	//   - *wgpu.TextureView: a full view of the texture
	//   - error: an error if creation or upload fails
	CreateTexture2D(width, height uint32, pixels []byte) (*wgpu.Texture, *wgpu.TextureView, error)

	// AcquireFrame acquires the next presentable surface image, opens a
	// command encoder, and begins a render pass that clears to the given color
	// and stores the result.
	//
	// Parameters:
	//   - clear: the clear color for the render pass
	//
	// Returns:
	//   - *acquiredFrame: the per-frame GPU objects
	//   - error: an error if no surface image is available
	AcquireFrame(clear wgpu.Color) (*acquiredFrame, error)

	// EncodeDraw records one non-indexed draw into the frame's open render
	// pass: pipeline, bind groups in group-index order, one vertex buffer
	// range, and a single draw of vertexCount vertices.
	//
	// Parameters:
	//   - f: the frame whose pass receives the commands
	//   - p: the registered pipeline to bind
	//   - vertexBuffer: the vertex buffer to bind at slot 0
	//   - offset: byte offset of this draw's vertex range within the buffer
	//   - size: byte length of this draw's vertex range
	//   - vertexCount: the number of vertices to draw
	//   - bindGroups: bind groups to set, indexed by group number
	EncodeDraw(f *acquiredFrame, p pipeline.Pipeline, vertexBuffer *wgpu.Buffer, offset, size uint64, vertexCount uint32, bindGroups []*wgpu.BindGroup)

	// SubmitFrame ends the frame's render pass, submits the command buffer,
	// presents the surface image, and releases the per-frame objects. When
	// waitForCompletion is set the call blocks until the GPU finishes the
	// submitted work, surfacing early initialization errors deterministically.
	//
	// Parameters:
	//   - f: the frame to finish
	//   - waitForCompletion: true to block until GPU completion
	SubmitFrame(f *acquiredFrame, waitForCompletion bool)

	// Release frees the device-level objects owned by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend acquires a GPU adapter and device compatible with the
// given surface descriptor. Unlike most backend methods this fails fast with
// an error: with no device there is no degraded mode to fall back to.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (wgpuRendererBackend, error) {
	runtime.LockOSThread()

	if surfaceDescriptor == nil {
		return nil, errors.New("nil surface descriptor; was the window initialized?")
	}

	b := &wgpuRendererBackendImpl{
		mu:            &sync.Mutex{},
		instance:      wgpu.CreateInstance(nil),
		surfaceFormat: wgpu.TextureFormatBGRA8Unorm,
		presentMode:   wgpu.PresentModeFifo,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("no compatible GPU adapter available: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Overlay Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to acquire GPU device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	sable.Logger().Debug("GPU device acquired", "format", b.surfaceFormat)

	return b, nil
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.surfaceWidth = uint32(width)
	b.surfaceHeight = uint32(height)
}

func (b *wgpuRendererBackendImpl) SurfaceSize() (uint32, uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surfaceWidth, b.surfaceHeight
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline, bindGroupLayouts []*wgpu.BindGroupLayout) error {
	program := p.Program()
	if program == nil {
		return errors.New("pipeline has no shader program")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: program.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: program.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile shader %q: %w", program.Key(), err)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout for %q: %w", p.PipelineKey(), err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: program.EntryPoint(shader.ShaderTypeVertex),
			Buffers:    program.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: program.EntryPoint(shader.ShaderTypeFragment),
			Targets: []wgpu.ColorTargetState{
				func() wgpu.ColorTargetState {
					state := wgpu.ColorTargetState{
						Format:    b.surfaceFormat,
						WriteMask: p.WriteMask(),
					}
					if p.BlendEnabled() {
						state.Blend = p.BlendState()
					}
					return state
				}(),
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create render pipeline %q: %w", p.PipelineKey(), err)
	}

	p.SetRenderPipeline(created)

	return nil
}

func (b *wgpuRendererBackendImpl) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	layout, err := b.device.CreateBindGroupLayout(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group layout %q: %w", desc.Label, err)
	}
	return layout, nil
}

func (b *wgpuRendererBackendImpl) CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	group, err := b.device.CreateBindGroup(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group %q: %w", desc.Label, err)
	}
	return group, nil
}

func (b *wgpuRendererBackendImpl) CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            usage,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer %q: %w", label, err)
	}
	return buf, nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue.WriteBuffer(buf, offset, data)
}

func (b *wgpuRendererBackendImpl) CreateSampler() (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Overlay Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}
	return samp, nil
}

func (b *wgpuRendererBackendImpl) CreateTexture2D(width, height uint32, pixels []byte) (*wgpu.Texture, *wgpu.TextureView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Overlay Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        b.surfaceFormat,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create texture: %w", err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("failed to create texture view: %w", err)
	}

	return tex, view, nil
}

func (b *wgpuRendererBackendImpl) AcquireFrame(clear wgpu.Color) (*acquiredFrame, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return nil, err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})

	return &acquiredFrame{
		surface: surfaceTexture,
		view:    view,
		encoder: encoder,
		pass:    pass,
	}, nil
}

func (b *wgpuRendererBackendImpl) EncodeDraw(f *acquiredFrame, p pipeline.Pipeline, vertexBuffer *wgpu.Buffer, offset, size uint64, vertexCount uint32, bindGroups []*wgpu.BindGroup) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if f == nil || f.pass == nil {
		return
	}

	f.pass.SetPipeline(p.RenderPipeline())
	for i, bg := range bindGroups {
		f.pass.SetBindGroup(uint32(i), bg, nil)
	}
	f.pass.SetVertexBuffer(0, vertexBuffer, offset, size)
	f.pass.Draw(vertexCount, 1, 0, 0)
}

func (b *wgpuRendererBackendImpl) SubmitFrame(f *acquiredFrame, waitForCompletion bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if f == nil || f.pass == nil {
		return
	}

	f.pass.End()

	commandBuffer, err := f.encoder.Finish(nil)
	if err != nil {
		b.logDroppedFrame(err)
		f.encoder.Release()
		f.view.Release()
		f.surface.Release()
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	f.encoder.Release()

	b.surface.Present()

	f.view.Release()
	f.surface.Release()

	if waitForCompletion {
		// Bring-up wait: blocks until the submitted work completes so early
		// initialization errors surface on a known frame.
		b.device.Poll(true, nil)
	}
}

// logDroppedFrame reports command encoding failures at most once per second;
// a wedged encoder fails every frame and per-frame logging at display rate
// would bury everything else. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) logDroppedFrame(err error) {
	now := time.Now()
	if now.Sub(b.dropLogLast) < time.Second {
		b.dropsElided++
		return
	}

	sable.Logger().Warn("frame dropped: command encoding failed",
		"error", err,
		"elided", b.dropsElided,
	)
	b.dropLogLast = now
	b.dropsElided = 0
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
