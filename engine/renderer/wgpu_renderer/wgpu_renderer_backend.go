// Package wgpu_renderer is the WebGPU RendererBackend. It draws every uploaded LineBatch
// with one line-list pipeline into a window surface.
package wgpu_renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// gpuMesh holds the GPU resources of one uploaded geometry.
type gpuMesh struct {
	vertexBuffer  *wgpu.Buffer
	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup
	vertexCount   uint32
}

func (m *gpuMesh) release() {
	if m.bindGroup != nil {
		m.bindGroup.Release()
	}
	if m.uniformBuffer != nil {
		m.uniformBuffer.Release()
	}
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
	}
}

type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	sampleCount   renderer.MSAASampleCount
	width, height int

	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	pipeline        *wgpu.RenderPipeline
	cameraLayout    *wgpu.BindGroupLayout
	meshLayout      *wgpu.BindGroupLayout
	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	meshes map[uint64]*gpuMesh

	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ renderer.RendererBackend = &wgpuRendererBackendImpl{}

// NewWGPURendererBackend creates the WebGPU backend for a window surface. The surface is
// configured on the first Resize, which renderer.NewRenderer performs.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window
//   - options: variadic list of BackendBuilderOption functions to configure the backend
//
// Returns:
//   - renderer.RendererBackend: the backend
//   - error: an error if the adapter, device or pipeline could not be created
func NewWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...BackendBuilderOption) (renderer.RendererBackend, error) {
	runtime.LockOSThread()
	cfg := &backendConfig{sampleCount: renderer.MSAA4x}
	for _, option := range options {
		option(cfg)
	}

	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: cfg.sampleCount,
		meshes:      make(map[uint64]*gpuMesh),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: cfg.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu_renderer: request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu_renderer: request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	if err := b.createPipeline(); err != nil {
		return nil, err
	}
	return b, nil
}

// createPipeline builds the bind group layouts, camera buffer and wireframe pipeline.
func (b *wgpuRendererBackendImpl) createPipeline() error {
	var err error
	uniformEntry := func(size uint64) []wgpu.BindGroupLayoutEntry {
		return []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: size,
			},
		}}
	}

	cameraUniform := camera.GPUCameraUniform{}
	meshUniform := GPUMeshUniform{}
	b.cameraLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Camera Bind Group Layout",
		Entries: uniformEntry(uint64(cameraUniform.Size())),
	})
	if err != nil {
		return fmt.Errorf("wgpu_renderer: camera layout: %w", err)
	}
	b.meshLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Mesh Bind Group Layout",
		Entries: uniformEntry(uint64(meshUniform.Size())),
	})
	if err != nil {
		return fmt.Errorf("wgpu_renderer: mesh layout: %w", err)
	}

	b.cameraBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  uint64(cameraUniform.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu_renderer: camera buffer: %w", err)
	}
	b.cameraBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: b.cameraLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  b.cameraBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return fmt.Errorf("wgpu_renderer: camera bind group: %w", err)
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Wireframe Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: wireframeShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu_renderer: shader: %w", err)
	}
	defer module.Release()

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Wireframe",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.cameraLayout, b.meshLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu_renderer: pipeline layout: %w", err)
	}

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Wireframe Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: renderer.LineBatchStride * 4,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    *b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu_renderer: render pipeline: %w", err)
	}
	return nil
}

// SetPresentMode sets the surface present mode. It takes effect on the next Resize.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
func (b *wgpuRendererBackendImpl) SetPresentMode(mode renderer.PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case renderer.PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	b.width, b.height = width, height

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}

	count := uint32(b.sampleCount)
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}
	if count > 1 {
		// the pass draws into the MSAA texture and resolves into the swapchain view
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(fmt.Errorf("wgpu_renderer: msaa texture: %w", err))
		}
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(fmt.Errorf("wgpu_renderer: msaa view: %w", err))
		}
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(fmt.Errorf("wgpu_renderer: depth texture: %w", err))
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(fmt.Errorf("wgpu_renderer: depth view: %w", err))
	}

	storeOp := wgpu.StoreOpStore
	if count > 1 {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: storeOp,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackendImpl) Upload(id uint64, batch renderer.LineBatch) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.meshes[id]; ok {
		old.release()
		delete(b.meshes, id)
	}

	label := fmt.Sprintf("Geometry %d", id)
	m := &gpuMesh{vertexCount: uint32(batch.VertexCount())}
	if len(batch.Vertices) > 0 {
		data := common.SliceToBytes(batch.Vertices)
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            label + " Vertex Buffer",
			Size:             uint64(len(data)),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, data)
		m.vertexBuffer = buf
	}

	uniform := GPUMeshUniform{}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  uint64(uniform.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		m.release()
		return err
	}
	m.uniformBuffer = buf

	m.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.meshLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		m.release()
		return err
	}

	b.meshes[id] = m
	return nil
}

func (b *wgpuRendererBackendImpl) Free(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if m, ok := b.meshes[id]; ok {
		m.release()
		delete(b.meshes, id)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame(frame renderer.FrameInfo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return fmt.Errorf("surface not configured")
	}
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	cameraUniform := camera.GPUCameraUniform{
		ViewProj:       frame.ViewProj,
		CameraPosition: [3]float32{frame.CameraPosition.X, frame.CameraPosition.Y, frame.CameraPosition.Z},
	}
	b.queue.WriteBuffer(b.cameraBuffer, 0, cameraUniform.Marshal())

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	bg := frame.Background
	b.renderPassDescriptor.ColorAttachments[0].ClearValue = wgpu.Color{
		R: float64(bg.R), G: float64(bg.G), B: float64(bg.B), A: 1.0,
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(0, b.cameraBindGroup, nil)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) Draw(call renderer.DrawCall) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.meshes[call.GeometryID]
	if !ok {
		return fmt.Errorf("geometry %d not uploaded", call.GeometryID)
	}
	if m.vertexBuffer == nil || m.vertexCount == 0 {
		return nil
	}
	uniform := GPUMeshUniform{
		Model: call.Model,
		Color: [4]float32{call.Color.R, call.Color.G, call.Color.B, 1},
	}
	b.queue.WriteBuffer(m.uniformBuffer, 0, uniform.Marshal())

	b.framePass.SetBindGroup(1, m.bindGroup, nil)
	b.framePass.SetVertexBuffer(0, m.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.Draw(m.vertexCount, 1, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return fmt.Errorf("end frame without begin frame")
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.releaseFrameSurface()
		b.frameEncoder = nil
		b.framePass = nil
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil

	b.surface.Present()
	b.releaseFrameSurface()
	return nil
}

func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, m := range b.meshes {
		m.release()
		delete(b.meshes, id)
	}
	if b.cameraBindGroup != nil {
		b.cameraBindGroup.Release()
	}
	if b.cameraBuffer != nil {
		b.cameraBuffer.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
	}
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
