package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	vrdeck "github.com/vrdeck/vrdeck"
	"github.com/vrdeck/vrdeck/core"
	"github.com/vrdeck/vrdeck/geometry"
)

// RendererOptions configures the frame graph at construction.
type RendererOptions struct {
	// Per-eye render target size.
	EyeWidth  uint32
	EyeHeight uint32

	Variant        ScreenVariant
	AmbientEnabled bool

	ScreenMesh *geometry.Mesh
	DomeMesh   *geometry.Mesh
}

// Renderer encodes one frame: per eye, the scene pass draws the ambient dome
// and the screen into the current target, the temporal pass folds the result
// into the history accumulation, and finally the left-eye display layer is
// blitted to the preview window. The history slots swap after each frame.
type Renderer struct {
	state *State
	log   vrdeck.Logger

	pipelines      *Pipelines
	variant        ScreenVariant
	ambientEnabled bool

	sampler *wgpu.Sampler

	screenMesh *MeshBuffers
	domeMesh   *MeshBuffers

	paramsBuf      *wgpu.Buffer
	camerasBuf     *wgpu.Buffer
	screenModelBuf *wgpu.Buffer
	domeModelBuf   *wgpu.Buffer
	temporalBuf    *wgpu.Buffer
	viewIndexBufs  [core.ViewCount]*wgpu.Buffer

	source  *SourceTexture
	current *EyeTarget
	display *EyeTarget
	history *HistoryBuffer

	screenSourceBind  *wgpu.BindGroup
	screenUniformBind *wgpu.BindGroup
	screenViewBinds   [core.ViewCount]*wgpu.BindGroup

	ambientSourceBind  *wgpu.BindGroup
	ambientUniformBind *wgpu.BindGroup
	ambientViewBinds   [core.ViewCount]*wgpu.BindGroup

	temporalInputBinds  [2]*wgpu.BindGroup // indexed by history read slot
	temporalUniformBind *wgpu.BindGroup
	temporalViewBinds   [core.ViewCount]*wgpu.BindGroup

	blitBind *wgpu.BindGroup
}

func NewRenderer(state *State, log vrdeck.Logger, opts RendererOptions) *Renderer {
	r := &Renderer{
		state:          state,
		log:            log,
		pipelines:      NewPipelines(state),
		variant:        opts.Variant,
		ambientEnabled: opts.AmbientEnabled,
	}

	sampler, err := state.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        "Frame Sampler",
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	})
	if err != nil {
		panic(err)
	}
	r.sampler = sampler

	r.screenMesh = UploadMesh(state.Device, "Screen", opts.ScreenMesh)
	r.domeMesh = UploadMesh(state.Device, "Dome", opts.DomeMesh)

	r.paramsBuf = createUniformBuffer(state.Device, "Screen Params", core.ScreenParams{})
	r.camerasBuf = createUniformBuffer(state.Device, "Cameras", CamerasUniform{
		ViewProj: [core.ViewCount]mgl32.Mat4{mgl32.Ident4(), mgl32.Ident4()},
	})
	r.screenModelBuf = createUniformBuffer(state.Device, "Screen Model", ModelUniform{Matrix: mgl32.Ident4()})
	r.domeModelBuf = createUniformBuffer(state.Device, "Dome Model", ModelUniform{Matrix: mgl32.Ident4()})
	r.temporalBuf = createUniformBuffer(state.Device, "Temporal Params", TemporalUniform{})
	for view := range r.viewIndexBufs {
		r.viewIndexBufs[view] = createUniformBuffer(state.Device, fmt.Sprintf("View Index %d", view),
			viewIndexUniform{Index: uint32(view)})
	}

	r.current = NewEyeTarget(state.Device, "Current", opts.EyeWidth, opts.EyeHeight)
	r.display = NewEyeTarget(state.Device, "Display", opts.EyeWidth, opts.EyeHeight)
	r.history = NewHistoryBuffer(state.Device, opts.EyeWidth, opts.EyeHeight)

	// A 1x1 grey placeholder until a real source arrives.
	r.source = NewSourceTexture(state.Device, "Placeholder Source", 1, 1)
	if err := r.source.Write(state.Queue, []byte{0x55, 0x55, 0x55, 0xff}); err != nil {
		panic(err)
	}

	r.rebuildScreenBinds()
	r.rebuildAmbientBinds()
	r.rebuildTemporalBinds()
	r.rebuildBlitBind()

	log.Infof("renderer ready: %dx%d per eye, variant=%s/%s ambient=%v",
		opts.EyeWidth, opts.EyeHeight, vertexName(opts.Variant), opts.Variant.Mapping, opts.AmbientEnabled)
	return r
}

type viewIndexUniform struct {
	Index uint32
	// WGSL uniform bindings round up; keep the buffer 16 bytes.
	Pad0, Pad1, Pad2 uint32
}

func vertexName(v ScreenVariant) string {
	if v.Flat {
		return "flat"
	}
	return "curved"
}

// SetSource replaces the sampled capture texture and rebinds everything that
// references it. The old texture is released.
func (r *Renderer) SetSource(width, height uint32) *SourceTexture {
	if r.source != nil {
		r.source.Release()
	}
	r.source = NewSourceTexture(r.state.Device, "Source", width, height)
	r.rebuildScreenBinds()
	r.rebuildAmbientBinds()
	r.log.Debugf("source texture now %dx%d", width, height)
	return r.source
}

func (r *Renderer) Source() *SourceTexture { return r.source }

// SetVariant switches the screen pipeline. Bind groups are rebuilt because
// each pipeline owns its own layout objects.
func (r *Renderer) SetVariant(v ScreenVariant) {
	if v == r.variant {
		return
	}
	r.variant = v
	r.rebuildScreenBinds()
	r.log.Infof("screen variant now %s/%s", vertexName(v), v.Mapping)
}

func (r *Renderer) SetAmbientEnabled(enabled bool) { r.ambientEnabled = enabled }

func (r *Renderer) UpdateScreenParams(p core.ScreenParams) {
	mustWrite(r.state.Queue.WriteBuffer(r.paramsBuf, 0, PackUniform(p)))
}

func (r *Renderer) UpdateCameras(viewProj [core.ViewCount]mgl32.Mat4) {
	mustWrite(r.state.Queue.WriteBuffer(r.camerasBuf, 0, PackUniform(CamerasUniform{ViewProj: viewProj})))
}

func (r *Renderer) UpdateScreenModel(m mgl32.Mat4) {
	mustWrite(r.state.Queue.WriteBuffer(r.screenModelBuf, 0, PackUniform(ModelUniform{Matrix: m})))
}

func (r *Renderer) UpdateDomeModel(m mgl32.Mat4) {
	mustWrite(r.state.Queue.WriteBuffer(r.domeModelBuf, 0, PackUniform(ModelUniform{Matrix: m})))
}

func (r *Renderer) UpdateTemporal(p core.TemporalBlurParams) {
	mustWrite(r.state.Queue.WriteBuffer(r.temporalBuf, 0, PackUniform(TemporalUniform{TemporalBlurParams: p})))
}

// RenderFrame encodes and submits one frame, presents the preview, and swaps
// the history slots.
func (r *Renderer) RenderFrame() error {
	nextTexture, err := r.state.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer nextTexture.Release()

	surfaceView, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("surface view: %w", err)
	}
	defer surfaceView.Release()

	encoder, err := r.state.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	screenPipeline := r.pipelines.Screen(r.variant)

	for view := 0; view < core.ViewCount; view++ {
		// Scene pass: dome behind, screen in front, no depth buffer.
		scenePass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			Label: "Scene Pass",
			ColorAttachments: []wgpu.RenderPassColorAttachment{{
				View:       r.current.LayerViews[view],
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{A: 1},
			}},
		})
		if r.ambientEnabled {
			scenePass.SetPipeline(r.pipelines.Ambient)
			scenePass.SetBindGroup(0, r.ambientSourceBind, nil)
			scenePass.SetBindGroup(1, r.ambientUniformBind, nil)
			scenePass.SetBindGroup(2, r.ambientViewBinds[view], nil)
			scenePass.SetVertexBuffer(0, r.domeMesh.Vertex, 0, wgpu.WholeSize)
			scenePass.SetIndexBuffer(r.domeMesh.Index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			scenePass.DrawIndexed(r.domeMesh.IndexCount, 1, 0, 0, 0)
		}
		scenePass.SetPipeline(screenPipeline)
		scenePass.SetBindGroup(0, r.screenSourceBind, nil)
		scenePass.SetBindGroup(1, r.screenUniformBind, nil)
		scenePass.SetBindGroup(2, r.screenViewBinds[view], nil)
		scenePass.SetVertexBuffer(0, r.screenMesh.Vertex, 0, wgpu.WholeSize)
		scenePass.SetIndexBuffer(r.screenMesh.Index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		scenePass.DrawIndexed(r.screenMesh.IndexCount, 1, 0, 0, 0)
		if err := scenePass.End(); err != nil {
			return fmt.Errorf("scene pass view %d: %w", view, err)
		}
		scenePass.Release()

		// Temporal pass: display and next history written together.
		temporalPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			Label: "Temporal Pass",
			ColorAttachments: []wgpu.RenderPassColorAttachment{
				{
					View:       r.display.LayerViews[view],
					LoadOp:     wgpu.LoadOpClear,
					StoreOp:    wgpu.StoreOpStore,
					ClearValue: wgpu.Color{A: 1},
				},
				{
					View:       r.history.Write().LayerViews[view],
					LoadOp:     wgpu.LoadOpClear,
					StoreOp:    wgpu.StoreOpStore,
					ClearValue: wgpu.Color{A: 1},
				},
			},
		})
		temporalPass.SetPipeline(r.pipelines.Temporal)
		temporalPass.SetBindGroup(0, r.temporalInputBinds[r.history.ReadIndex()], nil)
		temporalPass.SetBindGroup(1, r.temporalUniformBind, nil)
		temporalPass.SetBindGroup(2, r.temporalViewBinds[view], nil)
		temporalPass.Draw(3, 1, 0, 0)
		if err := temporalPass.End(); err != nil {
			return fmt.Errorf("temporal pass view %d: %w", view, err)
		}
		temporalPass.Release()
	}

	// Preview blit of the left eye to the window.
	blitPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Blit Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       surfaceView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{A: 1},
		}},
	})
	blitPass.SetPipeline(r.pipelines.Blit)
	blitPass.SetBindGroup(0, r.blitBind, nil)
	blitPass.Draw(3, 1, 0, 0)
	if err := blitPass.End(); err != nil {
		return fmt.Errorf("blit pass: %w", err)
	}
	blitPass.Release()

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmdBuffer.Release()

	r.state.Queue.Submit(cmdBuffer)
	r.state.Surface.Present()

	r.history.Swap()
	return nil
}

// Display exposes the blended per-eye output, e.g. for submission to an XR
// compositor.
func (r *Renderer) Display() *EyeTarget { return r.display }

func (r *Renderer) Release() {
	r.blitBindRelease()
	r.temporalBindsRelease()
	r.ambientBindsRelease()
	r.screenBindsRelease()
	if r.history != nil {
		r.history.Release()
	}
	if r.display != nil {
		r.display.Release()
	}
	if r.current != nil {
		r.current.Release()
	}
	if r.source != nil {
		r.source.Release()
	}
	for _, b := range r.viewIndexBufs {
		b.Release()
	}
	r.temporalBuf.Release()
	r.domeModelBuf.Release()
	r.screenModelBuf.Release()
	r.camerasBuf.Release()
	r.paramsBuf.Release()
	r.domeMesh.Release()
	r.screenMesh.Release()
	r.sampler.Release()
	r.pipelines.Release()
}

func createUniformBuffer(device *wgpu.Device, label string, initial any) *wgpu.Buffer {
	buffer, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: PackUniform(initial),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	return buffer
}

func mustWrite(err error) {
	if err != nil {
		panic(err)
	}
}
