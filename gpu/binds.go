package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/vrdeck/vrdeck/core"
)

// Bind groups are derived from each pipeline's auto layout, so they must be
// rebuilt whenever the pipeline or a referenced texture changes.

func createBindGroup(device *wgpu.Device, pipeline *wgpu.RenderPipeline,
	group uint32, entries []wgpu.BindGroupEntry) *wgpu.BindGroup {

	layout := pipeline.GetBindGroupLayout(group)
	defer layout.Release()

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		panic(err)
	}
	return bindGroup
}

func bufferEntry(binding uint32, buffer *wgpu.Buffer) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{Binding: binding, Buffer: buffer, Size: wgpu.WholeSize}
}

func textureEntry(binding uint32, view *wgpu.TextureView) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{Binding: binding, TextureView: view, Size: wgpu.WholeSize}
}

func samplerEntry(binding uint32, sampler *wgpu.Sampler) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{Binding: binding, Sampler: sampler, Size: wgpu.WholeSize}
}

func (r *Renderer) rebuildScreenBinds() {
	r.screenBindsRelease()
	pipeline := r.pipelines.Screen(r.variant)

	r.screenSourceBind = createBindGroup(r.state.Device, pipeline, 0, []wgpu.BindGroupEntry{
		textureEntry(0, r.source.View),
		samplerEntry(1, r.sampler),
	})
	r.screenUniformBind = createBindGroup(r.state.Device, pipeline, 1, []wgpu.BindGroupEntry{
		bufferEntry(0, r.paramsBuf),
		bufferEntry(1, r.camerasBuf),
		bufferEntry(2, r.screenModelBuf),
	})
	for view := 0; view < core.ViewCount; view++ {
		r.screenViewBinds[view] = createBindGroup(r.state.Device, pipeline, 2, []wgpu.BindGroupEntry{
			bufferEntry(0, r.viewIndexBufs[view]),
		})
	}
}

func (r *Renderer) rebuildAmbientBinds() {
	r.ambientBindsRelease()
	pipeline := r.pipelines.Ambient

	r.ambientSourceBind = createBindGroup(r.state.Device, pipeline, 0, []wgpu.BindGroupEntry{
		textureEntry(0, r.source.View),
		samplerEntry(1, r.sampler),
	})
	r.ambientUniformBind = createBindGroup(r.state.Device, pipeline, 1, []wgpu.BindGroupEntry{
		bufferEntry(0, r.paramsBuf),
		bufferEntry(1, r.camerasBuf),
		bufferEntry(2, r.domeModelBuf),
	})
	for view := 0; view < core.ViewCount; view++ {
		r.ambientViewBinds[view] = createBindGroup(r.state.Device, pipeline, 2, []wgpu.BindGroupEntry{
			bufferEntry(0, r.viewIndexBufs[view]),
		})
	}
}

func (r *Renderer) rebuildTemporalBinds() {
	r.temporalBindsRelease()
	pipeline := r.pipelines.Temporal

	// One input bind group per history orientation; the frame loop selects by
	// the current read slot.
	for slot := 0; slot < 2; slot++ {
		readView := r.history.slots[slot].ArrayView
		r.temporalInputBinds[slot] = createBindGroup(r.state.Device, pipeline, 0, []wgpu.BindGroupEntry{
			textureEntry(0, r.current.ArrayView),
			textureEntry(1, readView),
			samplerEntry(2, r.sampler),
		})
	}
	r.temporalUniformBind = createBindGroup(r.state.Device, pipeline, 1, []wgpu.BindGroupEntry{
		bufferEntry(0, r.temporalBuf),
	})
	for view := 0; view < core.ViewCount; view++ {
		r.temporalViewBinds[view] = createBindGroup(r.state.Device, pipeline, 2, []wgpu.BindGroupEntry{
			bufferEntry(0, r.viewIndexBufs[view]),
		})
	}
}

func (r *Renderer) rebuildBlitBind() {
	r.blitBindRelease()
	r.blitBind = createBindGroup(r.state.Device, r.pipelines.Blit, 0, []wgpu.BindGroupEntry{
		textureEntry(0, r.display.ArrayView),
		samplerEntry(1, r.sampler),
	})
}

func (r *Renderer) screenBindsRelease() {
	if r.screenSourceBind != nil {
		r.screenSourceBind.Release()
		r.screenSourceBind = nil
	}
	if r.screenUniformBind != nil {
		r.screenUniformBind.Release()
		r.screenUniformBind = nil
	}
	for i, b := range r.screenViewBinds {
		if b != nil {
			b.Release()
			r.screenViewBinds[i] = nil
		}
	}
}

func (r *Renderer) ambientBindsRelease() {
	if r.ambientSourceBind != nil {
		r.ambientSourceBind.Release()
		r.ambientSourceBind = nil
	}
	if r.ambientUniformBind != nil {
		r.ambientUniformBind.Release()
		r.ambientUniformBind = nil
	}
	for i, b := range r.ambientViewBinds {
		if b != nil {
			b.Release()
			r.ambientViewBinds[i] = nil
		}
	}
}

func (r *Renderer) temporalBindsRelease() {
	for i, b := range r.temporalInputBinds {
		if b != nil {
			b.Release()
			r.temporalInputBinds[i] = nil
		}
	}
	if r.temporalUniformBind != nil {
		r.temporalUniformBind.Release()
		r.temporalUniformBind = nil
	}
	for i, b := range r.temporalViewBinds {
		if b != nil {
			b.Release()
			r.temporalViewBinds[i] = nil
		}
	}
}

func (r *Renderer) blitBindRelease() {
	if r.blitBind != nil {
		r.blitBind.Release()
		r.blitBind = nil
	}
}
