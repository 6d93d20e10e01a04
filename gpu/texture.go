package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/vrdeck/vrdeck/core"
)

// IntermediateFormat is the format of the per-eye render targets. Float16
// keeps the temporal accumulation from banding in dark scenes.
const IntermediateFormat = wgpu.TextureFormatRGBA16Float

// SourceTexture is the uploaded capture frame the screen samples from.
type SourceTexture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Width   uint32
	Height  uint32
}

func NewSourceTexture(device *wgpu.Device, label string, width, height uint32) *SourceTexture {
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	return &SourceTexture{Texture: texture, View: view, Width: width, Height: height}
}

// Write uploads a full frame of tightly packed RGBA pixels.
func (t *SourceTexture) Write(queue *wgpu.Queue, pixels []byte) error {
	return queue.WriteTexture(
		t.Texture.AsImageCopy(),
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  t.Width * 4,
			RowsPerImage: t.Height,
		},
		&wgpu.Extent3D{Width: t.Width, Height: t.Height, DepthOrArrayLayers: 1},
	)
}

func (t *SourceTexture) Release() {
	if t.View != nil {
		t.View.Release()
	}
	if t.Texture != nil {
		t.Texture.Release()
	}
}

// EyeTarget is a two-layer array texture, one layer per eye. ArrayView binds
// the whole array for sampling; LayerViews attach individual layers to render
// passes.
type EyeTarget struct {
	Texture    *wgpu.Texture
	ArrayView  *wgpu.TextureView
	LayerViews [core.ViewCount]*wgpu.TextureView
	Width      uint32
	Height     uint32
}

func NewEyeTarget(device *wgpu.Device, label string, width, height uint32) *EyeTarget {
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: core.ViewCount,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        IntermediateFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		panic(err)
	}

	arrayView, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Label:           label + " Array View",
		Format:          IntermediateFormat,
		Dimension:       wgpu.TextureViewDimension2DArray,
		BaseArrayLayer:  0,
		ArrayLayerCount: core.ViewCount,
		MipLevelCount:   1,
	})
	if err != nil {
		panic(err)
	}

	target := &EyeTarget{
		Texture:   texture,
		ArrayView: arrayView,
		Width:     width,
		Height:    height,
	}
	for layer := uint32(0); layer < core.ViewCount; layer++ {
		view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
			Label:           label + " Layer View",
			Format:          IntermediateFormat,
			Dimension:       wgpu.TextureViewDimension2D,
			BaseArrayLayer:  layer,
			ArrayLayerCount: 1,
			MipLevelCount:   1,
		})
		if err != nil {
			panic(err)
		}
		target.LayerViews[layer] = view
	}
	return target
}

func (t *EyeTarget) Release() {
	for _, v := range t.LayerViews {
		if v != nil {
			v.Release()
		}
	}
	if t.ArrayView != nil {
		t.ArrayView.Release()
	}
	if t.Texture != nil {
		t.Texture.Release()
	}
}

// HistoryBuffer is the two-slot accumulation store of the temporal pass. The
// pass samples Read and renders into Write; Swap flips the roles after the
// frame is encoded. The slots are distinct textures, never aliased.
type HistoryBuffer struct {
	slots [2]*EyeTarget
	read  int
}

func NewHistoryBuffer(device *wgpu.Device, width, height uint32) *HistoryBuffer {
	return &HistoryBuffer{
		slots: [2]*EyeTarget{
			NewEyeTarget(device, "History 0", width, height),
			NewEyeTarget(device, "History 1", width, height),
		},
	}
}

func (h *HistoryBuffer) Read() *EyeTarget  { return h.slots[h.read] }
func (h *HistoryBuffer) Write() *EyeTarget { return h.slots[1-h.read] }

// ReadIndex identifies the current read slot; bind groups are prebuilt per
// slot and selected with it.
func (h *HistoryBuffer) ReadIndex() int { return h.read }

func (h *HistoryBuffer) Swap() { h.read = 1 - h.read }

func (h *HistoryBuffer) Release() {
	for _, s := range h.slots {
		if s != nil {
			s.Release()
		}
	}
}
