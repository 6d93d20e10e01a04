package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/vrdeck/vrdeck/geometry"
	"github.com/vrdeck/vrdeck/shaders"
)

// StereoMapping selects the fragment-stage UV remap.
type StereoMapping int

const (
	MappingSymmetric StereoMapping = iota
	MappingLegacy
	MappingMono
)

func (m StereoMapping) String() string {
	switch m {
	case MappingLegacy:
		return "legacy"
	case MappingMono:
		return "mono"
	default:
		return "symmetric"
	}
}

// ScreenVariant identifies one screen pipeline: curved or flat geometry
// crossed with the stereo mapping. Variants are entry-point pairs in the
// shared screen shader module.
type ScreenVariant struct {
	Flat    bool
	Mapping StereoMapping
}

func (v ScreenVariant) entryPoints() (vertex, fragment string) {
	vertex = "vs_main"
	if v.Flat {
		vertex = "vs_flat"
	}
	switch v.Mapping {
	case MappingLegacy:
		fragment = "fs_legacy"
	case MappingMono:
		fragment = "fs_mono"
	default:
		fragment = "fs_main"
	}
	return vertex, fragment
}

// Pipelines holds the render pipelines of the frame graph. Screen variants
// are built lazily and cached; the other stages have exactly one pipeline.
type Pipelines struct {
	device *wgpu.Device

	screenModule *wgpu.ShaderModule
	screenCache  map[ScreenVariant]*wgpu.RenderPipeline

	Ambient  *wgpu.RenderPipeline
	Temporal *wgpu.RenderPipeline
	Blit     *wgpu.RenderPipeline
}

func NewPipelines(state *State) *Pipelines {
	p := &Pipelines{
		device:      state.Device,
		screenCache: map[ScreenVariant]*wgpu.RenderPipeline{},
	}

	var err error
	p.screenModule, err = state.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Screen Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.ScreenWGSL},
	})
	if err != nil {
		panic(err)
	}

	vertexLayout := VertexLayout(geometry.Vertex{})

	p.Ambient = createMeshPipeline(state.Device, "Ambient Pipeline", shaders.AmbientWGSL,
		vertexLayout, []wgpu.ColorTargetState{intermediateTarget()})

	p.Temporal = createFullscreenPipeline(state.Device, "Temporal Pipeline", shaders.TemporalWGSL,
		[]wgpu.ColorTargetState{intermediateTarget(), intermediateTarget()})

	p.Blit = createFullscreenPipeline(state.Device, "Blit Pipeline", shaders.BlitWGSL,
		[]wgpu.ColorTargetState{{
			Format:    state.SurfaceConfig.Format,
			WriteMask: wgpu.ColorWriteMaskAll,
		}})

	return p
}

// Screen returns the pipeline for the given variant, building it on first
// use.
func (p *Pipelines) Screen(v ScreenVariant) *wgpu.RenderPipeline {
	if pipeline, ok := p.screenCache[v]; ok {
		return pipeline
	}

	vertexEntry, fragmentEntry := v.entryPoints()
	pipeline, err := p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Screen Pipeline " + vertexEntry + "/" + fragmentEntry,
		Vertex: wgpu.VertexState{
			Module:     p.screenModule,
			EntryPoint: vertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{VertexLayout(geometry.Vertex{})},
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.screenModule,
			EntryPoint: fragmentEntry,
			Targets:    []wgpu.ColorTargetState{intermediateTarget()},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			// The viewer can end up behind the screen after a recenter.
			CullMode: wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		panic(err)
	}
	p.screenCache[v] = pipeline
	return pipeline
}

func (p *Pipelines) Release() {
	for _, pipeline := range p.screenCache {
		pipeline.Release()
	}
	if p.Ambient != nil {
		p.Ambient.Release()
	}
	if p.Temporal != nil {
		p.Temporal.Release()
	}
	if p.Blit != nil {
		p.Blit.Release()
	}
	if p.screenModule != nil {
		p.screenModule.Release()
	}
}

func intermediateTarget() wgpu.ColorTargetState {
	return wgpu.ColorTargetState{
		Format:    IntermediateFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
}

func createMeshPipeline(device *wgpu.Device, label, shaderCode string,
	vertexLayout wgpu.VertexBufferLayout, targets []wgpu.ColorTargetState) *wgpu.RenderPipeline {

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		panic(err)
	}
	defer shader.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets:    targets,
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		panic(err)
	}
	return pipeline
}

func createFullscreenPipeline(device *wgpu.Device, label, shaderCode string,
	targets []wgpu.ColorTargetState) *wgpu.RenderPipeline {

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		panic(err)
	}
	defer shader.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets:    targets,
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		panic(err)
	}
	return pipeline
}
