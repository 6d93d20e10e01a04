package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/vrdeck/vrdeck/geometry"
)

// MeshBuffers is a mesh uploaded to the device.
type MeshBuffers struct {
	Vertex     *wgpu.Buffer
	Index      *wgpu.Buffer
	IndexCount uint32
}

func UploadMesh(device *wgpu.Device, label string, mesh *geometry.Mesh) *MeshBuffers {
	vertexBuf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Vertex Buffer",
		Contents: wgpu.ToBytes(mesh.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		panic(err)
	}
	indexBuf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Index Buffer",
		Contents: wgpu.ToBytes(mesh.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		panic(err)
	}
	return &MeshBuffers{
		Vertex:     vertexBuf,
		Index:      indexBuf,
		IndexCount: mesh.IndexCount(),
	}
}

func (m *MeshBuffers) Release() {
	if m.Vertex != nil {
		m.Vertex.Release()
	}
	if m.Index != nil {
		m.Index.Release()
	}
}
