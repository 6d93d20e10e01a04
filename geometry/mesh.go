package geometry

import (
	"math"
)

// Vertex is the interleaved vertex format shared by every pipeline. The
// struct tags drive the wgpu vertex-buffer layout, see gpu.VertexLayout.
type Vertex struct {
	Position  [3]float32 `vrdeck:"layout" format:"float3" location:"0"`
	TexCoords [2]float32 `vrdeck:"layout" format:"float2" location:"1"`
}

// Mesh is CPU-side geometry; gpu.UploadMesh turns it into buffers.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

func (m *Mesh) IndexCount() uint32 { return uint32(len(m.Indices)) }

// PlaneRectangle tessellates a rows x columns rectangle spanning [-1,1] in X
// and Y (scaled), at the given Z. UVs cover [0,1] with V flipped so row zero
// is the bottom of the image. The curved screen uses a dense grid so the
// per-vertex curvature displacement stays smooth.
func PlaneRectangle(rows, columns uint32, aspectRatio, scale, distance float32) *Mesh {
	if rows < 2 {
		rows = 2
	}
	if columns < 2 {
		columns = 2
	}

	vertices := make([]Vertex, 0, rows*columns)
	xStep := 2 / float32(columns-1)
	yStep := 2 / float32(rows-1)
	for row := uint32(0); row < rows; row++ {
		for column := uint32(0); column < columns; column++ {
			vertices = append(vertices, Vertex{
				Position: [3]float32{
					(-1 + float32(column)*xStep) * scale * aspectRatio,
					(-1 + float32(row)*yStep) * scale,
					distance,
				},
				TexCoords: [2]float32{
					float32(column) / float32(columns-1),
					1 - float32(row)/float32(rows-1),
				},
			})
		}
	}

	indices := make([]uint32, 0, (rows-1)*(columns-1)*6)
	for row := uint32(0); row < rows-1; row++ {
		for column := uint32(0); column < columns-1; column++ {
			indices = append(indices,
				row*columns+column,
				row*columns+column+1,
				(row+1)*columns+column,
				(row+1)*columns+column,
				row*columns+column+1,
				(row+1)*columns+column+1,
			)
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices}
}

// Dome builds the ambient half-dome: a UV-sphere section facing the viewer,
// scaled and pushed back so it wraps the peripheral field of view. Replaces
// a modeled asset with equivalent procedural geometry.
func Dome(rings, segments uint32, radius, distance float32) *Mesh {
	if rings < 3 {
		rings = 3
	}
	if segments < 3 {
		segments = 3
	}

	vertices := make([]Vertex, 0, (rings+1)*(segments+1))
	for ring := uint32(0); ring <= rings; ring++ {
		// Latitude from pole (0) to equator (pi/2): a half dome.
		lat := float64(ring) / float64(rings) * math.Pi / 2
		for seg := uint32(0); seg <= segments; seg++ {
			lon := float64(seg) / float64(segments) * 2 * math.Pi
			sinLat := float32(math.Sin(lat))
			x := sinLat * float32(math.Cos(lon))
			y := sinLat * float32(math.Sin(lon))
			z := float32(math.Cos(lat))
			vertices = append(vertices, Vertex{
				Position: [3]float32{x * radius, y * radius, -z*radius + distance},
				TexCoords: [2]float32{
					0.5 + x/2,
					0.5 - y/2,
				},
			})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	stride := segments + 1
	for ring := uint32(0); ring < rings; ring++ {
		for seg := uint32(0); seg < segments; seg++ {
			a := ring*stride + seg
			b := a + 1
			c := a + stride
			d := c + 1
			indices = append(indices, a, c, b, b, c, d)
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices}
}
