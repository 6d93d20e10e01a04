package geometry

import "testing"

func TestPlaneRectangleShape(t *testing.T) {
	m := PlaneRectangle(100, 100, 1, 1, 0)
	if len(m.Vertices) != 100*100 {
		t.Fatalf("vertex count = %d; want %d", len(m.Vertices), 100*100)
	}
	if len(m.Indices) != 99*99*6 {
		t.Fatalf("index count = %d; want %d", len(m.Indices), 99*99*6)
	}

	// Corners span [-1,1] in X and Y.
	first := m.Vertices[0]
	if first.Position[0] != -1 || first.Position[1] != -1 {
		t.Errorf("first vertex position = %v; want (-1,-1,z)", first.Position)
	}
	// V is flipped: bottom row maps to the bottom of the image.
	if first.TexCoords[1] != 1 {
		t.Errorf("bottom row V = %f; want 1", first.TexCoords[1])
	}
	last := m.Vertices[len(m.Vertices)-1]
	if last.TexCoords[0] != 1 || last.TexCoords[1] != 0 {
		t.Errorf("last vertex UV = %v; want (1,0)", last.TexCoords)
	}
	if last.Position[0] != 1 || last.Position[1] != 1 {
		t.Errorf("last vertex position = %v; want (1,1,z)", last.Position)
	}

	// All indices must be in range.
	for _, idx := range m.Indices {
		if idx >= uint32(len(m.Vertices)) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestPlaneRectangleAspectScaling(t *testing.T) {
	m := PlaneRectangle(2, 2, 2, 3, -5)
	for _, v := range m.Vertices {
		if v.Position[0] < -6 || v.Position[0] > 6 {
			t.Errorf("x = %f outside scaled extent", v.Position[0])
		}
		if v.Position[2] != -5 {
			t.Errorf("z = %f; want -5", v.Position[2])
		}
	}
}

func TestPlaneRectangleClampsDegenerateGrid(t *testing.T) {
	m := PlaneRectangle(1, 0, 1, 1, 0)
	if len(m.Vertices) != 4 || len(m.Indices) != 6 {
		t.Fatalf("degenerate grid should clamp to 2x2, got %d verts %d indices",
			len(m.Vertices), len(m.Indices))
	}
}

func TestDomeGeometry(t *testing.T) {
	m := Dome(8, 16, 10, -5)
	if len(m.Vertices) != 9*17 {
		t.Fatalf("vertex count = %d; want %d", len(m.Vertices), 9*17)
	}
	if len(m.Indices) != 8*16*6 {
		t.Fatalf("index count = %d; want %d", len(m.Indices), 8*16*6)
	}
	for _, idx := range m.Indices {
		if idx >= uint32(len(m.Vertices)) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	// UVs stay inside the unit square.
	for _, v := range m.Vertices {
		if v.TexCoords[0] < 0 || v.TexCoords[0] > 1 || v.TexCoords[1] < 0 || v.TexCoords[1] > 1 {
			t.Fatalf("UV %v outside unit square", v.TexCoords)
		}
	}
}
