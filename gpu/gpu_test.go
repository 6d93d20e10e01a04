package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vrdeck/vrdeck/core"
	"github.com/vrdeck/vrdeck/geometry"
)

// Byte sizes must match the WGSL struct declarations exactly.
func TestUniformSizes(t *testing.T) {
	cases := []struct {
		name string
		data any
		want int
	}{
		{"ScreenParams", core.ScreenParams{}, 40},
		{"CamerasUniform", CamerasUniform{}, 128},
		{"ModelUniform", ModelUniform{}, 64},
		{"TemporalUniform", TemporalUniform{}, 32},
		{"viewIndexUniform", viewIndexUniform{}, 16},
	}
	for _, c := range cases {
		if got := len(PackUniform(c.data)); got != c.want {
			t.Errorf("%s packs to %d bytes; want %d", c.name, got, c.want)
		}
	}
}

func TestPackUniformScreenParamsLayout(t *testing.T) {
	p := core.ScreenParams{
		XCurvature:   0.4,
		YCurvature:   0.08,
		EyeOffset:    1,
		AspectRatio:  16.0 / 9,
		ScreenWidth:  1920,
		AmbientWidth: 320,
		StereoX:      1,
	}
	b := PackUniform(p)

	// Spot-check field offsets against the WGSL member order.
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[0:])); got != 0.4 {
		t.Errorf("x_curvature at offset 0 = %f", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[8:])); got != 1 {
		t.Errorf("eye_offset at offset 8 = %f", got)
	}
	if got := binary.LittleEndian.Uint32(b[24:]); got != 1920 {
		t.Errorf("screen_width at offset 24 = %d", got)
	}
	if got := binary.LittleEndian.Uint32(b[28:]); got != 320 {
		t.Errorf("ambient_width at offset 28 = %d", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[32:])); got != 1 {
		t.Errorf("stereo_x at offset 32 = %f", got)
	}
}

func TestPackUniformMatrixColumnMajor(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	b := PackUniform(ModelUniform{Matrix: m})

	// mgl32 stores column-major; translation lives in the fourth column.
	tx := math.Float32frombits(binary.LittleEndian.Uint32(b[12*4:]))
	ty := math.Float32frombits(binary.LittleEndian.Uint32(b[13*4:]))
	tz := math.Float32frombits(binary.LittleEndian.Uint32(b[14*4:]))
	if tx != 1 || ty != 2 || tz != 3 {
		t.Errorf("translation column = (%f, %f, %f); want (1, 2, 3)", tx, ty, tz)
	}
}

func TestVertexLayoutFromTags(t *testing.T) {
	layout := VertexLayout(geometry.Vertex{})

	if layout.ArrayStride != 20 {
		t.Errorf("stride = %d; want 20", layout.ArrayStride)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("attribute count = %d; want 2", len(layout.Attributes))
	}
	if layout.Attributes[0].ShaderLocation != 0 || layout.Attributes[0].Offset != 0 {
		t.Errorf("position attribute = %+v", layout.Attributes[0])
	}
	if layout.Attributes[1].ShaderLocation != 1 || layout.Attributes[1].Offset != 12 {
		t.Errorf("tex coords attribute = %+v", layout.Attributes[1])
	}
}

func TestScreenVariantEntryPoints(t *testing.T) {
	cases := []struct {
		variant  ScreenVariant
		vertex   string
		fragment string
	}{
		{ScreenVariant{}, "vs_main", "fs_main"},
		{ScreenVariant{Flat: true}, "vs_flat", "fs_main"},
		{ScreenVariant{Mapping: MappingLegacy}, "vs_main", "fs_legacy"},
		{ScreenVariant{Flat: true, Mapping: MappingMono}, "vs_flat", "fs_mono"},
	}
	for _, c := range cases {
		v, f := c.variant.entryPoints()
		if v != c.vertex || f != c.fragment {
			t.Errorf("%+v -> (%s, %s); want (%s, %s)", c.variant, v, f, c.vertex, c.fragment)
		}
	}
}

func TestHistoryBufferSwap(t *testing.T) {
	h := &HistoryBuffer{}
	if h.ReadIndex() != 0 {
		t.Fatalf("initial read index = %d", h.ReadIndex())
	}
	h.Swap()
	if h.ReadIndex() != 1 {
		t.Error("swap should flip the read slot")
	}
	h.Swap()
	if h.ReadIndex() != 0 {
		t.Error("second swap should restore the read slot")
	}
}
