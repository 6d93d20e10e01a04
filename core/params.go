package core

// ScreenParams is the per-frame uniform consumed by the screen and ambient
// passes. Flag fields (StereoX, StereoY) are 0.0 or 1.0 and enable the
// horizontal/vertical split of the side-by-side source texture. EyeOffset is
// the view index treated as the symmetric pivot when remapping UVs, so
// swapped eyes are a parameter change rather than a shader change.
type ScreenParams struct {
	XCurvature   float32
	YCurvature   float32
	EyeOffset    float32
	YOffset      float32
	XOffset      float32
	AspectRatio  float32
	ScreenWidth  uint32
	AmbientWidth uint32
	StereoX      float32
	StereoY      float32
}

// TemporalBlurParams drives the temporal blend pass. HistoryDecay must be in
// [0,1] before upload; the shader does not clamp it.
type TemporalBlurParams struct {
	Jitter       [2]float32
	Scale        [2]float32
	Resolution   [2]float32
	HistoryDecay float32
}

// StereoMode describes how the source texture packs its eye images.
type StereoMode int

const (
	StereoNone StereoMode = iota
	StereoSBS             // side-by-side, half width per eye
	StereoFullSBS
	StereoTAB // top-and-bottom, half height per eye
	StereoFullTAB
)

func (m StereoMode) String() string {
	switch m {
	case StereoSBS:
		return "sbs"
	case StereoFullSBS:
		return "full-sbs"
	case StereoTAB:
		return "tab"
	case StereoFullTAB:
		return "full-tab"
	default:
		return "mono"
	}
}

// Horizontal reports whether the mode splits the source along the X axis.
func (m StereoMode) Horizontal() bool { return m == StereoSBS || m == StereoFullSBS }

// Vertical reports whether the mode splits the source along the Y axis.
func (m StereoMode) Vertical() bool { return m == StereoTAB || m == StereoFullTAB }

// AspectRatio returns the per-eye display aspect for a source of the given
// dimensions. Half-SBS sources store each eye at half width, so the eye
// aspect is (w/2)/h; half-TAB likewise halves the height.
func (m StereoMode) AspectRatio(width, height uint32) float32 {
	if width == 0 || height == 0 {
		return 1
	}
	w := float32(width)
	h := float32(height)
	switch m {
	case StereoSBS:
		return (w / 2) / h
	case StereoTAB:
		return w / (h / 2)
	default:
		return w / h
	}
}

// ApplyStereoMode sets the split flags for the given source packing.
func (p *ScreenParams) ApplyStereoMode(m StereoMode) {
	p.StereoX = 0
	p.StereoY = 0
	if m.Horizontal() {
		p.StereoX = 1
	}
	if m.Vertical() {
		p.StereoY = 1
	}
}
