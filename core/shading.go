package core

import "github.com/go-gl/mathgl/mgl32"

// CPU mirrors of the WGSL shader stages. The GPU path in shaders/ and the
// functions here must stay formula-for-formula identical; the tests in this
// package pin the numeric contracts for both.

// Luminance weights (Rec. 709).
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Luminance gate thresholds for the temporal blend stage.
const (
	GateLow  = 0.05
	GateHigh = 0.35
)

// Vignette radii for the ambient stage.
const (
	VignetteInner = 0.35
	VignetteOuter = 0.5
)

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Smoothstep is the standard cubic Hermite ramp between edge0 and edge1.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Lerp interpolates linearly, a at t=0, b at t=1.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// CurveDepth displaces a vertex depth so the screen bows inward toward its
// UV center and stays pinned along the rectangular border. The two curvature
// terms are additive; either may be zero independently.
func CurveDepth(u, v, z, xCurvature, yCurvature float32) float32 {
	dx := (u - 0.5) * 2
	dy := (v - 0.5) * 2
	return z - (1-dx*dx)*xCurvature - (1-dy*dy)*yCurvature
}

// StereoMapUV maps a destination UV to the source-texture UV for the given
// view, selecting the correct half of a side-by-side (or top-and-bottom)
// frame. The symmetric form: offsets of 1 mirror the axis, and EyeOffset
// picks which view is the pivot, so eye swapping is a parameter change.
// With a stereo flag at 0 the divisor is 1 and the offset term vanishes,
// giving a 1:1 mono mapping regardless of view index.
func StereoMapUV(p ScreenParams, viewIndex int, u, v float32) (float32, float32) {
	dx := 2 - (1 - p.StereoX)
	dy := 2 - (1 - p.StereoY)
	offX := abs32(float32(viewIndex)-p.EyeOffset) / 2 * p.StereoX
	offY := abs32(float32(viewIndex)-p.EyeOffset) / 2 * p.StereoY
	return abs32(u-p.XOffset)/dx + offX, abs32(v-p.YOffset)/dy + offY
}

// StereoMapUVLegacy is the direct-halving form used by the low-feature
// pipeline variant: no mirroring, no pivot parameter. Kept as a distinct
// selectable variant rather than merged into the symmetric form.
func StereoMapUVLegacy(p ScreenParams, viewIndex int, u, v float32) (float32, float32) {
	if p.StereoX != 0 {
		u = u/2 + float32(viewIndex)/2
	}
	if p.StereoY != 0 {
		v = v/2 + float32(viewIndex)/2
	}
	return u, v
}

// TemporalBlend mixes the current sample against the history sample and
// applies the luminance re-brightening gate. It returns the display color
// and the value to persist as next frame's history; both are produced
// together, matching the dual-attachment render pass.
func TemporalBlend(current, history mgl32.Vec3, historyDecay float32) (display, nextHistory mgl32.Vec3) {
	mixed := mgl32.Vec3{
		Lerp(current[0], history[0], historyDecay),
		Lerp(current[1], history[1], historyDecay),
		Lerp(current[2], history[2], historyDecay),
	}
	lum := mixed[0]*lumR + mixed[1]*lumG + mixed[2]*lumB
	brightness := Smoothstep(GateLow, GateHigh, lum)
	return mixed.Mul(brightness), mixed
}

// VignetteFactor is 1 inside radius VignetteInner from the UV center and 0
// beyond VignetteOuter, with a smooth transition between. UV is clamped to
// the unit square first.
func VignetteFactor(u, v float32) float32 {
	du := clamp01(u) - 0.5
	dv := clamp01(v) - 0.5
	d := mgl32.Vec2{du, dv}.Len()
	return 1 - Smoothstep(VignetteInner, VignetteOuter, d)
}

// AmbientTaps returns the nine sample offsets and weights of the ambient
// blur kernel. Step sizes derive from the ambient sampling width and the
// aspect ratio so the blur stays isotropic in screen space. Weights sum to 1.
func AmbientTaps(p ScreenParams) (offsets [9][2]float32, weights [9]float32) {
	w := p.AmbientWidth
	if w == 0 {
		w = 1
	}
	sx := 1 / float32(w)
	sy := sx * p.AspectRatio

	const corner = 0.0625
	const edge = 0.125
	const center = 0.25

	offsets = [9][2]float32{
		{-sx, -sy}, {0, -sy}, {sx, -sy},
		{-sx, 0}, {0, 0}, {sx, 0},
		{-sx, sy}, {0, sy}, {sx, sy},
	}
	weights = [9]float32{
		corner, edge, corner,
		edge, center, edge,
		corner, edge, corner,
	}
	return offsets, weights
}

// AmbientSample runs the full ambient stage for one output UV: a 9-tap blur
// of the display image (sampled mono, view 0) modulated by the vignette.
// sample fetches the display color at a source UV.
func AmbientSample(p ScreenParams, u, v float32, sample func(u, v float32) mgl32.Vec3) mgl32.Vec3 {
	offsets, weights := AmbientTaps(p)
	var acc mgl32.Vec3
	for i := range offsets {
		su, sv := StereoMapUV(p, 0, u+offsets[i][0], v+offsets[i][1])
		acc = acc.Add(sample(su, sv).Mul(weights[i]))
	}
	return acc.Mul(VignetteFactor(u, v))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
