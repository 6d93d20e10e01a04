package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vrdeck/vrdeck/config"
	"github.com/vrdeck/vrdeck/core"
	"github.com/vrdeck/vrdeck/gpu"
	"github.com/vrdeck/vrdeck/loaders"
)

// deriveScreenParams folds the user configuration and the source layout into
// the shader uniform. Flips set the mirror offsets; because mirroring an axis
// also exchanges the packed halves along it, the eye swap is compensated per
// axis so a flip never silently crosses the eyes.
func deriveScreenParams(cfg config.Config, info loaders.SourceInfo) core.ScreenParams {
	var p core.ScreenParams
	p.XCurvature = cfg.XCurvature
	p.YCurvature = cfg.YCurvature
	if cfg.FlatScreen {
		p.XCurvature = 0
		p.YCurvature = 0
	}
	p.ApplyStereoMode(info.Mode)

	swap := cfg.SwapEyes
	if cfg.FlipX {
		p.XOffset = 1
		if info.Mode.Horizontal() {
			swap = !swap
		}
	}
	if cfg.FlipY {
		p.YOffset = 1
		if info.Mode.Vertical() {
			swap = !swap
		}
	}
	if swap {
		p.EyeOffset = 1
	}

	p.AspectRatio = info.AspectRatio()
	p.ScreenWidth = info.Width / cfg.ScreenWidthDivisor
	p.AmbientWidth = info.Width / cfg.AmbientWidthDivisor
	return p
}

func deriveVariant(cfg config.Config, info loaders.SourceInfo) gpu.ScreenVariant {
	v := gpu.ScreenVariant{Flat: cfg.FlatScreen}
	switch {
	case info.Mode == core.StereoNone:
		v.Mapping = gpu.MappingMono
	case cfg.LegacyProjection:
		v.Mapping = gpu.MappingLegacy
	default:
		v.Mapping = gpu.MappingSymmetric
	}
	return v
}

// jitterProjection nudges the projection center by the sub-pixel offset. The
// off-center terms live in the third column of the column-major matrix.
func jitterProjection(m mgl32.Mat4, jitter [2]float32) mgl32.Mat4 {
	m[8] += jitter[0]
	m[9] += jitter[1]
	return m
}

// temporalJitterScale converts the projection-center jitter into the UV
// offset the temporal pass subtracts when fetching the current frame.
// Clip-to-UV halves both axes; V runs top-down while NDC y runs bottom-up,
// so the Y term is negated or the compensation would double the shift
// instead of cancelling it.
var temporalJitterScale = [2]float32{0.5, -0.5}
