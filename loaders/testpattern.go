package loaders

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/vrdeck/vrdeck/core"
)

// patternBaseSize is the resolution the pattern is painted at before being
// scaled up to the source size.
const patternBaseSize = 256

// TestPatternLoader renders an animated side-by-side gradient with a sweeping
// bar. The two halves carry a small horizontal disparity so eye-swap and flip
// toggles are visible at a glance during development.
type TestPatternLoader struct {
	info     SourceInfo
	base     *image.RGBA
	full     *image.RGBA
	interval time.Duration
	elapsed  time.Duration
	phase    float64
}

func NewTestPatternLoader(width, height uint32, fps int) *TestPatternLoader {
	if fps <= 0 {
		fps = 30
	}
	return &TestPatternLoader{
		info: SourceInfo{
			ID:     uuid.New(),
			Name:   "test-pattern",
			Width:  width,
			Height: height,
			Mode:   core.StereoSBS,
		},
		base:     image.NewRGBA(image.Rect(0, 0, patternBaseSize, patternBaseSize)),
		full:     image.NewRGBA(image.Rect(0, 0, int(width), int(height))),
		interval: time.Second / time.Duration(fps),
	}
}

func (l *TestPatternLoader) Info() SourceInfo { return l.info }

func (l *TestPatternLoader) Load() (*Frame, error) {
	return l.render(), nil
}

func (l *TestPatternLoader) Update(elapsed time.Duration) (*Frame, error) {
	l.elapsed += elapsed
	if l.elapsed < l.interval {
		return nil, nil
	}
	l.phase += l.elapsed.Seconds()
	l.elapsed = 0
	return l.render(), nil
}

func (l *TestPatternLoader) IsInvalid() bool { return false }

func (l *TestPatternLoader) Close() error { return nil }

func (l *TestPatternLoader) render() *Frame {
	bar := int(math.Mod(l.phase*40, patternBaseSize))
	const disparity = 3

	for y := 0; y < patternBaseSize; y++ {
		for x := 0; x < patternBaseSize; x++ {
			// Left eye in the left half of the base image.
			l.base.SetRGBA(x/2, y, patternColor(x, y, bar))
			// Right eye shifted by the disparity.
			l.base.SetRGBA(patternBaseSize/2+x/2, y, patternColor(x+disparity, y, bar))
		}
	}

	draw.BiLinear.Scale(l.full, l.full.Bounds(), l.base, l.base.Bounds(), draw.Src, nil)

	pixels := make([]byte, len(l.full.Pix))
	copy(pixels, l.full.Pix)
	return &Frame{Pixels: pixels, Width: l.info.Width, Height: l.info.Height}
}

func patternColor(x, y, bar int) color.RGBA {
	x = ((x % patternBaseSize) + patternBaseSize) % patternBaseSize
	if abs(x-bar) < 4 {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{
		R: uint8(x),
		G: uint8(y),
		B: uint8(255 - x),
		A: 0xff,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
