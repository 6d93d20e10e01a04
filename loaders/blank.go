package loaders

import (
	"time"

	"github.com/google/uuid"

	"github.com/vrdeck/vrdeck/core"
)

// BlankLoader is the fallback source: a single mid-grey frame. It never
// updates and never invalidates, so the screen always has something to show.
type BlankLoader struct {
	info SourceInfo
}

func NewBlankLoader(width, height uint32) *BlankLoader {
	return &BlankLoader{
		info: SourceInfo{
			ID:     uuid.New(),
			Name:   "blank",
			Width:  width,
			Height: height,
			Mode:   core.StereoNone,
		},
	}
}

func (l *BlankLoader) Info() SourceInfo { return l.info }

func (l *BlankLoader) Load() (*Frame, error) {
	pixels := make([]byte, l.info.Width*l.info.Height*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i] = 0x55
		pixels[i+1] = 0x55
		pixels[i+2] = 0x55
		pixels[i+3] = 0xff
	}
	return &Frame{Pixels: pixels, Width: l.info.Width, Height: l.info.Height}, nil
}

func (l *BlankLoader) Update(time.Duration) (*Frame, error) { return nil, nil }

func (l *BlankLoader) IsInvalid() bool { return false }

func (l *BlankLoader) Close() error { return nil }
