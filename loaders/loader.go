// Package loaders produces the frames shown on the virtual screen. A loader
// wraps one capture source; the orchestrator polls it every frame and
// re-uploads when a new frame arrives.
package loaders

import (
	"time"

	"github.com/google/uuid"

	"github.com/vrdeck/vrdeck/core"
)

// Frame is one decoded image, tightly packed RGBA.
type Frame struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// SourceInfo describes a loader's output. ID stays stable for the lifetime
// of the source so the orchestrator can tell a reconnect from a new source.
type SourceInfo struct {
	ID     uuid.UUID
	Name   string
	Width  uint32
	Height uint32
	Mode   core.StereoMode
}

// AspectRatio is the per-eye display aspect of this source.
func (s SourceInfo) AspectRatio() float32 {
	return s.Mode.AspectRatio(s.Width, s.Height)
}

// Loader is a frame source.
//
// Load prepares the source and returns the first frame. Update returns the
// next frame, or nil when nothing changed since the last call. IsInvalid
// reports that the source is gone for good and the orchestrator should fall
// back to another loader.
type Loader interface {
	Info() SourceInfo
	Load() (*Frame, error)
	Update(elapsed time.Duration) (*Frame, error)
	IsInvalid() bool
	Close() error
}
