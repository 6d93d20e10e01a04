package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewCount is fixed: one camera per eye. The camera array never resizes.
const ViewCount = 2

// FovTangents describes an asymmetric view frustum by the tangents of its
// half-angles, the form head-mounted runtimes report per eye.
type FovTangents struct {
	Left, Right, Up, Down float32
}

// Camera is one eye: a tracked pose plus a projection matrix.
type Camera struct {
	Transform  *Transform
	Projection mgl32.Mat4
	Near       float32
	Far        float32
}

func NewCamera() *Camera {
	return &Camera{
		Transform:  NewTransform(),
		Projection: mgl32.Ident4(),
		Near:       0.1,
		Far:        3000,
	}
}

// SetProjectionFromTangents builds an infinite-far asymmetric projection
// from per-eye frustum tangents.
func (c *Camera) SetProjectionFromTangents(fov FovTangents) {
	width := fov.Right - fov.Left
	height := fov.Up - fov.Down

	// Column-major: mgl32.Mat4 stores columns contiguously.
	c.Projection = mgl32.Mat4{
		2 / width, 0, 0, 0,
		0, 2 / height, 0, 0,
		(fov.Right + fov.Left) / width, (fov.Up + fov.Down) / height, -1, -1,
		0, 0, -c.Near, 0,
	}
}

// SetPerspective is the symmetric fallback used by the desktop preview.
func (c *Camera) SetPerspective(fovY, aspect float32) {
	c.Projection = mgl32.Perspective(fovY, aspect, c.Near, c.Far)
}

// ViewProjection is projection * inverse(world). Fails when the pose matrix
// is singular, which only happens on a zero scale.
func (c *Camera) ViewProjection() (mgl32.Mat4, error) {
	world := c.Transform.World()
	if world.Det() == 0 {
		return mgl32.Mat4{}, fmt.Errorf("camera world matrix is not invertible")
	}
	return c.Projection.Mul4(world.Inv()), nil
}

// CameraRig holds the per-eye cameras and produces the immutable per-frame
// view-projection snapshot the render passes consume. Exactly ViewCount
// entries; the active entry is selected per draw by the view index.
type CameraRig struct {
	Eyes [ViewCount]*Camera
}

func NewCameraRig() *CameraRig {
	r := &CameraRig{}
	for i := range r.Eyes {
		r.Eyes[i] = NewCamera()
	}
	return r
}

// SetPose updates one eye from tracking data.
func (r *CameraRig) SetPose(viewIndex int, position mgl32.Vec3, rotation mgl32.Quat, fov FovTangents) {
	eye := r.Eyes[viewIndex]
	eye.Transform.SetPosition(position)
	eye.Transform.SetRotation(rotation)
	eye.SetProjectionFromTangents(fov)
}

// Snapshot captures both view-projection matrices for the current frame.
// Passes receive this value, never the rig itself, so mid-frame pose updates
// cannot tear a frame.
func (r *CameraRig) Snapshot() ([ViewCount]mgl32.Mat4, error) {
	var out [ViewCount]mgl32.Mat4
	for i, eye := range r.Eyes {
		vp, err := eye.ViewProjection()
		if err != nil {
			return out, fmt.Errorf("view %d: %w", i, err)
		}
		out[i] = vp
	}
	return out, nil
}
