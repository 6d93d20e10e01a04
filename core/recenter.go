package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RecenterOrientation derives the new reference orientation from the current
// head orientation. Horizon-locked keeps only the yaw component; otherwise
// pitch is preserved as well. Roll is always discarded.
func RecenterOrientation(head mgl32.Quat, horizonLocked bool) mgl32.Quat {
	forward := head.Rotate(mgl32.Vec3{0, 0, 1})
	yaw := float32(math.Atan2(float64(forward.X()), float64(forward.Z())))
	yawQuat := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})
	if horizonLocked {
		return yawQuat
	}
	planar := float32(math.Sqrt(float64(forward.X()*forward.X() + forward.Z()*forward.Z())))
	pitch := -float32(math.Atan2(float64(forward.Y()), float64(planar)))
	return yawQuat.Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}))
}
