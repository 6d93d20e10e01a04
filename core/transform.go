package core

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position/rotation/scale triple with a cached world matrix.
// One transform exists per screen entity and per eye camera.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	world mgl32.Mat4
	dirty bool
}

func NewTransform() *Transform {
	return &Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		world:    mgl32.Ident4(),
	}
}

// SetPosition, SetRotation and SetScale invalidate the cached world matrix.
func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.Position = p
	t.dirty = true
}

func (t *Transform) SetRotation(q mgl32.Quat) {
	t.Rotation = q
	t.dirty = true
}

func (t *Transform) SetScale(s mgl32.Vec3) {
	t.Scale = s
	t.dirty = true
}

// World returns translation * rotation * non-uniform scale.
func (t *Transform) World() mgl32.Mat4 {
	if t.dirty {
		t.world = mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
			Mul4(t.Rotation.Mat4()).
			Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
		t.dirty = false
	}
	return t.world
}

// Screen is the single curved-screen entity. The base mesh is 2 units wide,
// so Scale is the desired width in meters divided by two, and the vertical
// extent follows the source aspect ratio.
type Screen struct {
	Transform   *Transform
	AspectRatio float32
	ScaleMeters float32
}

// NewScreen places the screen at the given signed distance along Z.
func NewScreen(distance, scaleMeters, aspectRatio float32) *Screen {
	s := &Screen{
		Transform:   NewTransform(),
		AspectRatio: aspectRatio,
		ScaleMeters: scaleMeters,
	}
	s.Transform.SetPosition(mgl32.Vec3{0, 0, distance})
	s.applyScale()
	return s
}

func (s *Screen) applyScale() {
	aspect := s.AspectRatio
	if aspect == 0 {
		aspect = 1
	}
	s.Transform.SetScale(mgl32.Vec3{
		s.ScaleMeters / 2,
		s.ScaleMeters / (2 * aspect),
		s.ScaleMeters / 2,
	})
}

func (s *Screen) SetAspectRatio(aspect float32) {
	s.AspectRatio = aspect
	s.applyScale()
}

func (s *Screen) SetScale(scaleMeters float32) {
	s.ScaleMeters = scaleMeters
	s.applyScale()
}

func (s *Screen) SetDistance(distance float32) {
	p := s.Transform.Position
	p[2] = distance
	s.Transform.SetPosition(p)
}

// Model returns the model matrix uploaded to the screen pass.
func (s *Screen) Model() mgl32.Mat4 { return s.Transform.World() }
