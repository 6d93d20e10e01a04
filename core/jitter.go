package core

// Halton returns element i of the base-b Halton low-discrepancy sequence,
// in [0,1).
func Halton(i, b uint32) float32 {
	f := float32(1)
	r := float32(0)
	for i > 0 {
		f /= float32(b)
		r += f * float32(i%b)
		i /= b
	}
	return r
}

// JitterOffset returns the sub-pixel sampling offset for the given frame
// index: a base-2/base-3 Halton pair remapped to [-1,1] and scaled to UV
// units by the output resolution.
func JitterOffset(frameIndex uint32, resolution [2]float32) [2]float32 {
	jx := 2*Halton(frameIndex, 2) - 1
	jy := 2*Halton(frameIndex, 3) - 1
	if resolution[0] == 0 || resolution[1] == 0 {
		return [2]float32{}
	}
	return [2]float32{jx / resolution[0], jy / resolution[1]}
}
