package core

import "testing"

func TestHaltonKnownValues(t *testing.T) {
	cases := []struct {
		i, b uint32
		want float32
	}{
		{1, 2, 0.5},
		{2, 2, 0.25},
		{3, 2, 0.75},
		{4, 2, 0.125},
		{1, 3, 1.0 / 3},
		{2, 3, 2.0 / 3},
		{3, 3, 1.0 / 9},
	}
	for _, c := range cases {
		got := Halton(c.i, c.b)
		if !closeEnough(got, c.want, 1e-6) {
			t.Errorf("Halton(%d, %d) = %f; want %f", c.i, c.b, got, c.want)
		}
	}
}

func TestHaltonStaysInUnitInterval(t *testing.T) {
	for i := uint32(0); i < 1000; i++ {
		for _, b := range []uint32{2, 3} {
			h := Halton(i, b)
			if h < 0 || h >= 1 {
				t.Fatalf("Halton(%d, %d) = %f out of [0,1)", i, b, h)
			}
		}
	}
}

func TestJitterOffsetScaledByResolution(t *testing.T) {
	res := [2]float32{1920, 1080}
	j := JitterOffset(7, res)
	if j[0] < -1/res[0] || j[0] > 1/res[0] {
		t.Errorf("x jitter %f exceeds one pixel", j[0])
	}
	if j[1] < -1/res[1] || j[1] > 1/res[1] {
		t.Errorf("y jitter %f exceeds one pixel", j[1])
	}

	if z := JitterOffset(7, [2]float32{}); z != ([2]float32{}) {
		t.Errorf("zero resolution should give zero jitter, got %v", z)
	}
}

func TestStereoModeAspect(t *testing.T) {
	if got := StereoSBS.AspectRatio(3840, 1080); !closeEnough(got, 16.0/9, 1e-4) {
		t.Errorf("half-SBS aspect = %f; want 16:9", got)
	}
	if got := StereoTAB.AspectRatio(1920, 2160); !closeEnough(got, 16.0/9, 1e-4) {
		t.Errorf("half-TAB aspect = %f; want 16:9", got)
	}
	if got := StereoNone.AspectRatio(1920, 1080); !closeEnough(got, 16.0/9, 1e-4) {
		t.Errorf("mono aspect = %f; want 16:9", got)
	}
	if got := StereoNone.AspectRatio(0, 0); got != 1 {
		t.Errorf("degenerate dimensions should give aspect 1, got %f", got)
	}
}

func TestApplyStereoModeFlags(t *testing.T) {
	var p ScreenParams
	p.ApplyStereoMode(StereoSBS)
	if p.StereoX != 1 || p.StereoY != 0 {
		t.Errorf("SBS flags = (%v, %v); want (1, 0)", p.StereoX, p.StereoY)
	}
	p.ApplyStereoMode(StereoFullTAB)
	if p.StereoX != 0 || p.StereoY != 1 {
		t.Errorf("TAB flags = (%v, %v); want (0, 1)", p.StereoX, p.StereoY)
	}
	p.ApplyStereoMode(StereoNone)
	if p.StereoX != 0 || p.StereoY != 0 {
		t.Errorf("mono flags = (%v, %v); want (0, 0)", p.StereoX, p.StereoY)
	}
}
