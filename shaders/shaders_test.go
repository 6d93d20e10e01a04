package shaders

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"
)

// Compiling through naga validates the WGSL without needing a GPU.
func compileWGSL(t *testing.T, name, source string) {
	t.Helper()
	if source == "" {
		t.Fatalf("%s: embedded source is empty", name)
	}
	spirv, err := naga.Compile(source)
	if err != nil {
		if strings.Contains(err.Error(), "not yet implemented") ||
			strings.Contains(err.Error(), "not supported") {
			t.Skipf("naga limitation: %v", err)
		}
		t.Fatalf("%s: %v", name, err)
	}
	if len(spirv) < 4 {
		t.Fatalf("%s: SPIR-V output too short", name)
	}
	// SPIR-V magic number, little endian.
	magic := uint32(spirv[0]) | uint32(spirv[1])<<8 | uint32(spirv[2])<<16 | uint32(spirv[3])<<24
	if magic != 0x07230203 {
		t.Errorf("%s: bad SPIR-V magic 0x%08x", name, magic)
	}
}

func TestScreenShaderCompiles(t *testing.T) {
	compileWGSL(t, "screen", ScreenWGSL)
}

func TestTemporalShaderCompiles(t *testing.T) {
	compileWGSL(t, "temporal", TemporalWGSL)
}

func TestAmbientShaderCompiles(t *testing.T) {
	compileWGSL(t, "ambient", AmbientWGSL)
}

func TestBlitShaderCompiles(t *testing.T) {
	compileWGSL(t, "blit", BlitWGSL)
}

func TestScreenShaderEntryPoints(t *testing.T) {
	for _, entry := range []string{"vs_main", "vs_flat", "fs_main", "fs_legacy", "fs_mono"} {
		if !strings.Contains(ScreenWGSL, "fn "+entry) {
			t.Errorf("screen shader missing entry point %s", entry)
		}
	}
}

func TestTemporalShaderWritesBothAttachments(t *testing.T) {
	for _, loc := range []string{"@location(0) display", "@location(1) history"} {
		if !strings.Contains(TemporalWGSL, loc) {
			t.Errorf("temporal shader missing output %q", loc)
		}
	}
}
