package gpu

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vrdeck/vrdeck/core"
)

// Uniform structs mirror the WGSL declarations field for field. Every member
// is a 4-byte scalar or an array of them, so a flat little-endian walk of the
// struct reproduces the std140 layout without explicit padding rules; where
// WGSL needs trailing padding the Go struct carries it as a field.

// CamerasUniform is the per-view view-projection array, one matrix per eye.
type CamerasUniform struct {
	ViewProj [core.ViewCount]mgl32.Mat4
}

// ModelUniform is a single world matrix.
type ModelUniform struct {
	Matrix mgl32.Mat4
}

// TemporalUniform pads TemporalBlurParams to the 32-byte WGSL struct size.
type TemporalUniform struct {
	core.TemporalBlurParams
	Pad float32
}

// PackUniform serializes a uniform struct to little-endian bytes for
// Queue.WriteBuffer. Panics on types outside the uniform subset.
func PackUniform(data any) []byte {
	val := reflect.ValueOf(data)
	buf := new(bytes.Buffer)
	packUniformValue(val, buf)
	return buf.Bytes()
}

func packUniformValue(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct {
				packUniformValue(elem, buf)
			} else {
				if err := binary.Write(buf, binary.LittleEndian, elem.Interface()); err != nil {
					panic(fmt.Errorf("failed to write slice element: %w", err))
				}
			}
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			packUniformValue(field.Field(i), buf)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			panic(fmt.Errorf("failed to write scalar field: %w", err))
		}

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field))
	}
}
