// Package shaders embeds the WGSL sources for the render pipeline.
package shaders

import _ "embed"

//go:embed screen.wgsl
var ScreenWGSL string

//go:embed temporal.wgsl
var TemporalWGSL string

//go:embed ambient.wgsl
var AmbientWGSL string

//go:embed blit.wgsl
var BlitWGSL string
