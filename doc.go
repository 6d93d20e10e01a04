// Package vrdeck renders a side-by-side stereo desktop capture onto a curved
// virtual screen with temporal smoothing and an ambient vignette pass.
//
// The rendering core lives in core (CPU-side math), shaders (WGSL), and gpu
// (pipelines and passes); app orchestrates the per-frame pass sequence.
package vrdeck
