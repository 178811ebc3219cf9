//go:build !zcbor_debug

package zcbor

// debugAssertions is false in release builds; see trace_debug.go.
const debugAssertions = false

// assert is a no-op in release builds.
func assert(cond bool, msg string) {}
