// Package schema provides a reflection-based encoding and decoding surface
// over [zcbor.dev/go], the way a hand-written or generated schema module
// would use the root package's value and container primitives directly, but
// driven by Go struct tags instead of per-type generated code.
//
// A struct field's "zcbor" tag controls how it maps onto a CBOR map entry or
// list element:
//
//	type Pet struct {
//		Names   []string `zcbor:"min=1,max=3"`
//		Species string   `zcbor:"choice=cat|dog|horse"`
//		Tag     uint32    `zcbor:"tag=4"`
//		Note    *string  `zcbor:"optional"`
//	}
//
// This package intentionally covers a useful subset of the root package's
// capabilities, not a full CDDL compiler: its job is to demonstrate the
// reflection surface the root codec is built to support, not to replace
// hand-written schema code for performance-critical paths.
package schema
