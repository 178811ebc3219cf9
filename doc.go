// Package zcbor implements a streaming codec for the Concise Binary Object
// Representation (CBOR), as defined by [RFC 8949]. It covers two tightly
// coupled layers:
//
//   - A low-level codec core that encodes and decodes CBOR data items against
//     an in-memory byte slice, with explicit element-count bookkeeping,
//     bounded backup/restore state, and zero-copy string borrowing. See
//     [State], [EncodeState], and the Decode/Encode functions in this
//     package.
//   - A schema-directed decoder/encoder engine, in the [zcbor.dev/go/schema]
//     subpackage, whose behavior is parameterized by Go struct tags standing
//     in for a CDDL schema: repetition bounds, tagged items, optional fields,
//     enumerated string choices, and unordered-map key matching. The tags do
//     not express numeric value ranges or type unions.
//
// This package does not itself interpret any particular schema. It provides
// the primitives ([MultiDecode], [DecodeUnorderedMap], container start/end,
// scalar encode/decode) that schema-directed code — whether hand-written or
// produced by a CDDL compiler external to this module — composes into
// concrete decoders and encoders.
//
// # Cursor model
//
// Rather than threading a raw pointer and an end pointer through every call,
// [State] models the cursor as a borrowed byte slice plus an integer offset.
// Every read is a bounds-checked slice operation; there is no unsafe pointer
// arithmetic anywhere in this package.
//
// # Allocation
//
// [NewState] and [NewEncodeState] allocate the state and its backup stack
// once, at construction. Some operations also allocate as they run: head
// encoding builds each head in a small temporary slice, [MultiDecode] builds
// its result slice, and [DecodeUnorderedMap] its per-field counters.
// Decoded strings ([String]) borrow directly from the input slice and must
// not outlive it.
//
// [RFC 8949]: https://www.rfc-editor.org/rfc/rfc8949
package zcbor
