// Package xps implements chunked strings: byte strings whose persisted form is
// a sequence of length-prefixed chunks of at most 15 bytes.
//
// Wire format. Each chunk is one header byte followed by its payload. The low
// four bits of the header hold the payload length (0-15); the high four bits
// are reserved and must be zero. A chunk shorter than 15 bytes ends the
// string. A full chunk (15 bytes) is followed by another header, and a zero
// header (the sentinel) ends the string. Encoders always append one zero byte
// after the last data chunk, so
//
//	""                  -> 00
//	"hi"                -> 02 68 69 00
//	15 bytes            -> 0F <15 bytes> 00
//	16 bytes            -> 0F <15 bytes> 01 <1 byte> 00
//
// Two representations are provided:
//   - Chunked is an encoded buffer. Its methods walk the chunks directly and
//     validate the reserved bits as they go. Indexed access costs O(n/15).
//   - String is a flat byte buffer used for all derived operations (slice,
//     concat, compare, search). Encoding happens only when a String is
//     written out, so chunk boundaries of the result never depend on the
//     boundaries of its inputs.
//
// Basic usage:
//
//	s := xps.FromText("hello world")
//	w := s.SliceFrom(6)                 // "world"
//	i, ok := xps.Find(s, xps.FromText("o"))
//	wire := w.Encode()                  // 05 77 6f 72 6c 64 00
//	back, err := wire.Decode()
//
// Operations are byte oriented and perform no Unicode processing. Values are
// safe for concurrent reads; SetByte must be serialized by the caller.
package xps
