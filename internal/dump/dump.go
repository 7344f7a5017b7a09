// Package dump describes the wire layout of chunked strings as JSON.
package dump

import (
	"encoding/hex"
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/xps/internal/engine/xps"
)

// Describe encodes text and describes the result.
func Describe(text []byte) ([]byte, error) {
	return DescribeChunked(xps.Encode(text))
}

// DescribeChunked describes the chunks of an encoded buffer.
//
// The document has the fields length, encoded_size, trailing, hex, chunks
// (index, header_pos, offset, len, full, payload, payload_hex), terminator
// and valid. payload is the chunk as JSON text, which replaces invalid UTF-8;
// payload_hex holds the exact bytes.
// A malformed buffer is still described up to the failing chunk, with valid
// set to false and the failure in error.
func DescribeChunked(c xps.Chunked) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("chunks", []any{})

	length := 0
	lastPos, lastLen := -1, 0
	it := c.Chunks()
	for i := 0; it.Next(); i++ {
		prefix := fmt.Sprintf("chunks.%d.", i)
		set(prefix+"index", i)
		set(prefix+"header_pos", it.HeaderPos())
		set(prefix+"offset", it.Offset())
		set(prefix+"len", it.Len())
		set(prefix+"full", it.Full())
		set(prefix+"payload", string(it.Payload()))
		set(prefix+"payload_hex", hex.EncodeToString(it.Payload()))

		length += it.Len()
		lastPos, lastLen = it.HeaderPos(), it.Len()
	}

	set("length", length)
	set("hex", hex.EncodeToString(c))

	if ferr := it.Err(); ferr != nil {
		set("valid", false)
		set("error", ferr.Error())
		return doc, err
	}

	// end is the position just past the last data chunk, where either the
	// sentinel or the optional terminator sits.
	end := 0
	if lastPos >= 0 {
		end = lastPos + 1 + lastLen
	}
	terminator := end < len(c) && c[end] == 0
	size := end
	if terminator {
		size++
	}

	set("valid", true)
	set("terminator", terminator)
	set("encoded_size", size)
	set("trailing", len(c)-size)
	return doc, err
}

// Pretty formats a JSON document for display.
func Pretty(doc []byte) []byte {
	return pretty.Pretty(doc)
}

// Color formats a JSON document for display on a terminal.
func Color(doc []byte) []byte {
	return pretty.Color(pretty.Pretty(doc), nil)
}
