package xps

import "bytes"

// Chunked is a chunked string in its wire form.
//
// Methods on Chunked traverse the chunks directly and never allocate, except
// Decode and Text which produce a flat copy of the payload.
type Chunked []byte

// EncodedLen returns the exact size of the encoding of an n-byte text,
// including the trailing zero byte.
func EncodedLen(n int) int {
	if n <= 0 {
		return 1
	}
	return n + (n+MaxChunkLen-1)/MaxChunkLen + 1
}

// Encode converts text into a new chunked buffer.
func Encode(text []byte) Chunked {
	return AppendEncode(make([]byte, 0, EncodedLen(len(text))), text)
}

// EncodeString converts s into a new chunked buffer.
func EncodeString(s string) Chunked {
	return Encode([]byte(s))
}

// AppendEncode appends the encoding of text to dst and returns the extended
// buffer. Text is split into consecutive groups of at most MaxChunkLen bytes,
// each preceded by its length byte, followed by one zero byte.
func AppendEncode(dst, text []byte) []byte {
	for len(text) > 0 {
		n := min(len(text), MaxChunkLen)
		dst = append(dst, byte(n))
		dst = append(dst, text[:n]...)
		text = text[n:]
	}
	return append(dst, 0)
}

// Len returns the logical length of c.
func (c Chunked) Len() (int, error) {
	length := 0
	it := c.Chunks()
	for it.Next() {
		length += it.Len()
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	return length, nil
}

// ByteAt returns the byte at logical index i.
// Returns ErrOutOfRange if i is outside the string, or a *FormatError if the
// chunks before the index are malformed.
func (c Chunked) ByteAt(i int) (byte, error) {
	p, err := c.locate(i)
	if err != nil {
		return 0, err
	}
	return c[p], nil
}

// SetByte overwrites the byte at logical index i in place.
// The length of the string never changes. Returns ErrOutOfRange if i is
// outside the string.
func (c Chunked) SetByte(i int, b byte) error {
	p, err := c.locate(i)
	if err != nil {
		return err
	}
	c[p] = b
	return nil
}

// locate returns the buffer position of logical index i.
func (c Chunked) locate(i int) (int, error) {
	if i < 0 {
		return 0, rangeError(i, -1)
	}

	index := i
	it := c.Chunks()
	for it.Next() {
		if index < it.Len() {
			return it.HeaderPos() + 1 + index, nil
		}
		index -= it.Len()
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	return 0, rangeError(i, i-index)
}

// Validate walks every chunk and reports the first format error.
func (c Chunked) Validate() error {
	it := c.Chunks()
	for it.Next() {
	}
	return it.Err()
}

// Decode returns the logical bytes of c as a String.
func (c Chunked) Decode() (String, error) {
	var out []byte
	it := c.Chunks()
	for it.Next() {
		out = append(out, it.Payload()...)
	}
	if err := it.Err(); err != nil {
		return String{}, err
	}
	return String{b: out}, nil
}

// Text returns the logical bytes of c as a Go string.
func (c Chunked) Text() (string, error) {
	s, err := c.Decode()
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// Decode reads one chunked string from the front of buf and returns it with
// the number of bytes consumed. The zero byte that follows a short final chunk
// is consumed when present, so consecutive encodings can be decoded in turn.
// Returns io.EOF if buf is empty.
func Decode(buf []byte) (String, int, error) {
	dec := NewDecoder(bytes.NewReader(buf))
	s, err := dec.Decode()
	return s, dec.Offset(), err
}
