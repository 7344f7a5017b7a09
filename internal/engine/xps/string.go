package xps

import "bytes"

// NotFound is the index returned by Index and IndexFrom when there is no match.
const NotFound = -1

// String is a chunked string held as a flat byte buffer.
//
// Derived operations return new Strings that never share storage with their
// inputs. Assigning a String shares its buffer, the same way assigning a
// []byte does; use Clone for an independent copy before calling SetByte.
type String struct {
	b []byte
}

// Empty returns the empty string.
func Empty() String {
	return String{}
}

// FromText creates a String holding the bytes of s.
func FromText(s string) String {
	if len(s) == 0 {
		return String{}
	}
	return String{b: []byte(s)}
}

// FromBytes creates a String holding a copy of b.
func FromBytes(b []byte) String {
	if len(b) == 0 {
		return String{}
	}
	return String{b: bytes.Clone(b)}
}

// Len returns the length in bytes.
func (s String) Len() int {
	return len(s.b)
}

// IsEmpty returns true if the string has no bytes.
func (s String) IsEmpty() bool {
	return len(s.b) == 0
}

// String returns the contents as a Go string.
func (s String) String() string {
	return string(s.b)
}

// Bytes returns a copy of the contents.
func (s String) Bytes() []byte {
	return bytes.Clone(s.b)
}

// AppendTo appends the contents of s to dst and returns the extended slice.
func (s String) AppendTo(dst []byte) []byte {
	return append(dst, s.b...)
}

// Clone returns a copy of s that does not share storage.
func (s String) Clone() String {
	return FromBytes(s.b)
}

// ByteAt returns the byte at index i.
// Returns 0 and false if i is out of range.
func (s String) ByteAt(i int) (byte, bool) {
	if i < 0 || i >= len(s.b) {
		return 0, false
	}
	return s.b[i], true
}

// SetByte overwrites the byte at index i in place.
// Returns ErrOutOfRange if i is out of range; the length never changes.
func (s String) SetByte(i int, c byte) error {
	if i < 0 || i >= len(s.b) {
		return rangeError(i, len(s.b))
	}
	s.b[i] = c
	return nil
}

// Slice returns the bytes in [start, stop) as a new String.
// Both bounds are clamped to [0, Len]. The result is empty when
// start >= Len or start >= stop.
func (s String) Slice(start, stop int) String {
	start = clamp(start, len(s.b))
	stop = clamp(stop, len(s.b))
	if start >= len(s.b) || start >= stop {
		return String{}
	}
	return FromBytes(s.b[start:stop])
}

// SliceFrom returns the bytes from start to the end as a new String.
func (s String) SliceFrom(start int) String {
	return s.Slice(start, len(s.b))
}

// Concat returns a new String holding s followed by other.
func (s String) Concat(other String) String {
	return Concat(s, other)
}

// Concat returns a new String holding the parts in order.
func Concat(parts ...String) String {
	total := 0
	for _, p := range parts {
		total += p.Len()
	}
	if total == 0 {
		return String{}
	}

	b := make([]byte, 0, total)
	for _, p := range parts {
		b = append(b, p.b...)
	}
	return String{b: b}
}

// Compare compares a and b lexicographically, treating each byte as a
// signed 8-bit value, so bytes 0x80 through 0xFF sort below ASCII.
// The result is -1, 0 or 1. When one string is a prefix of the other, the
// shorter one compares less.
func Compare(a, b String) int {
	n := min(len(a.b), len(b.b))
	for i := 0; i < n; i++ {
		x, y := int8(a.b[i]), int8(b.b[i])
		if x < y {
			return -1
		}
		if x > y {
			return 1
		}
	}
	switch {
	case len(a.b) < len(b.b):
		return -1
	case len(a.b) > len(b.b):
		return 1
	}
	return 0
}

// Equal reports whether a and b hold the same bytes.
func Equal(a, b String) bool {
	return bytes.Equal(a.b, b.b)
}

// Find returns the index of the first occurrence of pattern in s.
// An empty pattern matches at 0.
func Find(s, pattern String) (int, bool) {
	return FindFrom(s, pattern, 0)
}

// FindFrom returns the index of the first occurrence of pattern in s at or
// after start. An empty pattern matches at start. A non-empty pattern is
// not found when start >= Len or the pattern does not fit in the remaining
// suffix.
func FindFrom(s, pattern String, start int) (int, bool) {
	if start < 0 {
		start = 0
	}
	if pattern.IsEmpty() {
		return start, true
	}
	if start >= len(s.b) || pattern.Len() > len(s.b)-start {
		return NotFound, false
	}

	last := len(s.b) - pattern.Len()
	for i := start; i <= last; i++ {
		if s.b[i] == pattern.b[0] && bytes.Equal(s.b[i:i+pattern.Len()], pattern.b) {
			return i, true
		}
	}
	return NotFound, false
}

// Index is Find with NotFound in place of the boolean.
func Index(s, pattern String) int {
	i, _ := Find(s, pattern)
	return i
}

// IndexFrom is FindFrom with NotFound in place of the boolean.
func IndexFrom(s, pattern String, start int) int {
	i, _ := FindFrom(s, pattern, start)
	return i
}

// Contains reports whether pattern occurs in s.
func Contains(s, pattern String) bool {
	_, ok := Find(s, pattern)
	return ok
}

// HasPrefix reports whether s begins with prefix.
func HasPrefix(s, prefix String) bool {
	return bytes.HasPrefix(s.b, prefix.b)
}

// HasSuffix reports whether s ends with suffix.
func HasSuffix(s, suffix String) bool {
	return bytes.HasSuffix(s.b, suffix.b)
}

// Encode returns the wire form of s.
func (s String) Encode() Chunked {
	return Encode(s.b)
}

// AppendEncoded appends the wire form of s to dst.
func (s String) AppendEncoded(dst []byte) []byte {
	return AppendEncode(dst, s.b)
}

// MarshalBinary implements encoding.BinaryMarshaler using the wire form.
func (s String) MarshalBinary() ([]byte, error) {
	return s.Encode(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// Bytes after the end of the encoded string are ignored.
func (s *String) UnmarshalBinary(data []byte) error {
	v, err := Chunked(data).Decode()
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Release drops the buffer. The String is empty afterwards.
func (s *String) Release() {
	s.b = nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
