package xps

import "io"

// Builder accumulates bytes and produces a String.
// The zero value is ready to use.
type Builder struct {
	buf []byte
}

// NewBuilder creates a builder with room for capacity bytes.
func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends a string.
func (b *Builder) WriteString(s string) (int, error) {
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// WriteXPS appends the bytes of s.
func (b *Builder) WriteXPS(s String) {
	b.buf = append(b.buf, s.b...)
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.buf = append(b.buf, buf[:n]...)
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Len returns the number of bytes written since the last Build or Reset.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Build returns the accumulated bytes as a String.
// The builder hands its buffer to the String and starts over empty.
func (b *Builder) Build() String {
	if len(b.buf) == 0 {
		return String{}
	}
	s := String{b: b.buf}
	b.buf = nil
	return s
}
