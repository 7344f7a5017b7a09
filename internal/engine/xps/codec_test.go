package xps

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func fill(c byte, n int) []byte {
	return bytes.Repeat([]byte{c}, n)
}

func concatBytes(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"empty", "", []byte{0}},
		{"single byte", "a", []byte{1, 'a', 0}},
		{"short", "hi", []byte{2, 'h', 'i', 0}},
		{"fourteen", strings.Repeat("x", 14), concatBytes([]byte{14}, fill('x', 14), []byte{0})},
		{"one full chunk", strings.Repeat("x", 15), concatBytes([]byte{15}, fill('x', 15), []byte{0})},
		{"full plus one", strings.Repeat("x", 16), concatBytes([]byte{15}, fill('x', 15), []byte{1, 'x', 0})},
		{"two full chunks", strings.Repeat("x", 30), concatBytes([]byte{15}, fill('x', 15), []byte{15}, fill('x', 15), []byte{0})},
		{"embedded zero", "a\x00b", []byte{3, 'a', 0, 'b', 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeString(tt.input)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeString(%q) = % x, want % x", tt.input, []byte(got), tt.want)
			}
			if EncodedLen(len(tt.input)) != len(got) {
				t.Errorf("EncodedLen(%d) = %d, want %d", len(tt.input), EncodedLen(len(tt.input)), len(got))
			}
		})
	}
}

func TestAppendEncode(t *testing.T) {
	dst := []byte{0xAA}
	dst = AppendEncode(dst, []byte("ab"))
	dst = AppendEncode(dst, nil)

	want := []byte{0xAA, 2, 'a', 'b', 0, 0}
	if !bytes.Equal(dst, want) {
		t.Errorf("AppendEncode = % x, want % x", dst, want)
	}
}

func TestChunkedLen(t *testing.T) {
	for _, n := range []int{0, 1, 14, 15, 16, 29, 30, 31, 45, 100, 1000} {
		text := fill('z', n)
		got, err := Encode(text).Len()
		if err != nil {
			t.Fatalf("Len() for %d bytes: unexpected error %v", n, err)
		}
		if got != n {
			t.Errorf("Len() = %d, want %d", got, n)
		}
	}
}

func TestChunkedLenStopsAtShortChunk(t *testing.T) {
	// Bytes after a short chunk are never read, even if they are not a
	// valid header.
	c := Chunked{2, 'a', 'b', 0xFF, 0xFF}
	n, err := c.Len()
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestChunkedLenLeadingSentinel(t *testing.T) {
	c := Chunked{0, 5, 'a', 'b'}
	n, err := c.Len()
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestChunkedByteAt(t *testing.T) {
	text := []byte("the quick brown fox jumps over the lazy dog")
	c := Encode(text)

	for i := range text {
		got, err := c.ByteAt(i)
		if err != nil {
			t.Fatalf("ByteAt(%d) error = %v", i, err)
		}
		if got != text[i] {
			t.Errorf("ByteAt(%d) = %q, want %q", i, got, text[i])
		}
	}

	for _, i := range []int{-1, len(text), len(text) + 100} {
		_, err := c.ByteAt(i)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ByteAt(%d) error = %v, want ErrOutOfRange", i, err)
		}
	}
}

func TestChunkedByteAtEmbeddedZero(t *testing.T) {
	c := EncodeString("a\x00b")

	got, err := c.ByteAt(1)
	if err != nil {
		t.Fatalf("ByteAt(1) error = %v", err)
	}
	if got != 0 {
		t.Errorf("ByteAt(1) = %q, want NUL", got)
	}

	if _, err := c.ByteAt(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ByteAt(3) error = %v, want ErrOutOfRange", err)
	}
}

func TestChunkedSetByte(t *testing.T) {
	c := EncodeString(strings.Repeat("a", 20))

	if err := c.SetByte(0, 'x'); err != nil {
		t.Fatalf("SetByte(0) error = %v", err)
	}
	if err := c.SetByte(15, 'y'); err != nil {
		t.Fatalf("SetByte(15) error = %v", err)
	}
	if err := c.SetByte(19, 'z'); err != nil {
		t.Fatalf("SetByte(19) error = %v", err)
	}

	text, err := c.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	want := "x" + strings.Repeat("a", 14) + "y" + "aaa" + "z"
	if text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}

	before := bytes.Clone(c)
	if err := c.SetByte(20, 'q'); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetByte(20) error = %v, want ErrOutOfRange", err)
	}
	if err := c.SetByte(-1, 'q'); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetByte(-1) error = %v, want ErrOutOfRange", err)
	}
	if !bytes.Equal(before, c) {
		t.Error("out of range SetByte modified the buffer")
	}
}

func TestChunkedFormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  Chunked
		want   error
		pos    int
		header byte
	}{
		{"empty buffer", Chunked{}, ErrTruncated, 0, 0},
		{"reserved bits first header", Chunked{0x12, 'a', 'b', 0}, ErrReservedBits, 0, 0x12},
		{"reserved bits after full chunk", Chunked(concatBytes([]byte{15}, fill('a', 15), []byte{0x31, 'b', 0})), ErrReservedBits, 16, 0x31},
		{"payload cut short", Chunked{5, 'a', 'b'}, ErrTruncated, 3, 5},
		{"full chunk without sentinel", Chunked(concatBytes([]byte{15}, fill('a', 15))), ErrTruncated, 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Validate() error %T is not a *FormatError", err)
			}
			if fe.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", fe.Pos, tt.pos)
			}
			if fe.Header != tt.header {
				t.Errorf("Header = 0x%02x, want 0x%02x", fe.Header, tt.header)
			}

			if _, err := tt.input.Len(); !errors.Is(err, tt.want) {
				t.Errorf("Len() error = %v, want %v", err, tt.want)
			}
			if _, err := tt.input.Decode(); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestChunkedByteAtBeforeMalformedChunk(t *testing.T) {
	c := Chunked(concatBytes([]byte{15}, []byte("abcdefghijklmno"), []byte{0x80}))

	got, err := c.ByteAt(3)
	if err != nil {
		t.Fatalf("ByteAt(3) error = %v", err)
	}
	if got != 'd' {
		t.Errorf("ByteAt(3) = %q, want 'd'", got)
	}

	if _, err := c.ByteAt(15); !errors.Is(err, ErrReservedBits) {
		t.Errorf("ByteAt(15) error = %v, want ErrReservedBits", err)
	}
}

func TestChunkedDecode(t *testing.T) {
	for _, text := range []string{"", "a", "hello world", strings.Repeat("0123456789", 7)} {
		got, err := EncodeString(text).Text()
		if err != nil {
			t.Fatalf("Text() error = %v", err)
		}
		if got != text {
			t.Errorf("Text() = %q, want %q", got, text)
		}
	}
}

func TestDecodeSequence(t *testing.T) {
	full := strings.Repeat("f", 15)
	buf := concatBytes(EncodeString("ab"), EncodeString(""), EncodeString(full), EncodeString("tail"))

	want := []struct {
		text     string
		consumed int
	}{
		{"ab", 4},
		{"", 1},
		{full, 17},
		{"tail", 6},
	}

	for _, w := range want {
		s, n, err := Decode(buf)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if s.String() != w.text {
			t.Errorf("Decode() = %q, want %q", s.String(), w.text)
		}
		if n != w.consumed {
			t.Errorf("Decode(%q) consumed %d, want %d", w.text, n, w.consumed)
		}
		buf = buf[n:]
	}

	if _, _, err := Decode(buf); err != io.EOF {
		t.Errorf("Decode() on empty input error = %v, want io.EOF", err)
	}
}

func TestDecodeMissingTerminator(t *testing.T) {
	_, _, err := Decode([]byte{2, 'a', 'b', 7})
	if !errors.Is(err, ErrMissingTerminator) {
		t.Errorf("Decode() error = %v, want ErrMissingTerminator", err)
	}
}
