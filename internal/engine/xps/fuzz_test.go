package xps

import (
	"bytes"
	"testing"
)

// FuzzEncode checks that every encoding decodes back to its input.
func FuzzEncode(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello"))
	f.Add(bytes.Repeat([]byte("x"), 15))
	f.Add(bytes.Repeat([]byte("y"), 16))
	f.Add([]byte("\x00\x0f\xf0\xff"))

	f.Fuzz(func(t *testing.T, text []byte) {
		c := Encode(text)

		if len(c) != EncodedLen(len(text)) {
			t.Errorf("encoded size %d, want %d", len(c), EncodedLen(len(text)))
		}

		n, err := c.Len()
		if err != nil {
			t.Fatalf("Len() error = %v", err)
		}
		if n != len(text) {
			t.Errorf("Len() = %d, want %d", n, len(text))
		}

		s, err := c.Decode()
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if !bytes.Equal(s.Bytes(), text) {
			t.Errorf("Decode() mismatch")
		}
	})
}

// FuzzValidate feeds arbitrary bytes to the wire-form operations.
func FuzzValidate(f *testing.F) {
	f.Add([]byte{0})
	f.Add([]byte{2, 'a', 'b', 0})
	f.Add([]byte{0x1f, 'a'})
	f.Add([]byte{15, 1, 2, 3})

	f.Fuzz(func(t *testing.T, data []byte) {
		c := Chunked(data)
		verr := c.Validate()

		n, lerr := c.Len()
		if (verr == nil) != (lerr == nil) {
			t.Fatalf("Validate() = %v but Len() = %v", verr, lerr)
		}
		if verr != nil {
			return
		}

		s, err := c.Decode()
		if err != nil {
			t.Fatalf("Decode() error = %v after successful Validate", err)
		}
		if s.Len() != n {
			t.Errorf("Decode() length %d, Len() %d", s.Len(), n)
		}
		if n2, err := s.Encode().Len(); err != nil || n2 != n {
			t.Errorf("re-encoded Len() = %d, %v; want %d", n2, err, n)
		}
	})
}

// FuzzFind compares FindFrom with bytes.Index on the remaining suffix.
func FuzzFind(f *testing.F) {
	f.Add([]byte("hello"), []byte("ll"), 0)
	f.Add([]byte("abcabc"), []byte("c"), 3)
	f.Add([]byte("aaa"), []byte(""), 2)

	f.Fuzz(func(t *testing.T, s, pattern []byte, start int) {
		if start < 0 || start > len(s) {
			return
		}

		got, ok := FindFrom(FromBytes(s), FromBytes(pattern), start)

		want := bytes.Index(s[start:], pattern)
		if want >= 0 {
			want += start
		}

		if got != want || ok != (want != NotFound) {
			t.Errorf("FindFrom(%q, %q, %d) = %d, %v; want %d", s, pattern, start, got, ok, want)
		}
	})
}

// FuzzSlice compares Slice with direct sub-slicing after clamping.
func FuzzSlice(f *testing.F) {
	f.Add([]byte("hello world"), 6, 11)
	f.Add([]byte("abc"), 2, 1)
	f.Add([]byte(""), 0, 0)

	f.Fuzz(func(t *testing.T, text []byte, start, stop int) {
		got := FromBytes(text).Slice(start, stop)

		start = clamp(start, len(text))
		stop = clamp(stop, len(text))
		var want []byte
		if start < stop {
			want = text[start:stop]
		}

		if !bytes.Equal(got.Bytes(), want) {
			t.Errorf("Slice(%d, %d) = %q, want %q", start, stop, got.Bytes(), want)
		}
	})
}
