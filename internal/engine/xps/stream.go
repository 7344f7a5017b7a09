package xps

import (
	"errors"
	"io"
)

// Encoder writes chunked strings to an io.Writer.
//
// Writes are unbuffered; wrap the writer in a bufio.Writer when encoding
// many small strings.
type Encoder struct {
	w    io.Writer
	pool *BufferPool
}

// NewEncoder creates an encoder that writes to w using DefaultPool.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, pool: DefaultPool}
}

// NewEncoderWithPool creates an encoder that takes scratch buffers from pool.
func NewEncoderWithPool(w io.Writer, pool *BufferPool) *Encoder {
	return &Encoder{w: w, pool: pool}
}

// Encode writes the wire form of s.
func (e *Encoder) Encode(s String) error {
	return e.EncodeBytes(s.b)
}

// EncodeBytes writes the wire form of text.
func (e *Encoder) EncodeBytes(text []byte) error {
	buf := e.pool.Get(EncodedLen(len(text)))
	defer e.pool.Put(buf)

	*buf = AppendEncode(*buf, text)
	_, err := e.w.Write(*buf)
	return err
}

// Decoder reads consecutive chunked strings from an io.ByteReader.
//
// Wrap network streams or files in a bufio.Reader. Each string must be
// followed by the zero byte encoders emit after the last data chunk; the
// terminator may be missing only at the end of the stream.
type Decoder struct {
	r      io.ByteReader
	offset int
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.ByteReader) *Decoder {
	return &Decoder{r: r}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.offset
}

// Decode reads the next chunked string.
// Returns io.EOF when the stream ends cleanly between strings.
func (d *Decoder) Decode() (String, error) {
	h, err := d.readByte()
	if err != nil {
		return String{}, err
	}

	var out []byte
	for {
		if h&ReservedMask != 0 {
			return String{}, &FormatError{Pos: d.offset - 1, Header: h, Err: ErrReservedBits}
		}

		n := int(h & LengthMask)
		if n == 0 {
			return String{b: out}, nil
		}

		for i := 0; i < n; i++ {
			c, err := d.readByte()
			if err != nil {
				return String{}, d.truncated(err)
			}
			out = append(out, c)
		}

		if n < MaxChunkLen {
			if err := d.readTerminator(); err != nil {
				return String{}, err
			}
			return String{b: out}, nil
		}

		h, err = d.readByte()
		if err != nil {
			return String{}, d.truncated(err)
		}
	}
}

// readTerminator consumes the zero byte after a short final chunk.
func (d *Decoder) readTerminator() error {
	t, err := d.readByte()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	if t != 0 {
		return &FormatError{Pos: d.offset - 1, Header: t, Err: ErrMissingTerminator}
	}
	return nil
}

func (d *Decoder) truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return &FormatError{Pos: d.offset, Err: ErrTruncated}
	}
	return err
}

func (d *Decoder) readByte() (byte, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	d.offset++
	return c, nil
}
