package xps

// Wire format parameters. These are fixed for compatibility with existing
// encoded data.
const (
	// MaxChunkLen is the largest payload a single chunk can carry.
	MaxChunkLen = 15

	// LengthMask selects the payload length from a header byte.
	LengthMask = 0x0F

	// ReservedMask selects the reserved header bits, which must be zero.
	ReservedMask = 0xF0
)

// iterState is the traversal state of a ChunkIterator.
type iterState uint8

const (
	atStart iterState = iota // before the first header
	inChunk                  // positioned on a data chunk
	done                     // sentinel, short chunk consumed, or error
)

// ChunkIterator walks the chunks of an encoded buffer.
//
// The traversal follows the format's only state machine: a header with a
// length below MaxChunkLen ends the string after its payload; a full chunk
// is followed by another header; a zero header ends the string.
type ChunkIterator struct {
	buf    []byte
	state  iterState
	pos    int // header position of the current chunk
	n      int // payload length of the current chunk
	offset int // logical offset of the current chunk's first byte
	err    error
}

// Chunks returns an iterator over the data chunks of c. The sentinel is never
// yielded.
func (c Chunked) Chunks() *ChunkIterator {
	return &ChunkIterator{buf: c}
}

// Next advances to the next data chunk.
// Returns false when the string has ended or the data is malformed; check Err
// to tell the two apart.
func (it *ChunkIterator) Next() bool {
	switch it.state {
	case done:
		return false
	case atStart:
		return it.readHeader(0)
	}

	if it.n < MaxChunkLen {
		it.state = done
		return false
	}
	it.offset += it.n
	return it.readHeader(it.pos + 1 + it.n)
}

// readHeader reads the header at pos and positions the iterator on it.
func (it *ChunkIterator) readHeader(pos int) bool {
	if pos >= len(it.buf) {
		return it.fail(&FormatError{Pos: pos, Err: ErrTruncated})
	}

	h := it.buf[pos]
	if h&ReservedMask != 0 {
		return it.fail(&FormatError{Pos: pos, Header: h, Err: ErrReservedBits})
	}

	n := int(h & LengthMask)
	if n == 0 {
		it.state = done
		it.n = 0
		return false
	}
	if pos+1+n > len(it.buf) {
		return it.fail(&FormatError{Pos: len(it.buf), Header: h, Err: ErrTruncated})
	}

	it.state = inChunk
	it.pos = pos
	it.n = n
	return true
}

func (it *ChunkIterator) fail(err error) bool {
	it.state = done
	it.n = 0
	it.err = err
	return false
}

// Len returns the payload length of the current chunk.
func (it *ChunkIterator) Len() int {
	return it.n
}

// Full reports whether the current chunk carries MaxChunkLen bytes.
func (it *ChunkIterator) Full() bool {
	return it.n == MaxChunkLen
}

// Payload returns the current chunk's payload. The slice aliases the
// underlying buffer.
func (it *ChunkIterator) Payload() []byte {
	if it.state != inChunk {
		return nil
	}
	return it.buf[it.pos+1 : it.pos+1+it.n]
}

// HeaderPos returns the byte position of the current chunk's header.
func (it *ChunkIterator) HeaderPos() int {
	return it.pos
}

// Offset returns the logical offset of the current chunk's first payload byte.
func (it *ChunkIterator) Offset() int {
	return it.offset
}

// Err returns the format error that stopped iteration, if any.
func (it *ChunkIterator) Err() error {
	return it.err
}
