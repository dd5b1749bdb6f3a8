// Package textbuf implements the append-only streaming buffer the tokenizer
// uses to accumulate the current incomplete line across Feed calls.
package textbuf

// StreamBuffer is an append-only byte buffer holding whatever has arrived
// since the last complete line was consumed.
//
// Not safe for use from parallel goroutines; intended for a single-writer
// ingestion loop.
type StreamBuffer struct {
	buf []byte
}

// Append stores chunk at the end of the buffer, returning the byte range it
// now occupies.
func (b *StreamBuffer) Append(chunk []byte) (start, end int) {
	start = len(b.buf)
	b.buf = append(b.buf, chunk...)
	end = len(b.buf)
	return start, end
}

// Len returns the total number of bytes retained.
func (b *StreamBuffer) Len() int { return len(b.buf) }

// Bytes returns the full retained buffer. The caller must not retain the
// returned slice past the next Append or Discard.
func (b *StreamBuffer) Bytes() []byte { return b.buf }

// Slice returns buf[i:j]. Panics if out of range, as with any slice.
func (b *StreamBuffer) Slice(i, j int) []byte { return b.buf[i:j] }

// Discard drops the first n bytes from the buffer, as if they had never
// been appended. Used once a line has been fully consumed by the tokenizer.
func (b *StreamBuffer) Discard(n int) {
	b.buf = append(b.buf[:0], b.buf[n:]...)
}
