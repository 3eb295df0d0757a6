// Package textpos maps byte offsets in a streamed document to 1-based line
// and column positions for diagnostics.
package textpos

import (
	"bytes"
	"io"
	"sort"
)

// Index records newline positions as document bytes stream through it.
// Feed the chunks in order, then resolve offsets with Position.
type Index struct {
	newlines []int64
	size     int64
}

// Feed records the newline offsets of the next chunk.
func (x *Index) Feed(p []byte) {
	for i := 0; i < len(p); {
		j := bytes.IndexByte(p[i:], '\n')
		if j < 0 {
			break
		}
		x.newlines = append(x.newlines, x.size+int64(i+j))
		i += j + 1
	}
	x.size += int64(len(p))
}

// Position resolves a byte offset to the line and column of the byte at that
// offset. Offsets past the fed input resolve against the last known line.
func (x *Index) Position(offset int64) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	n := sort.Search(len(x.newlines), func(i int) bool {
		return x.newlines[i] >= offset
	})
	line = n + 1
	if n == 0 {
		return line, int(offset) + 1
	}
	return line, int(offset-x.newlines[n-1])
}

// Size returns the number of bytes fed so far.
func (x *Index) Size() int64 {
	return x.size
}

// Reset discards all recorded positions.
func (x *Index) Reset() {
	x.newlines = x.newlines[:0]
	x.size = 0
}

// Reader tees bytes read from an underlying reader into an Index.
type Reader struct {
	r   io.Reader
	idx *Index
}

// NewReader returns a reader that records positions in idx as p is consumed.
func NewReader(r io.Reader, idx *Index) *Reader {
	return &Reader{r: r, idx: idx}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.idx.Feed(p[:n])
	}
	return n, err
}
