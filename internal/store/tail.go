package store

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Tail reads the complete lines appended to a file since the last read.
type Tail struct {
	offset  int64
	partial []byte
}

// NewTail returns a Tail whose first read starts at offset.
func NewTail(offset int64) *Tail {
	return &Tail{offset: max(offset, 0)}
}

// Offset returns the position the next read starts at.
func (t *Tail) Offset() int64 {
	return t.offset
}

// Read returns the lines completed since the previous call. A trailing line
// without newline is held back until it is finished. A file that shrank is
// read again from the start.
func (t *Tail) Read(r io.ReadSeeker) ([]string, error) {
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("tail: %w", err)
	}
	if end < t.offset {
		t.offset, t.partial = 0, nil
	}
	if _, err := r.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("tail: %w", err)
	}
	data, err := io.ReadAll(r)
	t.offset += int64(len(data))
	if err != nil {
		return nil, fmt.Errorf("tail: %w", err)
	}

	buf := append(t.partial, data...)
	var lines []string
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, strings.TrimSuffix(string(buf[:i]), "\r"))
		buf = buf[i+1:]
	}
	t.partial = bytes.Clone(buf)
	return lines, nil
}
