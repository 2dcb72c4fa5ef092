package reader

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Stream is a little-endian cursor over an open archive. Reads consume bytes
// from the current position; the position moves only through reads and
// explicit seeks. Every short read surfaces as an error so callers never see
// partially composed integers.
type Stream struct {
	r    io.ReadSeeker
	size int64
	b    [8]byte
}

// NewStream wraps r and records the total size, leaving the position at the
// start of the file.
func NewStream(r io.ReadSeeker) (*Stream, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek end: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek start: %w", err)
	}
	return &Stream{r: r, size: size}, nil
}

// Size returns the total size of the underlying file.
func (s *Stream) Size() int64 { return s.size }

// Tell returns the current absolute position.
func (s *Stream) Tell() (int64, error) {
	at, err := s.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("tell: %w", err)
	}
	return at, nil
}

// Seek moves to the absolute position off.
func (s *Stream) Seek(off int64) error {
	if _, err := s.r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seek %d: %w", off, err)
	}
	return nil
}

// Skip moves the position by off relative to the current one. Negative
// offsets move backward.
func (s *Stream) Skip(off int64) error {
	if _, err := s.r.Seek(off, io.SeekCurrent); err != nil {
		return fmt.Errorf("seek %+d: %w", off, err)
	}
	return nil
}

func (s *Stream) read(n int) ([]byte, error) {
	if _, err := io.ReadFull(s.r, s.b[:n]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("read %d bytes: %w", n, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("read %d bytes: %w", n, err)
	}
	return s.b[:n], nil
}

// Byte reads one byte.
func (s *Stream) Byte() (byte, error) {
	b, err := s.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little-endian 16-bit integer.
func (s *Stream) Uint16() (uint16, error) {
	b, err := s.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian 32-bit integer.
func (s *Stream) Uint32() (uint32, error) {
	b, err := s.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a little-endian 64-bit integer.
func (s *Stream) Uint64() (uint64, error) {
	b, err := s.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Load reads exactly n bytes into a fresh buffer.
func (s *Stream) Load(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("read %d bytes: %w", n, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("read %d bytes: %w", n, err)
	}
	return buf, nil
}
