package reader

import (
	"bytes"
	"encoding/binary"
)

// LocalNameOffset resolves the entry's local file header, verifies that the
// name stored there agrees byte-for-byte with the central directory copy, and
// returns the absolute offset of the local name bytes. When the central
// header's 32-bit local offset is saturated the true offset is recovered from
// the entry's zip64 extended information field.
func (e *DirectoryEntry) LocalNameOffset(s *Stream) (int64, error) {
	local := int64(e.LocalOffset)
	if e.NeedsZip64Off {
		if err := s.Seek(e.ExtraPos); err != nil {
			return 0, err
		}
		extra, err := s.Load(int(e.ExtraLen))
		if err != nil {
			return 0, err
		}
		if local, err = zip64LocalOffset(extra, e.Zip64Skip); err != nil {
			return 0, err
		}
	}

	if err := s.Seek(local); err != nil {
		return 0, err
	}
	sig, err := s.Uint32()
	if err != nil {
		return 0, err
	}
	if sig != fileHeaderSignature {
		return 0, ErrMissingLocalHeader
	}

	// Skip to the local header's name length field.
	if err := s.Skip(22); err != nil {
		return 0, err
	}
	nlen, err := s.Uint16()
	if err != nil {
		return 0, err
	}
	if nlen != e.NameLen {
		return 0, ErrNameLengthMismatch
	}
	if err := s.Skip(2); err != nil {
		return 0, err
	}

	at, err := s.Tell()
	if err != nil {
		return 0, err
	}
	name, err := s.Load(int(e.NameLen))
	if err != nil {
		return 0, err
	}
	if !bytes.Equal(name, e.Name) {
		return 0, ErrNameMismatch
	}
	return at, nil
}

// zip64LocalOffset walks the tagged sub-fields of a central header extra
// region looking for the zip64 extended information field and returns the
// 64-bit local header offset stored inside it. Only values whose 32-bit
// counterparts were saturated are present, in fixed order, so skip bytes of
// uncompressed/compressed sizes precede the offset.
func zip64LocalOffset(extra []byte, skip int) (int64, error) {
	b := readBuf(extra)
	for len(b) >= 4 {
		tag := b.uint16()
		size := int(b.uint16())
		if size > len(b) {
			return 0, ErrInvalidZip64Field
		}
		field := b.sub(size)
		if tag != zip64ExtraID {
			continue
		}
		if skip+8 > len(field) {
			return 0, ErrInvalidZip64Field
		}
		field.skip(skip)
		return int64(field.uint64()), nil
	}
	return 0, ErrMissingZip64Field
}

type readBuf []byte

func (b *readBuf) uint16() uint16 {
	v := binary.LittleEndian.Uint16(*b)
	*b = (*b)[2:]
	return v
}

func (b *readBuf) uint64() uint64 {
	v := binary.LittleEndian.Uint64(*b)
	*b = (*b)[8:]
	return v
}

func (b *readBuf) sub(n int) readBuf {
	b2 := (*b)[:n]
	*b = (*b)[n:]
	return b2
}

func (b *readBuf) skip(n int) *readBuf {
	*b = (*b)[n:]
	return b
}
