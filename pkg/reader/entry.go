package reader

// ReadDirectoryEntry parses the central directory header at the current
// position. It records the sentinel status of the two size fields, since
// those determine how far into a zip64 extended information field the local
// header offset sits, and notes the absolute positions needed to rewrite the
// name and to resynchronize on the next header. The stream is left just past
// the name bytes; callers seek to Next when done with the entry.
func ReadDirectoryEntry(s *Stream) (*DirectoryEntry, error) {
	sig, err := s.Uint32()
	if err != nil {
		return nil, err
	}
	if sig != directoryHeaderSignature {
		return nil, ErrMissingCentralHeader
	}

	e := &DirectoryEntry{}

	// Skip version made by/needed, flags, method, modification time and
	// date, and the CRC to land on the compressed size.
	if err := s.Skip(16); err != nil {
		return nil, err
	}
	csize, err := s.Uint32()
	if err != nil {
		return nil, err
	}
	usize, err := s.Uint32()
	if err != nil {
		return nil, err
	}
	if csize == max32 {
		e.Zip64Skip += 8
	}
	if usize == max32 {
		e.Zip64Skip += 8
	}

	if e.NameLen, err = s.Uint16(); err != nil {
		return nil, err
	}
	if e.ExtraLen, err = s.Uint16(); err != nil {
		return nil, err
	}
	if e.CommentLen, err = s.Uint16(); err != nil {
		return nil, err
	}

	// Skip disk number start and the internal/external attributes.
	if err := s.Skip(8); err != nil {
		return nil, err
	}
	if e.LocalOffset, err = s.Uint32(); err != nil {
		return nil, err
	}
	e.NeedsZip64Off = e.LocalOffset == max32

	if e.NamePos, err = s.Tell(); err != nil {
		return nil, err
	}
	if e.Name, err = s.Load(int(e.NameLen)); err != nil {
		return nil, err
	}
	e.ExtraPos = e.NamePos + int64(e.NameLen)
	e.Next = e.ExtraPos + int64(e.ExtraLen) + int64(e.CommentLen)
	return e, nil
}
