package reader

// ResolveDirectory reads the entry count and central directory offset from
// the end record whose signature ends at endPos, following the zip64
// indirection when either field is saturated. The stream is left positioned
// at the start of the central directory.
//
// The 16-bit entry count sits 6 bytes past the signature and the 32-bit
// directory offset 4 bytes after that. When the count reads 0xffff or the
// offset 0xffffffff, the true values live in a zip64 end record: the zip64
// end locator immediately precedes the end record and carries the absolute
// offset of the zip64 end record, which holds the 64-bit count and offset at
// fixed positions past its own signature.
func ResolveDirectory(s *Stream, endPos int64) (DirectoryLocation, error) {
	var loc DirectoryLocation

	if err := s.Seek(endPos + 6); err != nil {
		return loc, err
	}
	count16, err := s.Uint16()
	if err != nil {
		return loc, err
	}
	if err := s.Skip(4); err != nil {
		return loc, err
	}
	off32, err := s.Uint32()
	if err != nil {
		return loc, err
	}

	loc.Entries = uint64(count16)
	loc.Offset = uint64(off32)

	if count16 == max16 || off32 == max32 {
		// Step back from just past the end record's offset field to the
		// start of the locator record that precedes the end record.
		if err := s.Skip(2 - directoryEndLen - zip64LocatorLen); err != nil {
			return loc, err
		}
		sig, err := s.Uint32()
		if err != nil {
			return loc, err
		}
		if sig != zip64LocatorSignature {
			return loc, ErrMissingZip64Locator
		}
		if err := s.Skip(4); err != nil {
			return loc, err
		}
		endOff, err := s.Uint64()
		if err != nil {
			return loc, err
		}

		if err := s.Seek(int64(endOff)); err != nil {
			return loc, err
		}
		sig, err = s.Uint32()
		if err != nil {
			return loc, err
		}
		if sig != zip64EndSignature {
			return loc, ErrMissingZip64End
		}
		if err := s.Skip(28); err != nil {
			return loc, err
		}
		if loc.Entries, err = s.Uint64(); err != nil {
			return loc, err
		}
		if err := s.Skip(8); err != nil {
			return loc, err
		}
		if loc.Offset, err = s.Uint64(); err != nil {
			return loc, err
		}
	}

	if err := s.Seek(int64(loc.Offset)); err != nil {
		return loc, err
	}
	return loc, nil
}
