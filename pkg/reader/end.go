package reader

import "io"

// endScanBlock is the block size for the backward end-record scan. Reads are
// aligned to multiples of it so a correct archive without a comment is found
// after a single read of the last partial block.
const endScanBlock = 512

// FindDirectoryEnd scans the file backward for the end of central directory
// signature and returns the absolute offset immediately after it, leaving the
// stream positioned there. The record's fixed body may be preceded by a
// comment of up to 65535 bytes with no visible length prefix, so the only way
// to locate it is to walk blocks from EOF toward the start, building a
// rolling 4-byte candidate one byte at a time from right to left. The partial
// match state is carried across block boundaries. Returns ErrEndRecordNotFound
// only after the whole file has been scanned.
func FindDirectoryEnd(s *Stream) (int64, error) {
	end := s.Size()
	beg := (end - 1) &^ int64(endScanBlock-1)

	// The signature cannot start closer than directoryEndLen-4 bytes to EOF
	// plus one byte for it to be detectable, so the first candidate starts
	// back bytes in from the end of the first block.
	back := int64(directoryEndLen - 3)

	buf := make([]byte, endScanBlock)
	var sig uint32
	for beg >= 0 {
		if err := s.Seek(beg); err != nil {
			return 0, err
		}
		block := buf[:end-beg]
		if _, err := io.ReadFull(s.r, block); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		got := int64(len(block))

		// Fold bytes right to left into the rolling candidate. After four
		// bytes the candidate is the little-endian word starting at i.
		for i := got - back; i >= 0; i-- {
			sig = sig<<8 + uint32(block[i])
			if sig == directoryEndSignature {
				at := beg + i + 4
				if err := s.Seek(at); err != nil {
					return 0, err
				}
				return at, nil
			}
		}

		end = beg
		beg -= endScanBlock
		if got < back {
			back -= got
		} else {
			back = 1
		}
	}
	return 0, ErrEndRecordNotFound
}
