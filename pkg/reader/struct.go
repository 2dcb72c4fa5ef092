package reader

import (
	"errors"
)

var (
	// ErrEndRecordNotFound indicates the end of central directory record was
	// not found anywhere in the file.
	ErrEndRecordNotFound = errors.New("zip: unable to locate end of central directory")
	// ErrMissingCentralHeader indicates a missing central directory header signature
	ErrMissingCentralHeader = errors.New("zip: missing central directory header")
	// ErrMissingLocalHeader indicates a missing local file header signature
	ErrMissingLocalHeader = errors.New("zip: missing local file header")
	// ErrMissingZip64Locator indicates a missing zip64 end of central directory locator
	ErrMissingZip64Locator = errors.New("zip: missing zip64 end locator record")
	// ErrMissingZip64End indicates a missing zip64 end of central directory record
	ErrMissingZip64End = errors.New("zip: missing zip64 end record")
	// ErrMissingZip64Field indicates the extra field has no zip64 extended information
	ErrMissingZip64Field = errors.New("zip: missing zip64 extended information field")
	// ErrInvalidZip64Field indicates a malformed zip64 extended information field
	ErrInvalidZip64Field = errors.New("zip: invalid zip64 extended information field")
	// ErrNameLengthMismatch indicates the local header name length differs from the central copy
	ErrNameLengthMismatch = errors.New("zip: local/central name length mismatch")
	// ErrNameMismatch indicates the local header name bytes differ from the central copy
	ErrNameMismatch = errors.New("zip: local/central name mismatch")
)

const (
	directoryEndLen    = 22 // including signature
	zip64LocatorLen    = 20 // including signature
	directoryHeaderLen = 46 // + filename + extra + comment
	fileHeaderLen      = 30 // + filename + extra

	directoryEndSignature    = 0x06054b50
	zip64LocatorSignature    = 0x07064b50
	zip64EndSignature        = 0x06064b50
	directoryHeaderSignature = 0x02014b50
	fileHeaderSignature      = 0x04034b50

	zip64ExtraID = 0x0001 // Zip64 extended information

	max16 = 0xffff     // zip64 indication for the entry count
	max32 = 0xffffffff // zip64 indication for sizes and offsets
)

// DirectoryLocation is the resolved position and extent of the central
// directory, after following the zip64 indirection when the end record's
// 32-bit-domain fields are saturated.
type DirectoryLocation struct {
	// Entries is the total number of central directory entries.
	Entries uint64
	// Offset is the absolute offset of the first central directory header.
	Offset uint64
}

// DirectoryEntry holds the fields of one central directory header that name
// sanitization needs, plus the positions required to rewrite the name and to
// resynchronize on the next entry. It is read fresh per entry and discarded.
type DirectoryEntry struct {
	// Name is the raw entry name as stored in the central directory.
	Name []byte

	// NameLen, ExtraLen and CommentLen are the variable-section lengths
	// following the fixed central header fields.
	NameLen    uint16
	ExtraLen   uint16
	CommentLen uint16

	// Zip64Skip is how many bytes of 64-bit sizes precede the local header
	// offset inside a zip64 extended information field: 8 for each of the
	// compressed/uncompressed sizes that read as the 32-bit sentinel.
	Zip64Skip int

	// LocalOffset is the 32-bit local header offset from the central header.
	// When it equals the sentinel the true offset lives in the extra field.
	LocalOffset   uint32
	NeedsZip64Off bool

	// NamePos is the absolute offset of the name bytes in the central
	// directory; ExtraPos follows the name; Next is the offset of the next
	// central header regardless of how much extra/comment was consulted.
	NamePos  int64
	ExtraPos int64
	Next     int64
}
