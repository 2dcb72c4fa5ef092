package reader

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// builder assembles zip structures byte by byte for tests. Stdlib archive/zip
// only emits zip64 records for multi-gigabyte inputs, so the edge cases here
// have to be laid out by hand.
type builder struct {
	bytes.Buffer
}

func (b *builder) u16(v uint16) { binary.Write(&b.Buffer, binary.LittleEndian, v) }
func (b *builder) u32(v uint32) { binary.Write(&b.Buffer, binary.LittleEndian, v) }
func (b *builder) u64(v uint64) { binary.Write(&b.Buffer, binary.LittleEndian, v) }

// localHeader writes a minimal local file header with no payload.
func (b *builder) localHeader(name string) {
	b.u32(fileHeaderSignature)
	b.u16(20) // version needed
	b.u16(0)  // flags
	b.u16(0)  // method
	b.u16(0)  // mod time
	b.u16(0)  // mod date
	b.u32(0)  // crc
	b.u32(0)  // compressed size
	b.u32(0)  // uncompressed size
	b.u16(uint16(len(name)))
	b.u16(0) // extra length
	b.WriteString(name)
}

// centralHeader writes a central directory header. The size fields and local
// offset may carry sentinels pointing into extra.
func (b *builder) centralHeader(name string, csize, usize, localOff uint32, extra, comment []byte) {
	b.u32(directoryHeaderSignature)
	b.u16(20) // version made by
	b.u16(20) // version needed
	b.u16(0)  // flags
	b.u16(0)  // method
	b.u16(0)  // mod time
	b.u16(0)  // mod date
	b.u32(0)  // crc
	b.u32(csize)
	b.u32(usize)
	b.u16(uint16(len(name)))
	b.u16(uint16(len(extra)))
	b.u16(uint16(len(comment)))
	b.u16(0) // disk number start
	b.u16(0) // internal attributes
	b.u32(0) // external attributes
	b.u32(localOff)
	b.WriteString(name)
	b.Write(extra)
	b.Write(comment)
}

// eocd writes the end of central directory record with a trailing comment.
func (b *builder) eocd(entries uint16, cdSize, cdOff uint32, comment []byte) {
	b.u32(directoryEndSignature)
	b.u16(0) // disk number
	b.u16(0) // central directory disk
	b.u16(entries)
	b.u16(entries)
	b.u32(cdSize)
	b.u32(cdOff)
	b.u16(uint16(len(comment)))
	b.Write(comment)
}

// zip64End writes the zip64 end of central directory record.
func (b *builder) zip64End(entries, cdSize, cdOff uint64) {
	b.u32(zip64EndSignature)
	b.u64(44) // size of remaining record
	b.u16(45) // version made by
	b.u16(45) // version needed
	b.u32(0)  // disk number
	b.u32(0)  // central directory disk
	b.u64(entries)
	b.u64(entries)
	b.u64(cdSize)
	b.u64(cdOff)
}

// zip64Locator writes the zip64 end locator pointing at endOff.
func (b *builder) zip64Locator(endOff uint64) {
	b.u32(zip64LocatorSignature)
	b.u32(0) // disk with zip64 end
	b.u64(endOff)
	b.u32(1) // total disks
}

// zip64Extra builds a zip64 extended information extra field holding the
// given 64-bit values in order.
func zip64Extra(values ...uint64) []byte {
	var b builder
	b.u16(zip64ExtraID)
	b.u16(uint16(8 * len(values)))
	for _, v := range values {
		b.u64(v)
	}
	return b.Bytes()
}

func streamOf(t *testing.T, data []byte) *Stream {
	t.Helper()
	s, err := NewStream(bytes.NewReader(data))
	require.NoError(t, err)
	return s
}
