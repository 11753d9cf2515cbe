package hash

import (
	"encoding/base64"
	"encoding/binary"
	"hash"
	"hash/crc32"
)

// crc32cTable is pre-computed once; crc32 uses hardware instructions for it
// when available.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the checksum of the concatenation of sections.
func CRC32C(sections ...[]byte) uint32 {
	var crc uint32
	for _, s := range sections {
		crc = crc32.Update(crc, crc32cTable, s)
	}
	return crc
}

// CRC32CBase64 returns the checksum of data as base64 of its big-endian
// bytes, the form of the S3 x-amz-checksum-crc32c header.
func CRC32CBase64(data []byte) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], CRC32C(data))
	return base64.StdEncoding.EncodeToString(b[:])
}

// NewCRC32C returns a new streaming CRC32C hash.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}
