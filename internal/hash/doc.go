// Package hash provides the CRC32-Castagnoli (CRC32C) checksums used for
// result file integrity and S3 upload validation.
//
// For checksums over several sections:
//
//	sum := hash.CRC32C(header, payload, bitmap)
//
// For streaming checksums:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	sum := h.Sum32()
package hash
