// Package persistence stores extinction results in a compact binary file.
//
// Layout (little-endian):
//
//	FileHeader   104 bytes: magic "CGMX", version, compression, source
//	             count, CRC32C, section sizes and run statistics
//	payload      count float64 values, optionally LZ4 or Zstandard compressed
//	bitmap       portable roaring bitmap of affected sources
//
// The checksum covers the uncompressed payload followed by the bitmap bytes,
// so corruption is detected regardless of compression. Save and Load move
// files through a blobstore.Store.
package persistence
