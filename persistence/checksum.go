package persistence

import (
	"errors"
	"fmt"

	"github.com/hupe1980/cgmdust/internal/hash"
)

// Checksum returns the CRC32C of the given byte sections in order.
func Checksum(sections ...[]byte) uint32 {
	return hash.CRC32C(sections...)
}

// ChecksumMismatchError is returned when the stored and computed checksums
// differ.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Is(target error) bool { return target == ErrCorrupt }

// IsChecksumMismatch reports whether err is or wraps a checksum mismatch.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}
