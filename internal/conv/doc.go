// Package conv provides bounds-checked integer conversions for sizes read
// from result files and for point indexes stored as uint32.
package conv
