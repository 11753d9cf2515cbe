// Package catalog holds lens and source catalogs as columnar tables and
// validates them before any extinction is computed.
//
// Catalogs are struct-of-arrays: one float64 slice per column, all of equal
// length, rows aligned by index. Positions and search radii of a catalog share
// a single geometry.Unit.
//
// Required columns:
//
//	lenses:  ra, dec, redshift, log_m_star, R200_kpc, theta_max
//	sources: ra, dec, redshift
//
// A missing column, ragged columns, or a non-finite or out-of-range value is a
// fatal validation error; see MissingColumnError, LengthMismatchError and
// InvalidValueError. All of them match ErrInvalidCatalog with errors.Is.
package catalog
