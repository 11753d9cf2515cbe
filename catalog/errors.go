package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog is the category matched by every catalog validation error.
var ErrInvalidCatalog = errors.New("invalid catalog")

// MissingColumnError reports a required column absent from a table.
type MissingColumnError struct {
	Catalog string
	Column  string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s catalog: missing required column %q", e.Catalog, e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrInvalidCatalog }

// LengthMismatchError reports a column whose length differs from the catalog's.
type LengthMismatchError struct {
	Catalog  string
	Column   string
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s catalog: column %q has %d rows, expected %d", e.Catalog, e.Column, e.Actual, e.Expected)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrInvalidCatalog }

// InvalidValueError reports a single malformed value.
type InvalidValueError struct {
	Catalog string
	Column  string
	Row     int
	Value   float64
	Reason  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s catalog: %s[%d] = %v: %s", e.Catalog, e.Column, e.Row, e.Value, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidCatalog }

// InvalidUnitError reports an unknown angular unit.
type InvalidUnitError struct {
	Catalog string
	Unit    int
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("%s catalog: invalid angular unit %d", e.Catalog, e.Unit)
}

func (e *InvalidUnitError) Is(target error) bool { return target == ErrInvalidCatalog }

// ThetaMaxError reports lenses whose search radius is smaller than the
// angular size of their halo; radius queries would miss real overlaps.
type ThetaMaxError struct {
	// Row is the first offending lens.
	Row      int
	ThetaMax float64
	Required float64
	// Violations is the total number of offending lenses.
	Violations int
}

func (e *ThetaMaxError) Error() string {
	return fmt.Sprintf("lens catalog: theta_max[%d] = %v is below the halo angular radius %v (%d lenses affected)",
		e.Row, e.ThetaMax, e.Required, e.Violations)
}

func (e *ThetaMaxError) Is(target error) bool { return target == ErrInvalidCatalog }
