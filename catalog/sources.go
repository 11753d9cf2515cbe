package catalog

import "github.com/hupe1980/cgmdust/geometry"

// Sources is a background source catalog.
type Sources struct {
	// Unit is the angular unit of RA and Dec.
	Unit geometry.Unit

	RA       []float64
	Dec      []float64
	Redshift []float64
}

// SourcesFromTable extracts the required source columns from t and validates
// them. Column slices are shared with t.
func SourcesFromTable(t *Table, unit geometry.Unit) (*Sources, error) {
	cols, err := t.require(sourceCatalog, ColRA, ColDec, ColRedshift)
	if err != nil {
		return nil, err
	}
	s := &Sources{Unit: unit, RA: cols[0], Dec: cols[1], Redshift: cols[2]}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of sources.
func (s *Sources) Len() int { return len(s.RA) }

// Validate checks column lengths, finite positions and redshift >= 0.
func (s *Sources) Validate() error {
	if !s.Unit.Valid() {
		return &InvalidUnitError{Catalog: sourceCatalog, Unit: int(s.Unit)}
	}
	n := len(s.RA)
	if len(s.Dec) != n {
		return &LengthMismatchError{Catalog: sourceCatalog, Column: ColDec, Expected: n, Actual: len(s.Dec)}
	}
	if len(s.Redshift) != n {
		return &LengthMismatchError{Catalog: sourceCatalog, Column: ColRedshift, Expected: n, Actual: len(s.Redshift)}
	}
	if err := validatePositions(sourceCatalog, s.RA, s.Dec); err != nil {
		return err
	}
	return validateRedshifts(sourceCatalog, s.Redshift)
}

// Table returns the catalog as a table sharing the column slices.
func (s *Sources) Table() *Table {
	t := NewTable()
	t.Set(ColRA, s.RA)
	t.Set(ColDec, s.Dec)
	t.Set(ColRedshift, s.Redshift)
	return t
}
