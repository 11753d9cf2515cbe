package catalog

import (
	"slices"
)

// Column names used by the lens and source catalogs.
const (
	ColRA         = "ra"
	ColDec        = "dec"
	ColRedshift   = "redshift"
	ColLogMStar   = "log_m_star"
	ColR200       = "R200_kpc"
	ColThetaMax   = "theta_max"
	ColExtinction = "extinction"
)

// Table is an ordered set of named float64 columns.
// It is not safe for concurrent mutation.
type Table struct {
	names []string
	cols  map[string][]float64
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{cols: make(map[string][]float64)}
}

// Set adds or replaces a column. The slice is stored, not copied.
func (t *Table) Set(name string, values []float64) {
	if _, ok := t.cols[name]; !ok {
		t.names = append(t.names, name)
	}
	t.cols[name] = values
}

// Column returns the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	v, ok := t.cols[name]
	return v, ok
}

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Len returns the length of the first column, or 0 for an empty table.
func (t *Table) Len() int {
	if len(t.names) == 0 {
		return 0
	}
	return len(t.cols[t.names[0]])
}

// Validate checks that all columns have the same length.
func (t *Table) Validate(catalog string) error {
	n := t.Len()
	for _, name := range t.names {
		if got := len(t.cols[name]); got != n {
			return &LengthMismatchError{Catalog: catalog, Column: name, Expected: n, Actual: got}
		}
	}
	return nil
}

// require returns the named columns or a MissingColumnError for the first
// absent one.
func (t *Table) require(catalog string, names ...string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, name := range names {
		col, ok := t.cols[name]
		if !ok {
			return nil, &MissingColumnError{Catalog: catalog, Column: name}
		}
		out[i] = col
	}
	return out, nil
}
