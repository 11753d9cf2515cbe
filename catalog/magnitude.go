package catalog

// ApplyExtinction adds ext to each named magnitude column of t in place.
// ext must be aligned with the table rows, as returned by the pipeline for a
// source catalog.
func ApplyExtinction(t *Table, ext []float64, columns ...string) error {
	cols, err := t.require(sourceCatalog, columns...)
	if err != nil {
		return err
	}
	for i, col := range cols {
		if len(col) != len(ext) {
			return &LengthMismatchError{Catalog: sourceCatalog, Column: columns[i], Expected: len(ext), Actual: len(col)}
		}
	}
	for _, col := range cols {
		for j, a := range ext {
			col[j] += a
		}
	}
	return nil
}

// ExtinctedMagnitudes returns mag + ext as a new slice.
func ExtinctedMagnitudes(mag, ext []float64) ([]float64, error) {
	if len(mag) != len(ext) {
		return nil, &LengthMismatchError{Catalog: sourceCatalog, Column: "magnitude", Expected: len(ext), Actual: len(mag)}
	}
	out := make([]float64, len(mag))
	for i := range mag {
		out[i] = mag[i] + ext[i]
	}
	return out, nil
}
