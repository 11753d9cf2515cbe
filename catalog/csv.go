package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses a comma-separated catalog whose first row names the
// columns. When columns is non-empty only those columns are kept; each must
// be present in the header.
func ReadCSV(r io.Reader, columns ...string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty csv input", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate csv column %q", ErrInvalidCatalog, name)
		}
		index[name] = i
	}

	if len(columns) == 0 {
		columns = make([]string, len(header))
		for i, name := range header {
			columns[i] = strings.TrimSpace(name)
		}
	}
	pos := make([]int, len(columns))
	for i, name := range columns {
		p, ok := index[name]
		if !ok {
			return nil, &MissingColumnError{Catalog: "csv", Column: name}
		}
		pos[i] = p
	}

	data := make([][]float64, len(columns))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		for i, p := range pos {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[p]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: csv line %d column %q: %v", ErrInvalidCatalog, line, columns[i], err)
			}
			data[i] = append(data[i], v)
		}
	}

	t := NewTable()
	for i, name := range columns {
		if data[i] == nil {
			data[i] = []float64{}
		}
		t.Set(name, data[i])
	}
	return t, nil
}

// WriteCSV writes t with a header row. Values use the shortest
// representation that round-trips.
func WriteCSV(w io.Writer, t *Table) error {
	if err := t.Validate("csv"); err != nil {
		return err
	}
	names := t.Names()
	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	cols := make([][]float64, len(names))
	for i, name := range names {
		cols[i], _ = t.Column(name)
	}
	rec := make([]string, len(names))
	for row := range t.Len() {
		for i, col := range cols {
			rec[i] = strconv.FormatFloat(col[row], 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", row, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
