package catalog

import (
	"math"

	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/geometry"
)

const (
	lensCatalog   = "lens"
	sourceCatalog = "source"
)

// Lenses is a validated-on-demand lens catalog.
type Lenses struct {
	// Unit is the angular unit of RA, Dec and ThetaMax.
	Unit geometry.Unit

	RA       []float64
	Dec      []float64
	Redshift []float64
	LogMStar []float64
	R200Kpc  []float64
	// ThetaMax bounds the angular search radius of each lens.
	ThetaMax []float64
}

// LensesFromTable extracts the required lens columns from t and validates
// them. Column slices are shared with t.
func LensesFromTable(t *Table, unit geometry.Unit) (*Lenses, error) {
	cols, err := t.require(lensCatalog, ColRA, ColDec, ColRedshift, ColLogMStar, ColR200, ColThetaMax)
	if err != nil {
		return nil, err
	}
	l := &Lenses{
		Unit:     unit,
		RA:       cols[0],
		Dec:      cols[1],
		Redshift: cols[2],
		LogMStar: cols[3],
		R200Kpc:  cols[4],
		ThetaMax: cols[5],
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Len returns the number of lenses.
func (l *Lenses) Len() int { return len(l.RA) }

// Validate checks column lengths and value ranges:
// finite positions and stellar masses, redshift >= 0, R200 > 0 and
// 0 <= theta_max <= geometry.MaxSmallAngle.
func (l *Lenses) Validate() error {
	if !l.Unit.Valid() {
		return &InvalidUnitError{Catalog: lensCatalog, Unit: int(l.Unit)}
	}
	n := len(l.RA)
	for _, c := range []struct {
		name string
		col  []float64
	}{
		{ColDec, l.Dec}, {ColRedshift, l.Redshift}, {ColLogMStar, l.LogMStar},
		{ColR200, l.R200Kpc}, {ColThetaMax, l.ThetaMax},
	} {
		if len(c.col) != n {
			return &LengthMismatchError{Catalog: lensCatalog, Column: c.name, Expected: n, Actual: len(c.col)}
		}
	}

	if err := validatePositions(lensCatalog, l.RA, l.Dec); err != nil {
		return err
	}
	if err := validateRedshifts(lensCatalog, l.Redshift); err != nil {
		return err
	}
	for i, v := range l.LogMStar {
		if !isFinite(v) {
			return &InvalidValueError{Catalog: lensCatalog, Column: ColLogMStar, Row: i, Value: v, Reason: "not finite"}
		}
	}
	for i, v := range l.R200Kpc {
		if !isFinite(v) || v <= 0 {
			return &InvalidValueError{Catalog: lensCatalog, Column: ColR200, Row: i, Value: v, Reason: "must be positive and finite"}
		}
	}
	for i, v := range l.ThetaMax {
		if !isFinite(v) || v < 0 {
			return &InvalidValueError{Catalog: lensCatalog, Column: ColThetaMax, Row: i, Value: v, Reason: "must be non-negative and finite"}
		}
		if l.Unit.ToRadians(v) > geometry.MaxSmallAngle {
			return &InvalidValueError{Catalog: lensCatalog, Column: ColThetaMax, Row: i, Value: v, Reason: "exceeds the small-angle limit of 1 degree"}
		}
	}
	return nil
}

// Table returns the catalog as a table sharing the column slices.
func (l *Lenses) Table() *Table {
	t := NewTable()
	t.Set(ColRA, l.RA)
	t.Set(ColDec, l.Dec)
	t.Set(ColRedshift, l.Redshift)
	t.Set(ColLogMStar, l.LogMStar)
	t.Set(ColR200, l.R200Kpc)
	t.Set(ColThetaMax, l.ThetaMax)
	return t
}

// DeriveThetaMax returns the angular radius of each halo, R200 / D_A(z),
// expressed in unit. dst is reused if large enough.
func DeriveThetaMax(dst, r200Kpc, redshift []float64, dist cosmology.Provider, unit geometry.Unit) []float64 {
	n := min(len(r200Kpc), len(redshift))
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range n {
		dst[i] = unit.FromRadians(r200Kpc[i] / dist.AngularDiameterDistance(redshift[i]))
	}
	return dst
}

// thetaMaxTolerance absorbs rounding when theta_max was itself derived with
// DeriveThetaMax under a slightly different cosmology implementation.
const thetaMaxTolerance = 1e-9

// CheckThetaMax verifies that every lens's theta_max covers its halo's
// angular radius under dist. It returns a *ThetaMaxError naming the first
// offender.
func (l *Lenses) CheckThetaMax(dist cosmology.Provider) error {
	required := DeriveThetaMax(nil, l.R200Kpc, l.Redshift, dist, l.Unit)

	var first *ThetaMaxError
	for i, req := range required {
		if l.ThetaMax[i] >= req*(1-thetaMaxTolerance) {
			continue
		}
		if first == nil {
			first = &ThetaMaxError{Row: i, ThetaMax: l.ThetaMax[i], Required: req}
		}
		first.Violations++
	}
	if first != nil {
		return first
	}
	return nil
}

func validatePositions(catalog string, ra, dec []float64) error {
	for i, v := range ra {
		if !isFinite(v) {
			return &InvalidValueError{Catalog: catalog, Column: ColRA, Row: i, Value: v, Reason: "not finite"}
		}
	}
	for i, v := range dec {
		if !isFinite(v) {
			return &InvalidValueError{Catalog: catalog, Column: ColDec, Row: i, Value: v, Reason: "not finite"}
		}
	}
	return nil
}

func validateRedshifts(catalog string, z []float64) error {
	for i, v := range z {
		if !isFinite(v) || v < 0 {
			return &InvalidValueError{Catalog: catalog, Column: ColRedshift, Row: i, Value: v, Reason: "must be non-negative and finite"}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
