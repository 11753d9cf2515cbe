package geometry

import (
	"fmt"
	"math"
)

// MaxSmallAngle is the largest angle, in radians, for which the flat-sky
// separation is accepted (1 degree).
const MaxSmallAngle = math.Pi / 180

// Separation returns the small-angle separation sqrt(Δra² + Δdec²) between two
// positions, in the same unit as the inputs.
func Separation(ra1, dec1, ra2, dec2 float64) float64 {
	dra := ra2 - ra1
	ddec := dec2 - dec1
	return math.Sqrt(dra*dra + ddec*ddec)
}

// Unit is an angular unit shared by all positions and radii of a catalog.
type Unit int

const (
	Degree Unit = iota
	Arcminute
	Radian
)

func (u Unit) String() string {
	switch u {
	case Degree:
		return "deg"
	case Arcminute:
		return "arcmin"
	case Radian:
		return "rad"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseUnit parses the String form of a unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "deg", "degree", "degrees":
		return Degree, nil
	case "arcmin", "arcminute", "arcminutes":
		return Arcminute, nil
	case "rad", "radian", "radians":
		return Radian, nil
	default:
		return 0, fmt.Errorf("geometry: unknown angular unit %q", s)
	}
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u >= Degree && u <= Radian
}

// radiansPer returns the size of one u in radians.
func (u Unit) radiansPer() float64 {
	switch u {
	case Arcminute:
		return math.Pi / (180 * 60)
	case Radian:
		return 1
	default:
		return math.Pi / 180
	}
}

// ToRadians converts v from u to radians.
func (u Unit) ToRadians(v float64) float64 {
	if u == Radian {
		return v
	}
	return v * u.radiansPer()
}

// FromRadians converts v from radians to u.
func (u Unit) FromRadians(v float64) float64 {
	if u == Radian {
		return v
	}
	return v / u.radiansPer()
}
