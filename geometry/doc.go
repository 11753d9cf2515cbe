// Package geometry provides sky-plane geometry for lens/source cross-matching:
// small-angle separations, angular units and a 2D k-d tree for radius queries.
//
// All positions are treated as points in a flat (RA, Dec) plane. This is only
// valid for separations of a few arcminutes up to MaxSmallAngle: no cos(Dec)
// factor is applied and RA does not wrap at 0/360 degrees. Callers working at
// larger scales need a great-circle metric instead.
package geometry
