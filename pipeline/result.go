package pipeline

import (
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"
)

// Result is the outcome of a successful Run.
type Result struct {
	// Extinction holds the total extinction in magnitudes per source, aligned
	// with the source catalog.
	Extinction []float64

	// Affected contains the indices of sources with non-zero extinction.
	Affected *roaring.Bitmap

	Stats Stats
}

// Stats summarizes a run.
type Stats struct {
	Workers int

	Lenses  int
	Sources int

	// Pairs counts lens/source pairs within the search radius.
	Pairs int

	// EmptyLenses counts lenses without any source in range.
	EmptyLenses int

	// DegenerateLenses counts lenses skipped because R200 <= r_min or their
	// amplitude is not a positive finite number.
	DegenerateLenses int

	// Masked counts pairs zeroed because the source is not behind the lens.
	Masked int

	// NonFinite counts pairs zeroed because the raw profile value was NaN or
	// infinite.
	NonFinite int

	// AffectedSources is the cardinality of Result.Affected.
	AffectedSources int
}

func (s *Stats) add(o Stats) {
	s.Pairs += o.Pairs
	s.EmptyLenses += o.EmptyLenses
	s.DegenerateLenses += o.DegenerateLenses
	s.Masked += o.Masked
	s.NonFinite += o.NonFinite
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("workers", s.Workers),
		slog.Int("lenses", s.Lenses),
		slog.Int("sources", s.Sources),
		slog.Int("pairs", s.Pairs),
		slog.Int("empty_lenses", s.EmptyLenses),
		slog.Int("degenerate_lenses", s.DegenerateLenses),
		slog.Int("masked", s.Masked),
		slog.Int("non_finite", s.NonFinite),
		slog.Int("affected_sources", s.AffectedSources),
	)
}
