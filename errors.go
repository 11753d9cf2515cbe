package cgmdust

import (
	"errors"
	"fmt"

	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/dust"
	"github.com/hupe1980/cgmdust/internal/resource"
	"github.com/hupe1980/cgmdust/pipeline"
)

var (
	// ErrInvalidCatalog is returned when a lens or source catalog is malformed.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrInvalidProfile is returned for unusable extinction profile parameters.
	ErrInvalidProfile = errors.New("invalid extinction profile")

	// ErrInvalidConfig is returned for an unusable estimator configuration,
	// such as a missing or invalid cosmology.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMemoryLimitExceeded is returned when a single accumulator does not fit
	// into the configured memory limit.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
)

// ErrInvalidColumn identifies the catalog column that failed validation.
//
// The original underlying error can be accessed via errors.Unwrap; it matches
// ErrInvalidCatalog.
type ErrInvalidColumn struct {
	Catalog string
	Column  string
	cause   error
}

func (e *ErrInvalidColumn) Error() string {
	return fmt.Sprintf("invalid %s catalog column %q: %v", e.Catalog, e.Column, e.cause)
}

func (e *ErrInvalidColumn) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Column-level catalog errors keep their location.
	var mc *catalog.MissingColumnError
	if errors.As(err, &mc) {
		return &ErrInvalidColumn{Catalog: mc.Catalog, Column: mc.Column, cause: fmt.Errorf("%w: %w", ErrInvalidCatalog, err)}
	}
	var lm *catalog.LengthMismatchError
	if errors.As(err, &lm) {
		return &ErrInvalidColumn{Catalog: lm.Catalog, Column: lm.Column, cause: fmt.Errorf("%w: %w", ErrInvalidCatalog, err)}
	}
	var iv *catalog.InvalidValueError
	if errors.As(err, &iv) {
		return &ErrInvalidColumn{Catalog: iv.Catalog, Column: iv.Column, cause: fmt.Errorf("%w: %w", ErrInvalidCatalog, err)}
	}
	if errors.Is(err, catalog.ErrInvalidCatalog) {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	if errors.Is(err, dust.ErrInvalidSlope) ||
		errors.Is(err, dust.ErrInvalidRadius) ||
		errors.Is(err, dust.ErrInvalidCoefficient) {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if errors.Is(err, cosmology.ErrInvalidParameters) || errors.Is(err, pipeline.ErrNilProvider) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}

	return err
}
