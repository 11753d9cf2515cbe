package pipeline

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/cgmdust/dust"
	"github.com/hupe1980/cgmdust/internal/resource"
)

// Options configures Run.
type Options struct {
	// Profile holds the radial extinction profile parameters.
	Profile dust.Profile

	// Workers is the number of lens chunks processed concurrently.
	// Values <= 0 select runtime.GOMAXPROCS(0).
	Workers int

	// Resources, when set, bounds accumulator memory and worker goroutines
	// across runs sharing the controller.
	Resources *resource.Controller

	// CheckThetaMax rejects lens catalogs whose search radius is smaller than
	// the halo's angular radius.
	CheckThetaMax bool

	Logger *slog.Logger
}

// DefaultOptions returns the default Run options.
func DefaultOptions() Options {
	return Options{
		Profile: dust.DefaultProfile,
		Workers: runtime.GOMAXPROCS(0),
		Logger:  slog.New(slog.DiscardHandler),
	}
}

func (o *Options) normalize() {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}
