package cgmdust_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/cgmdust"
	"github.com/hupe1980/cgmdust/catalog"
	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/geometry"
)

// Example demonstrates estimating the extinction of three sources behind a
// single foreground galaxy.
func Example() {
	est, err := cgmdust.New(cgmdust.WithCosmology(cosmology.Planck18, 0))
	if err != nil {
		log.Fatal(err)
	}

	lenses := &catalog.Lenses{
		Unit:     geometry.Degree,
		RA:       []float64{150},
		Dec:      []float64{2},
		Redshift: []float64{0.3},
		LogMStar: []float64{11},
		R200Kpc:  []float64{200},
		ThetaMax: []float64{0.05},
	}
	sources := &catalog.Sources{
		Unit:     geometry.Degree,
		RA:       []float64{150.01, 150.01, 150.2},
		Dec:      []float64{2, 2, 2},
		Redshift: []float64{0.8, 0.1, 0.8},
	}

	res, err := est.Estimate(context.Background(), lenses, sources)
	if err != nil {
		log.Fatal(err)
	}

	for i, a := range res.Extinction {
		fmt.Printf("source %d extinct: %t\n", i, a > 0)
	}
	fmt.Println("pairs:", res.Stats.Pairs)
	// Output:
	// source 0 extinct: true
	// source 1 extinct: false
	// source 2 extinct: false
	// pairs: 2
}

// ExampleWithAlpha shows how to use a steeper profile.
func ExampleWithAlpha() {
	est, err := cgmdust.New(cgmdust.WithAlpha(-1.0))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(est.Profile().Alpha)
	// Output: -1
}
