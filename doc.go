// Package cgmdust estimates the extinction that dust in the circumgalactic
// medium (CGM) of foreground galaxies imposes on background sources.
//
// Each foreground galaxy (lens) carries a dust halo whose mass follows from its
// stellar mass. The halo's V-band extinction falls off as a power law of the
// projected impact parameter, normalized at 0.91 R200 (Ménard et al. 2010).
// Every source behind a lens and within the lens's angular search radius
// receives that lens's contribution; contributions of all lenses are summed.
//
// # Quick Start
//
//	ctx := context.Background()
//	est, err := cgmdust.New(
//	    cgmdust.WithCosmology(cosmology.Planck18, 0),
//	    cgmdust.WithWorkers(8),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	lenses, _ := catalog.LensesFromTable(lensTable, geometry.Degree)
//	sources, _ := catalog.SourcesFromTable(sourceTable, geometry.Degree)
//
//	res, err := est.Estimate(ctx, lenses, sources)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(res.Stats.Pairs, res.Affected.GetCardinality())
//
// res.Extinction is aligned with the source order and given in magnitudes;
// catalog.ApplyExtinction adds it to magnitude columns.
//
// # Persistence
//
// Results can be stored in any blobstore.Store (local disk, memory, MinIO,
// S3) with persistence.Save and read back with persistence.Load.
//
// # Errors
//
// Validation failures match ErrInvalidCatalog, ErrInvalidProfile or
// ErrInvalidConfig via errors.Is. Column-level catalog failures are also
// reported as *ErrInvalidColumn.
package cgmdust
