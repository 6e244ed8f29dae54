// Package spitfire stores and exports tabulated chemistry libraries.
//
// A library (package library) holds property arrays sampled on a grid of
// named dimensions, for example a flamelet table of temperature and species
// mass fractions over mixture fraction and dissipation rate. This package
// adds a Repository that persists libraries to any blobstore.BlobStore in the
// versioned binary format of package persistence and exports them to text
// directories with package textdump.
//
// # Quick Start
//
//	z, _ := library.NewDimension("mixture_fraction", []float64{0, 0.5, 1})
//	chi, _ := library.NewDimension("dissipation_rate", []float64{1e-2, 1, 1e2})
//	lib, _ := library.New(z, chi)
//	_ = lib.SetPropertyData("temperature", temperatures)
//
//	repo := spitfire.NewRepository(blobstore.NewLocalStore("./tables"),
//	    spitfire.WithCompression(persistence.CompressionZSTD),
//	)
//	_ = repo.Save(ctx, "h2-air", lib)
//	lib, _ = repo.Load(ctx, "h2-air")
//
// Cloud storage:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("flamelets/"))
//	repo := spitfire.NewRepository(store)
//
// # Observability
//
// Repositories log through a *Logger (log/slog) and report to a
// MetricsCollector. Both default to no-ops.
package spitfire
