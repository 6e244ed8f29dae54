package spitfire_test

import (
	"context"
	"fmt"
	"log"

	"github.com/wandadars/spitfire"
	"github.com/wandadars/spitfire/blobstore"
	"github.com/wandadars/spitfire/library"
	"github.com/wandadars/spitfire/ndarray"
	"github.com/wandadars/spitfire/persistence"
)

// Example_repository saves a library and loads it back.
func Example_repository() {
	ctx := context.Background()

	z, _ := library.NewDimension("mixture_fraction", []float64{0, 0.5, 1})
	chi, _ := library.NewDimension("dissipation_rate", []float64{0.1, 10})
	lib, err := library.New(z, chi)
	if err != nil {
		log.Fatal(err)
	}
	if err := lib.SetPropertyData("temperature", []float64{300, 300, 2000, 1500, 300, 300}); err != nil {
		log.Fatal(err)
	}

	repo := spitfire.NewRepository(blobstore.NewMemoryStore(),
		spitfire.WithCompression(persistence.CompressionZSTD),
	)
	if err := repo.Save(ctx, "h2-air", lib); err != nil {
		log.Fatal(err)
	}

	loaded, err := repo.Load(ctx, "h2-air")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(loaded.Shape(), loaded.Properties())
	// Output: [3 2] [temperature]
}

// Example_slice restricts a library to a sub-grid.
func Example_slice() {
	x, _ := library.NewDimension("x", []float64{0, 1, 2, 3})
	y, _ := library.NewDimension("y", []float64{10, 20, 30})
	lib, _ := library.New(x, y)

	sub, err := lib.Slice(ndarray.Span(1, 3), ndarray.Index(-1))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(sub.Shape())

	res, _ := library.Squeeze(sub)
	fmt.Println(res.Library.DimNames())
	// Output:
	// [2 1]
	// [x]
}
