package spectral_test

import (
	"fmt"

	"github.com/zone42/glyphs/spectral"
)

func ExampleDerive() {
	s := spectral.Derive(12345, 100, 0)

	fmt.Printf("%.4f\n", s.Eigenvalue)
	fmt.Println(s.Fourier)
	fmt.Println(s.Symmetry)
	// Output:
	// 0.4525
	// [345 690 35 380 725 70 415 760]
	// DIII
}
