package lowpass_test

import (
	"fmt"

	"github.com/cwbudde/algo-redshift/lowpass"
)

func ExampleDesign() {
	// Default operating point of the redshift pipeline.
	k, _ := lowpass.Design(lowpass.DefaultCutoff, lowpass.DefaultTransition)

	var sum float64
	for _, tap := range k.Taps() {
		sum += tap
	}

	fmt.Printf("taps: %d\n", k.Len())
	fmt.Printf("unity DC gain: %.6f\n", sum)

	// Output:
	// taps: 9
	// unity DC gain: 1.000000
}

func ExampleDesign_narrowTransition() {
	// A narrower transition band needs a longer kernel.
	k, _ := lowpass.Design(0.05, 0.02)

	fmt.Printf("taps: %d\n", k.Len())

	// Output:
	// taps: 201
}
