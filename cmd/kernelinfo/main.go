// Command kernelinfo prints properties of the band-limiting low-pass
// kernel used by the redshift pipeline.
//
// Usage:
//
//	kernelinfo [flags]
//
// Examples:
//
//	kernelinfo
//	kernelinfo -fc 0.1 -b 0.05
//	kernelinfo -fc 0.05 -b 0.49 -taps
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-redshift/lowpass"
)

func main() {
	fc := flag.Float64("fc", lowpass.DefaultCutoff, "cutoff as a fraction of the sampling rate, in (0, 0.5)")
	b := flag.Float64("b", lowpass.DefaultTransition, "transition band as a fraction of the sampling rate, in (0, 0.5)")
	taps := flag.Bool("taps", false, "print the kernel coefficients")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kernelinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints design properties of the Blackman-windowed-sinc low-pass kernel.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	k, err := lowpass.Design(*fc, *b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Cutoff\tTransition\tTaps\tDC [dB]\tfc/2 [dB]\tfc [dB]\t2fc [dB]\t0.45 [dB]\n")
	fmt.Fprintf(tw, "%.4f\t%.4f\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
		*fc, *b, k.Len(),
		k.MagnitudeDB(0),
		k.MagnitudeDB(*fc/2),
		k.MagnitudeDB(*fc),
		k.MagnitudeDB(2*(*fc)),
		k.MagnitudeDB(0.45),
	)

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *taps {
		fmt.Println()
		for i, tap := range k.Taps() {
			fmt.Printf("h[%d] = %+.12f\n", i, tap)
		}
	}
}
