package oversample_test

import (
	"fmt"

	"github.com/cwbudde/algo-melt/dsp/oversample"
)

func ExampleLanczos3Oversampler_Latency() {
	o, err := oversample.New(32, 4)
	if err != nil {
		panic(err)
	}

	for factor := 0; factor <= 4; factor++ {
		fmt.Printf("%2dx: %d samples\n", 1<<factor, o.Latency(factor))
	}
	// Output:
	//  1x: 0 samples
	//  2x: 8 samples
	//  4x: 12 samples
	//  8x: 14 samples
	// 16x: 15 samples
}

func ExampleLanczos3Oversampler_Process() {
	o, err := oversample.New(4, 1)
	if err != nil {
		panic(err)
	}

	// The transform sees the block at twice the rate.
	buf := []float64{0.5, 0.5, 0.5, 0.5}
	o.Process(buf, 1, func(upsampled []float64) {
		fmt.Println("upsampled samples:", len(upsampled))
	})
	// Output:
	// upsampled samples: 8
}
