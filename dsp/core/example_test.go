package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-edit/dsp/core"
)

func ExampleSamplesToMillis() {
	fmt.Printf("%.3f ms\n", core.SamplesToMillis(-50, 44100))
	fmt.Println(core.MillisToSamples(10, 48000))

	// Output:
	// -1.134 ms
	// 480
}

func ExampleEnsureLen() {
	buf := make([]float64, 2, 4)
	buf[0], buf[1] = 1, 2
	buf = core.EnsureLen(buf, 4)
	fmt.Println(len(buf), cap(buf))

	core.Zero(buf[:2])
	fmt.Println(buf[:2])

	// Output:
	// 4 4
	// [0 0]
}
