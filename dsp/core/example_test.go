package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-motion/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithFrameRate(20),
		core.WithWorkers(4),
	)

	fmt.Printf("dt=%.2f workers=%d\n", cfg.SampleInterval, cfg.Workers)

	// Output:
	// dt=0.05 workers=4
}
