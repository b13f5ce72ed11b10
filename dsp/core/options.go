package core

// ProcessorConfig defines the timing and execution settings shared by the
// projection and estimation stages.
type ProcessorConfig struct {
	// SampleInterval is the time between frames in seconds.
	SampleInterval float64
	// Workers bounds the goroutines used for per-frame projection.
	// Values <= 1 project serially.
	Workers int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 20 frames per second, projected serially.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleInterval: 1.0 / 20,
		Workers:        1,
	}
}

// WithSampleInterval sets the time between frames in seconds.
//
// The value is stored as given; consumers validate it with
// [ValidateSampleInterval] so that a bad interval is reported, not ignored.
func WithSampleInterval(dt float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.SampleInterval = dt
	}
}

// WithFrameRate sets the sample interval from a frame rate in frames/s.
func WithFrameRate(fps float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.SampleInterval = 1 / fps
	}
}

// WithWorkers sets the number of projection workers.
func WithWorkers(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Workers = n
	}
}

// FrameRate returns the frame rate implied by the sample interval.
func (c ProcessorConfig) FrameRate() float64 {
	return 1 / c.SampleInterval
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
