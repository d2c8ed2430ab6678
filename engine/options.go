package engine

// ============================================================================
// ENGINE OPTIONS: Functional options for the Coordinator and histograms
// ============================================================================

// DefaultCurvePoints is the number of samples on the density curve.
const DefaultCurvePoints = 1000

// DefaultParallelThreshold is the number of kernel evaluations
// (values x curve points) above which the curve is evaluated in parallel.
const DefaultParallelThreshold = 1 << 20

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger            *Logger
	CurvePoints       int
	Curve             bool
	ParallelThreshold int
}

// WithLogger sets the structured logger. nil selects NoopLogger.
func WithLogger(l *Logger) Option {
	return func(c *config) {
		c.Logger = l
	}
}

// WithCurvePoints sets how many points the density curve is sampled at.
// Values below 2 keep the default.
func WithCurvePoints(n int) Option {
	return func(c *config) {
		if n >= 2 {
			c.CurvePoints = n
		}
	}
}

// WithoutCurve disables the density curve; histograms carry bins only.
func WithoutCurve() Option {
	return func(c *config) {
		c.Curve = false
	}
}

// WithParallelThreshold sets the kernel evaluation count above which the
// curve is computed concurrently. Zero or less disables parallelism.
func WithParallelThreshold(n int) Option {
	return func(c *config) {
		c.ParallelThreshold = n
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		CurvePoints:       DefaultCurvePoints,
		Curve:             true,
		ParallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
	return cfg
}
