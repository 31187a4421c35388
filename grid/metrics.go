package grid

// Metric keys emitted through the configured go-metrics sink.
// MetricCallCount carries an "op" label.
var (
	MetricCallCount     = []string{"hypre", "grid", "call", "count"}
	MetricAssembleCount = []string{"hypre", "grid", "assemble", "count"}
	MetricDestroyCount  = []string{"hypre", "grid", "destroy", "count"}
)
