package array

// Metric keys emitted through the configured go-metrics sink.
var (
	MetricAllocCount    = []string{"hypre", "array", "alloc", "count"}
	MetricAllocElements = []string{"hypre", "array", "alloc", "elements"}
	MetricFreeCount     = []string{"hypre", "array", "free", "count"}
	MetricCopyCount     = []string{"hypre", "array", "copy", "count"}
	MetricCopyElements  = []string{"hypre", "array", "copy", "elements"}
)
