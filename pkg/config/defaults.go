package config

// Frontend defaults. The Kotlin frontend outranks the Java one so that it
// claims the light elements it produced.
const (
	DefaultJavaEnabled    = true
	DefaultJavaPriority   = 0
	DefaultKotlinEnabled  = true
	DefaultKotlinPriority = 10
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Convert defaults.
const (
	DefaultConvertWorkers     = 4
	DefaultConvertFormat      = "json"
	DefaultConvertMaxFileSize = 1 << 20 // 1 MiB.
)

// DefaultConvertInclude lists the glob patterns expanded for directory inputs.
var DefaultConvertInclude = []string{"**/*.java", "**/*.kt", "**/*.kts"}

// Observability defaults.
const (
	DefaultOTLPEndpoint = ""
	DefaultOTLPInsecure = false
	DefaultSampleRatio  = 1.0
	DefaultMetricsFile  = ""
)
