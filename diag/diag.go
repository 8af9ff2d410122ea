// Package diag defines the diagnostic record shape the compile-and-execute
// core emits to its external collaborator. The core never formats or
// colors a diagnostic; it only produces records and hands them to a Sink.
// Rendering lives in cmd/marrow.
package diag

// Kind classifies a diagnostic record. Error and Warning bypass any
// verbosity gate the sink applies; the rest are shown only when the
// collaborator opts into verbose output.
type Kind int

const (
	Error Kind = iota
	Warning
	Info
	Success
	Note
	Debug
	Banner
)

// BypassesVerbosity reports whether records of this kind should always be
// surfaced regardless of the collaborator's verbosity setting.
func (k Kind) BypassesVerbosity() bool {
	return k == Error || k == Warning
}

func (k Kind) String() string {
	switch k {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	case Success:
		return "SUCCESS"
	case Note:
		return "NOTE"
	case Debug:
		return "DEBUG"
	case Banner:
		return "BANNER"
	default:
		return "UNKNOWN"
	}
}

// Record is one structured diagnostic: a kind, a message, and an optional
// source path for file-scoped errors.
type Record struct {
	Kind       Kind
	Message    string
	SourcePath string
}

// Sink receives diagnostic records as the core produces them. It never
// blocks: the core treats sinks as record-shaped, not stream-shaped.
type Sink interface {
	Emit(Record)
}

// Discard is a Sink that drops every record; useful in tests that only
// care about the pipeline's return values.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) Emit(Record) {}

// Collector is a Sink that appends every record it receives, for tests
// that need to assert on the diagnostics a stage produced.
type Collector struct {
	Records []Record
}

func (c *Collector) Emit(r Record) {
	c.Records = append(c.Records, r)
}

// Has reports whether the collector holds a record of the given kind.
func (c *Collector) Has(kind Kind) bool {
	for _, r := range c.Records {
		if r.Kind == kind {
			return true
		}
	}

	return false
}
