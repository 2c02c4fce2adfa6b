// Package provider holds the outcome vocabulary shared by the speech,
// translation and generation wrappers.
package provider

// Status records how a wrapper produced its value. Anything other than OK
// means the value is a deterministic fallback.
type Status int

const (
	// OK means the provider answered with a usable value.
	OK Status = iota
	// Empty means the provider answered but had nothing usable (no speech recognized, empty completion).
	Empty
	// Unavailable means no provider is configured.
	Unavailable
	// Failed means the provider call returned an error.
	Failed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Empty:
		return "empty"
	case Unavailable:
		return "unavailable"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Degraded reports whether the value came from a fallback.
func (s Status) Degraded() bool {
	return s != OK
}
