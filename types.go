package vkfft

import "github.com/cwbudde/vkfft-go/sys"

// Direction selects the forward or inverse transform.
type Direction = sys.Direction

const (
	Forward = sys.Forward
	Inverse = sys.Inverse
)

// Precision selects the numeric precision of a plan.
type Precision uint8

const (
	// Single is 32-bit floating point, the default.
	Single Precision = iota
	// Double is 64-bit floating point.
	Double
	// Half computes and stores in 16-bit floating point.
	Half
	// HalfMemory stores in 16-bit and computes in 32-bit. Input and output
	// must be formatted.
	HalfMemory
)

func (p Precision) String() string {
	switch p {
	case Single:
		return "single"
	case Double:
		return "double"
	case Half:
		return "half"
	case HalfMemory:
		return "half-memory"
	default:
		return "precision(?)"
	}
}

// Bool returns a pointer to b, for the optional flags of Config.
func Bool(b bool) *bool {
	return &b
}
