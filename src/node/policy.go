package node

import "fmt"

// LateEcho decides what a node does with an ECHO that arrives after it has
// joined the wave.
type LateEcho uint32

const (
	// Absorb counts a late ECHO as the reply of its sender.
	Absorb LateEcho = iota
	// Ignore drops a late ECHO without any state change.
	Ignore
)

// String ...
func (l LateEcho) String() string {
	switch l {
	case Absorb:
		return "absorb"
	case Ignore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseLateEcho parses a policy name. An empty string is Absorb.
func ParseLateEcho(s string) (LateEcho, error) {
	switch s {
	case "", "absorb":
		return Absorb, nil
	case "ignore":
		return Ignore, nil
	default:
		return Absorb, fmt.Errorf("unknown late-echo policy %q", s)
	}
}
