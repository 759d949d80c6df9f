package net

import (
	"fmt"
	"math/rand"
	"sync"
)

// Selector names accepted by NewSelector.
const (
	RandomSelection    = "random"
	FIFOSelection      = "fifo"
	LIFOSelection      = "lifo"
	EchoFirstSelection = "echo-first"
)

// Selections lists the names accepted by NewSelector.
var Selections = []string{RandomSelection, FIFOSelection, LIFOSelection, EchoFirstSelection}

// Selector decides which pending message is delivered next. Select is only
// called with a non-empty slice, in scheduling order, and returns an index into
// it.
type Selector interface {
	Select(pending []Message) int
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(pending []Message) int

// Select implements Selector.
func (f SelectorFunc) Select(pending []Message) int {
	return f(pending)
}

// NewSelector returns the Selector registered under name. seed is only used by
// the random selector.
func NewSelector(name string, seed int64) (Selector, error) {
	switch name {
	case RandomSelection, "":
		return NewRandomSelector(seed), nil
	case FIFOSelection:
		return FIFOSelector{}, nil
	case LIFOSelection:
		return LIFOSelector{}, nil
	case EchoFirstSelection:
		return EchoFirstSelector{}, nil
	default:
		return nil, fmt.Errorf("unknown selector %q", name)
	}
}

//+++++++++++++++++++++++++++++++++++++++
//RANDOM

// RandomSelector picks a pending message uniformly at random.
type RandomSelector struct {
	l   sync.Mutex
	rnd *rand.Rand
}

// NewRandomSelector returns a RandomSelector. The same seed yields the same
// sequence of choices.
func NewRandomSelector(seed int64) *RandomSelector {
	return &RandomSelector{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Select implements Selector.
func (s *RandomSelector) Select(pending []Message) int {
	s.l.Lock()
	defer s.l.Unlock()
	return s.rnd.Intn(len(pending))
}

//+++++++++++++++++++++++++++++++++++++++
//FIXED ORDERS

// FIFOSelector delivers messages in the order they were scheduled.
type FIFOSelector struct{}

// Select implements Selector.
func (FIFOSelector) Select(pending []Message) int {
	return 0
}

// LIFOSelector always delivers the most recently scheduled message.
type LIFOSelector struct{}

// Select implements Selector.
func (LIFOSelector) Select(pending []Message) int {
	return len(pending) - 1
}

// EchoFirstSelector delivers the oldest pending ECHO, and only falls back to
// ACKs when no ECHO is pending. Nodes therefore hear every ECHO addressed to
// them before any ACK.
type EchoFirstSelector struct{}

// Select implements Selector.
func (EchoFirstSelector) Select(pending []Message) int {
	for i, m := range pending {
		if m.Kind == Echo {
			return i
		}
	}
	return 0
}
