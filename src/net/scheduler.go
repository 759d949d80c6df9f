package net

import (
	"fmt"
	"sync"

	"github.com/mosaicnetworks/echo/src/common"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/sirupsen/logrus"
)

// Receiver is the handler a Scheduler delivers messages to.
type Receiver interface {
	Receive(kind Kind, sender graph.NodeID) error
}

// Scheduler holds the pending messages of a simulation and delivers them one at
// a time. It is safe for concurrent use; the lock is released before a
// receiver runs so that handlers may schedule new messages.
type Scheduler struct {
	sync.Mutex

	pending   []Message
	receivers map[graph.NodeID]Receiver
	selector  Selector
	recorder  trace.Recorder

	scheduled int
	delivered int

	logger *logrus.Entry
}

// NewScheduler creates a Scheduler. A nil recorder drops trace events.
func NewScheduler(selector Selector, recorder trace.Recorder, logger *logrus.Entry) *Scheduler {
	if recorder == nil {
		recorder = trace.Nop
	}

	return &Scheduler{
		pending:   []Message{},
		receivers: make(map[graph.NodeID]Receiver),
		selector:  selector,
		recorder:  recorder,
		logger:    logger,
	}
}

// Connect registers the receiver of a node. Messages may only be exchanged
// between connected nodes.
func (s *Scheduler) Connect(id graph.NodeID, r Receiver) {
	s.Lock()
	defer s.Unlock()
	s.receivers[id] = r
}

// Schedule adds a message to the pending set. It becomes eligible for delivery
// at any later step.
func (s *Scheduler) Schedule(m Message) error {
	s.Lock()

	_, senderOK := s.receivers[m.Sender]
	_, receiverOK := s.receivers[m.Receiver]
	if !senderOK || !receiverOK {
		s.Unlock()
		return common.NewProtocolErr(string(m.Receiver), common.UnknownNode, string(m.Sender))
	}

	s.pending = append(s.pending, m)
	s.scheduled++
	s.Unlock()

	s.logger.WithFields(logrus.Fields{
		"kind":     m.Kind,
		"sender":   m.Sender,
		"receiver": m.Receiver,
	}).Debug("Schedule")

	return s.recorder.Record(trace.NewMessageEvent(trace.Scheduled, m.Kind.String(), m.Sender, m.Receiver))
}

// DeliverOne removes one pending message, chosen by the Selector, and hands it
// to its receiver. It returns false, and does nothing, if no message is
// pending. The receiver's error, if any, is returned as is.
func (s *Scheduler) DeliverOne() (bool, error) {
	s.Lock()

	if len(s.pending) == 0 {
		s.Unlock()
		return false, nil
	}

	i := s.selector.Select(s.pending)
	if i < 0 || i >= len(s.pending) {
		s.Unlock()
		return false, fmt.Errorf("selector returned index %d for %d pending messages", i, len(s.pending))
	}

	m := s.pending[i]
	s.pending = append(s.pending[:i], s.pending[i+1:]...)
	s.delivered++
	receiver := s.receivers[m.Receiver]

	s.Unlock()

	s.logger.WithFields(logrus.Fields{
		"kind":     m.Kind,
		"sender":   m.Sender,
		"receiver": m.Receiver,
	}).Debug("Deliver")

	if err := s.recorder.Record(trace.NewMessageEvent(trace.Delivered, m.Kind.String(), m.Sender, m.Receiver)); err != nil {
		return true, err
	}

	return true, receiver.Receive(m.Kind, m.Sender)
}

// HasPending reports whether any message awaits delivery.
func (s *Scheduler) HasPending() bool {
	s.Lock()
	defer s.Unlock()
	return len(s.pending) > 0
}

// Len returns the number of pending messages.
func (s *Scheduler) Len() int {
	s.Lock()
	defer s.Unlock()
	return len(s.pending)
}

// Pending returns a copy of the pending messages in scheduling order.
func (s *Scheduler) Pending() []Message {
	s.Lock()
	defer s.Unlock()
	return append([]Message(nil), s.pending...)
}

// Scheduled returns the number of messages scheduled so far.
func (s *Scheduler) Scheduled() int {
	s.Lock()
	defer s.Unlock()
	return s.scheduled
}

// Delivered returns the number of messages delivered so far.
func (s *Scheduler) Delivered() int {
	s.Lock()
	defer s.Unlock()
	return s.delivered
}
