// Package node implements the two roles of the Echo algorithm.
//
// A Role is a per-node state machine. It consumes the messages the scheduler
// delivers to it, one at a time, and emits new ones through its Outbox. The
// Initiator starts the wave by sending ECHO to every neighbor and terminates
// once every neighbor has replied. A Participant adopts the sender of its first
// ECHO as parent, forwards ECHO to its other neighbors, and acknowledges its
// parent once those have all replied. The parent pointers form a spanning tree
// rooted at the initiator.
//
// Late ECHO
//
// On a graph with cycles, a participant may receive ECHO from a neighbor that
// is not its parent, because that neighbor was reached through another path.
// With the Absorb policy, such an ECHO closes the link: it counts as that
// neighbor's reply and nothing is sent back. The initiator treats an ECHO the
// same way. This is what lets the wave terminate on any connected graph. With
// the Ignore policy, a late ECHO is dropped and an ECHO at the initiator is a
// protocol violation; the wave then only terminates on trees.
//
// Any message that the protocol cannot produce, such as a second reply over
// the same link or an ACK before the first ECHO, is returned as a
// common.ProtocolErr.
package node
