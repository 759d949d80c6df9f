// Package net models the asynchronous network an Echo wave runs on.
//
// There is no real transport. A Scheduler holds the multiset of messages that
// have been sent but not yet received, and DeliverOne hands one of them to its
// receiver. Which one is decided by a Selector: uniformly at random by default,
// or by a fixed policy (fifo, lifo, echo-first) when a test needs a specific or
// adversarial interleaving. Delivery is lossless and duplication-free: every
// scheduled message is delivered exactly once, in whatever order the Selector
// chooses.
package net
