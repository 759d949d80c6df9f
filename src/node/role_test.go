package node

import (
	"testing"

	"github.com/mosaicnetworks/echo/src/common"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/net"
	"github.com/mosaicnetworks/echo/src/node/state"
	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/sirupsen/logrus"
)

var (
	_ Role = (*Initiator)(nil)
	_ Role = (*Participant)(nil)
)

// outbox records sent messages instead of scheduling them.
type outbox struct {
	sent []net.Message
}

func (o *outbox) Schedule(m net.Message) error {
	o.sent = append(o.sent, m)
	return nil
}

func testOptions(t *testing.T, policy LateEcho) (Options, *outbox, *trace.Journal) {
	o := &outbox{}
	journal := trace.NewJournal()
	return Options{
		Outbox:   o,
		Recorder: journal,
		LateEcho: policy,
		Logger:   common.NewTestEntry(t, logrus.DebugLevel),
	}, o, journal
}

func ids(s ...string) []graph.NodeID {
	res := make([]graph.NodeID, len(s))
	for i, id := range s {
		res[i] = graph.NodeID(id)
	}
	return res
}

func checkSent(t *testing.T, o *outbox, expected ...net.Message) {
	t.Helper()
	if len(o.sent) != len(expected) {
		t.Fatalf("should have sent %v, not %v", expected, o.sent)
	}
	for i := range expected {
		if o.sent[i] != expected[i] {
			t.Fatalf("message %d should be %v, not %v", i, expected[i], o.sent[i])
		}
	}
}

func TestInitiatorStart(t *testing.T) {
	opts, o, _ := testOptions(t, Absorb)
	i := NewInitiator("I", ids("A", "B", "C"), opts)

	if i.State() != state.Unreached {
		t.Fatalf("state should be Unreached before Start, not %s", i.State())
	}

	if err := i.Start(); err != nil {
		t.Fatalf("err: %v", err)
	}

	checkSent(t, o,
		net.NewMessage(net.Echo, "I", "A"),
		net.NewMessage(net.Echo, "I", "B"),
		net.NewMessage(net.Echo, "I", "C"),
	)

	if i.State() != state.Active {
		t.Fatalf("state should be Active, not %s", i.State())
	}
	if i.IsTerminated() {
		t.Fatalf("initiator should not be terminated before any ACK")
	}

	if err := i.Start(); !common.IsProtocol(err, common.AlreadyStarted) {
		t.Fatalf("a second Start should fail with AlreadyStarted, got %v", err)
	}
}

func TestInitiatorNotStarted(t *testing.T) {
	opts, _, _ := testOptions(t, Absorb)
	i := NewInitiator("I", ids("A"), opts)

	if err := i.Receive(net.Ack, "A"); !common.IsProtocol(err, common.NotStarted) {
		t.Fatalf("err should be NotStarted, not %v", err)
	}
}

func TestLoneInitiator(t *testing.T) {
	opts, o, journal := testOptions(t, Absorb)
	i := NewInitiator("I", nil, opts)

	if err := i.Start(); err != nil {
		t.Fatalf("err: %v", err)
	}

	checkSent(t, o)

	if !i.IsTerminated() || i.State() != state.Terminated {
		t.Fatalf("an initiator without neighbors terminates in Start")
	}
	if journal.Count(trace.Finished) != 1 {
		t.Fatalf("a Finished event should be recorded")
	}
}

func TestInitiatorAcks(t *testing.T) {
	opts, _, journal := testOptions(t, Absorb)
	i := NewInitiator("I", ids("A", "B", "C"), opts)
	if err := i.Start(); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := i.Receive(net.Ack, "Z"); !common.IsProtocol(err, common.UnknownSender) {
		t.Fatalf("err should be UnknownSender, not %v", err)
	}

	for n, sender := range ids("B", "A", "C") {
		if i.IsTerminated() {
			t.Fatalf("initiator should not be terminated after %d ACKs", n)
		}
		if err := i.Receive(net.Ack, sender); err != nil {
			t.Fatalf("err: %v", err)
		}
	}

	if !i.IsTerminated() || i.State() != state.Terminated {
		t.Fatalf("initiator should be terminated after 3 ACKs")
	}
	if i.AcksReceived() != 3 {
		t.Fatalf("AcksReceived should be 3, not %d", i.AcksReceived())
	}
	if journal.Count(trace.EchoComplete) != 1 || journal.Count(trace.Finished) != 1 {
		t.Fatalf("EchoComplete and Finished should be recorded once each")
	}

	if err := i.Receive(net.Ack, "A"); !common.IsProtocol(err, common.DuplicateReply) {
		t.Fatalf("err should be DuplicateReply, not %v", err)
	}
	if !i.IsTerminated() {
		t.Fatalf("termination is final")
	}
}

func TestInitiatorLateEcho(t *testing.T) {
	opts, _, _ := testOptions(t, Absorb)
	i := NewInitiator("I", ids("A", "B"), opts)
	if err := i.Start(); err != nil {
		t.Fatalf("err: %v", err)
	}

	// B was reached through A and closes its link to I with an ECHO
	if err := i.Receive(net.Echo, "B"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := i.Receive(net.Ack, "A"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if !i.IsTerminated() {
		t.Fatalf("initiator should be terminated")
	}

	opts, _, _ = testOptions(t, Ignore)
	i = NewInitiator("I", ids("A", "B"), opts)
	if err := i.Start(); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := i.Receive(net.Echo, "B"); !common.IsProtocol(err, common.UnexpectedEcho) {
		t.Fatalf("err should be UnexpectedEcho, not %v", err)
	}
}

func TestParticipantLeaf(t *testing.T) {
	opts, o, journal := testOptions(t, Absorb)
	p := NewParticipant("A", ids("I"), opts)

	if p.IsTerminated() {
		t.Fatalf("participant should not be terminated before ECHO")
	}

	if err := p.Receive(net.Echo, "I"); err != nil {
		t.Fatalf("err: %v", err)
	}

	checkSent(t, o, net.NewMessage(net.Ack, "A", "I"))

	if p.ExpectedAcks() != 0 {
		t.Fatalf("a leaf expects no ACK, not %d", p.ExpectedAcks())
	}
	if !p.IsTerminated() || p.State() != state.Terminated {
		t.Fatalf("a leaf terminates on its first ECHO")
	}
	if parent, ok := p.Parent(); !ok || parent != "I" {
		t.Fatalf("parent should be I, not %s", parent)
	}
	if p.AcksSent() != 1 {
		t.Fatalf("AcksSent should be 1, not %d", p.AcksSent())
	}
	if journal.Count(trace.EchoComplete) != 1 || journal.Count(trace.Finished) != 1 {
		t.Fatalf("EchoComplete and Finished should be recorded once each")
	}
}

func TestParticipantForward(t *testing.T) {
	opts, o, _ := testOptions(t, Absorb)
	p := NewParticipant("A", ids("I", "B", "C"), opts)

	if err := p.Receive(net.Echo, "I"); err != nil {
		t.Fatalf("err: %v", err)
	}

	checkSent(t, o,
		net.NewMessage(net.Echo, "A", "B"),
		net.NewMessage(net.Echo, "A", "C"),
	)

	if p.State() != state.Waiting {
		t.Fatalf("state should be Waiting, not %s", p.State())
	}
	if p.ExpectedAcks() != 2 {
		t.Fatalf("ExpectedAcks should be 2, not %d", p.ExpectedAcks())
	}

	if err := p.Receive(net.Ack, "B"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if p.IsTerminated() {
		t.Fatalf("participant should wait for C")
	}
	if len(o.sent) != 2 {
		t.Fatalf("no ACK should be sent before every child replied")
	}

	// C was reached by another path and answers with its own ECHO
	if err := p.Receive(net.Echo, "C"); err != nil {
		t.Fatalf("err: %v", err)
	}

	checkSent(t, o,
		net.NewMessage(net.Echo, "A", "B"),
		net.NewMessage(net.Echo, "A", "C"),
		net.NewMessage(net.Ack, "A", "I"),
	)

	if !p.IsTerminated() {
		t.Fatalf("participant should be terminated")
	}
	if parent, _ := p.Parent(); parent != "I" {
		t.Fatalf("a late ECHO must not change the parent, got %s", parent)
	}
}

func TestParticipantParentUniqueness(t *testing.T) {
	opts, o, _ := testOptions(t, Absorb)
	p := NewParticipant("A", ids("I", "B"), opts)

	// both ECHOs were pending; B's is delivered first
	if err := p.Receive(net.Echo, "B"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := p.Receive(net.Echo, "I"); err != nil {
		t.Fatalf("err: %v", err)
	}

	if parent, _ := p.Parent(); parent != "B" {
		t.Fatalf("parent should be the first ECHO sender B, not %s", parent)
	}

	checkSent(t, o,
		net.NewMessage(net.Echo, "A", "I"),
		net.NewMessage(net.Ack, "A", "B"),
	)
}

func TestParticipantViolations(t *testing.T) {
	opts, _, _ := testOptions(t, Absorb)
	p := NewParticipant("A", ids("I", "B", "C"), opts)

	if err := p.Receive(net.Ack, "B"); !common.IsProtocol(err, common.UnexpectedAck) {
		t.Fatalf("ACK before ECHO should be UnexpectedAck, not %v", err)
	}
	if err := p.Receive(net.Echo, "Z"); !common.IsProtocol(err, common.UnknownSender) {
		t.Fatalf("err should be UnknownSender, not %v", err)
	}

	if err := p.Receive(net.Echo, "I"); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := p.Receive(net.Ack, "I"); !common.IsProtocol(err, common.UnexpectedAck) {
		t.Fatalf("ACK from the parent should be UnexpectedAck, not %v", err)
	}
	if err := p.Receive(net.Echo, "I"); !common.IsProtocol(err, common.DuplicateReply) {
		t.Fatalf("second ECHO from the parent should be DuplicateReply, not %v", err)
	}

	if err := p.Receive(net.Ack, "B"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := p.Receive(net.Ack, "B"); !common.IsProtocol(err, common.DuplicateReply) {
		t.Fatalf("second ACK from B should be DuplicateReply, not %v", err)
	}
	if p.AcksReceived() != 1 {
		t.Fatalf("AcksReceived should be 1, not %d", p.AcksReceived())
	}
}

func TestParticipantIgnoreLateEcho(t *testing.T) {
	opts, o, _ := testOptions(t, Ignore)
	p := NewParticipant("A", ids("I", "B"), opts)

	if err := p.Receive(net.Echo, "I"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := p.Receive(net.Echo, "B"); err != nil {
		t.Fatalf("err: %v", err)
	}

	if p.AcksReceived() != 0 {
		t.Fatalf("an ignored ECHO should not count, AcksReceived = %d", p.AcksReceived())
	}
	if p.IsTerminated() {
		t.Fatalf("participant should still wait for B")
	}
	checkSent(t, o, net.NewMessage(net.Echo, "A", "B"))
}

func TestParseLateEcho(t *testing.T) {
	cases := map[string]LateEcho{"": Absorb, "absorb": Absorb, "ignore": Ignore}
	for s, expected := range cases {
		l, err := ParseLateEcho(s)
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if l != expected {
			t.Fatalf("ParseLateEcho(%q) should be %s, not %s", s, expected, l)
		}
	}
	if _, err := ParseLateEcho("reply"); err == nil {
		t.Fatalf("unknown policies should be rejected")
	}
}
