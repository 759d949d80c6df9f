package common

import (
	"fmt"
	"testing"
)

func TestConfigErr(t *testing.T) {
	err := error(NewConfigErr("A", AsymmetricLink, "B does not list A"))

	if !IsConfig(err, AsymmetricLink) {
		t.Fatalf("IsConfig should match AsymmetricLink")
	}
	if IsConfig(err, Disconnected) {
		t.Fatalf("IsConfig should not match Disconnected")
	}
	if IsConfig(fmt.Errorf("other"), AsymmetricLink) {
		t.Fatalf("IsConfig should not match a plain error")
	}

	expected := "graph, A, Asymmetric Link: B does not list A"
	if err.Error() != expected {
		t.Fatalf("Error() should be %q, not %q", expected, err.Error())
	}
}

func TestProtocolErr(t *testing.T) {
	err := error(NewProtocolErr("I", UnexpectedEcho, "B"))

	if !IsProtocol(err, UnexpectedEcho) {
		t.Fatalf("IsProtocol should match UnexpectedEcho")
	}
	if IsProtocol(err, DuplicateReply) {
		t.Fatalf("IsProtocol should not match DuplicateReply")
	}
	if IsConfig(err, NoInitiator) {
		t.Fatalf("a ProtocolErr is not a ConfigErr")
	}
}

func TestDeadlockErr(t *testing.T) {
	err := error(NewDeadlockErr(4, []string{"B", "A"}))

	if !IsDeadlock(err) {
		t.Fatalf("IsDeadlock should match")
	}

	expected := "deadlock after 4 steps, unterminated: A,B"
	if err.Error() != expected {
		t.Fatalf("Error() should be %q, not %q", expected, err.Error())
	}
}
