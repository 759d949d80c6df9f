package commands

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mosaicnetworks/echo/src/config"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/spf13/cobra"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()

	root := &cobra.Command{Use: "echo"}
	root.AddCommand(cmd)

	var buf bytes.Buffer
	root.SetOutput(&buf)
	root.SetArgs(append([]string{cmd.Name()}, args...))

	if err := root.Execute(); err != nil {
		t.Fatalf("%s %v: %v\n%s", cmd.Name(), args, err, buf.String())
	}

	return buf.String()
}

func TestGenRunTrace(t *testing.T) {
	dir, err := ioutil.TempDir("", "echo-cli")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer os.RemoveAll(dir)

	out := execute(t, NewGenCmd(), graph.ShapeRing, "--datadir", dir, "--size", "5")
	if !strings.Contains(out, "5 nodes and 5 links") {
		t.Fatalf("unexpected gen output %q", out)
	}

	topology, err := graph.NewJSONGraph(dir, "").Topology()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if topology.Len() != 5 {
		t.Fatalf("generated graph should have 5 nodes, not %d", topology.Len())
	}

	out = execute(t, NewRunCmd(), "--datadir", dir, "--log", "error", "--store", "--selector", "fifo")
	if !strings.HasPrefix(out, "Wave terminated after 10 deliveries") {
		t.Fatalf("unexpected run output %q", out)
	}

	data, err := ioutil.ReadFile(filepath.Join(dir, config.DefaultExecLogFile))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	out = execute(t, NewTraceCmd(), "--datadir", dir)
	if !strings.HasPrefix(out, trace.ExecutionLogHeader) {
		t.Fatalf("trace should start with the header, got %q", out)
	}

	// the stored trace and the execution log render the same lines
	if out != string(data) {
		t.Fatalf("trace output should match the execution log\ntrace:\n%s\nlog:\n%s", out, data)
	}
}

func TestSweep(t *testing.T) {
	dir, err := ioutil.TempDir("", "echo-cli")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer os.RemoveAll(dir)

	execute(t, NewGenCmd(), graph.ShapePath, "--datadir", dir, "--size", "4")

	out := execute(t, NewSweepCmd(), "--datadir", dir, "--runs", "8", "--workers", "2")
	if !strings.Contains(out, "terminated: 8") {
		t.Fatalf("every run should terminate, got %q", out)
	}
	if !strings.Contains(out, "distinct spanning trees: 1") {
		t.Fatalf("a path should yield a single tree, got %q", out)
	}
}

func TestVersion(t *testing.T) {
	out := execute(t, VersionCmd)
	if strings.TrimSpace(out) == "" {
		t.Fatalf("version should not be empty")
	}
}
