package echo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mosaicnetworks/echo/src/config"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/telemetry"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SweepOptions control Sweep. Runs use seeds FirstSeed, FirstSeed+1, ...
type SweepOptions struct {
	Runs      int
	FirstSeed int64
	Workers   int
}

// SweepReport aggregates the runs of a Sweep.
type SweepReport struct {
	Runs     int
	Outcomes map[string]int

	// Trees counts the runs that produced each spanning tree, keyed by
	// TreeKey.
	Trees map[string]int

	MinSteps int
	MaxSteps int
}

// TreeKey renders parent pointers canonically, as sorted child<parent pairs.
func TreeKey(parents map[graph.NodeID]graph.NodeID) string {
	pairs := make([]string, 0, len(parents))
	for child, parent := range parents {
		pairs = append(pairs, fmt.Sprintf("%s<%s", child, parent))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

// Sweep runs the wave once per seed, in parallel, over a single topology. The
// execution log, the store and the service of conf are disabled. Deadlocks and
// violations are counted in the report; only an invalid configuration aborts
// the sweep.
func Sweep(ctx context.Context, conf *config.Config, opts SweepOptions) (*SweepReport, error) {
	if opts.Runs < 1 {
		return nil, fmt.Errorf("runs must be at least 1, got %d", opts.Runs)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	topology := conf.Topology
	if topology == nil {
		t, err := graph.NewJSONGraph(conf.DataDir, conf.GraphFile).Topology()
		if err != nil {
			return nil, err
		}
		topology = t
	}

	logger := conf.Logger()

	report := &SweepReport{
		Runs:     opts.Runs,
		Outcomes: make(map[string]int),
		Trees:    make(map[string]int),
		MinSteps: -1,
	}
	var l sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)

	for i := 0; i < opts.Runs; i++ {
		seed := opts.FirstSeed + int64(i)

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			runConf := *conf
			runConf.Topology = topology
			runConf.Seed = seed
			runConf.DeliverySelector = nil
			runConf.ExecLog = ""
			runConf.Store = false
			runConf.ServiceAddr = ""

			engine := NewEcho(&runConf)
			if err := engine.Init(); err != nil {
				return err
			}
			defer engine.Close()

			result, err := engine.Run()
			if err != nil && Outcome(err) == telemetry.OutcomeError {
				return err
			}
			if result == nil {
				result = engine.LastResult()
			}

			logger.WithFields(logrus.Fields{
				"seed":    seed,
				"outcome": Outcome(err),
				"steps":   result.Steps,
			}).Debug("Sweep run")

			l.Lock()
			defer l.Unlock()

			report.Outcomes[Outcome(err)]++
			if err == nil {
				report.Trees[TreeKey(result.Parents)]++
			}
			if report.MinSteps < 0 || result.Steps < report.MinSteps {
				report.MinSteps = result.Steps
			}
			if result.Steps > report.MaxSteps {
				report.MaxSteps = result.Steps
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}
