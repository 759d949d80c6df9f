package echo

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/mosaicnetworks/echo/src/common"
	"github.com/mosaicnetworks/echo/src/config"
	"github.com/mosaicnetworks/echo/src/graph"
	"github.com/mosaicnetworks/echo/src/net"
	"github.com/mosaicnetworks/echo/src/node"
	"github.com/mosaicnetworks/echo/src/node/state"
	"github.com/mosaicnetworks/echo/src/telemetry"
	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/sirupsen/logrus"
)

// Run statuses reported by GetStats, besides the telemetry outcomes.
const (
	StatusIdle    = "idle"
	StatusRunning = "running"
)

// Echo is a single simulation session. It is not reusable: one Echo runs one
// wave.
type Echo struct {
	Config    *config.Config
	Topology  *graph.Topology
	Scheduler *net.Scheduler
	Journal   *trace.Journal
	Store     trace.Store
	Initiator *node.Initiator
	Roles     map[graph.NodeID]node.Role

	// Seed is the seed of the random selector, if one is used.
	Seed int64

	l      sync.Mutex
	ran    bool
	status string
	result *Result

	logger *logrus.Entry
}

// NewEcho creates an uninitialised simulation. Call Init before Run.
func NewEcho(config *config.Config) *Echo {
	engine := &Echo{
		Config: config,
		Roles:  make(map[graph.NodeID]node.Role),
		status: StatusIdle,
		logger: config.Logger(),
	}

	return engine
}

func (e *Echo) initTopology() error {
	if e.Config.Topology != nil {
		e.Topology = e.Config.Topology
		return nil
	}

	graphFile := graph.NewJSONGraph(e.Config.DataDir, e.Config.GraphFile)

	topology, err := graphFile.Topology()
	if err != nil {
		return err
	}

	e.logger.WithFields(logrus.Fields{
		"file":      graphFile.Path(),
		"nodes":     topology.Len(),
		"links":     topology.Links(),
		"initiator": topology.Initiator(),
	}).Debug("Loaded graph")

	e.Topology = topology

	return nil
}

func (e *Echo) initJournal() error {
	e.Journal = trace.NewJournal(telemetry.NewRecorder())

	path := e.Config.ExecLogPath()
	if path == "" {
		return nil
	}

	execLog, err := trace.NewExecutionLog(path)
	if err != nil {
		return err
	}

	e.Journal.Add(trace.NewLogRecorder(execLog.WithField("prefix", "exec")))

	return nil
}

func (e *Echo) initStore() error {
	if !e.Config.Store {
		e.Store = trace.NewInmemStore()
	} else {
		dbpath := e.Config.DatabaseDir

		e.logger.WithField("path", dbpath).Debug("Creating BadgerStore")

		store, err := trace.NewBadgerStore(dbpath, e.logger)
		if err != nil {
			return err
		}

		// a store holds the trace of a single run
		if err := store.Reset(); err != nil {
			store.Close()
			return err
		}

		e.Store = store
	}

	e.Journal.Add(e.Store)

	return nil
}

func (e *Echo) initScheduler() error {
	selector := e.Config.DeliverySelector

	if selector == nil {
		e.Seed = e.Config.Seed
		if e.Seed == 0 {
			e.Seed = time.Now().UnixNano()
		}

		s, err := net.NewSelector(e.Config.Selector, e.Seed)
		if err != nil {
			return err
		}
		selector = s

		e.logger.WithFields(logrus.Fields{
			"selector": e.Config.Selector,
			"seed":     e.Seed,
		}).Debug("Delivery order")
	}

	e.Scheduler = net.NewScheduler(selector, e.Journal, e.logger.WithField("component", "scheduler"))

	return nil
}

func (e *Echo) initRoles() error {
	policy, err := node.ParseLateEcho(e.Config.LateEcho)
	if err != nil {
		return err
	}

	opts := node.Options{
		Outbox:   e.Scheduler,
		Recorder: e.Journal,
		LateEcho: policy,
		Logger:   e.logger,
	}

	for _, id := range e.Topology.IDs() {
		role, _ := e.Topology.Role(id)
		neighbors := e.Topology.Neighbors(id)

		var r node.Role
		if role == graph.Initiator {
			e.Initiator = node.NewInitiator(id, neighbors, opts)
			r = e.Initiator
		} else {
			r = node.NewParticipant(id, neighbors, opts)
		}

		e.Roles[id] = r
		e.Scheduler.Connect(id, r)
	}

	return nil
}

// Init loads and validates the topology, and builds the scheduler and the
// roles. The wave does not start until Run.
func (e *Echo) Init() error {
	if err := e.initTopology(); err != nil {
		e.logger.WithError(err).Error("Failed to load graph")
		return err
	}

	if err := e.initJournal(); err != nil {
		e.logger.WithError(err).Error("Failed to open execution log")
		return err
	}

	if err := e.initStore(); err != nil {
		e.logger.WithError(err).Error("Failed to create store")
		return err
	}

	if err := e.initScheduler(); err != nil {
		e.logger.WithError(err).Error("Failed to create scheduler")
		return err
	}

	if err := e.initRoles(); err != nil {
		e.logger.WithError(err).Error("Failed to create roles")
		return err
	}

	return nil
}

// Run starts the initiator and delivers messages until every node has
// terminated. It returns a common.DeadlockErr if no message is left before
// that, and the first protocol violation if a role raises one.
func (e *Echo) Run() (*Result, error) {
	e.l.Lock()
	if e.Initiator == nil {
		e.l.Unlock()
		return nil, fmt.Errorf("simulation is not initialised")
	}
	if e.ran {
		e.l.Unlock()
		return nil, fmt.Errorf("simulation already ran")
	}
	e.ran = true
	e.status = StatusRunning
	e.l.Unlock()

	e.logger.WithFields(logrus.Fields{
		"initiator": e.Initiator.ID(),
		"nodes":     len(e.Roles),
	}).Info("Starting wave")

	if err := e.Initiator.Start(); err != nil {
		return nil, e.fail(err, 0)
	}

	steps := 0
	for !e.allTerminated() {
		ok, err := e.Scheduler.DeliverOne()
		if err != nil {
			return nil, e.fail(err, steps)
		}
		if !ok {
			return nil, e.fail(common.NewDeadlockErr(steps, e.unterminated()), steps)
		}
		steps++
	}

	result := e.snapshot(steps)

	if result.Pending > 0 {
		e.logger.WithField("pending", result.Pending).Warn("Messages left after termination")
	}

	e.logger.WithFields(logrus.Fields{
		"steps":     result.Steps,
		"scheduled": result.Scheduled,
		"delivered": result.Delivered,
	}).Info("Run complete")

	telemetry.ObserveRun(telemetry.OutcomeTerminated, steps)

	e.l.Lock()
	e.result = result
	e.status = telemetry.OutcomeTerminated
	e.l.Unlock()

	return result, nil
}

// Outcome classifies the error returned by Run.
func Outcome(err error) string {
	switch err.(type) {
	case nil:
		return telemetry.OutcomeTerminated
	case common.DeadlockErr:
		return telemetry.OutcomeDeadlock
	case common.ProtocolErr:
		return telemetry.OutcomeViolation
	default:
		return telemetry.OutcomeError
	}
}

func (e *Echo) fail(err error, steps int) error {
	outcome := Outcome(err)

	e.logger.WithError(err).WithField("steps", steps).Error("Wave aborted")
	telemetry.ObserveRun(outcome, steps)

	e.l.Lock()
	e.result = e.snapshot(steps)
	e.status = outcome
	e.l.Unlock()

	return err
}

func (e *Echo) allTerminated() bool {
	for _, r := range e.Roles {
		if !r.IsTerminated() {
			return false
		}
	}
	return true
}

func (e *Echo) unterminated() []string {
	res := []string{}
	for id, r := range e.Roles {
		if !r.IsTerminated() {
			res = append(res, string(id))
		}
	}
	return res
}

func (e *Echo) snapshot(steps int) *Result {
	result := &Result{
		Initiator: e.Topology.Initiator(),
		Seed:      e.Seed,
		Steps:     steps,
		Scheduled: e.Scheduler.Scheduled(),
		Delivered: e.Scheduler.Delivered(),
		Pending:   e.Scheduler.Len(),
		Parents:   make(map[graph.NodeID]graph.NodeID),
		States:    make(map[graph.NodeID]string),
	}

	for id, r := range e.Roles {
		if parent, ok := r.Parent(); ok {
			result.Parents[id] = parent
		}
		result.States[id] = r.State().String()
	}

	return result
}

// LastResult returns the result of the last Run, including aborted ones, or
// nil if Run has not returned yet.
func (e *Echo) LastResult() *Result {
	e.l.Lock()
	defer e.l.Unlock()
	return e.result
}

// GetStats returns counters that are safe to read while Run is in progress.
func (e *Echo) GetStats() map[string]string {
	e.l.Lock()
	status := e.status
	e.l.Unlock()

	stats := map[string]string{
		"status": status,
		"seed":   strconv.FormatInt(e.Seed, 10),
	}

	if e.Topology != nil {
		stats["initiator"] = e.Topology.Initiator().String()
		stats["nodes"] = strconv.Itoa(e.Topology.Len())
		stats["links"] = strconv.Itoa(e.Topology.Links())
	}

	if e.Scheduler != nil {
		stats["scheduled"] = strconv.Itoa(e.Scheduler.Scheduled())
		stats["delivered"] = strconv.Itoa(e.Scheduler.Delivered())
		stats["pending"] = strconv.Itoa(e.Scheduler.Len())
	}

	terminated := 0
	for _, r := range e.Roles {
		if r.State() == state.Terminated {
			terminated++
		}
	}
	stats["terminated_nodes"] = strconv.Itoa(terminated)

	return stats
}

// GetStates returns the current state of every node.
func (e *Echo) GetStates() map[string]string {
	states := make(map[string]string, len(e.Roles))
	for id, r := range e.Roles {
		states[string(id)] = r.State().String()
	}
	return states
}

// Close releases the store.
func (e *Echo) Close() error {
	if e.Store != nil {
		return e.Store.Close()
	}
	return nil
}
