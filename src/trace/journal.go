package trace

import "sync"

// Recorder consumes trace events.
type Recorder interface {
	Record(Event) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Event) error

// Record implements Recorder.
func (f RecorderFunc) Record(e Event) error {
	return f(e)
}

// Journal numbers events in the order they are recorded and forwards them to
// its recorders. The first recorder error stops the fan-out and is returned.
type Journal struct {
	sync.Mutex

	seq       int
	counts    map[EventType]int
	recorders []Recorder
}

// NewJournal creates a Journal forwarding to recorders.
func NewJournal(recorders ...Recorder) *Journal {
	return &Journal{
		counts:    make(map[EventType]int),
		recorders: recorders,
	}
}

// Add registers another recorder.
func (j *Journal) Add(r Recorder) {
	j.Lock()
	defer j.Unlock()
	j.recorders = append(j.recorders, r)
}

// Record implements Recorder. Seq starts at 1.
func (j *Journal) Record(e Event) error {
	j.Lock()
	defer j.Unlock()

	j.seq++
	e.Seq = j.seq
	j.counts[e.Type]++

	for _, r := range j.recorders {
		if err := r.Record(e); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of events of a type recorded so far.
func (j *Journal) Count(t EventType) int {
	j.Lock()
	defer j.Unlock()
	return j.counts[t]
}

// Len returns the total number of events recorded so far.
func (j *Journal) Len() int {
	j.Lock()
	defer j.Unlock()
	return j.seq
}

type nopRecorder struct{}

func (nopRecorder) Record(Event) error { return nil }

// Nop is a Recorder that drops everything.
var Nop Recorder = nopRecorder{}
