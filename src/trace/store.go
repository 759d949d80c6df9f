package trace

// Store is a Recorder that keeps events so they can be read back.
type Store interface {
	Recorder
	// Events returns all stored events ordered by Seq.
	Events() ([]Event, error)
	// Len returns the number of stored events.
	Len() int
	// Close releases the resources held by the store.
	Close() error
}
