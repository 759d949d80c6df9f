package trace

import (
	"fmt"

	"github.com/dgraph-io/badger"
	"github.com/sirupsen/logrus"
)

const eventPrefix = "event"

// BadgerStore persists events in a Badger database, keyed by sequence number.
type BadgerStore struct {
	db    *badger.DB
	path  string
	count int
}

// NewBadgerStore opens an existing database or creates a new one if nothing is
// found in path.
func NewBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithTruncate(true)

	if logger != nil {
		sub := logger.WithFields(logrus.Fields{"ns": "badger"})
		opts = opts.WithLogger(sub)
	}

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		db:   handle,
		path: path,
	}

	count, err := store.dbCountEvents()
	if err != nil {
		handle.Close()
		return nil, err
	}
	store.count = count

	return store, nil
}

func eventKey(seq int) []byte {
	return []byte(fmt.Sprintf("%s_%09d", eventPrefix, seq))
}

// Path returns the database directory.
func (s *BadgerStore) Path() string {
	return s.path
}

// Reset deletes every stored event.
func (s *BadgerStore) Reset() error {
	if err := s.db.DropAll(); err != nil {
		return err
	}
	s.count = 0
	return nil
}

// Record implements Recorder.
func (s *BadgerStore) Record(e Event) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	val, err := e.Marshal()
	if err != nil {
		return err
	}

	//insert [seq] => [event bytes]
	if err := tx.Set(eventKey(e.Seq), val); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.count++
	return nil
}

// Events implements Store.
func (s *BadgerStore) Events() ([]Event, error) {
	events := []Event{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(eventPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(data []byte) error {
				var e Event
				if err := e.Unmarshal(data); err != nil {
					return err
				}
				events = append(events, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return events, nil
}

// Len implements Store.
func (s *BadgerStore) Len() int {
	return s.count
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) dbCountEvents() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(eventPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
