package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/buildstack/kiln/internal/repository"
	"github.com/buildstack/kiln/pkg/pipeline"
	badger "github.com/dgraph-io/badger/v4"
)

// ErrRunNotFound is returned when no record exists for a run id.
var ErrRunNotFound = errors.New("run not found")

const keyPrefix = "run:"

// RunRecord is one persisted pipeline run.
type RunRecord struct {
	ID         string           `json:"id"`
	Workspace  string           `json:"workspace"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	Report     *pipeline.Report `json:"report,omitempty"`
}

// Duration returns the wall-clock time of the run.
func (r *RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store persists pipeline run records.
type Store interface {
	Record(rec *RunRecord) error
	Get(id string) (*RunRecord, error)
	List() ([]*RunRecord, error)
}

type badgerStore struct {
	dbRepo repository.DBRepository
	limit  int
}

// NewStore creates a Store on top of the given repository. limit caps the
// number of retained records; zero means unlimited.
func NewStore(dbRepo repository.DBRepository, limit int) Store {
	return &badgerStore{dbRepo: dbRepo, limit: limit}
}

// NewRunID derives a sortable run id from the start time. Badger keys sort
// lexicographically, so newest-first listing is a reverse scan.
func NewRunID(started time.Time) string {
	return started.UTC().Format("20060102T150405.000000000")
}

func (s *badgerStore) Record(rec *RunRecord) error {
	if rec.ID == "" {
		rec.ID = NewRunID(rec.StartedAt)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	return s.dbRepo.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyPrefix+rec.ID), data); err != nil {
			return err
		}
		return s.prune(txn)
	})
}

func (s *badgerStore) Get(id string) (*RunRecord, error) {
	var rec *RunRecord

	err := s.dbRepo.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	return rec, err
}

// List returns every retained record, newest first.
func (s *badgerStore) List() ([]*RunRecord, error) {
	var records []*RunRecord

	err := s.dbRepo.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// with Reverse set, seek past the last possible key in the prefix
		for it.Seek(append([]byte(keyPrefix), 0xff)); it.ValidForPrefix([]byte(keyPrefix)); it.Next() {
			var rec *RunRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})

	return records, err
}

// prune deletes the oldest records beyond the retention limit.
func (s *badgerStore) prune(txn *badger.Txn) error {
	if s.limit <= 0 {
		return nil
	}

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(keyPrefix)
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Rewind(); it.ValidForPrefix([]byte(keyPrefix)); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for i := 0; len(keys)-i > s.limit; i++ {
		if err := txn.Delete(keys[i]); err != nil {
			return err
		}
	}
	return nil
}
