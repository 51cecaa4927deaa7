package store

import (
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
	"unitoken/internal/domain"
	"unitoken/internal/port"
)

var (
	bucketRuns     = []byte("runs")
	bucketRunIndex = []byte("run_index")
	bucketMeta     = []byte("meta")
)

// BoltStore persists batch runs in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketRuns, bucketRunIndex, bucketMeta}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &BoltStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// indexKey orders runs by creation time, then ID.
func indexKey(run domain.Run) []byte {
	key := make([]byte, 8, 8+len(run.ID))
	binary.BigEndian.PutUint64(key, uint64(run.CreatedAt.UnixNano()))
	return append(key, run.ID...)
}

func (s *BoltStore) SaveRun(run domain.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run has no id")
	}
	data, err := encodeRun(run)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		if old := runs.Get([]byte(run.ID)); old != nil {
			if prev, err := decodeRun(old); err == nil {
				if err := tx.Bucket(bucketRunIndex).Delete(indexKey(prev)); err != nil {
					return err
				}
			}
		}
		if err := runs.Put([]byte(run.ID), data); err != nil {
			return err
		}
		return tx.Bucket(bucketRunIndex).Put(indexKey(run), []byte(run.ID))
	})
}

func (s *BoltStore) GetRun(id string) (domain.Run, error) {
	var run domain.Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", port.ErrRunNotFound, id)
		}
		var err error
		run, err = decodeRun(data)
		return err
	})
	return run, err
}

// ListRuns returns run summaries, newest first.
func (s *BoltStore) ListRuns() ([]domain.RunSummary, error) {
	var summaries []domain.RunSummary
	err := s.db.View(func(tx *bbolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		c := tx.Bucket(bucketRunIndex).Cursor()
		for k, id := c.Last(); k != nil; k, id = c.Prev() {
			data := runs.Get(id)
			if data == nil {
				continue
			}
			run, err := decodeRun(data)
			if err != nil {
				return fmt.Errorf("failed to decode run %s: %w", id, err)
			}
			summaries = append(summaries, run.Summary())
		}
		return nil
	})
	return summaries, err
}

func (s *BoltStore) DeleteRun(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		data := runs.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", port.ErrRunNotFound, id)
		}
		run, err := decodeRun(data)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketRunIndex).Delete(indexKey(run)); err != nil {
			return err
		}
		return runs.Delete([]byte(id))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
