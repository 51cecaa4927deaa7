package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
)

// CurrentSchemaVersion is the current schema version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

// ErrSchemaTooNew is returned when the database was written by a newer version.
var ErrSchemaTooNew = errors.New("database created by newer version")

var keySchemaVersion = []byte("schema_version")

// SchemaVersion returns the stored schema version, 0 for a fresh database.
func (s *BoltStore) SchemaVersion() (int, error) {
	var version int
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keySchemaVersion)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &version)
	})
	return version, err
}

func (s *BoltStore) setSchemaVersion(version int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(version)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keySchemaVersion, data)
	})
}

// ensureSchema migrates older databases and refuses newer ones.
func (s *BoltStore) ensureSchema() error {
	version, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version > CurrentSchemaVersion {
		return fmt.Errorf("%w (v%d > v%d)", ErrSchemaTooNew, version, CurrentSchemaVersion)
	}

	for v := version; v < CurrentSchemaVersion; v++ {
		if err := s.runMigration(v, v+1); err != nil {
			return fmt.Errorf("migration from v%d to v%d failed: %w", v, v+1, err)
		}
	}

	if version != CurrentSchemaVersion {
		return s.setSchemaVersion(CurrentSchemaVersion)
	}
	return nil
}

// runMigration runs a specific version migration.
func (s *BoltStore) runMigration(from, to int) error {
	switch {
	case from == 0 && to == 1:
		// Buckets are created on open and runs are CBOR from the start.
		return nil
	default:
		return fmt.Errorf("no migration from v%d to v%d", from, to)
	}
}
