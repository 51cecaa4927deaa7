package port

import (
	"errors"

	"unitoken/internal/domain"
)

// RunStore persists batch runs.
type RunStore interface {
	SaveRun(run domain.Run) error

	GetRun(id string) (domain.Run, error)

	ListRuns() ([]domain.RunSummary, error)

	DeleteRun(id string) error

	Close() error
}

// ErrRunNotFound is returned by RunStore lookups for unknown IDs.
var ErrRunNotFound = errors.New("run not found")
