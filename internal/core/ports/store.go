package ports

import "go.trai.ch/shelf/internal/core/domain"

// RunStateStore persists the libraries retrieved for an execution.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStateStore interface {
	// Get returns the records stored under jobRoot.
	// Returns nil, nil if no state was stored.
	Get(jobRoot string) ([]domain.LibraryRecord, error)

	// Put stores records under jobRoot.
	Put(jobRoot string, records []domain.LibraryRecord) error
}
