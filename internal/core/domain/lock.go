package domain

import (
	"fmt"
	"os"
	"time"
)

// LockMode distinguishes reader markers from the writer marker.
type LockMode string

const (
	// LockShared is held by each concurrent reader.
	LockShared LockMode = "shared"
	// LockExclusive is held by the single writer.
	LockExclusive LockMode = "exclusive"
)

// Lock is the body of a lock marker file.
type Lock struct {
	Key        string    `json:"key"`
	Mode       LockMode  `json:"mode"`
	Owner      string    `json:"owner"`
	AcquiredAt time.Time `json:"acquiredAt"`
}

// IsStale reports whether the marker is older than maxAge at now.
// A non-positive maxAge disables staleness.
func (l *Lock) IsStale(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 || l.AcquiredAt.IsZero() {
		return false
	}
	return now.Sub(l.AcquiredAt) > maxAge
}

// LockOwner identifies the current process as host:pid.
func LockOwner() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s:%d", host, os.Getpid())
}
