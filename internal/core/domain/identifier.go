package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Identifier is a parsed library request of the form name[@version].
type Identifier struct {
	Name    string
	Version string
}

// HasVersion reports whether the request named an explicit version.
func (i Identifier) HasVersion() bool {
	return i.Version != ""
}

// String renders the identifier back to name[@version].
func (i Identifier) String() string {
	if i.Version == "" {
		return i.Name
	}
	return i.Name + "@" + i.Version
}

// ParseIdentifier splits raw at the first '@'.
// An empty name or an empty version after '@' is rejected.
func ParseIdentifier(raw string) (Identifier, error) {
	name, version, found := strings.Cut(strings.TrimSpace(raw), "@")
	if name == "" || (found && version == "") {
		return Identifier{}, zerr.With(fmt.Errorf("%w %q", ErrInvalidIdentifier, raw), "identifier", raw)
	}
	return Identifier{Name: name, Version: version}, nil
}
