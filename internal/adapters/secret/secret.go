// Package secret derives unforgeable library directory names from a persisted key.
package secret

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

// KeySize is the length of a generated secret in bytes.
const KeySize = 32

var _ ports.DirectoryNamer = (*Namer)(nil)

// Namer implements ports.DirectoryNamer with HMAC-SHA256.
type Namer struct {
	key []byte
}

// NewNamer creates a Namer keyed by key.
func NewNamer(key []byte) *Namer {
	return &Namer{key: append([]byte(nil), key...)}
}

// DirectoryName returns the hex HMAC of the identifying fields of a library.
func (n *Namer) DirectoryName(name, version string, trusted bool, source string) string {
	mac := hmac.New(sha256.New, n.key)
	for _, field := range []string{name, version, strconv.FormatBool(trusted), source} {
		_, _ = mac.Write([]byte(field))
		_, _ = mac.Write([]byte{0})
	}
	return hex.EncodeToString(mac.Sum(nil))
}

// LoadOrCreate returns the secret stored at path.
// On first use a random key is generated and published atomically with owner-only permissions,
// so concurrent processes all end up with the same key.
func LoadOrCreate(path string) ([]byte, error) {
	key, err := read(path)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, secretErr(err, path)
	}

	key = make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, secretErr(err, path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".secret-*")
	if err != nil {
		return nil, secretErr(err, path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Best effort cleanup of the staging file

	if err := tmp.Chmod(domain.PrivateFilePerm); err != nil {
		_ = tmp.Close()
		return nil, secretErr(err, path)
	}
	if _, err := tmp.WriteString(hex.EncodeToString(key) + "\n"); err != nil {
		_ = tmp.Close()
		return nil, secretErr(err, path)
	}
	if err := tmp.Close(); err != nil {
		return nil, secretErr(err, path)
	}

	// Link fails if another process published its key first; that key wins.
	if err := os.Link(tmp.Name(), path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return read(path)
		}
		return nil, secretErr(err, path)
	}

	return key, nil
}

func read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the state root
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, secretErr(err, path)
	}

	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil || len(key) < KeySize {
		return nil, zerr.With(fmt.Errorf("%w: malformed secret file", domain.ErrSecretUnavailable), "path", path)
	}
	return key, nil
}

func secretErr(err error, path string) error {
	return zerr.With(fmt.Errorf("%w: %w", domain.ErrSecretUnavailable, err), "path", path)
}
