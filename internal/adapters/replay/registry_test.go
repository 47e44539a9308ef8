package replay_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/adapters/replay"
	"go.trai.ch/shelf/internal/core/domain"
)

func TestRegistry_Apply(t *testing.T) {
	t.Parallel()
	r := replay.NewRegistry()

	require.NoError(t, r.Register("exec-1", "stuff", "vars/hello.groovy", []byte("old")))
	require.NoError(t, r.Register("exec-1", "stuff", "vars/hello.groovy", []byte("new")))
	require.NoError(t, r.Register("exec-1", "stuff", "src/org/Util.groovy", []byte("util")))
	require.NoError(t, r.Register("exec-2", "stuff", "vars/other.groovy", []byte("other")))

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vars"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "org"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vars", "hello.groovy"), []byte("orig"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "org", "Util.groovy"), []byte("orig"), 0o600))

	written, unmatched, err := r.Apply("exec-1", "stuff", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/org/Util.groovy", "vars/hello.groovy"}, written)
	assert.Empty(t, unmatched)

	data, err := os.ReadFile(filepath.Join(dir, "vars", "hello.groovy"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "vars", "other.groovy"))

	// Replacements are consumed.
	written, unmatched, err = r.Apply("exec-1", "stuff", dir)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Empty(t, unmatched)
}

func TestRegistry_ApplyOnlyOverwritesExistingFiles(t *testing.T) {
	t.Parallel()
	r := replay.NewRegistry()
	dir := t.TempDir()
	outside := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vars"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("keep"), 0o600))
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(dir, "vars", "link.groovy")))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "escape")))

	require.NoError(t, r.Register("exec", "stuff", "vars/new.groovy", []byte("x")))
	require.NoError(t, r.Register("exec", "stuff", "vars/link.groovy", []byte("x")))
	require.NoError(t, r.Register("exec", "stuff", "escape/secret.txt", []byte("x")))
	require.NoError(t, r.Register("exec", "stuff", "vars", []byte("x")))
	require.NoError(t, r.Register("exec", "stuff", "missing/dir/a.groovy", []byte("x")))

	written, unmatched, err := r.Apply("exec", "stuff", dir)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Equal(t, []string{"escape/secret.txt", "missing/dir/a.groovy", "vars", "vars/link.groovy", "vars/new.groovy"}, unmatched)

	assert.NoFileExists(t, filepath.Join(dir, "vars", "new.groovy"))
	assert.NoDirExists(t, filepath.Join(dir, "missing"))
	data, err := os.ReadFile(filepath.Join(outside, "secret.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestRegistry_RejectsEscapingPaths(t *testing.T) {
	t.Parallel()
	r := replay.NewRegistry()

	for _, rel := range []string{"", ".", "../outside", "/etc/passwd", "vars/../../x"} {
		err := r.Register("exec", "stuff", rel, nil)
		require.ErrorIs(t, err, domain.ErrInvalidReplacement, rel)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	files := map[string]string{"/tmp/hello.groovy": "content"}
	read := func(name string) ([]byte, error) {
		if c, ok := files[name]; ok {
			return []byte(c), nil
		}
		return nil, os.ErrNotExist
	}

	lib, rel, content, err := replay.Parse("stuff:vars/hello.groovy=/tmp/hello.groovy", read)
	require.NoError(t, err)
	assert.Equal(t, "stuff", lib)
	assert.Equal(t, "vars/hello.groovy", rel)
	assert.Equal(t, "content", string(content))

	for _, arg := range []string{"stuff", ":vars/a=/tmp/hello.groovy", "stuff:vars/a", "stuff:=/tmp/hello.groovy"} {
		_, _, _, err := replay.Parse(arg, read)
		require.ErrorIs(t, err, domain.ErrInvalidReplacement, arg)
	}

	_, _, _, err = replay.Parse("stuff:vars/a=/missing", read)
	require.ErrorIs(t, err, domain.ErrInvalidReplacement)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
