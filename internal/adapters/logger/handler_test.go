package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/shelf/internal/adapters/logger"
)

func newTestHandler(t *testing.T, level slog.Leveler) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}), buf
}

func TestPrettyHandler_Attributes(t *testing.T) {
	h, buf := newTestHandler(t, slog.LevelInfo)

	log := slog.New(h).With("execution", "exec-1").WithGroup("cache").With("key", "abc")
	log.Info("retrieved", "outcome", "hit", slog.Group("lock", "owner", "host:1"))

	assert.Equal(t, "retrieved execution=exec-1 cache.key=abc cache.outcome=hit cache.lock.owner=host:1\n", buf.String())
}

func TestPrettyHandler_NestedGroups(t *testing.T) {
	h, buf := newTestHandler(t, slog.LevelInfo)

	slog.New(h).WithGroup("library").WithGroup("source").Info("fetched", "type", "git")

	assert.Equal(t, "fetched library.source.type=git\n", buf.String())
}

func TestPrettyHandler_FollowsLevelChanges(t *testing.T) {
	level := &slog.LevelVar{}
	h, buf := newTestHandler(t, level)
	log := slog.New(h)

	log.Info("first")
	level.Set(slog.LevelWarn)
	log.Info("second")
	log.Warn("third")

	assert.Contains(t, buf.String(), "first")
	assert.NotContains(t, buf.String(), "second")
	assert.Contains(t, buf.String(), "third")
}
