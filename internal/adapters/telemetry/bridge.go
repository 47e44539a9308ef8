package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/shelf/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor and reports finished library spans to a Logger.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{
		logger: logger,
	}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs a summary of spans describing a library.
// Failed spans are left to the caller, which logs the error itself.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() || s.Status().Code == codes.Error {
		return
	}

	var library, version, outcome string
	for _, kv := range s.Attributes() {
		switch kv.Key {
		case attribute.Key(ports.AttrLibrary):
			library = kv.Value.AsString()
		case attribute.Key(ports.AttrVersion):
			version = kv.Value.AsString()
		case attribute.Key(ports.AttrOutcome):
			outcome = kv.Value.AsString()
		}
	}
	if library == "" || outcome == "" {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	b.logger.Info(fmt.Sprintf("%s %s@%s (%s, %s)", s.Name(), library, version, outcome, elapsed))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
