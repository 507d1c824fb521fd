package emit

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OtelEmitter bridges engine events onto OpenTelemetry spans. Each
// "step_start"/"step_end" pair becomes a span covering that step; every
// other event becomes a span event attached to the current step's span,
// mirroring the teacher's graph/emit.OtelEmitter bridge for node-level
// events.
type OtelEmitter struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span // keyed by stepKey(runID, step)
}

// NewOtelEmitter creates an OtelEmitter using the given tracer, or the
// global tracer registered under instrumentationName if tracer is nil.
func NewOtelEmitter(tracer trace.Tracer, instrumentationName string) *OtelEmitter {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return &OtelEmitter{tracer: tracer, spans: make(map[string]trace.Span)}
}

func stepKey(runID string, step int) string {
	return runID + "#" + strconv.Itoa(step)
}

// Emit translates event into a span or span event.
func (o *OtelEmitter) Emit(event Event) {
	ctx := context.Background()
	key := stepKey(event.RunID, event.Step)

	switch event.Msg {
	case "step_start":
		_, span := o.tracer.Start(ctx, "pregel.step",
			trace.WithAttributes(
				attribute.String("pregel.run_id", event.RunID),
				attribute.Int("pregel.step", event.Step),
			),
		)
		o.mu.Lock()
		o.spans[key] = span
		o.mu.Unlock()
	case "step_end", "halt", "timeout", "cancelled":
		o.mu.Lock()
		span, ok := o.spans[key]
		delete(o.spans, key)
		o.mu.Unlock()
		if ok {
			if len(event.Meta) > 0 {
				span.AddEvent(event.Msg, trace.WithAttributes(metaAttributes(event.Meta)...))
			}
			span.End()
		}
	default:
		o.mu.Lock()
		span, ok := o.spans[key]
		o.mu.Unlock()
		if ok {
			span.AddEvent(event.Msg, trace.WithAttributes(metaAttributes(event.Meta)...))
		}
	}
}

func metaAttributes(meta map[string]interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(meta))
	for k, v := range meta {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	return attrs
}

// Flush is a no-op: span export is the configured TracerProvider's concern.
func (o *OtelEmitter) Flush(context.Context) error { return nil }

var _ Emitter = (*OtelEmitter)(nil)
