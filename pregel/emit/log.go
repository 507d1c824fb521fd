package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// LogEmitter writes structured log output to a writer, in either a
// human-readable text form or newline-delimited JSON.
//
// Example text output:
//
//	[step_start] runID=run-001 step=0
//	[task_end] runID=run-001 step=0 process=echo meta={"duration_ms":3}
//
// Example JSON output:
//
//	{"runID":"run-001","step":0,"process":"","msg":"step_start","meta":null}
type LogEmitter struct {
	mu       sync.Mutex
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a LogEmitter writing to writer (os.Stdout if nil) in
// the given mode.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogEmitter{writer: writer, jsonMode: jsonMode}
}

// Emit writes event to the configured writer.
func (l *LogEmitter) Emit(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.jsonMode {
		l.emitJSON(event)
		return
	}
	l.emitText(event)
}

func (l *LogEmitter) emitJSON(event Event) {
	data, err := json.Marshal(struct {
		RunID   string                 `json:"runID"`
		Step    int                    `json:"step"`
		Process string                 `json:"process"`
		Msg     string                 `json:"msg"`
		Meta    map[string]interface{} `json:"meta"`
	}{event.RunID, event.Step, event.Process, event.Msg, event.Meta})
	if err != nil {
		fmt.Fprintf(l.writer, "[emit_error] failed to marshal event: %v\n", err)
		return
	}
	fmt.Fprintln(l.writer, string(data))
}

func (l *LogEmitter) emitText(event Event) {
	fmt.Fprintf(l.writer, "[%s] runID=%s step=%d", event.Msg, event.RunID, event.Step)
	if event.Process != "" {
		fmt.Fprintf(l.writer, " process=%s", event.Process)
	}
	if len(event.Meta) > 0 {
		meta, err := json.Marshal(event.Meta)
		if err == nil {
			fmt.Fprintf(l.writer, " meta=%s", meta)
		}
	}
	fmt.Fprintln(l.writer)
}

// Flush is a no-op: LogEmitter writes synchronously.
func (l *LogEmitter) Flush(context.Context) error { return nil }

var _ Emitter = (*LogEmitter)(nil)
