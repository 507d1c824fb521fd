package pregel

import (
	"context"
	"encoding/json"
)

// Checkpointer is the durable-persistence extension point for an Engine.
// Its shape is deliberately narrow and storage-agnostic — a step number plus
// a flat map of channel name to serialized value — so that pregel/store
// backends (MemoryStore, SQLiteStore, MySQLStore) can satisfy it without
// importing this package, avoiding an import cycle between pregel and
// pregel/store.
//
// Channel values are serialized by the caller (the Engine, via each
// channel's Checkpointable implementation) before reaching Save, and
// deserialized after Load returns — Checkpointer itself never inspects
// channel contents.
type Checkpointer interface {
	// Save persists the snapshot for runID at the given step, overwriting
	// any previously saved snapshot for that run.
	Save(ctx context.Context, runID string, step int, snapshot map[string][]byte) error

	// Load returns the most recently saved snapshot for runID. ok is false
	// if no snapshot has been saved for that run.
	Load(ctx context.Context, runID string) (step int, snapshot map[string][]byte, ok bool, err error)
}

// checkpointSnapshot serializes registry into a Checkpointer snapshot,
// skipping channels that don't implement Checkpointable (they restart empty
// on resume) or that were never written (nothing to save).
func checkpointSnapshot(registry *Registry) (map[string][]byte, error) {
	snapshot := make(map[string][]byte)
	for _, name := range registry.Names() {
		ch, _ := registry.Get(name)
		cp, ok := ch.(Checkpointable)
		if !ok || ch.Empty() {
			continue
		}
		value, err := cp.CheckpointValue()
		if err != nil {
			if err == ErrEmptyChannel {
				continue
			}
			return nil, newTopologyError("checkpoint channel %q: %v", name, err)
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, newTopologyError("checkpoint channel %q: %v", name, err)
		}
		snapshot[name] = data
	}
	return snapshot, nil
}

// restoreSnapshot restores previously checkpointed values into registry's
// channels, skipping entries whose channel no longer exists or isn't
// Checkpointable. Values round-trip through JSON, so a channel's
// RestoreValue must tolerate a generic JSON-decoded shape (float64 for
// numbers, map[string]interface{} for structs) rather than relying on a
// direct type assertion to its element type.
func restoreSnapshot(registry *Registry, snapshot map[string][]byte) error {
	for name, data := range snapshot {
		ch, ok := registry.Get(name)
		if !ok {
			continue
		}
		cp, ok := ch.(Checkpointable)
		if !ok {
			continue
		}
		var value interface{}
		if err := json.Unmarshal(data, &value); err != nil {
			return newTopologyError("restore channel %q: %v", name, err)
		}
		if err := cp.RestoreValue(value); err != nil {
			return newTopologyError("restore channel %q: %v", name, err)
		}
	}
	return nil
}
