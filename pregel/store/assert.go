package store

import "github.com/agzarifis/pregel-go/pregel"

// These assertions document that every backend here satisfies
// pregel.Checkpointer structurally, without pregel itself importing this
// package (see pregel/checkpoint.go).
var (
	_ pregel.Checkpointer = (*MemoryStore)(nil)
	_ pregel.Checkpointer = (*SQLiteStore)(nil)
	_ pregel.Checkpointer = (*MySQLStore)(nil)
)
