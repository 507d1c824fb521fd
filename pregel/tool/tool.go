// Package tool supplies ready-made Tool implementations for processes that
// let a model call out to external systems (grounded on the teacher's
// graph/tool package, shipped alongside its graph engine rather than inside
// it).
package tool

import "context"

// Tool is something a model-backed process can invoke by name, with
// structured input and output.
type Tool interface {
	// Name is the identifier a model's tool call refers to.
	Name() string

	// Call executes the tool. Input and output are key-value pairs;
	// implementations should validate required parameters and respect
	// ctx cancellation.
	Call(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error)
}
