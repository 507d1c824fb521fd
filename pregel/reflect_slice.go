package pregel

import "reflect"

// sliceViaReflection converts any concrete slice value (e.g. []string,
// []int, the []T returned by channels.Topic[T].Get) into []interface{}, so
// the Planner can treat a Batch process's channel value uniformly regardless
// of its concrete element type. Returns false if val is not a slice.
func sliceViaReflection(val interface{}) ([]interface{}, bool) {
	rv := reflect.ValueOf(val)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	n := rv.Len()
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
