package channels

import "encoding/json"

// coerce converts value into T, accepting both a direct T (the common case,
// when a process writes through UpdateAny/RestoreValue in-process) and a
// generic JSON-decoded shape (float64, map[string]interface{}, []interface{})
// produced when a Checkpointer round-trips a snapshot through JSON. It
// re-marshals and unmarshals in the latter case rather than failing outright.
func coerce[T any](value interface{}) (T, error) {
	if v, ok := value.(T); ok {
		return v, nil
	}
	var zero T
	data, err := json.Marshal(value)
	if err != nil {
		return zero, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
