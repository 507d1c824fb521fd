package channels

import "testing"

type coerceTestStruct struct {
	Name  string
	Count int
}

func TestCoerce_DirectTypeAssertion(t *testing.T) {
	got, err := coerce[int](7)
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestCoerce_JSONFallbackForStruct(t *testing.T) {
	// Simulates a struct value that round-tripped through
	// encoding/json.Unmarshal into interface{}, landing as
	// map[string]interface{} rather than the original struct.
	decoded := map[string]interface{}{"Name": "a", "Count": float64(3)}

	got, err := coerce[coerceTestStruct](decoded)
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if got.Name != "a" || got.Count != 3 {
		t.Errorf("expected {a 3}, got %+v", got)
	}
}

func TestCoerce_JSONFallbackForInt(t *testing.T) {
	got, err := coerce[int](float64(42))
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}
