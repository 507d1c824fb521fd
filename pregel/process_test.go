package pregel

import "testing"

func TestSubscription_RawIsValid(t *testing.T) {
	s := Subscription{Raw: "input"}
	if err := s.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !s.IsRaw() {
		t.Error("expected IsRaw() true")
	}
	if got := s.Names(); len(got) != 1 || got[0] != "input" {
		t.Errorf("expected [\"input\"], got %v", got)
	}
}

func TestSubscription_RecordIsValid(t *testing.T) {
	s := Subscription{Record: map[string]string{"x": "chanX", "y": "chanY"}}
	if err := s.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if s.IsRaw() {
		t.Error("expected IsRaw() false")
	}
	names := s.Names()
	if len(names) != 2 {
		t.Errorf("expected 2 names, got %v", names)
	}
}

func TestSubscription_MixedFormIsInvalid(t *testing.T) {
	s := Subscription{Raw: "input", Record: map[string]string{"x": "chanX"}}
	if err := s.validate(); err == nil {
		t.Fatal("expected an error for a subscription mixing keyless and keyed forms")
	}
}

func TestSubscription_EmptyRecordIsInvalid(t *testing.T) {
	s := Subscription{Record: map[string]string{}}
	if err := s.validate(); err == nil {
		t.Fatal("expected an error for a subscription with no channels")
	}
}

func TestSubscription_EmptyKeyIsInvalid(t *testing.T) {
	s := Subscription{Record: map[string]string{"": "chanX"}}
	if err := s.validate(); err == nil {
		t.Fatal("expected an error for an empty local key mixed with keyed entries")
	}
}

func TestSubscription_EmptyChannelNameIsInvalid(t *testing.T) {
	s := Subscription{Record: map[string]string{"x": ""}}
	if err := s.validate(); err == nil {
		t.Fatal("expected an error for an empty channel name")
	}
}

func TestInvokeProcess_ProcessKind(t *testing.T) {
	p := InvokeProcess{Name: "p"}
	if p.processKind() != "invoke" {
		t.Errorf("expected \"invoke\", got %q", p.processKind())
	}
}

func TestBatchProcess_ValidateRequiresChannel(t *testing.T) {
	p := BatchProcess{Name: "p"}
	if err := p.validate(); err == nil {
		t.Fatal("expected an error for a batch process with no channel")
	}
	p.Channel = "items"
	if err := p.validate(); err != nil {
		t.Errorf("expected no error once Channel is set, got %v", err)
	}
}

func TestBatchProcess_ProcessKind(t *testing.T) {
	p := BatchProcess{Name: "p", Channel: "items"}
	if p.processKind() != "batch" {
		t.Errorf("expected \"batch\", got %q", p.processKind())
	}
}
