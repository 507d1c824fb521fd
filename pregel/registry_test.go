package pregel

import "testing"

func TestRegistry_GetAndHas(t *testing.T) {
	reg, err := NewRegistry(map[string]AnyChannel{"a": &fakeLastValue{}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Teardown()

	if !reg.Has("a") {
		t.Error("expected Has(\"a\") true")
	}
	if reg.Has("b") {
		t.Error("expected Has(\"b\") false")
	}
	if _, ok := reg.Get("b"); ok {
		t.Error("expected Get on an unknown name to report ok=false")
	}
}

func TestRegistry_NamesReturnsEveryChannel(t *testing.T) {
	reg, err := NewRegistry(map[string]AnyChannel{"a": &fakeLastValue{}, "b": &fakeLastValue{}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Teardown()

	names := reg.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
}

type setupTeardownChannel struct {
	fakeLastValue
	setupCalled    bool
	teardownCalled bool
	setupErr       error
}

func (c *setupTeardownChannel) Setup() error {
	c.setupCalled = true
	return c.setupErr
}

func (c *setupTeardownChannel) Teardown() error {
	c.teardownCalled = true
	return nil
}

func TestRegistry_RunsSetupOnConstruction(t *testing.T) {
	ch := &setupTeardownChannel{}
	reg, err := NewRegistry(map[string]AnyChannel{"a": ch})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Teardown()

	if !ch.setupCalled {
		t.Error("expected Setup to be called during NewRegistry")
	}
}

func TestRegistry_TeardownRunsOnEveryChannel(t *testing.T) {
	ch := &setupTeardownChannel{}
	reg, err := NewRegistry(map[string]AnyChannel{"a": ch})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	reg.Teardown()

	if !ch.teardownCalled {
		t.Error("expected Teardown to be called")
	}
}

func TestRegistry_SetupErrorTearsDownAndFails(t *testing.T) {
	ok := &setupTeardownChannel{}
	bad := &setupTeardownChannel{setupErr: errBoom}

	_, err := NewRegistry(map[string]AnyChannel{"ok": ok, "bad": bad})
	if err == nil {
		t.Fatal("expected an error when a channel's Setup fails")
	}
	if !ok.teardownCalled || !bad.teardownCalled {
		t.Error("expected Teardown to be called on every channel after a Setup failure")
	}
}

var errBoom = &topologyTestError{"boom"}

type topologyTestError struct{ msg string }

func (e *topologyTestError) Error() string { return e.msg }
