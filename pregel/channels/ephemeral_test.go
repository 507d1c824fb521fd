package channels

import (
	"errors"
	"testing"

	"github.com/agzarifis/pregel-go/pregel"
)

func TestEphemeral_KeepsOnlyLastWrite(t *testing.T) {
	c := NewEphemeral[int]()
	_ = c.Update([]int{1, 2, 3})

	got, err := c.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestEphemeral_EmptyBeforeUpdate(t *testing.T) {
	c := NewEphemeral[int]()
	if _, err := c.Get(); !errors.Is(err, pregel.ErrEmptyChannel) {
		t.Fatalf("expected ErrEmptyChannel, got %v", err)
	}
}
