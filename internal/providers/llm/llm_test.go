package llm

import (
	"context"
	"errors"
	"testing"
)

func TestCollect(t *testing.T) {
	m := NewMock("hello world")
	got, err := Collect(context.Background(), m, "prompt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
	if calls := m.Calls(); len(calls) != 1 || calls[0] != "prompt" {
		t.Errorf("calls = %v", calls)
	}
}

func TestCollectError(t *testing.T) {
	m := NewMock()
	m.Err = errors.New("quota exceeded")
	if _, err := Collect(context.Background(), m, "prompt"); err == nil {
		t.Fatal("expected error")
	}
}

func TestMockRepeatsLastResponse(t *testing.T) {
	m := NewMock("only")
	for i := 0; i < 2; i++ {
		got, err := Collect(context.Background(), m, "p")
		if err != nil || got != "only" {
			t.Fatalf("call %d: got %q, %v", i, got, err)
		}
	}
}
