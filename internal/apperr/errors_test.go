package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrInvalidIndex, "index %d out of range", 7)
	if err.Error() != "index 7 out of range" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidIndex) {
		t.Error("kind not reachable through errors.Is")
	}
	if errors.Is(err, ErrParse) {
		t.Error("unexpected kind match")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, ErrInvalidIndex) {
		t.Error("kind lost through wrapping")
	}
	if Message(wrapped) != "index 7 out of range" {
		t.Errorf("Message = %q", Message(wrapped))
	}
}

func TestMessage_PlainError(t *testing.T) {
	if got := Message(errors.New("boom")); got != "boom" {
		t.Errorf("Message = %q", got)
	}
}

func TestKindName(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrParse, "x"), "parse"},
		{New(ErrNotImplemented, "x"), "not_implemented"},
		{fmt.Errorf("wrap: %w", ErrNotFound), "not_found"},
		{errors.New("other"), "internal"},
	}
	for _, tt := range tests {
		if got := KindName(tt.err); got != tt.want {
			t.Errorf("KindName(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
