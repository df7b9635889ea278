package models

import "fmt"

// Index is a position in the displayed person list. The zero value refers to
// the first element.
type Index struct {
	zeroBased int
}

// FromOneBased returns the Index for the 1-based position n.
func FromOneBased(n int) (Index, error) {
	if n < 1 {
		return Index{}, fmt.Errorf("index must be positive, got %d", n)
	}
	return Index{zeroBased: n - 1}, nil
}

// FromZeroBased returns the Index for the 0-based position n.
func FromZeroBased(n int) (Index, error) {
	if n < 0 {
		return Index{}, fmt.Errorf("index must not be negative, got %d", n)
	}
	return Index{zeroBased: n}, nil
}

func (i Index) ZeroBased() int { return i.zeroBased }

func (i Index) OneBased() int { return i.zeroBased + 1 }

func (i Index) String() string { return fmt.Sprintf("%d", i.OneBased()) }
