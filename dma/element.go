package dma

import (
	"github.com/mciantyre/imxrt-hal/dma/hal"
)

// Element is the set of element widths the DMA engine can move per minor
// loop: a byte, a half-word, or a word. A peripheral may only be bound to
// a channel whose configured element width matches its Element type; the
// generic transfer constructors make a mismatch a compile error.
type Element interface {
	uint8 | uint16 | uint32
}

// widthOf returns the element size in bytes.
func widthOf[T Element]() int {
	var z T
	switch any(z).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	default:
		return 4
	}
}

// linearBuffer adapts a caller's slice to the engine's incrementing
// memory view. The slice header is captured by value, so the buffer's
// address and length are fixed for as long as the engine holds the view.
type linearBuffer[T Element] struct {
	s []T
}

// LinearBuffer exposes a slice as an incrementing [hal.Memory] view for
// the low-level Channel API. The transfer constructors call this
// internally; most callers never need it.
func LinearBuffer[T Element](s []T) hal.Memory {
	return linearBuffer[T]{s: s}
}

func (b linearBuffer[T]) Len() int          { return len(b.s) }
func (b linearBuffer[T]) Width() int        { return widthOf[T]() }
func (b linearBuffer[T]) Load(i int) uint32 { return uint32(b.s[i]) }
func (b linearBuffer[T]) Store(i int, v uint32) {
	b.s[i] = T(v)
}
