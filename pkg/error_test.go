package pkg

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	// Verify all sentinel errors are distinct
	errs := []error{
		ErrZeroLengthBuffer,
		ErrWidthMismatch,
		ErrControllerMismatch,
		ErrNotConfigured,
		ErrIterationMismatch,
		ErrChannelBusy,
		ErrInvalidInstance,
		ErrChannelTaken,
		ErrNoSuchChannel,
		ErrCommandQueueFull,
		ErrFrameSize,
		ErrCancelled,
		ErrBusFault,
	}

	for i, e1 := range errs {
		if e1 == nil {
			t.Errorf("error at index %d is nil", i)
			continue
		}
		for j, e2 := range errs {
			if i != j && errors.Is(e1, e2) {
				t.Errorf("errors at index %d and %d are not distinct: %v", i, j, e1)
			}
		}
	}
}

func TestSentinelErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("dma: channel 7: %w", ErrChannelTaken)
	if !errors.Is(wrapped, ErrChannelTaken) {
		t.Errorf("errors.Is failed to match wrapped sentinel: %v", wrapped)
	}
	if errors.Is(wrapped, ErrBusFault) {
		t.Errorf("wrapped sentinel matched the wrong error: %v", wrapped)
	}
}
