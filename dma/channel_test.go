package dma_test

import (
	"errors"
	"testing"

	"github.com/mciantyre/imxrt-hal/dma"
	"github.com/mciantyre/imxrt-hal/dma/hal/sim"
	"github.com/mciantyre/imxrt-hal/pkg"
)

func takeChannel(t *testing.T, ctrl *dma.Controller, i int) *dma.Channel {
	t.Helper()
	ch, err := ctrl.Channel(i)
	if err != nil {
		t.Fatalf("Channel(%d) failed: %v", i, err)
	}
	return ch
}

func TestEnableUnconfigured(t *testing.T) {
	ctrl := dma.New(sim.New(0, 32))
	ch := takeChannel(t, ctrl, 0)

	if err := ch.Enable(); !errors.Is(err, pkg.ErrNotConfigured) {
		t.Errorf("Enable on fresh channel: err = %v, want ErrNotConfigured", err)
	}
	if ch.IsEnabled() {
		t.Error("failed Enable left the channel enabled")
	}
}

func TestEnableMissingSides(t *testing.T) {
	ctrl := dma.New(sim.New(0, 32))
	ch := takeChannel(t, ctrl, 0)

	src := []uint8{1, 2, 3, 4}
	ch.SetChannelConfiguration(dma.ConfigurationAlwaysOn())
	ch.SetSourceLinearBuffer(dma.LinearBuffer(src))
	ch.SetMinorLoopBytes(1)
	ch.SetTransferIterations(len(src))

	if err := ch.Enable(); !errors.Is(err, pkg.ErrNotConfigured) {
		t.Errorf("Enable without a destination: err = %v, want ErrNotConfigured", err)
	}
}

func TestEnableWidthMismatch(t *testing.T) {
	ctrl := dma.New(sim.New(0, 32))
	ch := takeChannel(t, ctrl, 0)

	src := []uint8{1, 2, 3, 4}
	dst := make([]uint8, 4)
	ch.SetChannelConfiguration(dma.ConfigurationAlwaysOn())
	ch.SetSourceLinearBuffer(dma.LinearBuffer(src))
	ch.SetDestinationLinearBuffer(dma.LinearBuffer(dst))
	ch.SetMinorLoopBytes(2)
	ch.SetTransferIterations(len(src))

	if err := ch.Enable(); !errors.Is(err, pkg.ErrWidthMismatch) {
		t.Errorf("Enable with 2-byte minor loop over byte buffers: err = %v, want ErrWidthMismatch", err)
	}
}

func TestEnableIterationMismatch(t *testing.T) {
	ctrl := dma.New(sim.New(0, 32))
	ch := takeChannel(t, ctrl, 0)

	src := []uint8{1, 2, 3, 4}
	dst := make([]uint8, 4)
	ch.SetChannelConfiguration(dma.ConfigurationAlwaysOn())
	ch.SetSourceLinearBuffer(dma.LinearBuffer(src))
	ch.SetDestinationLinearBuffer(dma.LinearBuffer(dst))
	ch.SetMinorLoopBytes(1)

	ch.SetTransferIterations(3)
	if err := ch.Enable(); !errors.Is(err, pkg.ErrIterationMismatch) {
		t.Errorf("Enable with 3 iterations over 4-element buffers: err = %v, want ErrIterationMismatch", err)
	}

	ch.SetTransferIterations(0)
	if err := ch.Enable(); !errors.Is(err, pkg.ErrZeroLengthBuffer) {
		t.Errorf("Enable with 0 iterations: err = %v, want ErrZeroLengthBuffer", err)
	}
}

func TestAlwaysOnRunsToCompletion(t *testing.T) {
	ctrl := dma.New(sim.New(0, 32))
	ch := takeChannel(t, ctrl, 4)

	src := []uint32{10, 20, 30}
	dst := make([]uint32, 3)
	ch.SetChannelConfiguration(dma.ConfigurationAlwaysOn())
	ch.SetSourceLinearBuffer(dma.LinearBuffer(src))
	ch.SetDestinationLinearBuffer(dma.LinearBuffer(dst))
	ch.SetMinorLoopBytes(4)
	ch.SetTransferIterations(len(src))

	if err := ch.Enable(); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	for i, want := range src {
		if dst[i] != want {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want)
		}
	}

	// The completion flag is sticky until explicitly cleared.
	if !ch.IsComplete() {
		t.Error("IsComplete() = false after the major loop finished")
	}
	if !ch.IsComplete() {
		t.Error("IsComplete() flipped without ClearComplete")
	}
	ch.ClearComplete()
	if ch.IsComplete() {
		t.Error("IsComplete() = true after ClearComplete")
	}

	if !ch.IsEnabled() {
		t.Error("channel disabled itself without disable-on-completion")
	}
	ch.Disable()
	if ch.IsEnabled() {
		t.Error("IsEnabled() = true after Disable")
	}
}

func TestResetClearsConfiguration(t *testing.T) {
	ctrl := dma.New(sim.New(0, 32))
	ch := takeChannel(t, ctrl, 0)

	src := []uint8{1, 2}
	dst := make([]uint8, 2)
	ch.SetChannelConfiguration(dma.ConfigurationAlwaysOn())
	ch.SetSourceLinearBuffer(dma.LinearBuffer(src))
	ch.SetDestinationLinearBuffer(dma.LinearBuffer(dst))
	ch.SetMinorLoopBytes(1)
	ch.SetTransferIterations(2)

	ch.Reset()
	if err := ch.Enable(); !errors.Is(err, pkg.ErrNotConfigured) {
		t.Errorf("Enable after Reset: err = %v, want ErrNotConfigured", err)
	}
}
