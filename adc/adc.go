// Package adc exposes an ADC instance's result register as a half-word
// DMA source.
//
// Only the DMA adapter lives here: conversions, channel selection, and
// calibration are out of scope. Construct adapters through a chip package
// that has an ADC request mapping.
package adc

import (
	"fmt"

	"github.com/mciantyre/imxrt-hal/dma"
	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// DmaSource adapts one ADC instance's result register into a
// [dma.Source] at half-word width. Each conversion completion asserts the
// request line, letting a channel bank results without software in the
// loop.
type DmaSource struct {
	regs     hal.Peripheral
	instance int
	rx       dma.Signal
}

// New builds the DMA source adapter over the ADC's register surface. The
// result register must be half-word wide.
func New(regs hal.Peripheral, instance int, rx dma.Signal) (*DmaSource, error) {
	if regs.Data().Width() != 2 {
		return nil, fmt.Errorf("adc%d: result register width %d: %w",
			instance, regs.Data().Width(), pkg.ErrWidthMismatch)
	}
	return &DmaSource{regs: regs, instance: instance, rx: rx}, nil
}

// Instance returns the peripheral instance number.
func (a *DmaSource) Instance() int { return a.instance }

// SourceSignal implements [dma.Source].
func (a *DmaSource) SourceSignal() dma.Signal { return a.rx }

// SourceAddress implements [dma.Source].
func (a *DmaSource) SourceAddress() dma.Address[uint16] {
	return dma.AddressOf[uint16](a.regs.Data())
}

// EnableSource implements [dma.Source].
func (a *DmaSource) EnableSource() { a.regs.SetRequestEnabled(hal.Receive, true) }

// DisableSource implements [dma.Source].
func (a *DmaSource) DisableSource() { a.regs.SetRequestEnabled(hal.Receive, false) }

// DMARead uses a DMA channel to bank conversion results into buffer.
//
// The transfer completes when buffer is filled. Defer the transfer's
// Close.
func (a *DmaSource) DMARead(channel *dma.Channel, buffer []uint16) (*dma.Transfer, error) {
	return dma.Read(channel, a, buffer)
}
