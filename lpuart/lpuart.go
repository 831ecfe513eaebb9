package lpuart

import (
	"fmt"

	"github.com/mciantyre/imxrt-hal/dma"
	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// Lpuart is the DMA-facing surface of one LPUART instance: a byte-wide
// data register, the control bits gating its DMA requests, and the
// request signals the chip family assigns to this instance.
//
// It implements [dma.Source] and [dma.Destination] at byte width. The
// serial configuration itself (baud, framing, pins) is outside this
// module; construct instances through a chip package, which supplies the
// correct signal mapping.
type Lpuart struct {
	regs     hal.Peripheral
	instance int
	rx       dma.Signal
	tx       dma.Signal
}

// New builds an LPUART DMA endpoint over its register surface. The data
// register must be byte-wide; rx and tx are the instance's request
// signals from the chip family's mapping table.
func New(regs hal.Peripheral, instance int, rx, tx dma.Signal) (*Lpuart, error) {
	if regs.Data().Width() != 1 {
		return nil, fmt.Errorf("lpuart%d: data register width %d: %w",
			instance, regs.Data().Width(), pkg.ErrWidthMismatch)
	}
	return &Lpuart{regs: regs, instance: instance, rx: rx, tx: tx}, nil
}

// Instance returns the peripheral instance number.
func (u *Lpuart) Instance() int { return u.instance }

// EnableDMAReceive ungates the receive DMA request.
func (u *Lpuart) EnableDMAReceive() { u.regs.SetRequestEnabled(hal.Receive, true) }

// DisableDMAReceive gates the receive DMA request.
func (u *Lpuart) DisableDMAReceive() { u.regs.SetRequestEnabled(hal.Receive, false) }

// EnableDMATransmit ungates the transmit DMA request.
func (u *Lpuart) EnableDMATransmit() { u.regs.SetRequestEnabled(hal.Transmit, true) }

// DisableDMATransmit gates the transmit DMA request.
func (u *Lpuart) DisableDMATransmit() { u.regs.SetRequestEnabled(hal.Transmit, false) }

// SourceSignal implements [dma.Source].
func (u *Lpuart) SourceSignal() dma.Signal { return u.rx }

// SourceAddress implements [dma.Source].
func (u *Lpuart) SourceAddress() dma.Address[uint8] {
	return dma.AddressOf[uint8](u.regs.Data())
}

// EnableSource implements [dma.Source].
func (u *Lpuart) EnableSource() { u.EnableDMAReceive() }

// DisableSource implements [dma.Source].
func (u *Lpuart) DisableSource() { u.DisableDMAReceive() }

// DestinationSignal implements [dma.Destination].
func (u *Lpuart) DestinationSignal() dma.Signal { return u.tx }

// DestinationAddress implements [dma.Destination].
func (u *Lpuart) DestinationAddress() dma.Address[uint8] {
	return dma.AddressOf[uint8](u.regs.Data())
}

// EnableDestination implements [dma.Destination].
func (u *Lpuart) EnableDestination() { u.EnableDMATransmit() }

// DisableDestination implements [dma.Destination].
func (u *Lpuart) DisableDestination() { u.DisableDMATransmit() }

// DMAWrite uses a DMA channel to write data to the UART peripheral.
//
// The transfer completes when all data in buffer has been written to the
// UART. Defer the transfer's Close.
func (u *Lpuart) DMAWrite(channel *dma.Channel, buffer []byte) (*dma.Transfer, error) {
	return dma.Write(channel, buffer, u)
}

// DMARead uses a DMA channel to read data from the UART peripheral.
//
// The transfer completes when buffer is filled. Defer the transfer's
// Close.
func (u *Lpuart) DMARead(channel *dma.Channel, buffer []byte) (*dma.Transfer, error) {
	return dma.Read(channel, u, buffer)
}
