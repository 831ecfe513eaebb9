package lpspi

import (
	"fmt"
	"sync"

	"github.com/mciantyre/imxrt-hal/dma"
	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// Frame size limits, in bits, for one bus transaction.
const (
	MinFrameSize = 8
	MaxFrameSize = 4096
)

// commandQueueDepth is the number of transaction commands the transmit
// FIFO can hold.
const commandQueueDepth = 4

// Transaction describes one SPI bus command: the frame size and the data
// masks that suppress one direction of the shift register.
type Transaction struct {
	// FrameSize is the transaction length in bits.
	FrameSize int

	// ReceiveDataMask discards incoming data instead of latching it.
	// Set it for transmit-only transfers.
	ReceiveDataMask bool

	// TransmitDataMask shifts out idle bits instead of draining the
	// transmit register. Set it for receive-only transfers.
	TransmitDataMask bool
}

// NewTransaction creates a transaction of the given frame size, in bits.
func NewTransaction(frameSize int) (Transaction, error) {
	if frameSize < MinFrameSize || frameSize > MaxFrameSize {
		return Transaction{}, fmt.Errorf("lpspi: frame size %d bits: %w", frameSize, pkg.ErrFrameSize)
	}
	return Transaction{FrameSize: frameSize}, nil
}

// Lpspi is the DMA-facing surface of one LPSPI instance: a word-wide data
// register, the request gates, the instance's request signals, and the
// transaction command queue that sequences bus activity ahead of DMA.
//
// It implements [dma.Source], [dma.Destination], and [dma.Bidirectional]
// at word width: reads from a shared buffer are ordered before writes
// within a minor loop, so one buffer serves both directions of a
// full-duplex transfer.
type Lpspi struct {
	regs     hal.Peripheral
	instance int
	rx       dma.Signal
	tx       dma.Signal

	mu    sync.Mutex
	queue []Transaction
}

// New builds an LPSPI DMA endpoint over its register surface. The data
// register must be word-wide.
func New(regs hal.Peripheral, instance int, rx, tx dma.Signal) (*Lpspi, error) {
	if regs.Data().Width() != 4 {
		return nil, fmt.Errorf("lpspi%d: data register width %d: %w",
			instance, regs.Data().Width(), pkg.ErrWidthMismatch)
	}
	return &Lpspi{regs: regs, instance: instance, rx: rx, tx: tx}, nil
}

// Instance returns the peripheral instance number.
func (s *Lpspi) Instance() int { return s.instance }

// BusTransaction builds the transaction covering a transfer of words
// elements. The whole buffer is one frame; buffers beyond
// [MaxFrameSize]/32 words need multiple transactions.
func (s *Lpspi) BusTransaction(words int) (Transaction, error) {
	return NewTransaction(32 * words)
}

// EnqueueTransaction places a transaction command in the transmit FIFO.
// The caller must confirm space first; see WaitForTransmitFIFOSpace.
func (s *Lpspi) EnqueueTransaction(t Transaction) {
	s.mu.Lock()
	s.queue = append(s.queue, t)
	s.mu.Unlock()
	pkg.LogDebug(pkg.ComponentLpspi, "transaction enqueued",
		"instance", s.instance, "frameSize", t.FrameSize)
}

// WaitForTransmitFIFOSpace confirms the command queue can accept another
// transaction. On hardware this spins on the FIFO status; here a full
// queue reports [pkg.ErrCommandQueueFull] so callers surface it as a
// configuration error before any DMA is armed.
func (s *Lpspi) WaitForTransmitFIFOSpace() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) >= commandQueueDepth {
		return fmt.Errorf("lpspi%d: %w", s.instance, pkg.ErrCommandQueueFull)
	}
	return nil
}

// RetireTransaction removes the oldest pending transaction, as the bus
// side does when a command finishes. It reports false if none is pending.
func (s *Lpspi) RetireTransaction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return false
	}
	s.queue = s.queue[1:]
	return true
}

// PendingTransactions returns the number of queued commands.
func (s *Lpspi) PendingTransactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// SourceSignal implements [dma.Source].
func (s *Lpspi) SourceSignal() dma.Signal { return s.rx }

// SourceAddress implements [dma.Source].
func (s *Lpspi) SourceAddress() dma.Address[uint32] {
	return dma.AddressOf[uint32](s.regs.Data())
}

// EnableSource implements [dma.Source].
func (s *Lpspi) EnableSource() { s.regs.SetRequestEnabled(hal.Receive, true) }

// DisableSource implements [dma.Source].
func (s *Lpspi) DisableSource() { s.regs.SetRequestEnabled(hal.Receive, false) }

// DestinationSignal implements [dma.Destination].
func (s *Lpspi) DestinationSignal() dma.Signal { return s.tx }

// DestinationAddress implements [dma.Destination].
func (s *Lpspi) DestinationAddress() dma.Address[uint32] {
	return dma.AddressOf[uint32](s.regs.Data())
}

// EnableDestination implements [dma.Destination].
func (s *Lpspi) EnableDestination() { s.regs.SetRequestEnabled(hal.Transmit, true) }

// DisableDestination implements [dma.Destination].
func (s *Lpspi) DisableDestination() { s.regs.SetRequestEnabled(hal.Transmit, false) }

// FullDuplexCapable implements [dma.Bidirectional]: the shift register
// reads a shared buffer element before the received element overwrites it.
func (s *Lpspi) FullDuplexCapable() {}

// DMAWrite uses a DMA channel to write data to the LPSPI peripheral.
//
// The transfer completes when all data in buffer has been written. The
// bus transaction is enqueued once the transfer constructs, before it is
// returned or armed; any failure (oversized frame, full command queue,
// channel rejection) leaves the queue and the hardware untouched. Defer
// the transfer's Close.
func (s *Lpspi) DMAWrite(channel *dma.Channel, buffer []uint32) (*dma.Transfer, error) {
	transaction, err := s.BusTransaction(len(buffer))
	if err != nil {
		return nil, err
	}
	transaction.ReceiveDataMask = true

	if err := s.WaitForTransmitFIFOSpace(); err != nil {
		return nil, err
	}
	xfer, err := dma.Write(channel, buffer, s)
	if err != nil {
		return nil, err
	}
	s.EnqueueTransaction(transaction)
	return xfer, nil
}

// DMARead uses a DMA channel to read data from the LPSPI peripheral.
//
// The transfer completes when buffer is filled. The error contract
// matches [Lpspi.DMAWrite]. Defer the transfer's Close.
func (s *Lpspi) DMARead(channel *dma.Channel, buffer []uint32) (*dma.Transfer, error) {
	transaction, err := s.BusTransaction(len(buffer))
	if err != nil {
		return nil, err
	}
	transaction.TransmitDataMask = true

	if err := s.WaitForTransmitFIFOSpace(); err != nil {
		return nil, err
	}
	xfer, err := dma.Read(channel, s, buffer)
	if err != nil {
		return nil, err
	}
	s.EnqueueTransaction(transaction)
	return xfer, nil
}

// DMAFullDuplex uses two DMA channels to simultaneously read and write
// from one buffer and the LPSPI peripheral.
//
// The transfer completes when every element of buffer has been sent and
// buffer has been refilled with the elements received. Defer the
// transfer's Close.
func (s *Lpspi) DMAFullDuplex(rx, tx *dma.Channel, buffer []uint32) (*dma.Transfer, error) {
	transaction, err := s.BusTransaction(len(buffer))
	if err != nil {
		return nil, err
	}

	if err := s.WaitForTransmitFIFOSpace(); err != nil {
		return nil, err
	}
	xfer, err := dma.FullDuplex(rx, tx, s, buffer)
	if err != nil {
		return nil, err
	}
	s.EnqueueTransaction(transaction)
	return xfer, nil
}
