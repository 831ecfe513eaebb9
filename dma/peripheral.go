package dma

import (
	"fmt"

	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// Address is a typed view of a fixed peripheral register address. The
// type parameter pins the element width the register natively accepts, so
// a byte-wide capability cannot be bound to a word-wide buffer.
type Address[T Element] struct {
	port hal.Port
}

// AddressOf wraps a peripheral data register in a typed address.
// Peripheral drivers call this when implementing [Source] or
// [Destination]; the register's width must match T.
func AddressOf[T Element](p hal.Port) Address[T] {
	return Address[T]{port: p}
}

// Source is the capability a peripheral driver implements to declare that
// a DMA engine may read elements of type T from it: a request signal, a
// readable fixed register address, and hooks to gate the peripheral's
// receive-DMA-request line.
//
// Which peripheral instances may implement Source on which controllers is
// chip-family data published by the chip packages, not logic in this core.
type Source[T Element] interface {
	// SourceSignal returns the request line that asserts when the
	// peripheral has data to read.
	SourceSignal() Signal

	// SourceAddress returns the fixed address the engine reads from.
	SourceAddress() Address[T]

	// EnableSource ungates the peripheral's receive DMA request.
	EnableSource()

	// DisableSource gates the peripheral's receive DMA request.
	DisableSource()
}

// Destination is the capability a peripheral driver implements to declare
// that a DMA engine may write elements of type T to it. It mirrors
// [Source] for the transmit direction.
type Destination[T Element] interface {
	// DestinationSignal returns the request line that asserts when the
	// peripheral has space to accept data.
	DestinationSignal() Signal

	// DestinationAddress returns the fixed address the engine writes to.
	DestinationAddress() Address[T]

	// EnableDestination ungates the peripheral's transmit DMA request.
	EnableDestination()

	// DisableDestination gates the peripheral's transmit DMA request.
	DisableDestination()
}

// Bidirectional is the capability asserting that a single buffer may be
// safely used for simultaneous reads and writes against the peripheral,
// with buffer reads always ordered before buffer writes within a minor
// loop. Full-duplex serial-style peripherals implement it.
type Bidirectional[T Element] interface {
	Source[T]
	Destination[T]

	// FullDuplexCapable is a marker: implementing it is the peripheral's
	// assertion that the shared-buffer ordering above holds in hardware.
	FullDuplexCapable()
}

// Write uses channel to send buffer to a peripheral destination. The
// returned transfer completes when every element of buffer has been
// written to the peripheral.
//
// Configuration problems (zero-length buffer, busy channel, pinned-width
// conflict, cross-controller signal) fail here, before any hardware is
// armed. Callers must drive the transfer with Poll or Await and must
// Close it on every exit path.
func Write[T Element](channel *Channel, buffer []T, periph Destination[T]) (*Transfer, error) {
	sig := periph.DestinationSignal()
	if err := channel.bindTransfer(ConfigurationEnable(sig), sig.Controller, widthOf[T](), len(buffer)); err != nil {
		return nil, err
	}
	channel.SetSourceLinearBuffer(LinearBuffer(buffer))
	channel.SetDestinationHardware(periph.DestinationAddress().port)
	if err := channel.validate(); err != nil {
		return nil, err
	}
	return newTransfer(part{
		ch:      channel,
		enable:  periph.EnableDestination,
		disable: periph.DisableDestination,
	}), nil
}

// Read uses channel to fill buffer from a peripheral source. The returned
// transfer completes when buffer is full. The error contract matches
// [Write].
func Read[T Element](channel *Channel, periph Source[T], buffer []T) (*Transfer, error) {
	sig := periph.SourceSignal()
	if err := channel.bindTransfer(ConfigurationEnable(sig), sig.Controller, widthOf[T](), len(buffer)); err != nil {
		return nil, err
	}
	channel.SetSourceHardware(periph.SourceAddress().port)
	channel.SetDestinationLinearBuffer(LinearBuffer(buffer))
	if err := channel.validate(); err != nil {
		return nil, err
	}
	return newTransfer(part{
		ch:      channel,
		enable:  periph.EnableSource,
		disable: periph.DisableSource,
	}), nil
}

// FullDuplex uses two channels to simultaneously send buffer to the
// peripheral and overwrite it with the elements received. The transfer
// completes when every element has been sent and buffer has been refilled.
//
// The receive channel is armed before the transmit channel, so the
// peripheral's incoming data always has a serviced destination; within
// the shared buffer, reads stay ordered before writes per the
// [Bidirectional] contract.
func FullDuplex[T Element](rx, tx *Channel, periph Bidirectional[T], buffer []T) (*Transfer, error) {
	rxSig := periph.SourceSignal()
	txSig := periph.DestinationSignal()
	width := widthOf[T]()

	// Check both bindings before programming either channel: a
	// configuration error must leave all hardware untouched.
	if err := rx.checkBind(ConfigurationEnable(rxSig), rxSig.Controller, width, len(buffer)); err != nil {
		return nil, err
	}
	if err := tx.checkBind(ConfigurationEnable(txSig), txSig.Controller, width, len(buffer)); err != nil {
		return nil, err
	}

	if err := rx.bindTransfer(ConfigurationEnable(rxSig), rxSig.Controller, width, len(buffer)); err != nil {
		return nil, err
	}
	rx.SetSourceHardware(periph.SourceAddress().port)
	rx.SetDestinationLinearBuffer(LinearBuffer(buffer))
	if err := rx.validate(); err != nil {
		return nil, err
	}

	if err := tx.bindTransfer(ConfigurationEnable(txSig), txSig.Controller, width, len(buffer)); err != nil {
		return nil, err
	}
	tx.SetSourceLinearBuffer(LinearBuffer(buffer))
	tx.SetDestinationHardware(periph.DestinationAddress().port)
	if err := tx.validate(); err != nil {
		return nil, err
	}

	return newTransfer(
		part{ch: rx, enable: periph.EnableSource, disable: periph.DisableSource},
		part{ch: tx, enable: periph.EnableDestination, disable: periph.DisableDestination},
	), nil
}

// Memcpy uses channel to copy src into dst without any peripheral
// involvement, using the always-on channel configuration. Both slices
// must have the same nonzero length.
func Memcpy[T Element](channel *Channel, src, dst []T) (*Transfer, error) {
	if len(src) != len(dst) {
		return nil, fmt.Errorf("dma: controller %d channel %d: %w",
			channel.Controller(), channel.Index(), pkg.ErrIterationMismatch)
	}
	if err := channel.bindTransfer(ConfigurationAlwaysOn(), channel.Controller(), widthOf[T](), len(src)); err != nil {
		return nil, err
	}
	channel.SetSourceLinearBuffer(LinearBuffer(src))
	channel.SetDestinationLinearBuffer(LinearBuffer(dst))
	if err := channel.validate(); err != nil {
		return nil, err
	}
	return newTransfer(part{ch: channel}), nil
}
