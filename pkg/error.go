package pkg

import "errors"

// Configuration errors, surfaced synchronously when a transfer or driver
// object is constructed. No hardware state has been touched when one of
// these is returned.
var (
	// ErrZeroLengthBuffer indicates a transfer was constructed over an
	// empty buffer.
	ErrZeroLengthBuffer = errors.New("zero-length buffer")

	// ErrWidthMismatch indicates the element width of a buffer or
	// capability does not match the channel's minor-loop configuration.
	ErrWidthMismatch = errors.New("element width mismatch")

	// ErrControllerMismatch indicates a peripheral's request signal belongs
	// to a different DMA controller than the channel it was bound to.
	ErrControllerMismatch = errors.New("peripheral and channel belong to different DMA controllers")

	// ErrNotConfigured indicates a channel was enabled before its routing
	// or descriptor was programmed.
	ErrNotConfigured = errors.New("channel not configured")

	// ErrIterationMismatch indicates the major-loop iteration count does
	// not equal the buffer's element count.
	ErrIterationMismatch = errors.New("iteration count does not match buffer length")

	// ErrChannelBusy indicates the channel is already running a transfer.
	ErrChannelBusy = errors.New("channel busy")

	// ErrInvalidInstance indicates a peripheral instance number with no
	// DMA request mapping on the selected chip family.
	ErrInvalidInstance = errors.New("no DMA request mapping for peripheral instance")
)

// Resource errors.
var (
	// ErrChannelTaken indicates the channel at the requested index has
	// already been handed out by the registry.
	ErrChannelTaken = errors.New("channel already taken")

	// ErrNoSuchChannel indicates a channel index beyond the controller's
	// channel count.
	ErrNoSuchChannel = errors.New("no such channel")
)

// Peripheral-side setup errors.
var (
	// ErrCommandQueueFull indicates the peripheral's transaction queue has
	// no space for a new command.
	ErrCommandQueueFull = errors.New("command queue full")

	// ErrFrameSize indicates an unsupported bus transaction frame size.
	ErrFrameSize = errors.New("invalid frame size")
)

// Cancellation.
var (
	// ErrCancelled indicates a transfer was abandoned before its
	// completion flag was observed. The cancellation guard has already
	// halted the channel and disabled the peripheral request.
	ErrCancelled = errors.New("transfer cancelled")
)

// Hardware faults.
var (
	// ErrBusFault indicates the DMA engine recorded a bus error during an
	// armed transfer. The fault is fatal to the transfer: data may be
	// partially moved with no way to resume, so there is no retry. The
	// channel must be reset before it is used again.
	ErrBusFault = errors.New("bus fault during transfer")
)
