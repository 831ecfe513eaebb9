package hal

// TriggerMode selects how a channel's service requests are generated.
type TriggerMode uint8

// Trigger modes.
const (
	TriggerOff      TriggerMode = iota // Channel is never serviced
	TriggerSignal                      // Serviced by a peripheral request line
	TriggerAlwaysOn                    // Serviced whenever enabled (memory-to-memory)
)

// String returns a human-readable trigger mode name.
func (m TriggerMode) String() string {
	switch m {
	case TriggerOff:
		return "off"
	case TriggerSignal:
		return "signal"
	case TriggerAlwaysOn:
		return "always-on"
	default:
		return "unknown"
	}
}

// Port is a fixed-address peripheral data register: one side of a transfer
// that does not increment. Load and Store move exactly one element; the
// element's significant bytes are the low Width() bytes of the uint32.
type Port interface {
	// Width returns the element size in bytes the register natively
	// accepts: 1, 2, or 4.
	Width() int

	// Load reads one element from the register.
	Load() uint32

	// Store writes one element to the register.
	Store(v uint32)
}

// Memory is a linearly-incrementing view of a caller buffer: the other
// side of a transfer. The engine addresses elements by index; the view's
// length and backing storage must not change while a transfer is active.
type Memory interface {
	// Len returns the number of elements in the buffer.
	Len() int

	// Width returns the element size in bytes: 1, 2, or 4.
	Width() int

	// Load reads the element at index i.
	Load(i int) uint32

	// Store writes the element at index i.
	Store(i int, v uint32)
}

// Direction identifies a peripheral DMA request line.
type Direction uint8

// Peripheral request directions.
const (
	Receive  Direction = iota // Peripheral has data for memory
	Transmit                  // Peripheral accepts data from memory
)

// Peripheral is the register surface a DMA-capable peripheral driver sits
// on: a fixed-address data register plus the control bits that gate its
// DMA request lines. Platform vendors implement this for real hardware;
// the sim package implements it for tests.
type Peripheral interface {
	// Data returns the peripheral's data register.
	Data() Port

	// SetRequestEnabled gates the peripheral's DMA request line for the
	// given direction. While disabled, the peripheral never asserts the
	// corresponding request signal.
	SetRequestEnabled(dir Direction, on bool)

	// RequestEnabled reports whether the request line is gated on.
	RequestEnabled(dir Direction) bool
}

// Engine defines the register-level interface to one DMA controller.
//
// Each of the controller's channels exposes a transfer control descriptor
// (source, destination, minor-loop byte count, major-loop iteration count)
// and a handful of status flags. The complete flag is sticky: hardware
// sets it when the major loop retires and only an explicit ClearComplete
// clears it. The active flag reports that the channel is still servicing
// a request; completion and "no longer asserting" are distinct conditions.
//
// Engine implementations perform no validation. Callers are expected to
// program a consistent descriptor before Enable; the dma package's Channel
// type enforces that contract before any Engine register is written.
type Engine interface {
	// Instance returns the controller number (0, 3, or 4 depending on chip).
	Instance() int

	// Channels returns the number of hardware channels.
	Channels() int

	// Reset returns the channel to a known-idle state: disabled, trigger
	// off, descriptor cleared, all flags cleared.
	Reset(ch int)

	// SetTrigger programs how the channel's service requests are
	// generated. The signal argument is only meaningful for TriggerSignal.
	SetTrigger(ch int, mode TriggerMode, signal uint32)

	// SetSourceMemory programs the source side as an incrementing buffer.
	SetSourceMemory(ch int, m Memory)

	// SetSourcePort programs the source side as a fixed hardware port.
	SetSourcePort(ch int, p Port)

	// SetDestinationMemory programs the destination side as an
	// incrementing buffer.
	SetDestinationMemory(ch int, m Memory)

	// SetDestinationPort programs the destination side as a fixed
	// hardware port.
	SetDestinationPort(ch int, p Port)

	// SetMinorLoopBytes programs the number of bytes moved per service
	// request.
	SetMinorLoopBytes(ch int, n int)

	// SetIterations programs the major-loop iteration count: the number
	// of minor loops in a complete transfer.
	SetIterations(ch int, n int)

	// SetDisableOnCompletion, when on, masks the channel's request line
	// once the major loop completes, preventing spurious re-triggering.
	SetDisableOnCompletion(ch int, on bool)

	// SetInterruptOnCompletion, when on, raises the controller interrupt
	// when the major loop completes.
	SetInterruptOnCompletion(ch int, on bool)

	// Enable starts the channel: it will respond to service requests.
	Enable(ch int)

	// Disable halts the channel. Any in-flight minor loop finishes; the
	// caller observes drain via IsActive.
	Disable(ch int)

	// IsEnabled reports whether the channel responds to service requests.
	IsEnabled(ch int) bool

	// IsActive reports whether the channel is currently signaling: a
	// transfer has started and has not yet fully retired.
	IsActive(ch int) bool

	// IsComplete reports the sticky major-loop completion flag.
	IsComplete(ch int) bool

	// ClearComplete clears the sticky completion flag.
	ClearComplete(ch int)

	// IsInterrupt reports the channel's pending interrupt flag.
	IsInterrupt(ch int) bool

	// ClearInterrupt acknowledges the channel's interrupt.
	ClearInterrupt(ch int)

	// IsError reports the channel's bus fault flag.
	IsError(ch int) bool

	// ClearError clears the channel's bus fault flag.
	ClearError(ch int)

	// SetInterruptHandler installs the controller-wide interrupt handler.
	// The engine invokes it with a channel index whenever that channel's
	// interrupt asserts. Handlers run in interrupt context: keep them
	// short. The engine delivers the callback with its internal state
	// released, so the handler may acknowledge through ClearInterrupt.
	SetInterruptHandler(fn func(ch int))
}
