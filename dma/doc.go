// Package dma implements the asynchronous DMA transfer subsystem for the
// i.MX RT family: exclusive hardware channels, peripheral capabilities,
// and suspendable transfers over a single hardware data-mover engine.
//
// It is chip-agnostic and interacts with hardware via the [hal.Engine]
// interface defined in the [github.com/mciantyre/imxrt-hal/dma/hal]
// package. Chip families contribute only data: per-peripheral request
// signal tables and controller counts, published by the chip packages.
//
// # Architecture
//
//   - [Controller] is the channel registry: it owns the fixed pool of
//     hardware channels and hands out each exclusive [Channel] handle
//     exactly once
//   - [Channel] holds one lane's transfer configuration and its
//     start/stop/status operations
//   - [Source], [Destination], and [Bidirectional] are the capabilities a
//     peripheral driver implements to act as a DMA endpoint
//   - [Transfer] couples channels, capabilities, and a caller buffer into
//     one suspendable operation, built by [Write], [Read], [FullDuplex],
//     or [Memcpy]
//
// # Ownership
//
// The hardware channel is a single mutable global resource that must
// never be aliased, and the buffer handed to the engine must stay fixed
// and unshared until the hardware finishes or is halted. Both invariants
// are enforced by ownership transfer rather than runtime locks: the
// registry's take-once discipline proves channel exclusivity by
// construction, and a transfer exclusively borrows its buffer from
// construction until completion is observed or [Transfer.Close] returns.
//
// # The poll contract
//
// A transfer is lazy: nothing is armed until the first [Transfer.Poll].
// That first poll ungates the peripheral request and enables the
// channel(s); hardware then progresses whether or not software keeps
// looking. Completion is a sticky per-channel flag, set by hardware and
// cleared exactly once by the poll that observes it. Callers may poll
// zero or many times, busy-poll to completion, or use [Transfer.Await]
// for interrupt-driven wake; the paths are equivalent.
//
// # Cancellation
//
// [Transfer.Close] is the cancellation guard: run it on every exit path
// (defer it immediately after construction). If the transfer has not
// completed, Close halts the channel, waits for the in-flight indicator
// to drain, and gates off the peripheral request before the buffer borrow
// ends. Skipping Close while abandoning a pending transfer leaves the
// engine writing through a buffer the caller may already be reusing;
// there is no memory placement of the Transfer value that makes that
// safe.
//
// # Errors
//
// Configuration problems (zero-length buffers, element-width conflicts,
// cross-controller signals, busy or untaken channels, peripheral command
// queues with no space) surface synchronously from the constructing call,
// before any register is written. A bus fault during an armed transfer is
// fatal: it is reported once, is never confused with completion, and the
// channel must be [Channel.Reset] before reuse. This core has no retry
// and no timeout primitive; race a transfer against an external timer and
// apply Close yourself if you need one.
package dma
