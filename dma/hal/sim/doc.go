// Package sim implements an in-memory model of an eDMA controller and its
// peripherals for hardware-free testing and simulation.
//
// [Engine] implements [hal.Engine] over plain Go state instead of
// memory-mapped registers. Each channel carries a transfer control
// descriptor (trigger routing, source/destination, minor-loop bytes,
// major-loop iterations) and the status flags the DMA core observes:
// sticky completion, in-flight, interrupt, and fault.
//
// # Service model
//
// Request lines are levels. A peripheral binds a level callback per line
// with [Engine.BindSignal]; whenever an enable or a level changes, the
// engine services every routed, enabled channel until quiescence, one
// minor loop per service. This reproduces the property the DMA core is
// built around: hardware progresses independently of software polling.
//
// Tests that need deterministic stepping route a channel to an unbound
// line and drive it with [Engine.Pulse], which retires exactly one minor
// loop per call. [Engine.Services] exposes the retired service-request
// count, and [Engine.InjectFault] arms a bus error.
//
// # Peripherals
//
// [Device] is a generic simulated peripheral implementing
// [hal.Peripheral]: a fixed-address data register over receive/transmit
// queues with gated request lines. Configure it with a loopback to test
// full-duplex transfers without a wire.
package sim
