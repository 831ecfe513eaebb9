// Package hal defines the Hardware Abstraction Layer interface for the
// DMA core.
//
// The HAL provides the register-level operations the [dma] package needs
// to drive one eDMA controller, without tying the channel and transfer
// logic to a particular chip or to real hardware at all. Platform vendors
// implement [Engine] over memory-mapped registers; the
// [github.com/mciantyre/imxrt-hal/dma/hal/sim] package implements it as an
// in-memory model for tests and examples.
//
// # Transfer endpoints
//
// A transfer always pairs an incrementing side with a fixed side (or, for
// memory-to-memory moves, two incrementing sides):
//
//   - [Memory] is a linearly-incrementing element buffer view
//   - [Port] is a fixed-address peripheral data register
//
// This is the core addressing-mode asymmetry between system memory and a
// peripheral register: the buffer side steps one element per minor loop
// while the port side is read or written in place.
//
// # Peripheral backends
//
// [Peripheral] is the small register surface a DMA-capable peripheral
// driver requires: its data register and the control bits gating its DMA
// request lines. The lpuart and lpspi drivers are written against this
// interface.
package hal
