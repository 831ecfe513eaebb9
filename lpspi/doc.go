// Package lpspi exposes an LPSPI instance as a word-wide DMA endpoint
// with full-duplex support.
//
// Bus activity is sequenced by transaction commands: callers (or the
// DMAWrite/DMARead/DMAFullDuplex helpers) enqueue a [Transaction] before
// a DMA transfer is armed, so the shift register knows the frame size and
// which direction to mask. A full command queue surfaces as a
// configuration error from the constructing call, never mid-transfer.
//
// The [dma.Bidirectional] implementation asserts that one buffer may feed
// transmit and capture receive simultaneously: within each minor loop the
// buffer element is read out before the received element is stored.
package lpspi
