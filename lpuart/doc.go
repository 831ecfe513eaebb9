// Package lpuart exposes an LPUART instance as a byte-wide DMA endpoint.
//
// Only the DMA-facing surface lives here: the data register, the control
// bits that gate the receive and transmit DMA requests, and the
// [dma.Source]/[dma.Destination] capability implementations. Serial
// configuration is out of scope.
//
// Use a chip package to construct instances with the correct request
// signal mapping for your target, then move data with
// [Lpuart.DMAWrite] and [Lpuart.DMARead].
package lpuart
