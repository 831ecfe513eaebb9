// Package imxrt1180 publishes the 1180 family's DMA configuration data.
// The family carries two eDMA controllers, DMA3 and DMA4, with disjoint
// request routing. Only LPUART1 is mapped here, and it works with DMA3
// alone. The family's LPSPI and ADC request routing is not yet mapped,
// so this package exports no constructors for them.
package imxrt1180

import (
	"fmt"

	"github.com/mciantyre/imxrt-hal/dma"
	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/lpuart"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// Controller layout. DMA3 serves low-power peripherals, DMA4 the
// high-bandwidth ones.
const (
	DMA3Instance     = 3
	DMA3ChannelCount = 32

	DMA4Instance     = 4
	DMA4ChannelCount = 64
)

// LPUART1 request lines on DMA3.
const (
	lpuart1RxLine = 17
	lpuart1TxLine = 16
)

// DMA3 initializes a channel registry over the DMA3 controller. The
// engine must model controller 3 with [DMA3ChannelCount] channels.
func DMA3(engine hal.Engine) *dma.Controller {
	return dma.New(engine)
}

// DMA4 initializes a channel registry over the DMA4 controller. The
// engine must model controller 4 with [DMA4ChannelCount] channels.
func DMA4(engine hal.Engine) *dma.Controller {
	return dma.New(engine)
}

// LpuartReceiveSignal returns the receive request signal for LPUART n.
// Only LPUART1 is mapped, on DMA3.
func LpuartReceiveSignal(n int) (dma.Signal, error) {
	if n != 1 {
		return dma.Signal{}, fmt.Errorf("imxrt1180: lpuart%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMA3Instance, Line: lpuart1RxLine}, nil
}

// LpuartTransmitSignal returns the transmit request signal for LPUART n.
// Only LPUART1 is mapped, on DMA3.
func LpuartTransmitSignal(n int) (dma.Signal, error) {
	if n != 1 {
		return dma.Signal{}, fmt.Errorf("imxrt1180: lpuart%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMA3Instance, Line: lpuart1TxLine}, nil
}

// Lpuart builds the DMA endpoint for LPUART n over its register surface.
// The endpoint works with DMA3 channels only.
func Lpuart(regs hal.Peripheral, n int) (*lpuart.Lpuart, error) {
	rx, err := LpuartReceiveSignal(n)
	if err != nil {
		return nil, err
	}
	tx, err := LpuartTransmitSignal(n)
	if err != nil {
		return nil, err
	}
	return lpuart.New(regs, n, rx, tx)
}
