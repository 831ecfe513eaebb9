// Package imxrt1170 publishes the 1170 family's DMA configuration data:
// one eDMA controller and the DMAMUX request mappings for its twelve
// LPUART and six LPSPI instances. The family routes ADC conversions
// through ADC_ETC rather than DMAMUX, so no ADC signals are exported.
package imxrt1170

import (
	"fmt"

	"github.com/mciantyre/imxrt-hal/dma"
	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/lpspi"
	"github.com/mciantyre/imxrt-hal/lpuart"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// DMA controller layout.
const (
	DMAInstance     = 0
	DMAChannelCount = 32
)

// DMAMUX request mappings, indexed by instance-1.
var (
	lpuartRxLines = [12]uint32{9, 11, 13, 15, 17, 19, 21, 23, 25, 27, 29, 31}
	lpuartTxLines = [12]uint32{8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30}

	lpspiRxLines = [6]uint32{36, 38, 40, 42, 44, 46}
	lpspiTxLines = [6]uint32{37, 39, 41, 43, 45, 47}
)

// DMA initializes the channel registry over the family's controller. The
// engine must model controller 0 with [DMAChannelCount] channels.
func DMA(engine hal.Engine) *dma.Controller {
	return dma.New(engine)
}

// LpuartReceiveSignal returns the receive request signal for LPUART n
// (1-12).
func LpuartReceiveSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(lpuartRxLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1170: lpuart%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: lpuartRxLines[n-1]}, nil
}

// LpuartTransmitSignal returns the transmit request signal for LPUART n
// (1-12).
func LpuartTransmitSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(lpuartTxLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1170: lpuart%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: lpuartTxLines[n-1]}, nil
}

// LpspiReceiveSignal returns the receive request signal for LPSPI n (1-6).
func LpspiReceiveSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(lpspiRxLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1170: lpspi%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: lpspiRxLines[n-1]}, nil
}

// LpspiTransmitSignal returns the transmit request signal for LPSPI n
// (1-6).
func LpspiTransmitSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(lpspiTxLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1170: lpspi%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: lpspiTxLines[n-1]}, nil
}

// Lpuart builds the DMA endpoint for LPUART n (1-12) over its register
// surface.
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

// Lpspi builds the DMA endpoint for LPSPI n (1-6) over its register
// surface.
func Lpspi(regs hal.Peripheral, n int) (*lpspi.Lpspi, error) {
	rx, err := LpspiReceiveSignal(n)
	if err != nil {
		return nil, err
	}
	tx, err := LpspiTransmitSignal(n)
	if err != nil {
		return nil, err
	}
	return lpspi.New(regs, n, rx, tx)
}
