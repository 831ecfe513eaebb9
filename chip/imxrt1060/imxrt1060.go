// Package imxrt1060 publishes the 1060 family's DMA configuration data:
// one eDMA controller and the DMAMUX request mappings for its LPUART,
// LPSPI, and ADC instances.
//
// Capability availability is data, not logic: this package only exports
// constructors for peripheral-instance/direction pairs the family maps.
// All mapped peripherals work with the single controller.
package imxrt1060

import (
	"fmt"

	"github.com/mciantyre/imxrt-hal/adc"
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
	lpuartRxLines = [8]uint32{3, 67, 5, 69, 7, 71, 9, 73}
	lpuartTxLines = [8]uint32{2, 66, 4, 68, 6, 70, 8, 72}

	lpspiRxLines = [4]uint32{13, 77, 15, 79}
	lpspiTxLines = [4]uint32{14, 78, 16, 80}

	adcLines = [2]uint32{24, 88}
)

// DMA initializes the channel registry over the family's controller. The
// engine must model controller 0 with [DMAChannelCount] channels.
func DMA(engine hal.Engine) *dma.Controller {
	return dma.New(engine)
}

// LpuartReceiveSignal returns the receive request signal for LPUART n
// (1-8).
func LpuartReceiveSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(lpuartRxLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1060: lpuart%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: lpuartRxLines[n-1]}, nil
}

// LpuartTransmitSignal returns the transmit request signal for LPUART n
// (1-8).
func LpuartTransmitSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(lpuartTxLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1060: lpuart%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: lpuartTxLines[n-1]}, nil
}

// LpspiReceiveSignal returns the receive request signal for LPSPI n (1-4).
func LpspiReceiveSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(lpspiRxLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1060: lpspi%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: lpspiRxLines[n-1]}, nil
}

// LpspiTransmitSignal returns the transmit request signal for LPSPI n
// (1-4).
func LpspiTransmitSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(lpspiTxLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1060: lpspi%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: lpspiTxLines[n-1]}, nil
}

// AdcSignal returns the result request signal for ADC n (1-2).
func AdcSignal(n int) (dma.Signal, error) {
	if n < 1 || n > len(adcLines) {
		return dma.Signal{}, fmt.Errorf("imxrt1060: adc%d: %w", n, pkg.ErrInvalidInstance)
	}
	return dma.Signal{Controller: DMAInstance, Line: adcLines[n-1]}, nil
}

// Lpuart builds the DMA endpoint for LPUART n (1-8) over its register
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

// Lpspi builds the DMA endpoint for LPSPI n (1-4) over its register
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

// Adc builds the DMA source adapter for ADC n (1-2) over its register
// surface.
func Adc(regs hal.Peripheral, n int) (*adc.DmaSource, error) {
	rx, err := AdcSignal(n)
	if err != nil {
		return nil, err
	}
	return adc.New(regs, n, rx)
}
