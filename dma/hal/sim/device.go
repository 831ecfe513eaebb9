package sim

import (
	"sync"

	"github.com/mciantyre/imxrt-hal/dma/hal"
)

// DeviceConfig describes a simulated DMA-capable peripheral.
type DeviceConfig struct {
	// Width is the element size of the data register in bytes: 1, 2, or 4.
	Width int

	// ReceiveSignal is the request line the device asserts while it has
	// received data pending and its receive request is ungated.
	ReceiveSignal uint32

	// TransmitSignal is the request line the device asserts while it has
	// transmit space and its transmit request is ungated. The simulated
	// transmit queue is unbounded, so space is always available.
	TransmitSignal uint32

	// Loopback wires the transmit data register back into the receive
	// queue, element by element.
	Loopback bool
}

// Device is a simulated peripheral: a fixed-address data register over a
// pair of element queues, with gated DMA request lines. It implements
// [hal.Peripheral], so the lpuart, lpspi, and adc drivers run over it
// unmodified.
//
// The wire side of the device is Feed (data arriving from outside) and
// Drain (data the DMA engine pushed out).
type Device struct {
	engine *Engine
	cfg    DeviceConfig

	mu        sync.Mutex
	rxq       []uint32
	txq       []uint32
	rxEnabled bool
	txEnabled bool
}

// NewDevice creates a device and binds its request lines to the engine.
func NewDevice(engine *Engine, cfg DeviceConfig) *Device {
	d := &Device{engine: engine, cfg: cfg}
	engine.BindSignal(cfg.ReceiveSignal, d.receiveLevel)
	engine.BindSignal(cfg.TransmitSignal, d.transmitLevel)
	return d
}

func (d *Device) receiveLevel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rxEnabled && len(d.rxq) > 0
}

func (d *Device) transmitLevel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txEnabled
}

// Data implements [hal.Peripheral].
func (d *Device) Data() hal.Port { return devicePort{d} }

// SetRequestEnabled implements [hal.Peripheral]. Ungating a request may
// let the engine progress, so the engine settles afterward.
func (d *Device) SetRequestEnabled(dir hal.Direction, on bool) {
	d.mu.Lock()
	if dir == hal.Receive {
		d.rxEnabled = on
	} else {
		d.txEnabled = on
	}
	d.mu.Unlock()
	d.engine.Settle()
}

// RequestEnabled implements [hal.Peripheral].
func (d *Device) RequestEnabled(dir hal.Direction) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if dir == hal.Receive {
		return d.rxEnabled
	}
	return d.txEnabled
}

// Feed places elements on the device's receive side, as if they arrived
// from the wire, and lets the engine service any pending transfer.
func (d *Device) Feed(values ...uint32) {
	d.mu.Lock()
	d.rxq = append(d.rxq, values...)
	d.mu.Unlock()
	d.engine.Settle()
}

// Drain removes and returns everything the engine has transmitted so far.
func (d *Device) Drain() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.txq
	d.txq = nil
	return out
}

// PendingReceive returns the number of received elements not yet read.
func (d *Device) PendingReceive() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rxq)
}

// devicePort is the device's data register. Load and Store run from the
// engine's service loop.
type devicePort struct {
	d *Device
}

func (p devicePort) Width() int { return p.d.cfg.Width }

func (p devicePort) Load() uint32 {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	if len(p.d.rxq) == 0 {
		return 0
	}
	v := p.d.rxq[0]
	p.d.rxq = p.d.rxq[1:]
	return v
}

func (p devicePort) Store(v uint32) {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	if p.d.cfg.Loopback {
		p.d.rxq = append(p.d.rxq, v)
		return
	}
	p.d.txq = append(p.d.txq, v)
}
