package dma

import (
	"fmt"

	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// Signal identifies a peripheral DMA request line: the controller it
// belongs to and the request line number within that controller's mux.
// Signal values are data published by the chip packages; the DMA core has
// no peripheral-specific knowledge beyond them.
type Signal struct {
	Controller int    // DMA controller instance (0, 3, or 4 depending on chip)
	Line       uint32 // Request line number within the controller's mux
}

// ChannelConfiguration programs how a channel's service requests are
// generated. Use one of the constructors; the zero value routes nothing.
type ChannelConfiguration struct {
	mode   hal.TriggerMode
	signal uint32
}

// ConfigurationOff returns a configuration that never services the channel.
func ConfigurationOff() ChannelConfiguration {
	return ChannelConfiguration{mode: hal.TriggerOff}
}

// ConfigurationEnable returns a configuration that services the channel
// from the given peripheral request signal.
func ConfigurationEnable(signal Signal) ChannelConfiguration {
	return ChannelConfiguration{mode: hal.TriggerSignal, signal: signal.Line}
}

// ConfigurationAlwaysOn returns a configuration that services the channel
// continuously while enabled. Use it for memory-to-memory transfers.
func ConfigurationAlwaysOn() ChannelConfiguration {
	return ChannelConfiguration{mode: hal.TriggerAlwaysOn}
}

// Channel is the exclusive handle to one hardware DMA lane.
//
// Channels are minted once per index by a [Controller]; holding a Channel
// proves exclusive ownership of its register block. There is no give-back
// primitive: a channel handle is borrowed for the lifetime of the driver
// that took it, and reconfiguration across transfers happens in place.
//
// The zero value is not a valid channel.
type Channel struct {
	engine     hal.Engine
	controller *Controller
	index      int

	// Descriptor mirror, used to validate consistency before the engine
	// is touched.
	cfg         ChannelConfiguration
	cfgSet      bool
	srcSet      bool
	srcWidth    int
	srcLen      int // 0 for hardware port sides
	dstSet      bool
	dstWidth    int
	dstLen      int
	minorBytes  int
	minorPinned bool // set by an explicit SetMinorLoopBytes; Reset unpins
	iterations  int
}

// Controller returns the DMA controller instance this channel belongs to.
func (c *Channel) Controller() int { return c.engine.Instance() }

// Index returns the channel's index within its controller.
func (c *Channel) Index() int { return c.index }

// Reset clears any pending configuration and error state. It is always
// safe to call when the channel is idle.
func (c *Channel) Reset() {
	c.engine.Reset(c.index)
	c.cfg = ChannelConfiguration{}
	c.cfgSet = false
	c.srcSet = false
	c.srcWidth = 0
	c.srcLen = 0
	c.dstSet = false
	c.dstWidth = 0
	c.dstLen = 0
	c.minorBytes = 0
	c.minorPinned = false
	c.iterations = 0
}

// SetChannelConfiguration programs the channel's request routing. It must
// be set before any transfer, and persists across transfers until changed.
func (c *Channel) SetChannelConfiguration(cfg ChannelConfiguration) {
	c.cfg = cfg
	c.cfgSet = true
	c.engine.SetTrigger(c.index, cfg.mode, cfg.signal)
}

// SetSourceLinearBuffer programs the source side as an incrementing
// buffer. The buffer must stay fixed while the channel is active.
func (c *Channel) SetSourceLinearBuffer(m hal.Memory) {
	c.srcSet = true
	c.srcWidth = m.Width()
	c.srcLen = m.Len()
	c.engine.SetSourceMemory(c.index, m)
}

// SetSourceHardware programs the source side as a fixed hardware port.
func (c *Channel) SetSourceHardware(p hal.Port) {
	c.srcSet = true
	c.srcWidth = p.Width()
	c.srcLen = 0
	c.engine.SetSourcePort(c.index, p)
}

// SetDestinationLinearBuffer programs the destination side as an
// incrementing buffer. The buffer must stay fixed while the channel is
// active.
func (c *Channel) SetDestinationLinearBuffer(m hal.Memory) {
	c.dstSet = true
	c.dstWidth = m.Width()
	c.dstLen = m.Len()
	c.engine.SetDestinationMemory(c.index, m)
}

// SetDestinationHardware programs the destination side as a fixed
// hardware port.
func (c *Channel) SetDestinationHardware(p hal.Port) {
	c.dstSet = true
	c.dstWidth = p.Width()
	c.dstLen = 0
	c.engine.SetDestinationPort(c.index, p)
}

// SetMinorLoopBytes programs the number of bytes moved per service
// request. For peripheral transfers this must equal the element width:
// one element per request. An explicitly programmed count is pinned: the
// transfer constructors reject a conflicting element width instead of
// silently reprogramming it. Reset unpins.
func (c *Channel) SetMinorLoopBytes(n int) {
	c.minorBytes = n
	c.minorPinned = true
	c.engine.SetMinorLoopBytes(c.index, n)
}

// SetTransferIterations programs the major-loop iteration count: the
// total number of elements the transfer moves.
func (c *Channel) SetTransferIterations(n int) {
	c.iterations = n
	c.engine.SetIterations(c.index, n)
}

// SetDisableOnCompletion, when on, has the channel mask its own request
// line once the major loop completes, preventing spurious re-triggering.
func (c *Channel) SetDisableOnCompletion(on bool) {
	c.engine.SetDisableOnCompletion(c.index, on)
}

// SetInterruptOnCompletion, when on, raises the controller interrupt when
// the major loop completes. Pair it with the controller's waker table.
func (c *Channel) SetInterruptOnCompletion(on bool) {
	c.engine.SetInterruptOnCompletion(c.index, on)
}

// Enable validates the programmed descriptor and starts the channel.
// Inconsistent configuration fails here, before any start is issued to
// the engine.
func (c *Channel) Enable() error {
	if err := c.validate(); err != nil {
		return err
	}
	pkg.LogDebug(pkg.ComponentChannel, "channel enabled",
		"controller", c.Controller(), "channel", c.index,
		"iterations", c.iterations, "minorBytes", c.minorBytes)
	c.engine.Enable(c.index)
	return nil
}

// Disable halts the channel. The last service request may still be
// retiring when Disable returns; busy-wait on IsHardwareSignaling when
// drain must be confirmed.
func (c *Channel) Disable() {
	c.engine.Disable(c.index)
}

// IsEnabled reports whether the channel responds to service requests.
func (c *Channel) IsEnabled() bool { return c.engine.IsEnabled(c.index) }

// IsHardwareSignaling reports whether the channel's hardware request is
// still in flight. Completion and "no longer asserting a request" are not
// the same instant; callers that must guarantee register drain before
// reusing peripheral state busy-wait for this to clear.
func (c *Channel) IsHardwareSignaling() bool { return c.engine.IsActive(c.index) }

// IsComplete reports the sticky elapsed/complete flag. Only hardware sets
// it; it reads true until explicitly cleared by ClearComplete.
func (c *Channel) IsComplete() bool { return c.engine.IsComplete(c.index) }

// ClearComplete clears the sticky completion flag.
func (c *Channel) ClearComplete() { c.engine.ClearComplete(c.index) }

// IsError reports the channel's bus fault flag. The fault flag is
// distinct from the completion flag: success is only reported when
// completion is set without a concurrent fault.
func (c *Channel) IsError() bool { return c.engine.IsError(c.index) }

// ClearError clears the channel's bus fault flag.
func (c *Channel) ClearError() { c.engine.ClearError(c.index) }

// validate checks descriptor consistency. It runs before the engine is
// asked to start, so a misconfigured channel never touches hardware.
func (c *Channel) validate() error {
	fail := func(err error) error {
		return fmt.Errorf("dma: controller %d channel %d: %w", c.Controller(), c.index, err)
	}
	if !c.cfgSet || c.cfg.mode == hal.TriggerOff {
		return fail(pkg.ErrNotConfigured)
	}
	if !c.srcSet || !c.dstSet || c.minorBytes == 0 {
		return fail(pkg.ErrNotConfigured)
	}
	if c.srcWidth != c.minorBytes || c.dstWidth != c.minorBytes {
		return fail(pkg.ErrWidthMismatch)
	}
	if c.iterations == 0 {
		return fail(pkg.ErrZeroLengthBuffer)
	}
	if c.srcLen > 0 && c.srcLen != c.iterations {
		return fail(pkg.ErrIterationMismatch)
	}
	if c.dstLen > 0 && c.dstLen != c.iterations {
		return fail(pkg.ErrIterationMismatch)
	}
	return nil
}

// bindTransfer claims the channel for a transfer of n elements of the
// given width, triggered by signal. It enforces the construction-time
// error contract: busy channels, cross-controller signals, zero-length
// buffers, and pinned-width conflicts all fail before the descriptor is
// programmed. Bound channels disable on completion, so a retired major
// loop frees the channel for the next transfer.
func (c *Channel) bindTransfer(cfg ChannelConfiguration, controller, width, n int) error {
	if err := c.checkBind(cfg, controller, width, n); err != nil {
		return err
	}
	c.SetChannelConfiguration(cfg)
	if !c.minorPinned {
		c.minorBytes = width
		c.engine.SetMinorLoopBytes(c.index, width)
	}
	c.SetTransferIterations(n)
	c.SetDisableOnCompletion(true)
	return nil
}

// checkBind runs bindTransfer's checks without programming anything, so
// a two-channel transfer can reject both bindings before touching either
// register block.
func (c *Channel) checkBind(cfg ChannelConfiguration, controller, width, n int) error {
	fail := func(err error) error {
		return fmt.Errorf("dma: controller %d channel %d: %w", c.Controller(), c.index, err)
	}
	if c.engine.IsEnabled(c.index) {
		return fail(pkg.ErrChannelBusy)
	}
	if cfg.mode == hal.TriggerSignal && controller != c.Controller() {
		return fail(pkg.ErrControllerMismatch)
	}
	if n == 0 {
		return fail(pkg.ErrZeroLengthBuffer)
	}
	if c.minorPinned && c.minorBytes != width {
		return fail(pkg.ErrWidthMismatch)
	}
	return nil
}
