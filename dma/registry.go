package dma

import (
	"fmt"
	"sync"

	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// Controller is the channel registry for one DMA controller: it owns the
// fixed-size pool of hardware channels and hands out each channel's
// exclusive handle exactly once.
//
// The take-once discipline is the core's aliasing guard: no two live
// handles to the same index can exist, so two transfers can never drive
// the same hardware lane. There is no runtime lock around the register
// block itself; exclusivity is proven by construction.
//
// The controller also owns the per-channel waker table used by
// interrupt-driven completion. If you are wiring a real interrupt
// controller, route the DMA interrupt to [Controller.OnInterrupt].
type Controller struct {
	engine hal.Engine

	mu     sync.Mutex
	taken  []bool
	wakers []func()
}

// New initializes the registry over an engine, resetting every channel to
// a known-idle hardware state and installing the controller's interrupt
// handler.
func New(engine hal.Engine) *Controller {
	n := engine.Channels()
	c := &Controller{
		engine: engine,
		taken:  make([]bool, n),
		wakers: make([]func(), n),
	}
	for i := 0; i < n; i++ {
		engine.Reset(i)
	}
	engine.SetInterruptHandler(c.OnInterrupt)
	pkg.LogInfo(pkg.ComponentRegistry, "controller initialized",
		"controller", engine.Instance(), "channels", n)
	return c
}

// Instance returns the controller number.
func (c *Controller) Instance() int { return c.engine.Instance() }

// ChannelCount returns the number of hardware channels in the pool.
func (c *Controller) ChannelCount() int { return c.engine.Channels() }

// Channel takes exclusive possession of the channel at index i. The slot
// is left empty: a second take of the same index fails with
// [pkg.ErrChannelTaken] and never aliases the first handle. Callers can
// probe availability by checking the error.
func (c *Controller) Channel(i int) (*Channel, error) {
	if i < 0 || i >= c.engine.Channels() {
		return nil, fmt.Errorf("dma: controller %d channel %d: %w",
			c.engine.Instance(), i, pkg.ErrNoSuchChannel)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.taken[i] {
		return nil, fmt.Errorf("dma: controller %d channel %d: %w",
			c.engine.Instance(), i, pkg.ErrChannelTaken)
	}
	c.taken[i] = true
	pkg.LogDebug(pkg.ComponentRegistry, "channel taken",
		"controller", c.engine.Instance(), "channel", i)
	return &Channel{engine: c.engine, controller: c, index: i}, nil
}

// OnInterrupt is the controller's interrupt service routine. It
// acknowledges the channel's interrupt flag and invokes the waker
// registered for that channel, if any. The completion flag itself is left
// set: whichever observer (poller or woken awaiter) reads it first
// reports completion, and the other observation is a no-op.
func (c *Controller) OnInterrupt(ch int) {
	if c.engine.IsInterrupt(ch) {
		c.engine.ClearInterrupt(ch)
	}
	c.mu.Lock()
	wake := c.wakers[ch]
	c.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// setWaker registers (or, with nil, removes) the wake callback invoked
// when channel ch's completion interrupt fires. Waker-table mutations are
// guarded because the interrupt context and the polling context both
// touch it.
func (c *Controller) setWaker(ch int, fn func()) {
	c.mu.Lock()
	c.wakers[ch] = fn
	c.mu.Unlock()
}

// takeWaker removes and returns channel ch's wake callback, or nil when
// none is registered. Retirement paths that preempt the completion
// interrupt use it to hand the wake to the caller.
func (c *Controller) takeWaker(ch int) func() {
	c.mu.Lock()
	wake := c.wakers[ch]
	c.wakers[ch] = nil
	c.mu.Unlock()
	return wake
}
