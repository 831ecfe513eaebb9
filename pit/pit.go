// Package pit implements the periodic interrupt timer's four channels.
//
// The PIT is the HAL's in-tree example of the sticky elapsed-flag
// contract shared with the DMA channel status: hardware sets the elapsed
// flag when the counter expires, and software must explicitly clear it
// before it can be observed false again. The usual idiom is
//
//	ch.SetLoadTimerValue(ticks)
//	ch.Enable()
//	for !ch.IsElapsed() {
//	}
//	ch.ClearElapsed()
//	ch.Disable()
//
// This model counts ticks delivered through [Pit.Advance]; a platform
// integration advances it from the real timer clock.
package pit

import "sync"

// ChannelCount is the number of timer channels in the PIT block.
const ChannelCount = 4

// Pit is one PIT register block: four independently programmed,
// periodically reloading down-counters on a shared clock.
type Pit struct {
	mu    sync.Mutex
	chans [ChannelCount]timer
}

type timer struct {
	load    uint32 // programmed reload value, already biased by -1
	counter uint32
	enabled bool
	elapsed bool // sticky until ClearElapsed
}

// Channel is the handle to one PIT timer channel.
type Channel struct {
	pit   *Pit
	index int
}

// New initializes a PIT block with all channels idle.
func New() *Pit { return &Pit{} }

// Channels returns the block's four channel handles.
func (p *Pit) Channels() [ChannelCount]*Channel {
	var out [ChannelCount]*Channel
	for i := range out {
		out[i] = &Channel{pit: p, index: i}
	}
	return out
}

// Advance delivers n clock ticks to every enabled channel. Counters that
// expire set their sticky elapsed flag and reload.
func (p *Pit) Advance(n uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.chans {
		t := &p.chans[i]
		if !t.enabled {
			continue
		}
		remaining := n
		for remaining > 0 {
			if t.counter >= remaining {
				t.counter -= remaining
				remaining = 0
			} else {
				remaining -= t.counter + 1
				t.counter = t.load
				t.elapsed = true
			}
		}
	}
}

// Index returns the channel number within the block.
func (c *Channel) Index() int { return c.index }

// SetLoadTimerValue programs the channel's period in ticks. The counter
// counts load-1 down to zero, so a period of n ticks elapses every n
// ticks.
func (c *Channel) SetLoadTimerValue(ticks uint32) {
	c.pit.mu.Lock()
	defer c.pit.mu.Unlock()
	t := &c.pit.chans[c.index]
	if ticks > 0 {
		t.load = ticks - 1
	} else {
		t.load = 0
	}
	t.counter = t.load
}

// Enable starts the channel counting.
func (c *Channel) Enable() {
	c.pit.mu.Lock()
	defer c.pit.mu.Unlock()
	t := &c.pit.chans[c.index]
	t.enabled = true
	t.counter = t.load
}

// Disable stops the channel. The elapsed flag is unaffected.
func (c *Channel) Disable() {
	c.pit.mu.Lock()
	defer c.pit.mu.Unlock()
	c.pit.chans[c.index].enabled = false
}

// IsElapsed reports the sticky elapsed flag. Only the hardware counter
// sets it; it reads true until ClearElapsed.
func (c *Channel) IsElapsed() bool {
	c.pit.mu.Lock()
	defer c.pit.mu.Unlock()
	return c.pit.chans[c.index].elapsed
}

// ClearElapsed clears the sticky elapsed flag.
func (c *Channel) ClearElapsed() {
	c.pit.mu.Lock()
	defer c.pit.mu.Unlock()
	c.pit.chans[c.index].elapsed = false
}
