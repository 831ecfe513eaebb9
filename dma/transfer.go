package dma

import (
	"context"
	"fmt"
	"sync"

	"github.com/mciantyre/imxrt-hal/pkg"
)

// part is one channel's share of a transfer, with the peripheral request
// hooks bound at construction. Memory-to-memory parts have nil hooks.
type part struct {
	ch      *Channel
	enable  func()
	disable func()
	done    bool // completion observed for this channel
	intrOn  bool // we enabled interrupt-on-completion and still own it
}

// Transfer is a suspendable DMA operation: one (or, for full duplex, two)
// exclusively owned channels, the bound peripheral capabilities, and the
// caller's buffer, driven to completion cooperatively.
//
// The buffer handed to [Write], [Read], [FullDuplex], or [Memcpy] is
// exclusively borrowed by the transfer: it must not be read, reused, or
// allowed to go out of scope until Poll or Await reports completion, or
// until Close returns. Close is the cancellation guard: it must run on
// every exit path, so the idiom is
//
//	xfer, err := console.DMAWrite(channel, data)
//	if err != nil {
//	    return err
//	}
//	defer xfer.Close()
//	err = xfer.Await(ctx)
//
// Abandoning a Transfer without Close leaves the engine running against
// the buffer; no placement of the Transfer value in memory changes that,
// so there is no safe way to leak one.
type Transfer struct {
	mu      sync.Mutex
	parts   [2]part
	np      int
	started bool
	// completed means completion (or a fault) was observed and the
	// buffer borrow has ended.
	completed bool
	closed    bool
	err       error
}

func newTransfer(parts ...part) *Transfer {
	t := &Transfer{np: len(parts)}
	copy(t.parts[:], parts)
	return t
}

// Poll drives the transfer and reports whether it has finished. It
// returns false while the transfer is pending; once it returns true,
// every later call returns the same result without side effects.
//
// The first poll arms the hardware: it ungates the peripheral request and
// enables the channel(s). Nothing moves before that, and hardware
// progress after it does not depend on further polling. Completion is
// detected from the sticky per-channel complete flag; on the poll that
// observes it, the flag is cleared and the peripheral request is gated
// off, exactly once.
//
// A nil error with done=true means the buffer transferred in full. A
// [pkg.ErrBusFault] is fatal: the transfer will not be retried and the
// channel must be Reset before reuse.
func (t *Transfer) Poll() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.poll()
}

func (t *Transfer) poll() (bool, error) {
	if t.completed || t.closed {
		return true, t.err
	}
	if !t.started {
		t.started = true
		for i := 0; i < t.np; i++ {
			p := &t.parts[i]
			if p.enable != nil {
				p.enable()
			}
			if err := p.ch.Enable(); err != nil {
				// The descriptor validated at construction, so the channel
				// was reprogrammed out from under the transfer.
				t.err = err
				t.completed = true
				t.halt()
				return true, t.err
			}
		}
		pkg.LogDebug(pkg.ComponentTransfer, "transfer armed",
			"controller", t.parts[0].ch.Controller(), "channel", t.parts[0].ch.Index(),
			"channels", t.np)
	}
	all := true
	for i := 0; i < t.np; i++ {
		p := &t.parts[i]
		if p.done {
			continue
		}
		if p.ch.IsError() {
			t.err = fmt.Errorf("dma: controller %d channel %d: %w",
				p.ch.Controller(), p.ch.Index(), pkg.ErrBusFault)
			t.completed = true
			t.halt()
			pkg.LogError(pkg.ComponentTransfer, "bus fault",
				"controller", p.ch.Controller(), "channel", p.ch.Index())
			return true, t.err
		}
		if !p.ch.IsComplete() {
			all = false
			continue
		}
		p.ch.ClearComplete()
		if p.intrOn {
			p.ch.SetInterruptOnCompletion(false)
			p.intrOn = false
		}
		if p.disable != nil {
			p.disable()
		}
		p.done = true
		// A poll can retire the part before the completion interrupt is
		// delivered; wake any blocked Await so it re-polls.
		if wake := p.ch.controller.takeWaker(p.ch.Index()); wake != nil {
			wake()
		}
	}
	if all {
		t.completed = true
		pkg.LogDebug(pkg.ComponentTransfer, "transfer complete",
			"controller", t.parts[0].ch.Controller(), "channel", t.parts[0].ch.Index())
	}
	return all, nil
}

// Await blocks until the transfer completes, the context is cancelled, or
// a fault is observed. It is the interrupt-driven equivalent of a Poll
// loop: a waker is registered with the channel's controller, completion
// interrupts are enabled, and the transfer re-polls on every wake. Both
// paths read the same sticky flag, so whichever observes it first reports
// completion and the other observation is a no-op.
//
// A context cancellation returns ctx.Err() without halting the hardware;
// the caller's deferred Close applies the cancellation guard. There is no
// timeout primitive in this core beyond what the context provides.
func (t *Transfer) Await(ctx context.Context) error {
	wake := make(chan struct{}, 1)
	notify := func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	}

	t.mu.Lock()
	if !t.completed && !t.closed {
		for i := 0; i < t.np; i++ {
			p := &t.parts[i]
			p.ch.controller.setWaker(p.ch.Index(), notify)
			p.ch.SetInterruptOnCompletion(true)
			p.intrOn = true
		}
	}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		for i := 0; i < t.np; i++ {
			p := &t.parts[i]
			p.ch.controller.setWaker(p.ch.Index(), nil)
			if p.intrOn {
				p.ch.SetInterruptOnCompletion(false)
				p.intrOn = false
			}
		}
		t.mu.Unlock()
	}()

	for {
		done, err := t.Poll()
		if done {
			return err
		}
		select {
		case <-wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close is the cancellation guard. If the transfer has not completed,
// Close synchronously halts the channel(s), busy-waits for the hardware's
// in-flight indicator to clear, gates off the peripheral request(s), and
// clears any sticky completion state. Only then is the buffer's
// exclusive borrow considered ended. Close is unconditional and
// idempotent: after observed completion it is a no-op, and a second Close
// does nothing.
func (t *Transfer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	if t.completed {
		return
	}
	t.err = pkg.ErrCancelled
	if t.started {
		t.halt()
		pkg.LogDebug(pkg.ComponentTransfer, "transfer cancelled",
			"controller", t.parts[0].ch.Controller(), "channel", t.parts[0].ch.Index())
	}
}

// halt force-stops every channel, confirms drain, and gates off the
// peripheral requests for parts that have not completed. Callers hold
// t.mu.
func (t *Transfer) halt() {
	for i := 0; i < t.np; i++ {
		t.parts[i].ch.Disable()
	}
	for i := 0; i < t.np; i++ {
		for t.parts[i].ch.IsHardwareSignaling() {
			// Wait for the last service request to retire.
		}
	}
	for i := 0; i < t.np; i++ {
		p := &t.parts[i]
		if p.done {
			continue
		}
		if p.disable != nil {
			p.disable()
		}
		if p.ch.IsComplete() {
			p.ch.ClearComplete()
		}
		if p.intrOn {
			p.ch.SetInterruptOnCompletion(false)
			p.intrOn = false
		}
		// The halted channel will never raise its interrupt; a blocked
		// Await must be woken here so it observes the cancellation.
		if wake := p.ch.controller.takeWaker(p.ch.Index()); wake != nil {
			wake()
		}
		p.done = true
	}
}
