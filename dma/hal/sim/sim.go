package sim

import (
	"sync"

	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// channel mirrors one hardware lane's transfer control descriptor and
// status flags.
type channel struct {
	trigMode hal.TriggerMode
	signal   uint32

	srcMem  hal.Memory
	srcPort hal.Port
	dstMem  hal.Memory
	dstPort hal.Port
	srcIdx  int
	dstIdx  int

	minorBytes int
	biter      int
	citer      int

	dreq       bool // disable request on completion
	intrEnable bool

	enabled bool
	started bool
	done    bool // sticky until ClearComplete
	intr    bool
	fault   bool

	faultArmed bool   // test knob: next service faults instead of moving data
	services   uint64 // minor loops retired since Reset
}

// Engine is an in-memory model of one eDMA controller. It implements
// [hal.Engine] for tests and examples: channels hold descriptor state,
// peripheral request lines are levels supplied by bound callbacks, and
// the engine services enabled channels to quiescence whenever a level or
// an enable changes, so hardware progresses even while software is not
// looking.
type Engine struct {
	mu       sync.Mutex
	instance int
	chans    []channel
	levels   map[uint32]func() bool
	handler  func(ch int)
}

// New creates a simulated controller with the given instance number and
// channel count.
func New(instance, channels int) *Engine {
	return &Engine{
		instance: instance,
		chans:    make([]channel, channels),
		levels:   make(map[uint32]func() bool),
	}
}

// Instance implements [hal.Engine].
func (e *Engine) Instance() int { return e.instance }

// Channels implements [hal.Engine].
func (e *Engine) Channels() int { return len(e.chans) }

// Reset implements [hal.Engine].
func (e *Engine) Reset(ch int) {
	e.mu.Lock()
	e.chans[ch] = channel{}
	e.mu.Unlock()
}

// SetTrigger implements [hal.Engine].
func (e *Engine) SetTrigger(ch int, mode hal.TriggerMode, signal uint32) {
	e.mu.Lock()
	e.chans[ch].trigMode = mode
	e.chans[ch].signal = signal
	e.mu.Unlock()
}

// SetSourceMemory implements [hal.Engine].
func (e *Engine) SetSourceMemory(ch int, m hal.Memory) {
	e.mu.Lock()
	e.chans[ch].srcMem = m
	e.chans[ch].srcPort = nil
	e.chans[ch].srcIdx = 0
	e.mu.Unlock()
}

// SetSourcePort implements [hal.Engine].
func (e *Engine) SetSourcePort(ch int, p hal.Port) {
	e.mu.Lock()
	e.chans[ch].srcPort = p
	e.chans[ch].srcMem = nil
	e.chans[ch].srcIdx = 0
	e.mu.Unlock()
}

// SetDestinationMemory implements [hal.Engine].
func (e *Engine) SetDestinationMemory(ch int, m hal.Memory) {
	e.mu.Lock()
	e.chans[ch].dstMem = m
	e.chans[ch].dstPort = nil
	e.chans[ch].dstIdx = 0
	e.mu.Unlock()
}

// SetDestinationPort implements [hal.Engine].
func (e *Engine) SetDestinationPort(ch int, p hal.Port) {
	e.mu.Lock()
	e.chans[ch].dstPort = p
	e.chans[ch].dstMem = nil
	e.chans[ch].dstIdx = 0
	e.mu.Unlock()
}

// SetMinorLoopBytes implements [hal.Engine].
func (e *Engine) SetMinorLoopBytes(ch int, n int) {
	e.mu.Lock()
	e.chans[ch].minorBytes = n
	e.mu.Unlock()
}

// SetIterations implements [hal.Engine].
func (e *Engine) SetIterations(ch int, n int) {
	e.mu.Lock()
	e.chans[ch].biter = n
	e.chans[ch].citer = n
	e.chans[ch].started = false
	e.chans[ch].srcIdx = 0
	e.chans[ch].dstIdx = 0
	e.mu.Unlock()
}

// SetDisableOnCompletion implements [hal.Engine].
func (e *Engine) SetDisableOnCompletion(ch int, on bool) {
	e.mu.Lock()
	e.chans[ch].dreq = on
	e.mu.Unlock()
}

// SetInterruptOnCompletion implements [hal.Engine].
func (e *Engine) SetInterruptOnCompletion(ch int, on bool) {
	e.mu.Lock()
	e.chans[ch].intrEnable = on
	e.mu.Unlock()
}

// Enable implements [hal.Engine]. Enabling may complete the whole major
// loop immediately if the routed request line is already asserted.
func (e *Engine) Enable(ch int) {
	e.mu.Lock()
	e.chans[ch].enabled = true
	fired := e.settleLocked()
	handler := e.handler
	e.mu.Unlock()
	fire(handler, fired)
}

// Disable implements [hal.Engine].
func (e *Engine) Disable(ch int) {
	e.mu.Lock()
	e.chans[ch].enabled = false
	e.mu.Unlock()
}

// IsEnabled implements [hal.Engine].
func (e *Engine) IsEnabled(ch int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chans[ch].enabled
}

// IsActive implements [hal.Engine]: the channel has started its major
// loop and has requests left to retire.
func (e *Engine) IsActive(ch int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := &e.chans[ch]
	return c.enabled && c.started && c.citer > 0
}

// IsComplete implements [hal.Engine].
func (e *Engine) IsComplete(ch int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chans[ch].done
}

// ClearComplete implements [hal.Engine].
func (e *Engine) ClearComplete(ch int) {
	e.mu.Lock()
	e.chans[ch].done = false
	e.mu.Unlock()
}

// IsInterrupt implements [hal.Engine].
func (e *Engine) IsInterrupt(ch int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chans[ch].intr
}

// ClearInterrupt implements [hal.Engine].
func (e *Engine) ClearInterrupt(ch int) {
	e.mu.Lock()
	e.chans[ch].intr = false
	e.mu.Unlock()
}

// IsError implements [hal.Engine].
func (e *Engine) IsError(ch int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chans[ch].fault
}

// ClearError implements [hal.Engine].
func (e *Engine) ClearError(ch int) {
	e.mu.Lock()
	e.chans[ch].fault = false
	e.mu.Unlock()
}

// SetInterruptHandler implements [hal.Engine].
func (e *Engine) SetInterruptHandler(fn func(ch int)) {
	e.mu.Lock()
	e.handler = fn
	e.mu.Unlock()
}

// BindSignal associates a request line with a level callback. The engine
// samples the level whenever it looks for serviceable channels; the
// callback must not call back into the engine.
func (e *Engine) BindSignal(signal uint32, level func() bool) {
	e.mu.Lock()
	e.levels[signal] = level
	e.mu.Unlock()
}

// Pulse asserts one service request on the given line: every enabled
// channel routed to it retires exactly one minor loop. Tests use unbound
// lines with Pulse to step a transfer deterministically.
func (e *Engine) Pulse(signal uint32) {
	e.mu.Lock()
	var fired []int
	for i := range e.chans {
		c := &e.chans[i]
		if c.enabled && c.trigMode == hal.TriggerSignal && c.signal == signal && c.citer > 0 {
			if e.minorLoop(c) {
				fired = append(fired, i)
			}
		}
	}
	fired = append(fired, e.settleLocked()...)
	handler := e.handler
	e.mu.Unlock()
	fire(handler, fired)
}

// Settle services every enabled channel whose request level is asserted
// until no more progress is possible. Peripheral models call this after
// changing any state that could raise a request line.
func (e *Engine) Settle() {
	e.mu.Lock()
	fired := e.settleLocked()
	handler := e.handler
	e.mu.Unlock()
	fire(handler, fired)
}

// Services returns the number of minor loops channel ch has retired since
// its last Reset: the observable service-request count.
func (e *Engine) Services(ch int) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chans[ch].services
}

// Remaining returns the channel's outstanding major-loop iteration count.
func (e *Engine) Remaining(ch int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chans[ch].citer
}

// InjectFault arms a bus fault on channel ch: its next service request
// records an error instead of moving data, and the channel halts.
func (e *Engine) InjectFault(ch int) {
	e.mu.Lock()
	e.chans[ch].faultArmed = true
	e.mu.Unlock()
}

// settleLocked runs the service loop to quiescence and returns the
// channels whose completion interrupts asserted. Callers hold e.mu and
// fire the interrupts after unlocking.
func (e *Engine) settleLocked() []int {
	var fired []int
	for progress := true; progress; {
		progress = false
		for i := range e.chans {
			c := &e.chans[i]
			if !c.enabled || c.citer <= 0 {
				continue
			}
			switch c.trigMode {
			case hal.TriggerAlwaysOn:
				// Serviced continuously while enabled.
			case hal.TriggerSignal:
				level := e.levels[c.signal]
				if level == nil || !level() {
					continue
				}
			default:
				continue
			}
			if e.minorLoop(c) {
				fired = append(fired, i)
			}
			progress = true
		}
	}
	return fired
}

// minorLoop retires one service request on c and reports whether its
// completion interrupt asserted.
func (e *Engine) minorLoop(c *channel) bool {
	if c.faultArmed {
		c.faultArmed = false
		c.fault = true
		c.enabled = false
		pkg.LogWarn(pkg.ComponentSim, "injected bus fault", "controller", e.instance)
		return false
	}
	width := c.minorBytes
	if c.srcMem != nil {
		width = c.srcMem.Width()
	} else if c.srcPort != nil {
		width = c.srcPort.Width()
	}
	n := 1
	if width > 0 && c.minorBytes/width > 1 {
		n = c.minorBytes / width
	}
	for k := 0; k < n; k++ {
		var v uint32
		if c.srcMem != nil {
			v = c.srcMem.Load(c.srcIdx)
			c.srcIdx++
		} else {
			v = c.srcPort.Load()
		}
		if c.dstMem != nil {
			c.dstMem.Store(c.dstIdx, v)
			c.dstIdx++
		} else {
			c.dstPort.Store(v)
		}
	}
	c.started = true
	c.services++
	c.citer--
	if c.citer > 0 {
		return false
	}
	c.done = true
	if c.dreq {
		c.enabled = false
	}
	if c.intrEnable {
		c.intr = true
		return true
	}
	return false
}

// fire delivers completion interrupts outside the engine lock.
func fire(handler func(ch int), fired []int) {
	if handler == nil {
		return
	}
	for _, ch := range fired {
		handler(ch)
	}
}
