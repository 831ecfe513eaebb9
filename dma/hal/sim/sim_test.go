package sim

import (
	"testing"

	"github.com/mciantyre/imxrt-hal/dma/hal"
)

// testMemory is a plain slice view for driving the engine directly.
type testMemory struct {
	width int
	data  []uint32
}

func (m *testMemory) Len() int              { return len(m.data) }
func (m *testMemory) Width() int            { return m.width }
func (m *testMemory) Load(i int) uint32     { return m.data[i] }
func (m *testMemory) Store(i int, v uint32) { m.data[i] = v }

var _ hal.Memory = (*testMemory)(nil)

func programCopy(e *Engine, ch int, src, dst *testMemory) {
	e.SetTrigger(ch, hal.TriggerSignal, 7)
	e.SetSourceMemory(ch, src)
	e.SetDestinationMemory(ch, dst)
	e.SetMinorLoopBytes(ch, src.width)
	e.SetIterations(ch, len(src.data))
}

func TestPulseRetiresOneMinorLoop(t *testing.T) {
	e := New(0, 4)
	src := &testMemory{width: 1, data: []uint32{1, 2, 3}}
	dst := &testMemory{width: 1, data: make([]uint32, 3)}
	programCopy(e, 0, src, dst)
	e.Enable(0)

	for i := 1; i <= 3; i++ {
		e.Pulse(7)
		if got := e.Services(0); got != uint64(i) {
			t.Fatalf("after %d pulses: Services = %d", i, got)
		}
		if got := e.Remaining(0); got != 3-i {
			t.Fatalf("after %d pulses: Remaining = %d", i, got)
		}
	}
	for i, want := range src.data {
		if dst.data[i] != want {
			t.Errorf("dst[%d] = %d, want %d", i, dst.data[i], want)
		}
	}
	if !e.IsComplete(0) {
		t.Error("IsComplete = false after the major loop")
	}

	// A request against a finished major loop is ignored.
	e.Pulse(7)
	if got := e.Services(0); got != 3 {
		t.Errorf("Services after spurious pulse = %d, want 3", got)
	}
}

func TestPulseIgnoresDisabledChannels(t *testing.T) {
	e := New(0, 4)
	src := &testMemory{width: 1, data: []uint32{1, 2}}
	dst := &testMemory{width: 1, data: make([]uint32, 2)}
	programCopy(e, 0, src, dst)

	e.Pulse(7)
	if got := e.Services(0); got != 0 {
		t.Errorf("Services on disabled channel = %d, want 0", got)
	}

	e.Enable(0)
	e.Disable(0)
	e.Pulse(7)
	if got := e.Services(0); got != 0 {
		t.Errorf("Services after Disable = %d, want 0", got)
	}
}

func TestAlwaysOnSettlesOnEnable(t *testing.T) {
	e := New(0, 4)
	src := &testMemory{width: 4, data: []uint32{9, 8, 7, 6}}
	dst := &testMemory{width: 4, data: make([]uint32, 4)}
	e.SetTrigger(1, hal.TriggerAlwaysOn, 0)
	e.SetSourceMemory(1, src)
	e.SetDestinationMemory(1, dst)
	e.SetMinorLoopBytes(1, 4)
	e.SetIterations(1, 4)

	e.Enable(1)
	if got := e.Remaining(1); got != 0 {
		t.Fatalf("Remaining after Enable = %d, want 0", got)
	}
	for i, want := range src.data {
		if dst.data[i] != want {
			t.Errorf("dst[%d] = %d, want %d", i, dst.data[i], want)
		}
	}
}

func TestLevelDrivenSettle(t *testing.T) {
	e := New(0, 4)
	asserted := false
	e.BindSignal(9, func() bool { return asserted })

	src := &testMemory{width: 1, data: []uint32{1, 2}}
	dst := &testMemory{width: 1, data: make([]uint32, 2)}
	e.SetTrigger(0, hal.TriggerSignal, 9)
	e.SetSourceMemory(0, src)
	e.SetDestinationMemory(0, dst)
	e.SetMinorLoopBytes(0, 1)
	e.SetIterations(0, 2)
	e.Enable(0)

	e.Settle()
	if got := e.Services(0); got != 0 {
		t.Fatalf("Services with deasserted level = %d, want 0", got)
	}

	asserted = true
	e.Settle()
	if got := e.Services(0); got != 2 {
		t.Errorf("Services with asserted level = %d, want 2", got)
	}
}

func TestDisableOnCompletion(t *testing.T) {
	e := New(0, 4)
	src := &testMemory{width: 1, data: []uint32{1}}
	dst := &testMemory{width: 1, data: make([]uint32, 1)}
	programCopy(e, 2, src, dst)
	e.SetDisableOnCompletion(2, true)
	e.Enable(2)

	e.Pulse(7)
	if e.IsEnabled(2) {
		t.Error("channel still enabled after completion with disable-on-completion set")
	}
	if !e.IsComplete(2) {
		t.Error("IsComplete = false after completion")
	}
}

func TestCompletionInterrupt(t *testing.T) {
	e := New(0, 4)
	var fired []int
	e.SetInterruptHandler(func(ch int) { fired = append(fired, ch) })

	src := &testMemory{width: 1, data: []uint32{1, 2}}
	dst := &testMemory{width: 1, data: make([]uint32, 2)}
	programCopy(e, 3, src, dst)
	e.SetInterruptOnCompletion(3, true)
	e.Enable(3)

	e.Pulse(7)
	if len(fired) != 0 {
		t.Fatalf("interrupt fired before completion: %v", fired)
	}
	e.Pulse(7)
	if len(fired) != 1 || fired[0] != 3 {
		t.Fatalf("fired = %v, want [3]", fired)
	}
	if !e.IsInterrupt(3) {
		t.Error("IsInterrupt = false after completion")
	}
	e.ClearInterrupt(3)
	if e.IsInterrupt(3) {
		t.Error("IsInterrupt = true after ClearInterrupt")
	}
}

func TestInjectFault(t *testing.T) {
	e := New(0, 4)
	src := &testMemory{width: 1, data: []uint32{1, 2}}
	dst := &testMemory{width: 1, data: make([]uint32, 2)}
	programCopy(e, 0, src, dst)
	e.Enable(0)

	e.Pulse(7)
	e.InjectFault(0)
	e.Pulse(7)

	if !e.IsError(0) {
		t.Fatal("IsError = false after injected fault")
	}
	if e.IsEnabled(0) {
		t.Error("faulted channel still enabled")
	}
	if got := e.Services(0); got != 1 {
		t.Errorf("Services = %d, want 1 (fault moved no data)", got)
	}
	e.ClearError(0)
	if e.IsError(0) {
		t.Error("IsError = true after ClearError")
	}
}

func TestDeviceFeedAndDrain(t *testing.T) {
	e := New(0, 4)
	dev := NewDevice(e, DeviceConfig{Width: 1, ReceiveSignal: 10, TransmitSignal: 11})

	dst := &testMemory{width: 1, data: make([]uint32, 3)}
	e.SetTrigger(0, hal.TriggerSignal, 10)
	e.SetSourcePort(0, dev.Data())
	e.SetDestinationMemory(0, dst)
	e.SetMinorLoopBytes(0, 1)
	e.SetIterations(0, 3)
	e.Enable(0)

	// The request line stays deasserted until the gate opens.
	dev.Feed(0x31, 0x32, 0x33)
	if got := e.Services(0); got != 0 {
		t.Fatalf("Services with gated request = %d, want 0", got)
	}

	dev.SetRequestEnabled(hal.Receive, true)
	if got := e.Services(0); got != 3 {
		t.Fatalf("Services after ungating = %d, want 3", got)
	}
	for i, want := range []uint32{0x31, 0x32, 0x33} {
		if dst.data[i] != want {
			t.Errorf("dst[%d] = %#x, want %#x", i, dst.data[i], want)
		}
	}
	if got := dev.PendingReceive(); got != 0 {
		t.Errorf("PendingReceive = %d, want 0", got)
	}
}

func TestDeviceLoopback(t *testing.T) {
	e := New(0, 4)
	dev := NewDevice(e, DeviceConfig{Width: 4, ReceiveSignal: 10, TransmitSignal: 11, Loopback: true})
	dev.SetRequestEnabled(hal.Transmit, true)

	src := &testMemory{width: 4, data: []uint32{5, 6}}
	e.SetTrigger(1, hal.TriggerSignal, 11)
	e.SetSourceMemory(1, src)
	e.SetDestinationPort(1, dev.Data())
	e.SetMinorLoopBytes(1, 4)
	e.SetIterations(1, 2)
	e.Enable(1)

	if got := dev.PendingReceive(); got != 2 {
		t.Fatalf("PendingReceive = %d, want 2 (loopback)", got)
	}
	if got := dev.Drain(); len(got) != 0 {
		t.Errorf("Drain = %v, want empty in loopback mode", got)
	}
}
