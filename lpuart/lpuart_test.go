package lpuart_test

import (
	"errors"
	"testing"

	"github.com/mciantyre/imxrt-hal/chip/imxrt1060"
	"github.com/mciantyre/imxrt-hal/dma"
	"github.com/mciantyre/imxrt-hal/dma/hal"
	"github.com/mciantyre/imxrt-hal/dma/hal/sim"
	"github.com/mciantyre/imxrt-hal/pkg"
)

// uartFixture wires LPUART2 over a simulated controller with the 1060
// family's request mapping.
func uartFixture(t *testing.T) (*sim.Engine, *sim.Device, *dma.Controller, *dma.Channel, *dma.Channel) {
	t.Helper()
	engine := sim.New(imxrt1060.DMAInstance, imxrt1060.DMAChannelCount)
	rx, err := imxrt1060.LpuartReceiveSignal(2)
	if err != nil {
		t.Fatalf("receive signal: %v", err)
	}
	tx, err := imxrt1060.LpuartTransmitSignal(2)
	if err != nil {
		t.Fatalf("transmit signal: %v", err)
	}
	dev := sim.NewDevice(engine, sim.DeviceConfig{
		Width:          1,
		ReceiveSignal:  rx.Line,
		TransmitSignal: tx.Line,
	})
	ctrl := imxrt1060.DMA(engine)
	chA, err := ctrl.Channel(7)
	if err != nil {
		t.Fatalf("channel 7: %v", err)
	}
	chB, err := ctrl.Channel(8)
	if err != nil {
		t.Fatalf("channel 8: %v", err)
	}
	return engine, dev, ctrl, chA, chB
}

func TestNewRejectsWrongRegisterWidth(t *testing.T) {
	engine := sim.New(0, 32)
	dev := sim.NewDevice(engine, sim.DeviceConfig{Width: 4})
	if _, err := imxrt1060.Lpuart(dev, 2); !errors.Is(err, pkg.ErrWidthMismatch) {
		t.Errorf("Lpuart over a word-wide register: err = %v, want ErrWidthMismatch", err)
	}
}

func TestDMAWrite(t *testing.T) {
	_, dev, _, ch, _ := uartFixture(t)
	uart, err := imxrt1060.Lpuart(dev, 2)
	if err != nil {
		t.Fatalf("Lpuart failed: %v", err)
	}

	xfer, err := uart.DMAWrite(ch, []byte("hello"))
	if err != nil {
		t.Fatalf("DMAWrite failed: %v", err)
	}
	defer xfer.Close()

	// The transmit side always has space, so arming runs the whole
	// transfer.
	done, err := xfer.Poll()
	if !done || err != nil {
		t.Fatalf("Poll = (%v, %v), want complete", done, err)
	}

	out := dev.Drain()
	if got, want := string(bytesOf(out)), "hello"; got != want {
		t.Errorf("transmitted %q, want %q", got, want)
	}
	if dev.RequestEnabled(hal.Transmit) {
		t.Error("transmit request left ungated after completion")
	}
}

func TestDMARead(t *testing.T) {
	_, dev, _, ch, _ := uartFixture(t)
	uart, err := imxrt1060.Lpuart(dev, 2)
	if err != nil {
		t.Fatalf("Lpuart failed: %v", err)
	}

	buffer := make([]byte, 4)
	xfer, err := uart.DMARead(ch, buffer)
	if err != nil {
		t.Fatalf("DMARead failed: %v", err)
	}
	defer xfer.Close()

	if done, _ := xfer.Poll(); done {
		t.Fatal("transfer completed with no received data")
	}

	dev.Feed('p', 'i', 'n', 'g')

	done, err := xfer.Poll()
	if !done || err != nil {
		t.Fatalf("Poll = (%v, %v), want complete", done, err)
	}
	if got := string(buffer); got != "ping" {
		t.Errorf("received %q, want %q", got, "ping")
	}
}

func TestDMAReadArrivesInPieces(t *testing.T) {
	_, dev, _, ch, _ := uartFixture(t)
	uart, err := imxrt1060.Lpuart(dev, 2)
	if err != nil {
		t.Fatalf("Lpuart failed: %v", err)
	}

	buffer := make([]byte, 6)
	xfer, err := uart.DMARead(ch, buffer)
	if err != nil {
		t.Fatalf("DMARead failed: %v", err)
	}
	defer xfer.Close()
	xfer.Poll()

	dev.Feed('a', 'b')
	if done, _ := xfer.Poll(); done {
		t.Fatal("transfer completed after a partial fill")
	}
	dev.Feed('c', 'd', 'e', 'f')

	done, err := xfer.Poll()
	if !done || err != nil {
		t.Fatalf("Poll = (%v, %v), want complete", done, err)
	}
	if got := string(buffer); got != "abcdef" {
		t.Errorf("received %q, want %q", got, "abcdef")
	}
}

func TestEcho(t *testing.T) {
	_, dev, _, rxCh, txCh := uartFixture(t)
	uart, err := imxrt1060.Lpuart(dev, 2)
	if err != nil {
		t.Fatalf("Lpuart failed: %v", err)
	}

	// Receive a line, then transmit it back on a second channel.
	buffer := make([]byte, 3)
	read, err := uart.DMARead(rxCh, buffer)
	if err != nil {
		t.Fatalf("DMARead failed: %v", err)
	}
	defer read.Close()
	read.Poll()
	dev.Feed('y', 'e', 's')
	if done, err := read.Poll(); !done || err != nil {
		t.Fatalf("read Poll = (%v, %v), want complete", done, err)
	}

	write, err := uart.DMAWrite(txCh, buffer)
	if err != nil {
		t.Fatalf("DMAWrite failed: %v", err)
	}
	defer write.Close()
	if done, err := write.Poll(); !done || err != nil {
		t.Fatalf("write Poll = (%v, %v), want complete", done, err)
	}
	if got := string(bytesOf(dev.Drain())); got != "yes" {
		t.Errorf("echoed %q, want %q", got, "yes")
	}
}

func bytesOf(words []uint32) []byte {
	out := make([]byte, len(words))
	for i, w := range words {
		out[i] = byte(w)
	}
	return out
}
