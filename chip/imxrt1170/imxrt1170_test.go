package imxrt1170

import (
	"errors"
	"testing"

	"github.com/mciantyre/imxrt-hal/pkg"
)

func TestLpuartSignals(t *testing.T) {
	for n := 1; n <= 12; n++ {
		rx, err := LpuartReceiveSignal(n)
		if err != nil {
			t.Fatalf("LpuartReceiveSignal(%d) failed: %v", n, err)
		}
		tx, err := LpuartTransmitSignal(n)
		if err != nil {
			t.Fatalf("LpuartTransmitSignal(%d) failed: %v", n, err)
		}
		// Receive lines are odd, one above the paired transmit line.
		if rx.Line != tx.Line+1 {
			t.Errorf("lpuart%d signals = (%d, %d), want adjacent pair", n, rx.Line, tx.Line)
		}
	}
	rx, _ := LpuartReceiveSignal(1)
	if rx.Line != 9 {
		t.Errorf("lpuart1 receive line = %d, want 9", rx.Line)
	}
}

func TestLpspiSignals(t *testing.T) {
	rx, err := LpspiReceiveSignal(6)
	if err != nil {
		t.Fatalf("LpspiReceiveSignal(6) failed: %v", err)
	}
	tx, err := LpspiTransmitSignal(6)
	if err != nil {
		t.Fatalf("LpspiTransmitSignal(6) failed: %v", err)
	}
	if rx.Line != 46 || tx.Line != 47 {
		t.Errorf("lpspi6 signals = (%d, %d), want (46, 47)", rx.Line, tx.Line)
	}
}

func TestUnmappedInstances(t *testing.T) {
	if _, err := LpuartReceiveSignal(13); !errors.Is(err, pkg.ErrInvalidInstance) {
		t.Errorf("LpuartReceiveSignal(13): err = %v, want ErrInvalidInstance", err)
	}
	if _, err := LpspiReceiveSignal(7); !errors.Is(err, pkg.ErrInvalidInstance) {
		t.Errorf("LpspiReceiveSignal(7): err = %v, want ErrInvalidInstance", err)
	}
}
