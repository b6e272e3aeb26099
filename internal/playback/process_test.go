package playback

import (
	"testing"
	"time"
)

func waitIdle(t *testing.T, d *ProcessDevice) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for d.Playing() {
		if time.Now().After(deadline) {
			t.Fatal("player still running")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestProcessDeviceCleanExit(t *testing.T) {
	dev := NewProcessDevice("sh", "-c", "exit 0")
	if err := dev.Start("unused"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitIdle(t, dev)
	if err := dev.Err(); err != nil {
		t.Errorf("Err() = %v after clean exit, want nil", err)
	}
	dev.Stop()
}

func TestProcessDeviceReportsExitError(t *testing.T) {
	dev := NewProcessDevice("sh", "-c", "exit 1")
	if err := dev.Start("unused"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitIdle(t, dev)
	if dev.Err() == nil {
		t.Error("Err() = nil after non-zero exit, want error")
	}
	dev.Stop()
}

func TestProcessDeviceStopIsNotAFailure(t *testing.T) {
	dev := NewProcessDevice("sh", "-c", "sleep 10")
	if err := dev.Start("unused"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !dev.Playing() {
		t.Fatal("player not running after Start")
	}
	dev.Stop()
	if err := dev.Err(); err != nil {
		t.Errorf("Err() = %v after deliberate Stop, want nil", err)
	}
	if dev.Playing() {
		t.Error("Playing() = true after Stop")
	}
}

func TestNewProcessDeviceDefaultsToWAVCapablePlayer(t *testing.T) {
	// The synthesizer returns WAV clips, so the default player has to
	// decode WAV.
	dev := NewProcessDevice("")
	if dev.command != "ffplay" {
		t.Errorf("default command = %q, want ffplay", dev.command)
	}
}
