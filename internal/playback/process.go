package playback

import (
	"fmt"
	"os/exec"
	"sync"
)

// ProcessDevice plays audio files through an external player process
// (ffplay by default; any player that takes a file argument and exits when
// done works). The process holds the file open for the duration of
// playback, which is exactly the lock the Coordinator serializes around.
type ProcessDevice struct {
	command string
	args    []string

	mu     sync.Mutex
	cmd    *exec.Cmd
	done   chan struct{}
	killed bool
	// waitErr is written once by the wait goroutine before done closes and
	// read only after done is observed closed.
	waitErr error
}

// NewProcessDevice creates a device around the given player command.
// The command must decode whatever format the synthesizer produces; the
// default is ffplay, which handles the WAV clips the TTS provider returns.
func NewProcessDevice(command string, args ...string) *ProcessDevice {
	if command == "" {
		command = "ffplay"
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}
	}
	return &ProcessDevice{command: command, args: args}
}

// Start launches the player on the given file.
func (d *ProcessDevice) Start(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd := exec.Command(d.command, append(append([]string{}, d.args...), path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", d.command, err)
	}

	done := make(chan struct{})
	d.cmd = cmd
	d.done = done
	d.killed = false
	d.waitErr = nil
	go func() {
		err := cmd.Wait()
		d.waitErr = err
		close(done)
	}()
	return nil
}

// Playing reports whether the player process is still running.
func (d *ProcessDevice) Playing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

// Err reports how the last playback ended: non-nil when the player exited
// with a failure rather than finishing. A playback cut short by Stop is not
// a failure. Returns nil while the player is still running.
func (d *ProcessDevice) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == nil || d.killed {
		return nil
	}
	select {
	case <-d.done:
	default:
		return nil
	}
	if d.waitErr != nil {
		return fmt.Errorf("%s: %w", d.command, d.waitErr)
	}
	return nil
}

// Stop kills the player if it is still running and releases the file.
func (d *ProcessDevice) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cmd == nil {
		return
	}
	select {
	case <-d.done:
	default:
		d.killed = true
		_ = d.cmd.Process.Kill()
		<-d.done
	}
	d.cmd = nil
	d.done = nil
}
