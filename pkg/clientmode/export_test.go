package clientmode

import "github.com/stactl/stactl-go/pkg/watchdog"

// LiveToken returns the current generation for p.
func (m *Machine) LiveToken(p watchdog.Purpose) watchdog.Token {
	return m.watchdogs.Current(p)
}

// RunCleanup runs the disconnect cleanup routine and republishes the status.
func (m *Machine) RunCleanup() {
	m.cleanup()
	m.publishStatus()
}
