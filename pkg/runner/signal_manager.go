package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalManager ties a context to process interrupt signals.
type SignalManager struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalManager derives a context from parent that is cancelled on
// SIGINT (Ctrl+C) or SIGTERM.
func NewSignalManager(parent context.Context) *SignalManager {
	sm := &SignalManager{}
	sm.ctx, sm.cancel = signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return sm
}

// Context returns the signal context.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Stop releases the signal listener.
func (sm *SignalManager) Stop() {
	sm.cancel()
}
