package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ErrInterrupted is returned by InterruptibleReader once its cancel channel is closed.
var ErrInterrupted = errors.New("interrupted")

// SignalContext is canceled on SIGINT or SIGTERM and remembers which signal arrived.
// It works like signal.NotifyContext, which does not expose the signal.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext starts watching for interrupts until parent is done or Cancel is called.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signals)
		select {
		case sig := <-signals:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that canceled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// InterruptibleReader makes reads from a blocking source (stdin in `run --step`)
// fail with ErrInterrupted once cancel is closed.
type InterruptibleReader struct {
	base   io.Reader
	cancel <-chan struct{}
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{base: base, cancel: cancel}
}

func (r *InterruptibleReader) Read(p []byte) (int, error) {
	if r.interrupted() {
		return 0, ErrInterrupted
	}
	// The read itself blocks; a signal during it is seen on return.
	n, err := r.base.Read(p)
	if r.interrupted() {
		return 0, ErrInterrupted
	}
	return n, err
}

func (r *InterruptibleReader) interrupted() bool {
	select {
	case <-r.cancel:
		return true
	default:
		return false
	}
}

// isInterrupted reports whether a run ended because the user asked it to stop.
func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrInterrupted)
}
