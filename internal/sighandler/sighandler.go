package sighandler

import (
	"context"
	"os"
	"os/signal"
)

type Handler struct {
	EndFunc            func()               // Called once when Loop() exits
	SignalReceivedFunc func(os.Signal) bool // Called each time when signal is received
	sigCh              chan os.Signal
}

func New(signals ...os.Signal) *Handler {
	sigCh := make(chan os.Signal, len(signals))
	signal.Notify(sigCh, signals...)
	return &Handler{sigCh: sigCh}
}

func (s *Handler) runEndFunc() {
	if f := s.EndFunc; f != nil {
		f()
	}
}

func (s *Handler) runSignalReceivedFunc(sig os.Signal) bool {
	if f := s.SignalReceivedFunc; f != nil {
		return f(sig)
	}
	return false
}

// Loop loops until ctx is done, or when a signal is received and the
// function returns false. Signal delivery to the handler stops when
// Loop returns.
func (s *Handler) Loop(ctx context.Context) {
	defer signal.Stop(s.sigCh)
	defer s.runEndFunc()

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-s.sigCh:
			if !s.runSignalReceivedFunc(sig) {
				return
			}
		}
	}
}

// CancelOnSignal returns a context that is canceled when one of the
// given signals is received. Calling the returned function releases
// the handler.
func CancelOnSignal(ctx context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	h := New(signals...)
	h.SignalReceivedFunc = func(os.Signal) bool {
		cancel()
		return false
	}
	go h.Loop(ctx)
	return ctx, cancel
}
