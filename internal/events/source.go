// Package events runs the background producers that feed the render loop.
// Producers only ever send immutable messages; the consumer owns all state.
package events

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// Sink receives produced messages. *tea.Program satisfies it.
type Sink interface {
	Send(msg tea.Msg)
}

// Producer runs until the source is stopped, emitting through it.
type Producer func(s *Source)

// Source owns a set of producer goroutines and their shared stop flag.
type Source struct {
	sink Sink
	stop atomic.Bool
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewSource creates a source that emits into sink.
func NewSource(sink Sink) *Source {
	return &Source{
		sink: sink,
		done: make(chan struct{}),
	}
}

// Start runs p on its own goroutine. Producers started after Signal exit
// immediately.
func (s *Source) Start(p Producer) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if s.Stopped() {
			return
		}
		p(s)
	}()
}

// Emit forwards msg unless the source is stopped, reporting whether it did.
func (s *Source) Emit(msg tea.Msg) bool {
	if s.Stopped() {
		return false
	}
	s.sink.Send(msg)
	return true
}

// Stopped reports whether Signal was called.
func (s *Source) Stopped() bool {
	return s.stop.Load()
}

// Done is closed by Signal so producers can stop waiting early.
func (s *Source) Done() <-chan struct{} {
	return s.done
}

// Signal sets the stop flag without waiting. It never blocks, so it is safe
// to call from the consumer while a producer is blocked sending to it.
func (s *Source) Signal() {
	s.once.Do(func() {
		s.stop.Store(true)
		close(s.done)
	})
}

// Stop signals and joins every producer. The sink must not be blocking
// producers anymore, e.g. the program has exited.
func (s *Source) Stop() {
	s.Signal()
	s.wg.Wait()
}
