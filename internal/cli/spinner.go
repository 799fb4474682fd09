package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line status on stderr while a render runs.
// It stops by itself when its context is cancelled.
type Spinner struct {
	out  io.Writer
	ctx  context.Context
	stop context.CancelFunc

	mu      sync.Mutex
	message string
	width   int // widest line drawn so far, for clearing
	started bool

	once sync.Once
	done chan struct{}
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, stop := context.WithCancel(ctx)
	return &Spinner{
		out:     os.Stderr,
		ctx:     ctx,
		stop:    stop,
		message: message,
		done:    make(chan struct{}),
	}
}

// Start runs the animation until Stop or cancellation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	go func() {
		defer close(s.done)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-tick.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	s.width = max(s.width, len(s.message)+2)
	fmt.Fprint(s.out, "\r"+line)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.width)+"\r")
}

// Update swaps the message; the next frame shows it.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop ends the animation and clears the line. Safe to call repeatedly,
// and before Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.stop()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.done
		}
	})
}

// Cancelled reports whether the spinner's context ended, by Stop or by
// its parent.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
