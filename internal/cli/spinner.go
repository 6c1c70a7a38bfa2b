package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line on w until stopped or until its context
// ends. It is meant for stderr while a render is in flight.
type spinner struct {
	w     io.Writer
	label string

	ctx  context.Context
	stop context.CancelFunc
	exit chan struct{}
	once sync.Once
	mu   sync.Mutex

	started bool
}

func newSpinner(ctx context.Context, w io.Writer, label string) *spinner {
	ctx, stop := context.WithCancel(ctx)
	return &spinner{w: w, label: label, ctx: ctx, stop: stop, exit: make(chan struct{})}
}

// Start launches the animation goroutine.
func (s *spinner) Start() {
	s.started = true
	go func() {
		defer close(s.exit)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-tick.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.label))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and blanks the line. Safe to call more than once.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.stop()
		if s.started {
			<-s.exit
		}
	})
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
}
