package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// stemFrames animate a stem gaining branches, then starting over.
var stemFrames = []string{"╷", "│", "┘", "┤", "┼", "╪", "╫", "╬"}

// renderSpinner reports which output format is being rendered while draw
// runs. It counts formats as the pipeline announces them.
type renderSpinner struct {
	w       io.Writer
	formats []string
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	started bool
	once    sync.Once

	mu         sync.Mutex
	current    int // index into formats, -1 before the first
	width      int // widest line printed so far
	stopCalled bool
}

// newRenderSpinner creates a spinner for rendering formats. It stops on its
// own when ctx is cancelled.
func newRenderSpinner(ctx context.Context, w io.Writer, formats []string) *renderSpinner {
	ctx, cancel := context.WithCancel(ctx)
	return &renderSpinner{
		w:       w,
		formats: formats,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		current: -1,
	}
}

// Advance marks format as the one being rendered now. It is safe to call
// from the pipeline while the spinner runs.
func (s *renderSpinner) Advance(format string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := s.current + 1; i < len(s.formats); i++ {
		if s.formats[i] == format {
			s.current = i
			return
		}
	}
}

// message returns the status text, e.g. "Rendering png (2/3)".
func (s *renderSpinner) message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < 0 {
		return "Building strokes..."
	}
	return fmt.Sprintf("Rendering %s (%d/%d)", s.formats[s.current], s.current+1, len(s.formats))
}

// Start begins the animation.
func (s *renderSpinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			s.draw(stemFrames[i%len(stemFrames)])
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
			}
		}
	}()
}

func (s *renderSpinner) draw(frame string) {
	msg := s.message()
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(msg))
	s.width = max(s.width, len(msg)+2)
}

// Stop ends the animation and clears the line. Calling it again is a no-op.
func (s *renderSpinner) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopCalled = true
		s.mu.Unlock()
		s.cancel()
		if s.started {
			<-s.stopped
		}
	})
}

func (s *renderSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
}

// Cancelled reports whether the parent context ended before Stop.
func (s *renderSpinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Err() != nil && !s.stopCalled
}
