package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner shows progress on stderr while a long step runs.
// It only animates for styled terminal output.
type Spinner struct {
	r       *Renderer
	msg     string
	frames  []string
	fps     time.Duration
	enabled bool

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner with the given message.
func (r *Renderer) NewSpinner(msg string) *Spinner {
	dot := spinner.Dot
	return &Spinner{
		r:       r,
		msg:     msg,
		frames:  dot.Frames,
		fps:     dot.FPS,
		enabled: r.isTTY && r.EffectiveMode() == ModeText,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !s.enabled {
		close(s.done)
		return
	}
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.fps)
		defer ticker.Stop()
		for i := 0; ; i++ {
			frame := s.r.styles.Info.Render(s.frames[i%len(s.frames)])
			_, _ = fmt.Fprintf(s.r.errOut, "\r%s %s", frame, s.msg)
			select {
			case <-s.stop:
				_, _ = fmt.Fprint(s.r.errOut, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}
