// Package spinner renders a transient progress indicator for calls that can
// block for a while, such as probing a remote dataset.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"time"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameInterval = 80 * time.Millisecond

// While displays an animated spinner with the given message on w until fn
// returns, then clears the line. Calls that finish before the first frame
// draws leave the output untouched.
func While(w io.Writer, message string, fn func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})

	go func() {
		defer close(cleared)
		drawn := false
		for i := 0; ; i++ {
			select {
			case <-done:
				if drawn {
					fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(message)+2)) //nolint:errcheck
				}
				return
			case <-time.After(frameInterval):
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
				drawn = true
			}
		}
	}()

	fn()
	close(done)
	<-cleared
}
