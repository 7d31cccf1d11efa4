package cli

import (
	"context"
	"io"
	"sync"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/internal/presentation/tui"
	"github.com/aretw0/tendril/pkg/adapters/term"
	"github.com/aretw0/tendril/pkg/host"
	"github.com/muesli/termenv"
)

// tailLines is how many Log lines the live view keeps under the canvas.
const tailLines = 6

// view presents the canvas, the last build error and the latest Log lines.
// It is the Diagnostics sink while the canvas owns the terminal.
type view struct {
	canvas *term.Canvas
	out    *termenv.Output

	mu    sync.Mutex
	lines []string
}

func newView(canvas *term.Canvas, w io.Writer) *view {
	return &view{canvas: canvas, out: termenv.NewOutput(w)}
}

func (v *view) Emit(r host.Record) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lines = append(v.lines, r.String())
	if len(v.lines) > tailLines {
		v.lines = v.lines[len(v.lines)-tailLines:]
	}
}

func (v *view) open() {
	v.out.AltScreen()
	v.out.HideCursor()
	v.out.ClearScreen()
}

func (v *view) close() {
	v.out.ShowCursor()
	v.out.ExitAltScreen()
}

// render runs after every frame on the loop goroutine.
func (v *view) render(_ context.Context, eng *tendril.Engine) {
	if err := v.canvas.Render(v.out); err != nil {
		return
	}

	v.out.ClearLine()
	io.WriteString(v.out, tui.ErrorBox(eng.Err())+"\r\n")

	v.mu.Lock()
	lines := append([]string(nil), v.lines...)
	v.mu.Unlock()
	for _, l := range lines {
		v.out.ClearLine()
		io.WriteString(v.out, l+"\r\n")
	}
}
