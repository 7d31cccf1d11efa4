package term

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aretw0/tendril/pkg/port"
	xterm "golang.org/x/term"
)

// DefaultHold is how long a key counts as held after its last byte arrived.
// Terminals send no key-up events, only auto-repeat.
const DefaultHold = 150 * time.Millisecond

const ctrlC = 3

// Keyboard is a host.Keyboard fed from terminal input.
type Keyboard struct {
	mu        sync.Mutex
	seen      map[int]time.Time
	hold      time.Duration
	now       func() time.Time
	interrupt func()
}

type KeyboardOption func(*Keyboard)

// WithHold sets how long a key stays down after it was last seen.
func WithHold(d time.Duration) KeyboardOption {
	return func(k *Keyboard) {
		k.hold = d
	}
}

// WithInterrupt is called on Ctrl-C, which raw mode no longer turns into SIGINT.
func WithInterrupt(fn func()) KeyboardOption {
	return func(k *Keyboard) {
		k.interrupt = fn
	}
}

// WithNow overrides the time source.
func WithNow(now func() time.Time) KeyboardOption {
	return func(k *Keyboard) {
		k.now = now
	}
}

func NewKeyboard(opts ...KeyboardOption) *Keyboard {
	k := &Keyboard{
		seen: make(map[int]time.Time),
		hold: DefaultHold,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *Keyboard) IsKeyDown(code int) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	at, ok := k.seen[code]
	return ok && k.now().Sub(at) <= k.hold
}

// Feed decodes raw terminal bytes and marks the keys they name as pressed.
func (k *Keyboard) Feed(b []byte) {
	now := k.now()
	var interrupted bool

	k.mu.Lock()
	for i := 0; i < len(b); i++ {
		// Arrow keys arrive as ESC [ A..D.
		if b[i] == 27 && i+2 < len(b) && b[i+1] == '[' {
			if code, ok := arrows[b[i+2]]; ok {
				k.seen[code] = now
				i += 2
				continue
			}
		}
		if b[i] == ctrlC {
			interrupted = true
			continue
		}
		if code, ok := decode(b[i]); ok {
			k.seen[code] = now
		}
	}
	k.mu.Unlock()

	if interrupted && k.interrupt != nil {
		k.interrupt()
	}
}

var arrows = map[byte]int{
	'A': mustKey("up"),
	'B': mustKey("down"),
	'C': mustKey("right"),
	'D': mustKey("left"),
}

func mustKey(name string) int {
	code, ok := port.KeyCode(name)
	if !ok {
		panic("unknown key " + name)
	}
	return code
}

func decode(c byte) (int, bool) {
	switch c {
	case '\r', '\n':
		return mustKey("enter"), true
	case 127, 8:
		return mustKey("backspace"), true
	}
	if c < 32 && c != 9 && c != 27 {
		return 0, false
	}
	if c > 126 {
		return 0, false
	}
	return port.KeyCode(string(rune(c)))
}

// Listen feeds every read from r until ctx is done or r fails.
// The read in flight when ctx is cancelled is not interrupted.
func (k *Keyboard) Listen(ctx context.Context, r io.Reader) error {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			k.Feed(buf[:n])
		}
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// MakeRaw puts f into raw mode when it is a terminal and returns the function
// restoring it. On anything else it is a no-op.
func MakeRaw(f *os.File) (func() error, error) {
	fd := int(f.Fd())
	if !xterm.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return xterm.Restore(fd, state) }, nil
}

// FitSize returns a grid size that fits the terminal behind f, falling back
// to the defaults. Rows are halved since cells are about twice as tall as wide.
func FitSize(f *os.File) (w, h int) {
	cols, rows, err := xterm.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultWidth, DefaultHeight
	}
	side := min(cols/2, rows-2)
	if side < 2 {
		return DefaultWidth, DefaultHeight
	}
	return side * 2, side
}
