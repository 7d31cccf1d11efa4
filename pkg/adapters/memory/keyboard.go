package memory

import "sync"

// Keyboard holds a programmable set of pressed keys.
type Keyboard struct {
	mu   sync.RWMutex
	down map[int]bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{down: make(map[int]bool)}
}

func (k *Keyboard) IsKeyDown(code int) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.down[code]
}

// Press marks code as held.
func (k *Keyboard) Press(code int) {
	k.mu.Lock()
	k.down[code] = true
	k.mu.Unlock()
}

// Release marks code as up.
func (k *Keyboard) Release(code int) {
	k.mu.Lock()
	delete(k.down, code)
	k.mu.Unlock()
}
