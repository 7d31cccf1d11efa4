// Package term renders a Tendril surface as a colored character grid and
// reads the keyboard from a raw-mode terminal.
package term
