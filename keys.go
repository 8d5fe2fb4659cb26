package main

import "io"

// keyKind classifies one decoded key event.
type keyKind int

const (
	keyRune keyKind = iota
	keyEnter
	keyTab
	keyShiftTab
	keyBackspace
	keyEscape
	keyUp
	keyDown
	keyLeft
	keyRight
	keyCtrlC
)

// key is one decoded keyboard event from the raw-mode input stream.
type key struct {
	kind keyKind
	r    rune
}

// readKeys reads raw-mode bytes from in and decodes them into key events.
// Only the sequences the demo loop reacts to are decoded: printable runes,
// enter, tab, shift-tab, backspace, escape, ctrl-c, and the CSI arrow
// keys. A CSI sequence split across reads is held until its final byte
// arrives; a trailing escape at EOF is flushed as a bare escape.
func readKeys(in io.Reader, out chan<- key) {
	buf := make([]byte, 64)
	var pending []byte
	for {
		n, err := in.Read(buf)
		if err != nil {
			if len(pending) > 0 && pending[0] == 0x1b {
				out <- key{kind: keyEscape}
			}
			close(out)
			return
		}
		pending = decodeKeys(append(pending, buf[:n]...), out)
	}
}

// decodeKeys emits every complete key event in b and returns the trailing
// bytes of an incomplete escape sequence, if any, for the next read to
// finish.
func decodeKeys(b []byte, out chan<- key) []byte {
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c == 0x03:
			out <- key{kind: keyCtrlC}
		case c == '\r' || c == '\n':
			out <- key{kind: keyEnter}
		case c == '\t':
			out <- key{kind: keyTab}
		case c == 0x7f || c == 0x08:
			out <- key{kind: keyBackspace}
		case c == 0x1b:
			if i+1 >= len(b) || (b[i+1] == '[' && i+2 >= len(b)) {
				// Sequence may continue in the next read.
				return b[i:]
			}
			if b[i+1] == '[' {
				switch b[i+2] {
				case 'A':
					out <- key{kind: keyUp}
				case 'B':
					out <- key{kind: keyDown}
				case 'C':
					out <- key{kind: keyRight}
				case 'D':
					out <- key{kind: keyLeft}
				case 'Z':
					out <- key{kind: keyShiftTab}
				default:
					// Unrecognized sequence, swallow it.
				}
				i += 3
				continue
			}
			out <- key{kind: keyEscape}
		case c >= 0x20:
			out <- key{kind: keyRune, r: rune(c)}
		}
		i++
	}
	return nil
}
