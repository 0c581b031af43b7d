// Package input turns raw terminal bytes into discrete player actions.
package input

import (
	"bufio"
)

// Input holds the actions seen since the previous frame. Every field is
// edge-triggered: a key press counts once, no matter how long it is held.
type Input struct {
	Quit             bool
	Lift             bool // Space, Up, w, k or a primary mouse press
	Pause            bool // Esc or p
	Leaderboard      bool // l
	ResetLeaderboard bool // r
	Enter            bool
	Any              bool // Any byte arrived; used for the idle timer
	Pressed          []byte
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // Unfinished escape sequence from the previous read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool { return s.closed }

// drain collects every byte available right now without blocking.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. A closed stream reads as Quit.
//
// An escape sequence cut off at the end of a read is held until more bytes
// arrive. A read that brings nothing new flushes it, so a lone ESC still
// pauses one frame later.
func ReadInput(s *Stream) Input {
	fresh := s.drain()
	buf := append(s.pending, fresh...)
	s.pending = nil

	in, rest := parse(buf, len(fresh) == 0 || s.closed)
	if len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	if s.closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput discards any buffered bytes so input typed during a screen
// transition does not leak into the next one.
func ResetKeyInput(s *Stream) {
	s.drain()
	s.pending = nil
}

// Parse interprets one frame's worth of bytes. A trailing ESC is the
// Escape key.
func Parse(buf []byte) Input {
	in, _ := parse(buf, true)
	return in
}

// parse interprets buf. Unless final is set, an unfinished escape sequence
// at the end is returned unparsed.
func parse(buf []byte, final bool) (Input, []byte) {
	in := Input{Any: len(buf) > 0, Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&in, b)
			continue
		}
		if !final && !escapeComplete(buf[i:]) {
			return in, buf[i:]
		}

		// ESC not followed by a sequence introducer is the Escape key.
		if i+1 >= len(buf) || (buf[i+1] != '[' && buf[i+1] != 'O') {
			in.Pause = true
			continue
		}
		n := parseEscape(&in, buf[i:])
		i += n - 1
	}
	return in, nil
}

// escapeComplete reports whether seq, which starts with ESC, holds enough
// bytes to be decoded.
func escapeComplete(seq []byte) bool {
	if len(seq) < 2 {
		return false
	}
	if seq[1] != '[' && seq[1] != 'O' {
		return true
	}
	if len(seq) < 3 {
		return false
	}
	if seq[1] == '[' && seq[2] == '<' {
		for _, c := range seq[3:] {
			if (c < '0' || c > '9') && c != ';' {
				return true
			}
		}
		return false
	}
	for _, c := range seq[2:] {
		if c >= 0x40 && c <= 0x7e {
			return true
		}
	}
	return false
}

// parseEscape handles a CSI or SS3 sequence at the start of seq and returns
// how many bytes it consumed.
func parseEscape(in *Input, seq []byte) int {
	if len(seq) < 3 {
		return len(seq)
	}

	// SGR mouse: ESC [ < button ; col ; row (M|m)
	if seq[1] == '[' && seq[2] == '<' {
		n, press, button := parseMouse(seq)
		if press && button == 0 {
			in.Lift = true
		}
		return n
	}

	// Find the final byte of the sequence.
	end := 2
	for end < len(seq) && (seq[end] < 0x40 || seq[end] > 0x7e) {
		end++
	}
	if end == len(seq) {
		return len(seq)
	}
	if end == 2 && seq[end] == 'A' {
		in.Lift = true // Up arrow
	}
	return end + 1
}

// parseMouse decodes an SGR mouse report. It reports the bytes consumed,
// whether it was a press, and the button number.
func parseMouse(seq []byte) (n int, press bool, button int) {
	button = -1
	field, value := 0, 0
	for i := 3; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= '0' && c <= '9':
			value = value*10 + int(c-'0')
		case c == ';':
			if field == 0 {
				button = value
			}
			field++
			value = 0
		case c == 'M' || c == 'm':
			if field == 0 {
				button = value
			}
			return i + 1, c == 'M', button
		default:
			return i + 1, false, -1
		}
	}
	return len(seq), false, -1
}

func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		in.Quit = true
	case ' ', 'w', 'W', 'k', 'K':
		in.Lift = true
	case 'p', 'P':
		in.Pause = true
	case 'l', 'L':
		in.Leaderboard = true
	case 'r', 'R':
		in.ResetLeaderboard = true
	case '\n', '\r':
		in.Enter = true
	}
}
