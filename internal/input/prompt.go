package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptName asks for a player name on w and reads one line from r. It must
// run before the terminal enters raw mode. An empty answer or a read error
// returns fallback.
func PromptName(r *bufio.Reader, w io.Writer, fallback string) string {
	fmt.Fprintf(w, "Enter your name [%s]: ", fallback)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return fallback
	}
	name := strings.TrimSpace(line)
	if name == "" {
		return fallback
	}
	return name
}
