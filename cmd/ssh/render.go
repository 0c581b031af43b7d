package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/muesli/termenv"
)

// lipglossRenderer returns a renderer bound to the session output with a
// fixed 256-colour profile.
func lipglossRenderer(sess ssh.Session) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(sess)
	r.SetColorProfile(termenv.ANSI256)
	return r
}
