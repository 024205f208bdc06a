// Package render formats a repository snapshot as a styled prompt segment.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
	"github.com/xvierd/gitprompt/internal/domain"
	"github.com/xvierd/gitprompt/internal/ports"
)

const (
	colorBranch   = lipgloss.Color("6") // cyan
	colorIndex    = lipgloss.Color("2") // green
	colorWorktree = lipgloss.Color("1") // red
)

// Renderer implements ports.Renderer with lipgloss styles.
type Renderer struct {
	branch   lipgloss.Style
	index    lipgloss.Style
	worktree lipgloss.Style
}

// Ensure Renderer implements ports.Renderer.
var _ ports.Renderer = (*Renderer)(nil)

// New creates a renderer for the given color mode. In auto mode, out decides:
// color is used only when it is a terminal.
func New(mode domain.ColorMode, out io.Writer) *Renderer {
	return NewWithProfile(profileFor(mode, out))
}

// NewWithProfile creates a renderer with a fixed terminal color profile.
func NewWithProfile(profile termenv.Profile) *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	return &Renderer{
		branch:   r.NewStyle().Bold(true).Foreground(colorBranch),
		index:    r.NewStyle().Bold(true).Foreground(colorIndex),
		worktree: r.NewStyle().Bold(true).Foreground(colorWorktree),
	}
}

// Render writes "[<branch> <index> | <worktree>]" without a trailing newline.
func (r *Renderer) Render(w io.Writer, s *domain.Snapshot) error {
	_, err := io.WriteString(w, r.String(s))
	return err
}

// String returns the styled prompt segment.
func (r *Renderer) String(s *domain.Snapshot) string {
	index := s.Files.IndexString()
	worktree := s.Files.WorktreeString()

	var sb strings.Builder
	sb.WriteString(r.branch.Render("["))
	sb.WriteString(r.branch.Render(s.Branch.String()))

	if index != "" {
		sb.WriteString(r.index.Render(index))
		if worktree != "" {
			sb.WriteString(r.branch.Render(" |"))
		}
	}
	if worktree != "" {
		sb.WriteString(r.worktree.Render(worktree))
	}

	sb.WriteString(r.branch.Render("]"))
	return sb.String()
}

func profileFor(mode domain.ColorMode, out io.Writer) termenv.Profile {
	switch mode {
	case domain.ColorNever:
		return termenv.Ascii
	case domain.ColorAuto:
		if f, ok := out.(interface{ Fd() uintptr }); ok && term.IsTerminal(f.Fd()) {
			return termenv.ANSI
		}
		return termenv.Ascii
	default:
		// Prompts capture stdout through a pipe, so detection would always
		// turn color off.
		return termenv.ANSI
	}
}
