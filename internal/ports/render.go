package ports

import (
	"io"

	"github.com/xvierd/gitprompt/internal/domain"
)

// Renderer writes a snapshot as prompt text.
type Renderer interface {
	Render(w io.Writer, s *domain.Snapshot) error
}
