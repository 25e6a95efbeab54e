package fsops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/petasbytes/wiki-research/internal/safety"
)

// Sandbox appends files under a single resolved root. Construct it once at
// process start and pass it to whatever writes output.
type Sandbox struct {
	root string
}

// NewSandbox resolves root (empty means the working directory).
func NewSandbox(root string) (*Sandbox, error) {
	abs, err := safety.InitSandboxRoot(root)
	if err != nil {
		return nil, err
	}
	return &Sandbox{root: abs}, nil
}

// Root returns the absolute sandbox root.
func (s *Sandbox) Root() string { return s.root }

// Resolve returns the absolute path for relPath, or a safety.ToolError.
func (s *Sandbox) Resolve(relPath string) (string, error) {
	return safety.ValidateWritePath(s.root, relPath)
}

// AppendFile appends content to the file at relPath, creating it and any
// parent directories as needed. The content goes out in a single Write call;
// there is no locking against other processes.
func (s *Sandbox) AppendFile(relPath, content string) error {
	absPath, err := s.Resolve(relPath)
	if err != nil {
		return err // propagate ToolError unchanged
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(absPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s: %w", relPath, err)
	}
	return f.Close()
}
