// Package safety keeps reading-list writes inside a sandbox root.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error codes carried by ToolError.
const (
	CodeOutsideSandbox = "ERR_PATH_OUTSIDE_SANDBOX"
	CodeDeniedWrite    = "ERR_DENIED_WRITE"
)

// ToolError is a machine-readable policy violation.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// deniedDirs are top-level directories that never receive reading-list output.
var deniedDirs = []string{".git", ".research"}

// deniedBases are file names blocked at any depth.
var deniedBases = []string{"go.mod", "go.sum"}

// InitSandboxRoot resolves root to an absolute, symlink-free path.
// An empty root means the current working directory.
func InitSandboxRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(root): %w", err)
	}

	// The root may not exist yet. Resolve its deepest existing ancestor so it
	// compares equal to candidates resolved the same way.
	return resolveExisting(abs), nil
}

// ValidateWritePath resolves relPath against absRoot and returns an absolute
// path inside the sandbox. Absolute inputs, parent traversal, symlink escapes
// and the write denylist all produce a ToolError.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", ToolError{Code: CodeOutsideSandbox, Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(relPath)
	if cleaned == "." {
		return "", ToolError{Code: CodeDeniedWrite, Message: "target must name a file"}
	}
	candidate := filepath.Join(absRoot, cleaned)

	// Output files usually don't exist yet, so resolve the deepest existing
	// ancestor and rejoin the remainder. This exposes a symlinked parent.
	candidate = resolveExisting(candidate)

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ToolError{Code: CodeOutsideSandbox, Message: "requested path resolves outside the sandbox root"}
	}

	relSlash := filepath.ToSlash(rel)
	for _, d := range deniedDirs {
		if relSlash == d || strings.HasPrefix(relSlash, d+"/") {
			return "", ToolError{Code: CodeDeniedWrite, Message: "writes under " + d + "/ are not allowed"}
		}
	}
	base := filepath.Base(relSlash)
	for _, b := range deniedBases {
		if base == b {
			return "", ToolError{Code: CodeDeniedWrite, Message: "writes to " + b + " are not allowed"}
		}
	}
	return candidate, nil
}

// resolveExisting evaluates symlinks on the longest existing prefix of p.
func resolveExisting(p string) string {
	var tail []string
	cur := p
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p
		}
		tail = append([]string{filepath.Base(cur)}, tail...)
		cur = parent
	}
}
