package safety_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/petasbytes/wiki-research/internal/safety"
)

func TestValidateWritePath_DenyList(t *testing.T) {
	root := t.TempDir()
	_ = os.Mkdir(filepath.Join(root, ".git"), 0o755)
	_ = os.MkdirAll(filepath.Join(root, ".research", "payloads"), 0o755)

	cases := []struct {
		name string
		rel  string
		code string
	}{
		{"git head", ".git/HEAD", safety.CodeDeniedWrite},
		{"artifacts events", ".research/events.jsonl", safety.CodeDeniedWrite},
		{"artifacts subdir", ".research/payloads/x.json", safety.CodeDeniedWrite},
		{"go.mod at root", "go.mod", safety.CodeDeniedWrite},
		{"go.sum deep", "sub/dir/go.sum", safety.CodeDeniedWrite},
		{"root itself", ".", safety.CodeDeniedWrite},
		{"parent traversal", "../../x.md", safety.CodeOutsideSandbox},
		{"traversal after clean", "output/../../x.md", safety.CodeOutsideSandbox},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := safety.ValidateWritePath(root, tc.rel)
			if err == nil {
				t.Fatalf("expected deny for %q", tc.rel)
			}
			var te safety.ToolError
			if !errors.As(err, &te) {
				t.Fatalf("expected ToolError, got %T: %v", err, err)
			}
			if te.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, te.Code)
			}
		})
	}
}

func TestValidateWritePath_AbsoluteRejected(t *testing.T) {
	root := t.TempDir()
	abs, err := filepath.Abs(".")
	if err != nil {
		t.Skipf("cannot compute abs: %v", err)
	}
	if _, err := safety.ValidateWritePath(root, abs); err == nil {
		t.Fatal("expected reject for absolute path")
	} else if !strings.Contains(err.Error(), safety.CodeOutsideSandbox) {
		t.Fatalf("expected %s, got: %v", safety.CodeOutsideSandbox, err)
	}
}

func TestValidateWritePath_SymlinkEscapeOnNewFile(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	if runtime.GOOS == "windows" {
		t.Skip("symlink test skipped on Windows")
	}
	if err := os.Symlink(outside, filepath.Join(root, "out")); err != nil {
		t.Skipf("symlink not allowed on this FS: %v", err)
	}

	// Neither the leaf nor its parent exists; the grandparent is the symlink.
	if _, err := safety.ValidateWritePath(root, "out/nested/reading.md"); err == nil {
		t.Fatal("expected reject for symlink escape via ancestor")
	} else if !strings.Contains(err.Error(), safety.CodeOutsideSandbox) {
		t.Fatalf("expected %s, got %v", safety.CodeOutsideSandbox, err)
	}
}

func TestValidateWritePath_AllowMissingParents(t *testing.T) {
	root, err := safety.InitSandboxRoot(t.TempDir())
	if err != nil {
		t.Fatalf("init root: %v", err)
	}

	p, err := safety.ValidateWritePath(root, "output/research_reading.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(root, "output", "research_reading.md")
	if p != want {
		t.Fatalf("resolved path = %q, want %q", p, want)
	}
}

func TestInitSandboxRoot_EmptyMeansCwd(t *testing.T) {
	got, err := safety.InitSandboxRoot("")
	if err != nil {
		t.Fatalf("init root: %v", err)
	}
	cwd, _ := os.Getwd()
	if r, err := filepath.EvalSymlinks(cwd); err == nil {
		cwd = r
	}
	if got != cwd {
		t.Fatalf("root = %q, want %q", got, cwd)
	}
}

func TestInitSandboxRoot_MissingRootUnderSymlinkedParent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test skipped on Windows")
	}
	target := t.TempDir()
	link := filepath.Join(t.TempDir(), "home")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlink not allowed on this FS: %v", err)
	}

	root, err := safety.InitSandboxRoot(filepath.Join(link, "research"))
	if err != nil {
		t.Fatalf("init root: %v", err)
	}
	targetResolved, _ := filepath.EvalSymlinks(target)
	if want := filepath.Join(targetResolved, "research"); root != want {
		t.Fatalf("root = %q, want %q", root, want)
	}

	p, err := safety.ValidateWritePath(root, "output/research_reading.md")
	if err != nil {
		t.Fatalf("write under a not-yet-created root rejected: %v", err)
	}
	if want := filepath.Join(root, "output", "research_reading.md"); p != want {
		t.Fatalf("resolved path = %q, want %q", p, want)
	}
}
