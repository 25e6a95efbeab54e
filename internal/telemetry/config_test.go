package telemetry_test

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"github.com/petasbytes/wiki-research/internal/telemetry"
)

// Run TestStartupConfigChild in a clean env so startup-only telemetry config is deterministic.
func runWithEnv(t *testing.T, env map[string]string) (string, error) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=TestStartupConfigChild")
	// Avoid inheriting WIKI_RESEARCH_* from the parent.
	base := []string{"GO_WANT_HELPER_PROCESS=1"}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "PATH=") {
			base = append(base, kv)
			break
		}
	}
	for k, v := range env {
		base = append(base, k+"="+v)
	}
	cmd.Env = base
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestStartupConfig_Matrix(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"baseline_off", map[string]string{}, "observe=false persist=false dir=.research"},
		{"observe_only", map[string]string{"WIKI_RESEARCH_OBSERVE_JSON": "1"}, "observe=true persist=false dir=.research"},
		{"persist_only", map[string]string{"WIKI_RESEARCH_PERSIST_API_PAYLOADS": "1"}, "observe=false persist=true dir=.research"},
		{"explicit_zero", map[string]string{"WIKI_RESEARCH_OBSERVE_JSON": "0"}, "observe=false persist=false dir=.research"},
		{"custom_dir", map[string]string{"WIKI_RESEARCH_ARTIFACTS_DIR": "arts"}, "observe=false persist=false dir=arts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runWithEnv(t, tt.env)
			if err != nil {
				t.Fatalf("subprocess error: %v\n%s", err, got)
			}
			if !slices.Contains(strings.Split(got, "\n"), tt.want) {
				t.Fatalf("want line:\n%s\ngot output:\n%s", tt.want, got)
			}
		})
	}
}

// TestStartupConfigChild prints the startup config for the parent process to assert on.
func TestStartupConfigChild(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Printf(
		"observe=%v persist=%v dir=%s\n",
		telemetry.ObserveEnabled(),
		telemetry.PersistPayloadsEnabled(),
		telemetry.ArtifactsDir(),
	)
}
