package telemetry

import (
	"os"
)

const (
	envObserve         = "WIKI_RESEARCH_OBSERVE_JSON"
	envPersistPayloads = "WIKI_RESEARCH_PERSIST_API_PAYLOADS"
	envArtifactsDir    = "WIKI_RESEARCH_ARTIFACTS_DIR"

	defaultArtifactsDir = ".research"
)

var (
	observeEnabled         bool
	persistPayloadsEnabled bool
)

func init() {
	// Read once at process start.
	observeEnabled = os.Getenv(envObserve) == "1"
	persistPayloadsEnabled = os.Getenv(envPersistPayloads) == "1"
}

// ObserveEnabled reports whether JSONL event emission is on.
func ObserveEnabled() bool {
	// Preserve the startup value, but allow tests to enable mid-run.
	if os.Getenv(envObserve) == "1" {
		return true
	}
	return observeEnabled
}

// PersistPayloadsEnabled reports whether raw API payloads are written to disk.
func PersistPayloadsEnabled() bool {
	if os.Getenv(envPersistPayloads) == "1" {
		return true
	}
	return persistPayloadsEnabled
}

// ArtifactsDir is where events.jsonl and payloads/ live.
func ArtifactsDir() string {
	if v := os.Getenv(envArtifactsDir); v != "" {
		return v
	}
	return defaultArtifactsDir
}
