// Package telemetry writes opt-in JSONL events and raw API payloads under the
// artifacts directory. Events carry sizes, counts and categories; raw prompts
// and tool inputs only ever reach disk through payload persistence.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Emit writes a single JSON line to <artifacts>/events.jsonl when observation
// is enabled. It augments fields with RFC3339Nano time and the event name.
func Emit(name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	// Shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	dir := ArtifactsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
		return
	}

	path := filepath.Join(dir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}

// EmitCtx is Emit with the session from ctx (id, program, elapsed time)
// stamped on the event.
func EmitCtx(ctx context.Context, name string, fields map[string]any) {
	s, _ := SessionFromContext(ctx)
	m := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		m[k] = v
	}
	s.fields(m)
	Emit(name, m)
}

// PersistPayload writes raw to <artifacts>/payloads/<session>-<kind>.json when
// payload persistence is enabled. It returns the written path, or "" when
// nothing was written.
func PersistPayload(ctx context.Context, kind string, raw []byte) string {
	if !PersistPayloadsEnabled() || len(raw) == 0 {
		return ""
	}
	sid := fmt.Sprintf("nosession-%d", time.Now().UnixNano())
	if s, ok := SessionFromContext(ctx); ok {
		sid = s.ID
	}

	dir := filepath.Join(ArtifactsDir(), "payloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
		return ""
	}
	path := filepath.Join(dir, sid+"-"+kind+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
		return ""
	}
	return path
}
