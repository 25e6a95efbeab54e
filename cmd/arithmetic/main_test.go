package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticCommand_PrintsAnswer(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"role":"assistant","content":[{"type":"text","text":"18538003464660"}]}`))
	}))
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WIKI_RESEARCH_ANTHROPIC_API_KEY", "test-key")
	t.Setenv("WIKI_RESEARCH_ANTHROPIC_BASE_URL", srv.URL)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "18538003464660\n", out.String())
	assert.Contains(t, string(gotBody), "Multiply 1984135 by 9343116.")
}

func TestArithmeticCommand_MissingKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("WIKI_RESEARCH_ANTHROPIC_API_KEY", "")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestArithmeticCommand_DebugReportsConfigFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"role":"assistant","content":[{"type":"text","text":"42"}]}`))
	}))
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WIKI_RESEARCH_ANTHROPIC_API_KEY", "test-key")
	t.Setenv("WIKI_RESEARCH_ANTHROPIC_BASE_URL", srv.URL)
	require.NoError(t, os.WriteFile("wiki-research.yaml", []byte("debug: true\n"), 0o644))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "42\n", out.String())
	assert.Contains(t, errOut.String(), "using config ")
	assert.Contains(t, errOut.String(), "wiki-research.yaml")
	// The raw response is echoed in debug mode.
	assert.Contains(t, errOut.String(), `"text":"42"`)
}
