// Command research asks the model for a reading list on a fixed research
// request, resolves the suggested titles on Wikipedia and appends them to the
// reading file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/petasbytes/wiki-research/internal/config"
	"github.com/petasbytes/wiki-research/internal/fsops"
	"github.com/petasbytes/wiki-research/internal/provider"
	"github.com/petasbytes/wiki-research/internal/runner"
	"github.com/petasbytes/wiki-research/internal/session"
	"github.com/petasbytes/wiki-research/internal/wiki"
	"github.com/petasbytes/wiki-research/readinglist"
	"github.com/petasbytes/wiki-research/tools"
)

var rootCmd = &cobra.Command{
	Use:   "research",
	Short: "Build a Wikipedia reading list with the model's help",
	Long: `research sends a fixed research request to the Anthropic Messages API with the
generate_wikipedia_reading_list tool declared. The titles the model proposes
are looked up on Wikipedia; each resolved article is appended under a topic
heading to the reading file (output/research_reading.md by default).

Titles that cannot be resolved are skipped and listed on stderr. A reply that
does not invoke the tool is an error and writes nothing.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().String("config", "", "config file (default: ./wiki-research.yaml or ~/.config/wiki-research/wiki-research.yaml)")
}

func run(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Debug && cfg.File != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "using config %s\n", cfg.File)
	}

	sb, err := fsops.NewSandbox(cfg.Output.Root)
	if err != nil {
		return fmt.Errorf("output root: %w", err)
	}
	// Reject a bad output path before spending an API call.
	if _, err := sb.Resolve(cfg.Output.File); err != nil {
		return fmt.Errorf("output file: %w", err)
	}

	builder := &readinglist.Builder{
		Lookup: wiki.New(cfg.Wiki.Endpoint, cfg.Wiki.UserAgent, cfg.Wiki.Timeout, cfg.Wiki.SearchLimit),
		Store:  sb,
		Path:   cfg.Output.File,
	}
	client := provider.NewAnthropicClient(provider.Settings{
		APIKey:  cfg.Anthropic.APIKey,
		BaseURL: cfg.Anthropic.BaseURL,
	})
	r := runner.New(client, tools.Registry(builder))
	if cfg.Debug {
		r.Debug = cmd.ErrOrStderr()
	}

	ctx, _ := session.Start(cmd.Context(), session.ProgramResearch)
	rep, err := session.Research(ctx, r, session.Settings{
		Model:     anthropic.Model(cfg.Research.Model),
		MaxTokens: cfg.Research.MaxTokens,
	})
	if err != nil {
		return err
	}

	for _, s := range rep.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q: %s\n", s.Query, s.Reason)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "appended %d article(s) under %q to %s\n", len(rep.Articles), rep.Topic, rep.Path)
	return nil
}

func main() {
	// Ctrl-C aborts the in-flight request; nothing else is cancellable.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
