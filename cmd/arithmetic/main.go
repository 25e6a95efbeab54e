// Command arithmetic sends one fixed multiplication prompt to the model and
// prints the text of the first response segment.
package main

import (
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/petasbytes/wiki-research/internal/config"
	"github.com/petasbytes/wiki-research/internal/provider"
	"github.com/petasbytes/wiki-research/internal/runner"
	"github.com/petasbytes/wiki-research/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "arithmetic",
	Short: "Ask the model to multiply 1984135 by 9343116",
	Long: `arithmetic sends a single fixed prompt to the Anthropic Messages API and
prints the text of the first content segment of the reply.

The API key is read from ANTHROPIC_API_KEY (a .env file in the working
directory is loaded first).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		client := provider.NewAnthropicClient(provider.Settings{
			APIKey:  cfg.Anthropic.APIKey,
			BaseURL: cfg.Anthropic.BaseURL,
		})
		r := runner.New(client, nil)
		if cfg.Debug {
			r.Debug = cmd.ErrOrStderr()
		}

		ctx, _ := session.Start(cmd.Context(), session.ProgramArithmetic)
		text, err := session.Arithmetic(ctx, r, session.Settings{
			Model:     anthropic.Model(cfg.Arithmetic.Model),
			MaxTokens: cfg.Arithmetic.MaxTokens,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.Flags().String("config", "", "config file (default: ./wiki-research.yaml or ~/.config/wiki-research/wiki-research.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
