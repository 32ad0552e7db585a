package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/go-dock/internal/render"
)

const rootLongDesc = `
go-dock renders API documentation for a Go package tree (or an element manifest written by
another introspection tool) as a single cross-linked Markdeep document. Every package, file,
type and function becomes a section with an anchor, and argument types that name a documented
element link straight to it.

  • Markdeep output viewable in any browser (` + "`<name>.md.html`" + ` by default, ` + "`-o`" + ` to override)
  • ` + "`--show`" + ` previews the Markdown in the terminal instead of writing a file
  • Settings from flags, DOCK_* environment variables, or .go-dock.yaml
  • Shell completion generation and a gen-docs helper for the CLI itself
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "go-dock [flags] <path>",
		Short:         "Render cross-linked API documentation as Markdeep",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.String("style", string(render.StyleJournal), "Markdeep stylesheet ("+strings.Join(render.StyleNames(), ", ")+")")
	flags.StringP("output", "o", "", "write the document to this file (- for stdout; default <name>.md.html)")
	flags.Bool("show", false, "render the Markdown in the terminal instead of writing a document")
	flags.String("theme", "auto", "glamour theme used by --show (auto, dark, light, notty, ...)")
	flags.BoolP("unexported", "u", false, "document unexported Go declarations as well as exported")
	flags.BoolP("verbose", "v", false, "log debug output, including dropped duplicates")
	flags.String("dedupe", "name", "duplicate identity: name (last short name wins) or qualified")
	flags.StringVar(&app.configFile, "config", "", "read settings from this file instead of ./.go-dock.yaml")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Usage()
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cfg, err := app.loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		return app.execute(ctx, cfg, args[0])
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for go-dock.

The output should be evaluated by your shell. For example:

  # bash
  go-dock completion bash > /usr/local/etc/bash_completion.d/go-dock

  # zsh
  go-dock completion zsh > "${fpath[1]}/_go-dock"

  # fish
  go-dock completion fish | source

  # PowerShell
  go-dock completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  go-dock gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the go-dock version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "go-dock %s\n", Version)
			return err
		},
	}
}
