package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/agentflare-ai/go-dock/internal/config"
	"github.com/agentflare-ai/go-dock/internal/discovery"
	"github.com/agentflare-ai/go-dock/internal/namespace"
	"github.com/agentflare-ai/go-dock/internal/render"
)

// documentSuffix is appended to the input's stem when no output is given.
const documentSuffix = ".md.html"

type cliApp struct {
	stdout     io.Writer
	stderr     io.Writer
	configFile string
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.Execute()
}

func (app *cliApp) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	return config.Load(config.LoadOptions{Flags: flags, File: app.configFile})
}

func (app *cliApp) newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(app.stderr, log.Options{Prefix: "go-dock"})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

func (app *cliApp) execute(ctx context.Context, cfg *config.Config, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Show && cfg.Output != "" {
		return errors.New("--show cannot be combined with -o")
	}
	logger := app.newLogger(cfg)

	src, err := discovery.ForPath(path, discovery.Options{Unexported: cfg.Unexported, Logger: logger})
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			return fmt.Errorf("%s doesn't exist", path)
		}
		return err
	}
	records, err := src.Discover(ctx)
	if err != nil {
		return err
	}
	tree, err := namespace.BuildWith(records, namespace.BuildOptions{Key: cfg.DedupeKey(), Logger: logger})
	if err != nil {
		return fmt.Errorf("build namespace tree: %w", err)
	}
	body := render.New(tree.Registry).Render(tree.Root)

	if cfg.Show {
		return showMarkdown(app.stdout, body, cfg.Theme)
	}
	target := cfg.Output
	if target == "" {
		target = defaultOutputPath(path)
	}
	if err := writeOutput(target, app.stdout, render.Document(body, cfg.DocumentStyle())); err != nil {
		return err
	}
	if target != "-" {
		logger.Info("wrote document", "path", target, "elements", tree.Registry.Len())
	}
	return nil
}

// defaultOutputPath names the document after the input in the working
// directory: ./pkg/ becomes pkg.md.html and api.yaml becomes api.md.html.
func defaultOutputPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	base := filepath.Base(filepath.Clean(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == string(filepath.Separator) {
		stem = "index"
	}
	return stem + documentSuffix
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var legacyLongFlagSet = map[string]struct{}{
	"style":      {},
	"show":       {},
	"theme":      {},
	"output":     {},
	"unexported": {},
	"verbose":    {},
	"dedupe":     {},
	"config":     {},
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, arg)
			converted = append(converted, args[i+1:]...)
			if i != len(args)-1 {
				modified = true
			}
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || arg == "-" {
			converted = append(converted, arg)
			continue
		}
		if len(arg) == 2 {
			converted = append(converted, arg)
			continue
		}
		if idx := strings.Index(arg, "="); idx > 0 {
			name := arg[1:idx]
			if _, ok := legacyLongFlagSet[name]; ok {
				converted = append(converted, "--"+name+arg[idx:])
				modified = true
				continue
			}
		}
		name := arg[1:]
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "--"+name)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified && len(converted) == len(args) {
		return args
	}
	return converted
}
