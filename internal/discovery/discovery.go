// Package discovery produces element records for the namespace builder.
//
// Two sources exist: a manifest written by an external introspection step
// (YAML or JSON), and a Go package tree loaded with golang.org/x/tools. Both
// emit records in an order where every namespace precedes its contents, and
// both report per-module failures as warnings instead of aborting.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/agentflare-ai/go-dock/internal/element"
)

// ErrNotFound reports a discovery path that does not exist.
var ErrNotFound = errors.New("path does not exist")

// Source discovers element records.
type Source interface {
	Discover(ctx context.Context) ([]element.Record, error)
}

// Options configure the source chosen by ForPath.
type Options struct {
	// Unexported includes unexported Go declarations.
	Unexported bool
	Logger     *log.Logger
}

// ForPath returns a manifest source for .yaml, .yml and .json files and a Go
// source for everything else.
func ForPath(path string, opts Options) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if !info.IsDir() && IsManifest(path) {
		return &ManifestSource{Path: path, Logger: logger}, nil
	}
	return &GoSource{Root: path, Unexported: opts.Unexported, Logger: logger}, nil
}

// IsManifest reports whether path names a manifest file.
func IsManifest(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
