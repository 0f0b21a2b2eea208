package themekit

import (
	"github.com/kilgore5/slate/config"
)

// Flags holds the per-invocation options passed to the Theme Kit binary.
// A Flags value is assembled fresh from the configuration for every
// invocation; nothing is cached between deploys.
type Flags struct {
	Password    config.Secret
	ThemeID     string
	Store       string
	Environment string
	Timeout     string   // Theme Kit duration string, empty to omit
	IgnoreFiles []string // one --ignored-file flag per entry
}

// NewFlags assembles Flags from the environment configuration.
func NewFlags(cfg *config.Config) Flags {
	f := Flags{
		Password:    cfg.Password,
		ThemeID:     cfg.ThemeID,
		Store:       cfg.Store,
		Environment: cfg.Environment,
		IgnoreFiles: cfg.IgnoreFiles,
	}
	if cfg.Timeout > 0 {
		f.Timeout = cfg.Timeout.String()
	}
	return f
}

// common returns the flag pairs shared by the configure and deploy steps.
func (f Flags) common() []string {
	args := []string{
		"--password", f.Password.Reveal(),
		"--themeid", f.ThemeID,
		"--store", f.Store,
		"--env", f.Environment,
	}
	if f.Timeout != "" {
		args = append(args, "--timeout", f.Timeout)
	}
	for _, pattern := range f.IgnoreFiles {
		args = append(args, "--ignored-file", pattern)
	}
	return args
}

// ConfigureArgs returns the argument vector for the pre-deploy configure
// step, which writes the Theme Kit environment settings.
func (f Flags) ConfigureArgs() []string {
	return append([]string{"configure"}, f.common()...)
}

// DeployOptions selects what the deploy step transfers and how.
type DeployOptions struct {
	// Files limits the deploy to an explicit file list. Empty means the
	// whole theme.
	Files []string

	// NoDelete selects additive (upload) mode: files present remotely but
	// absent locally are preserved. When false the deploy mirrors the
	// local set exactly, deleting remote-only files (replace mode).
	NoDelete bool
}

// DeployArgs returns the argument vector for the deploy step.
// --allow-live is always passed: intent to touch a published theme is
// confirmed by the caller before any deploy is requested.
func (f Flags) DeployArgs(opts DeployOptions) []string {
	args := append([]string{"deploy"}, f.common()...)
	args = append(args, "--allow-live")
	if opts.NoDelete {
		args = append(args, "--nodelete")
	}
	return append(args, opts.Files...)
}
