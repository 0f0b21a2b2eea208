// Package themekit invokes the Shopify Theme Kit binary (`theme`) to
// transfer theme files. The transfer protocol itself lives entirely in the
// external tool; this package is responsible for assembling its argument
// vectors, running it with captured or redirected output, and surfacing
// exit information.
//
// Example usage:
//
//	cli := themekit.New()
//	flags := themekit.NewFlags(cfg)
//	if _, err := cli.Configure(ctx, flags); err != nil {
//	    return err
//	}
//	result, err := cli.Deploy(ctx, flags, themekit.DeployOptions{
//	    Files:    []string{"layout/theme.liquid"},
//	    NoDelete: true,
//	})
package themekit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultProgram is the Theme Kit binary name resolved via PATH.
const DefaultProgram = "theme"

// Result holds the output and exit information from one Theme Kit
// invocation.
type Result struct {
	Stdout   string
	Stderr   string
	Combined string
	ExitCode int
	Err      error
}

// Runner abstracts the two Theme Kit steps used by the deploy layer.
// The CLI type is the real implementation; tests substitute mocks.
type Runner interface {
	// Configure runs the pre-deploy configuration step.
	Configure(ctx context.Context, flags Flags) (*Result, error)

	// Deploy runs the transfer step.
	Deploy(ctx context.Context, flags Flags, opts DeployOptions) (*Result, error)
}

// Options configures how the binary is run.
type Options struct {
	// Output handling
	CaptureStdout     bool
	CaptureStderr     bool
	CaptureCombined   bool
	RedirectToConsole bool

	// Working directory for the invocation (the theme root)
	WorkingDir string

	// Environment variables appended to the current environment
	Env map[string]string

	// Custom stdout/stderr writers for advanced use cases
	StdoutWriter io.Writer
	StderrWriter io.Writer
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions returns default execution options: output captured,
// nothing echoed to the console.
func DefaultOptions() *Options {
	return &Options{
		CaptureStdout: true,
		CaptureStderr: true,
		Env:           make(map[string]string),
	}
}

// WithConsoleRedirect echoes the tool's output to the console in addition
// to capturing it. Deploy progress is only visible to users through the
// tool's own output, so interactive callers generally want this on.
func WithConsoleRedirect(redirect bool) Option {
	return func(o *Options) {
		o.RedirectToConsole = redirect
	}
}

// WithWorkingDir sets the directory the binary runs in.
func WithWorkingDir(dir string) Option {
	return func(o *Options) {
		o.WorkingDir = dir
	}
}

// WithEnv adds environment variables for the invocation.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		if o.Env == nil {
			o.Env = make(map[string]string)
		}
		for k, v := range env {
			o.Env[k] = v
		}
	}
}

// WithStdoutWriter sets a custom stdout writer.
func WithStdoutWriter(w io.Writer) Option {
	return func(o *Options) {
		o.StdoutWriter = w
	}
}

// WithStderrWriter sets a custom stderr writer.
func WithStderrWriter(w io.Writer) Option {
	return func(o *Options) {
		o.StderrWriter = w
	}
}

// CLI runs the Theme Kit binary. It implements Runner.
type CLI struct {
	program string
	options *Options
}

// New creates a CLI for the Theme Kit binary with the given options.
func New(opts ...Option) *CLI {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &CLI{
		program: DefaultProgram,
		options: options,
	}
}

// NewProgram creates a CLI for an explicit binary name or path.
func NewProgram(program string, opts ...Option) *CLI {
	c := New(opts...)
	c.program = program
	return c
}

// Installed reports whether the Theme Kit binary is available on PATH.
func Installed() bool {
	_, err := exec.LookPath(DefaultProgram)
	return err == nil
}

// Configure implements Runner.
func (c *CLI) Configure(ctx context.Context, flags Flags) (*Result, error) {
	result, err := c.run(ctx, flags.ConfigureArgs())
	if err != nil {
		return result, fmt.Errorf("theme configure: %w", err)
	}
	return result, nil
}

// Deploy implements Runner.
func (c *CLI) Deploy(ctx context.Context, flags Flags, opts DeployOptions) (*Result, error) {
	result, err := c.run(ctx, flags.DeployArgs(opts))
	if err != nil {
		return result, fmt.Errorf("theme deploy: %w", err)
	}
	return result, nil
}

func (c *CLI) run(ctx context.Context, args []string) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.program, args...)

	c.setupCommand(cmd)
	stdoutBuf, stderrBuf, combinedBuf := c.setupOutputCapture(cmd)

	err := cmd.Run()

	result := c.createResult(stdoutBuf, stderrBuf, combinedBuf, err)
	if err != nil {
		return result, fmt.Errorf("command execution failed: %w", err)
	}
	return result, nil
}

// setupCommand configures the exec.Cmd with working directory and
// environment.
func (c *CLI) setupCommand(cmd *exec.Cmd) {
	if c.options.WorkingDir != "" {
		cmd.Dir = c.options.WorkingDir
	}
	if len(c.options.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range c.options.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}
}

// setupOutputCapture configures stdout and stderr writers for the command.
func (c *CLI) setupOutputCapture(cmd *exec.Cmd) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	var stdoutBuf, stderrBuf, combinedBuf bytes.Buffer

	stdoutWriters := []io.Writer{}
	if c.options.CaptureStdout || c.options.CaptureCombined {
		if c.options.CaptureCombined {
			stdoutWriters = append(stdoutWriters, &combinedBuf)
		} else {
			stdoutWriters = append(stdoutWriters, &stdoutBuf)
		}
	}
	if c.options.RedirectToConsole {
		stdoutWriters = append(stdoutWriters, os.Stdout)
	}
	if c.options.StdoutWriter != nil {
		stdoutWriters = append(stdoutWriters, c.options.StdoutWriter)
	}
	if len(stdoutWriters) > 0 {
		cmd.Stdout = io.MultiWriter(stdoutWriters...)
	}

	stderrWriters := []io.Writer{}
	if c.options.CaptureStderr || c.options.CaptureCombined {
		if c.options.CaptureCombined {
			stderrWriters = append(stderrWriters, &combinedBuf)
		} else {
			stderrWriters = append(stderrWriters, &stderrBuf)
		}
	}
	if c.options.RedirectToConsole {
		stderrWriters = append(stderrWriters, os.Stderr)
	}
	if c.options.StderrWriter != nil {
		stderrWriters = append(stderrWriters, c.options.StderrWriter)
	}
	if len(stderrWriters) > 0 {
		cmd.Stderr = io.MultiWriter(stderrWriters...)
	}

	return &stdoutBuf, &stderrBuf, &combinedBuf
}

// createResult creates a Result from command execution and error.
func (c *CLI) createResult(stdoutBuf, stderrBuf, combinedBuf *bytes.Buffer, err error) *Result {
	result := &Result{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Combined: combinedBuf.String(),
		Err:      err,
	}

	var exitErr *exec.ExitError
	switch {
	case err != nil && errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err == nil:
		result.ExitCode = 0
	default:
		result.ExitCode = -1
	}

	return result
}
