// Package deploy coalesces theme file changes into Theme Kit deploy
// invocations. Callers hand it batches of changed file paths; it merges
// them into a single pending set, deduplicates, and serializes deploys so
// at most one transfer runs at a time. Files submitted while a deploy is in
// flight are never lost: they accumulate and go out with the next flush.
//
// Transfer failures are deliberately not surfaced through return values.
// The external tool reports progress and errors on its own output, and a
// failed transfer must never wedge the pipeline, so executor errors are
// logged and the deployer returns to idle. A Result whose Status is
// StatusStarted or StatusCompleted therefore means "handed to the deploy
// tool", not "transferred successfully"; the outcome is only observable in
// the logs.
package deploy

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kilgore5/slate/config"
	"github.com/kilgore5/slate/themekit"
)

var (
	// ErrNoFiles indicates a sync request with an empty file batch.
	ErrNoFiles = errors.New("no files to deploy")

	// ErrDeployInProgress indicates a deploy is already in flight. The
	// pending set is left untouched; the caller can retry once the
	// in-flight deploy completes.
	ErrDeployInProgress = errors.New("deploy already in progress")
)

// Status describes what a deploy operation did.
type Status int

const (
	// StatusNoop means nothing was pending and no deploy was started.
	StatusNoop Status = iota

	// StatusQueued means the files were merged into the pending set while
	// a deploy was in flight. They go out with a later flush.
	StatusQueued

	// StatusStarted means an asynchronous deploy began with the returned
	// file snapshot. Transfer outcome is reported via logs only.
	StatusStarted

	// StatusCompleted means a whole-theme deploy ran to completion.
	// Transfer outcome is reported via logs only.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusNoop:
		return "noop"
	case StatusQueued:
		return "queued"
	case StatusStarted:
		return "started"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Result reports what a Sync, Flush, Upload, or Replace call did.
type Result struct {
	// Status tells the caller whether files were queued, a deploy started,
	// or nothing needed doing.
	Status Status

	// ID identifies the deploy operation in log output. Empty unless a
	// deploy started.
	ID string

	// Files is the deduplicated snapshot handed to the deploy tool.
	// Empty for queued, noop, and whole-theme operations.
	Files []string
}

// Deployer owns the pending file set and the single in-flight flag. Create
// one with New and share it; the zero value is not usable.
type Deployer struct {
	cfg    *config.Config
	runner themekit.Runner
	log    *slog.Logger

	mu      sync.Mutex
	busy    bool
	pending map[string]struct{}
	wg      sync.WaitGroup
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithLogger sets the logger deploy activity is reported through.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(d *Deployer) {
		d.log = log
	}
}

// New creates a Deployer that invokes the given runner with flags built
// from cfg.
func New(cfg *config.Config, runner themekit.Runner, opts ...Option) *Deployer {
	d := &Deployer{
		cfg:     cfg,
		runner:  runner,
		log:     slog.Default(),
		pending: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With("component", "deploy")
	return d
}

// Enqueue merges the given file paths into the pending set without
// attempting a deploy. An empty batch fails with ErrNoFiles. Batches
// enqueued back to back coalesce into a single deduplicated set and go out
// in one deploy on the next flush.
func (d *Deployer) Enqueue(files []string) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	d.mu.Lock()
	for _, f := range files {
		d.pending[f] = struct{}{}
	}
	d.mu.Unlock()
	return nil
}

// Sync merges the given file paths into the pending set and attempts to
// start a deploy. An empty batch fails with ErrNoFiles. If a deploy is
// already in flight the files stay pending and the result is StatusQueued;
// they are flushed by a later Sync or Flush call, never dropped.
func (d *Deployer) Sync(files []string) (*Result, error) {
	if err := d.Enqueue(files); err != nil {
		return nil, err
	}

	result, err := d.Flush()
	if errors.Is(err, ErrDeployInProgress) {
		return &Result{Status: StatusQueued}, nil
	}
	return result, err
}

// Flush starts a deploy for the accumulated pending set. It fails with
// ErrDeployInProgress while a deploy is in flight, and succeeds trivially
// with StatusNoop when nothing is pending. Otherwise it snapshots and
// clears the pending set, marks the deployer busy, and starts the deploy
// asynchronously; the returned result carries the snapshot and the deploy
// ID used in log output.
//
// Checking the busy flag, snapshotting, and clearing happen under one
// mutex hold so files merged concurrently either make this snapshot or
// stay pending for the next one.
func (d *Deployer) Flush() (*Result, error) {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil, ErrDeployInProgress
	}
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return &Result{Status: StatusNoop}, nil
	}

	files := make([]string, 0, len(d.pending))
	for f := range d.pending {
		files = append(files, f)
	}
	sort.Strings(files)
	d.pending = make(map[string]struct{})
	d.busy = true
	d.mu.Unlock()

	id := uuid.NewString()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.setIdle()
		d.run(id, themekit.DeployOptions{Files: files, NoDelete: true})
	}()

	return &Result{Status: StatusStarted, ID: id, Files: files}, nil
}

// Upload deploys the whole theme in additive mode: remote files absent
// locally are preserved. It bypasses the pending set but honors the same
// in-flight exclusion as queued deploys, and blocks until the deploy tool
// returns.
func (d *Deployer) Upload() (*Result, error) {
	return d.force(themekit.DeployOptions{NoDelete: true})
}

// Replace deploys the whole theme in replace mode: the remote theme is
// mirrored to the local set exactly, deleting remote-only files. Same
// exclusion and blocking behavior as Upload.
func (d *Deployer) Replace() (*Result, error) {
	return d.force(themekit.DeployOptions{NoDelete: false})
}

func (d *Deployer) force(opts themekit.DeployOptions) (*Result, error) {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil, ErrDeployInProgress
	}
	d.busy = true
	d.mu.Unlock()
	defer d.setIdle()

	id := uuid.NewString()
	d.run(id, opts)
	return &Result{Status: StatusCompleted, ID: id}, nil
}

// run executes the configure and deploy steps. Executor failures are
// logged and swallowed here; the busy flag is cleared by the caller
// regardless of outcome.
func (d *Deployer) run(id string, opts themekit.DeployOptions) {
	log := d.log.With("deploy_id", id)

	config.MustValid(d.cfg)
	flags := themekit.NewFlags(d.cfg)

	mode := "replace"
	if opts.NoDelete {
		mode = "upload"
	}
	log.Info("deploy started",
		"mode", mode, "files", len(opts.Files), "env", flags.Environment)

	ctx := context.Background()
	if _, err := d.runner.Configure(ctx, flags); err != nil {
		log.Error("theme configure failed", "error", err)
		return
	}
	if _, err := d.runner.Deploy(ctx, flags, opts); err != nil {
		log.Error("theme deploy failed", "error", err)
		return
	}
	log.Info("deploy finished")
}

func (d *Deployer) setIdle() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
}

// InFlight reports whether a deploy is currently running.
func (d *Deployer) InFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Pending returns a sorted copy of the paths waiting for the next flush.
func (d *Deployer) Pending() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	files := make([]string, 0, len(d.pending))
	for f := range d.pending {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Wait blocks until all asynchronous deploys started by Flush or Sync have
// completed. It does not prevent new deploys from starting.
func (d *Deployer) Wait() {
	d.wg.Wait()
}
