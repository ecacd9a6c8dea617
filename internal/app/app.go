package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"

	"github.com/gavrilikhin-d/libos/internal/amalgam"
	"github.com/gavrilikhin-d/libos/internal/cli"
	"github.com/gavrilikhin-d/libos/internal/config"
	"github.com/gavrilikhin-d/libos/internal/fsio"
	"github.com/gavrilikhin-d/libos/internal/manifest"
	"github.com/gavrilikhin-d/libos/internal/model"
	"github.com/gavrilikhin-d/libos/internal/ui"
	"github.com/gavrilikhin-d/libos/internal/watch"
)

// ErrDrift reports that check mode found out-of-date generated headers.
var ErrDrift = errors.New("generated headers are out of date")

// App orchestrates the header-only tool: one generation run, a check pass,
// or a watch loop.
type App struct {
	cfg  *cli.HeaderOnlyConfig
	conf *config.Config
	fs   fsio.FS
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New resolves the repo root and loads the project config.
func New(cfg *cli.HeaderOnlyConfig) (*App, error) {
	root := cfg.Root
	if root == "" {
		root = fsio.FindRoot(".")
	}
	fs := fsio.NewOSFS(root)

	conf, err := config.Load(fs, config.FileName)
	if err != nil {
		return nil, err
	}
	if cfg.Output != "" {
		conf.OutputDir = cfg.Output
	}
	if cfg.Sources {
		conf.Sources = true
	}

	return &App{cfg: cfg, conf: conf, fs: fs}, nil
}

// Config exposes the effective configuration (root config file plus flags).
func (a *App) Config() *config.Config {
	return a.conf
}

// Execute runs a single generation or check pass and returns its summary.
func (a *App) Execute() (s model.Summary, err error) {
	// Centralized panic recovery to provide stack traces for unexpected errors.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	if a.cfg.Check {
		return a.check()
	}
	return a.generate()
}

func (a *App) amalgamator() *amalgam.Amalgamator {
	opts := amalgam.Options{
		HeaderDir:      a.conf.HeaderDir,
		OutputDir:      a.conf.OutputDir,
		IncludeRoot:    a.conf.IncludeRoot,
		Ignore:         a.conf.Ignore,
		Umbrella:       a.conf.Umbrella,
		LicenseEndLine: a.conf.LicenseEndLine,
		HeaderExt:      a.conf.HeaderExt,
		SourceExt:      a.conf.SourceExt,
		Sources:        a.conf.Sources,
		Only:           a.cfg.Only,
	}
	for _, pl := range a.conf.Platforms {
		opts.Platforms = append(opts.Platforms, amalgam.Platform{Guard: pl.Guard, Dir: pl.Dir})
	}
	return amalgam.New(a.fs, opts)
}

// generate amalgamates every eligible header and records the manifest.
func (a *App) generate() (model.Summary, error) {
	res, err := a.amalgamator().Run()
	s := summaryOf(res)
	if err != nil {
		return s, err
	}

	// A filtered run regenerates a subset; keep the other entries on record.
	mgr := manifest.NewManager(a.fs, a.conf.OutputDir)
	record := mgr.Write
	if a.cfg.Only != "" {
		record = mgr.Merge
	}
	if err := record(res.Outputs); err != nil {
		return s, fmt.Errorf("could not record manifest: %w", err)
	}
	s.Message = fmt.Sprintf("Wrote %d file(s) to %s", len(res.Generated), a.conf.OutputDir)
	return s, nil
}

// check renders everything in memory and compares against disk.
func (a *App) check() (model.Summary, error) {
	res, err := a.amalgamator().Render()
	s := summaryOf(res)
	if err != nil {
		return s, err
	}

	stale, missing, unexpected, err := manifest.NewManager(a.fs, a.conf.OutputDir).Diff(res.Outputs)
	if err != nil {
		return s, err
	}
	s.Generated = nil
	s.Failed = append(append(append([]string{}, stale...), missing...), unexpected...)
	if len(s.Failed) > 0 {
		s.Message = fmt.Sprintf("%d generated file(s) out of date", len(s.Failed))
		return s, ErrDrift
	}
	s.Message = "Generated headers are up to date"
	return s, nil
}

// Watch regenerates on every change to the header or source trees until ctx
// is cancelled. Errors from individual runs are reported and watching
// continues; only watcher failures end the loop.
func (a *App) Watch(ctx context.Context) error {
	dirs := []string{a.conf.HeaderDir}
	if a.conf.Sources {
		for _, pl := range a.conf.Platforms {
			dirs = append(dirs, pl.Dir)
		}
	}

	run := func() {
		s, err := a.generate()
		if err != nil {
			ui.Error("Regeneration failed: %v", err)
			return
		}
		ui.Success("%s", s.Message)
	}

	// Absolute paths for the watcher; event paths come back absolute too.
	root, ok := a.fs.(*fsio.OSFS)
	if !ok {
		return fmt.Errorf("watch mode needs a real file system")
	}
	absDirs := make([]string, len(dirs))
	for i, d := range dirs {
		absDirs[i] = filepath.Join(root.Root, filepath.FromSlash(d))
	}

	w, err := watch.New(absDirs, []string{a.conf.OutputDir}, watch.DefaultDebounce, run)
	if err != nil {
		return err
	}

	ui.Header("--- Watching for changes (Ctrl-C to stop) ---")
	run()
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func summaryOf(res *amalgam.Result) model.Summary {
	if res == nil {
		return model.Summary{}
	}
	return model.Summary{
		Considered: res.Considered,
		Generated:  res.Generated,
		Skipped:    res.Skipped,
	}
}
