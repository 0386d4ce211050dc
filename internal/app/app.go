// Package app implements the application layer for fpdgen.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/afero"
	"go.trai.ch/fpdgen/internal/adapters/detector"
	"go.trai.ch/fpdgen/internal/adapters/fs"
	"go.trai.ch/fpdgen/internal/adapters/linear"
	"go.trai.ch/fpdgen/internal/adapters/telemetry"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/fpdgen/internal/engine/invoker"
	"go.trai.ch/fpdgen/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// tracerName is the instrumentation scope of pipeline and invocation spans.
const tracerName = "fpdgen"

// App represents the main application logic.
type App struct {
	workspaces ports.WorkspaceLoader
	platforms  ports.PlatformLoader
	writer     ports.FileWriter
	executor   ports.Executor
	watcher    ports.Watcher
	logger     ports.Logger

	stdout   io.Writer
	stderr   io.Writer
	getwd    func() (string, error)
	debounce time.Duration
}

// New creates a new App instance.
func New(
	workspaces ports.WorkspaceLoader,
	platforms ports.PlatformLoader,
	writer ports.FileWriter,
	executor ports.Executor,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		workspaces: workspaces,
		platforms:  platforms,
		writer:     writer,
		executor:   executor,
		watcher:    watcher,
		logger:     log,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		getwd:      os.Getwd,
		debounce:   defaultDebounceWindow,
	}
}

// WithOutput redirects progress and command output.
// This is primarily used for testing to capture what the user would see.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDebounce overrides the window used to coalesce watch events.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	Targets    []string
	ToolChains []string
	// Invoke runs the image tool for every generated manifest.
	Invoke bool
	// DryRun runs the whole pipeline against an in-memory file system.
	DryRun     bool
	OutputMode string
}

// Generate runs the pipeline for the platform descriptor and, when asked, the image tool.
func (a *App) Generate(ctx context.Context, platformPath string, opts GenerateOptions) error {
	ws, path, err := a.loadWorkspace(platformPath)
	if err != nil {
		return err
	}
	return a.generate(ctx, ws, path, opts)
}

// DebugLogPath returns where the debug log is written for the current directory: below the
// workspace root when one is found, below the working directory otherwise.
func (a *App) DebugLogPath() string {
	cwd, err := a.getwd()
	if err != nil {
		return domain.DefaultDebugLogPath()
	}
	if root, err := a.workspaces.DiscoverRoot(cwd); err == nil {
		cwd = root
	}
	return filepath.Join(cwd, domain.DefaultDebugLogPath())
}

func (a *App) loadWorkspace(platformPath string) (*domain.Workspace, string, error) {
	if platformPath == "" {
		return nil, "", domain.ErrNoPlatformSpecified
	}

	cwd, err := a.getwd()
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to get current working directory")
	}

	ws, err := a.workspaces.Load(cwd)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load workspace")
	}

	if !filepath.IsAbs(platformPath) {
		platformPath = filepath.Join(cwd, platformPath)
	}
	return ws, filepath.Clean(platformPath), nil
}

func (a *App) generate(ctx context.Context, ws *domain.Workspace, path string, opts GenerateOptions) error {
	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)
	tracer, finish := a.newTracer(ctx, mode)
	defer finish()

	writer := a.writer
	if opts.DryRun {
		writer = fs.NewWriter(afero.NewMemMapFs())
	}

	pc := pipeline.NewContext(ws, path, pipeline.Options{
		Targets:    opts.Targets,
		ToolChains: opts.ToolChains,
	})
	if err := pipeline.New(a.platforms, writer, tracer, a.logger).Run(ctx, pc); err != nil {
		return zerr.Wrap(err, domain.ErrGenerationFailed.Error())
	}
	a.report(pc, opts.DryRun)

	if !opts.Invoke {
		return nil
	}
	if opts.DryRun {
		a.logger.Info("dry run: skipping image tool invocations")
		return nil
	}

	groups := pc.ImageInvocations(ws.FvImageTool)
	if len(groups) == 0 {
		a.logger.Warn("no fvImageTool configured in " + domain.WorkspaceFileName + ", skipping image tool invocations")
		return nil
	}
	return invoker.New(a.executor, tracer).Run(ctx, groups, runtime.NumCPU())
}

// newTracer returns the tracer for one run and the function that tears it down.
// Quiet mode discards spans; every other mode renders them as progress lines.
func (a *App) newTracer(ctx context.Context, mode detector.OutputMode) (ports.Tracer, func()) {
	if mode == detector.ModeQuiet {
		return telemetry.NewNoOpTracer(), func() {}
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr, mode.Profile)
	_ = renderer.Start(ctx)

	// Spans reach the renderer through the global provider.
	tp := telemetry.Install(renderer)
	tracer := telemetry.NewOTelTracer(tracerName).WithRenderer(renderer)

	return tracer, func() {
		// The caller's context may already be canceled; teardown must still flush.
		shutdownCtx := context.WithoutCancel(ctx)
		_ = tracer.Shutdown(shutdownCtx)
		_ = tp.Shutdown(shutdownCtx)
		_ = renderer.Stop()
		_ = renderer.Wait()
	}
}

func (a *App) report(pc *pipeline.Context, dryRun bool) {
	changed := 0
	for _, m := range pc.Manifests {
		if m.Changed {
			changed++
			a.logger.Debug("wrote " + m.Path)
		} else {
			a.logger.Debug("unchanged " + m.Path)
		}
	}

	verb := "generated"
	if dryRun {
		verb = "dry run: would generate"
	}
	a.logger.Info(fmt.Sprintf("%s %d manifest(s) for %d build pair(s) of %s, %d changed",
		verb, len(pc.Manifests), len(pc.Pairs), pc.Platform.Header.Name, changed))
	a.logger.Info("build script: " + pc.ScriptPath)
}
