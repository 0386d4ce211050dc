// Package pipeline drives the parse and emit state machine of one platform build.
package pipeline

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/fpdgen/internal/engine/buildscript"
	"go.trai.ch/fpdgen/internal/engine/manifest"
	"go.trai.ch/fpdgen/internal/engine/options"
	"go.trai.ch/zerr"
)

// Pipeline loads a platform descriptor and writes its manifests and build script.
type Pipeline struct {
	loader  ports.PlatformLoader
	writer  ports.FileWriter
	tracer  ports.Tracer
	logger  ports.Logger
	emitter *manifest.Emitter
}

// New creates a new Pipeline.
func New(loader ports.PlatformLoader, writer ports.FileWriter, tracer ports.Tracer, logger ports.Logger) *Pipeline {
	return &Pipeline{
		loader:  loader,
		writer:  writer,
		tracer:  tracer,
		logger:  logger,
		emitter: manifest.NewEmitter(writer, logger),
	}
}

type step struct {
	name  string
	stage domain.Stage
	run   func(context.Context, *Context) error
}

// Run takes the context from UNPARSED to EMITTED. A context can be run once; later
// calls fail with ErrPipelineReentered whatever the outcome of the first.
func (p *Pipeline) Run(ctx context.Context, pc *Context) error {
	if pc.ran {
		err := zerr.With(domain.ErrPipelineReentered, "platform", pc.PlatformPath)
		return zerr.With(err, "stage", pc.Stage().String())
	}
	pc.ran = true

	steps := []step{
		{"Loading platform", domain.StageHeaderLoaded, p.loadHeader},
		{"Resolving build options", domain.StageOptionsResolved, p.resolveOptions},
		{"Binding modules", domain.StageModulesBound, p.bindModules},
		{"Assigning firmware volumes", domain.StageFVAssigned, p.assignVolumes},
		{"Writing manifests", domain.StageEmitted, p.emit},
	}

	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	p.tracer.EmitPlan(ctx, names)

	for _, s := range steps {
		if err := p.runStep(ctx, pc, s); err != nil {
			return zerr.With(err, "platform", pc.PlatformPath)
		}
	}
	return nil
}

func (p *Pipeline) runStep(ctx context.Context, pc *Context, s step) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := p.tracer.Start(ctx, s.name)
	defer span.End()

	if err := s.run(ctx, pc); err != nil {
		span.RecordError(err)
		return err
	}
	if err := pc.stages.Advance(s.stage); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("fpdgen.stage", s.stage.String())
	return nil
}

func (p *Pipeline) loadHeader(_ context.Context, pc *Context) error {
	platform, err := p.loader.Load(pc.PlatformPath, pc.Workspace)
	if err != nil {
		return err
	}
	pc.Platform = platform

	ws := pc.Workspace
	props := domain.NewProperties(ws.Properties)
	props.Set(domain.PropWorkspaceDir, filepath.ToSlash(ws.Root))
	props.Set(domain.PropPlatform, platform.Header.Name)
	props.Set(domain.PropPlatformFile, platform.Header.RelativeFile)
	props.Set(domain.PropPlatformDir, platform.Header.Dir)
	props.Set(domain.PropPlatformRelativeDir, platform.Header.RelativeDir)
	pc.Properties = props

	pc.BuildDir = resolveBuildDir(ws, platform, props)
	props.Set(domain.PropBuildDir, pc.BuildDir)

	pairs, err := selectPairs(ws, platform, pc.Options)
	if err != nil {
		return err
	}
	pc.Pairs = pairs

	p.logger.Debug(fmt.Sprintf("platform %s: %d module instances, %d build pairs",
		platform.Header.Name, len(platform.Modules), len(pairs)))
	return nil
}

// resolveBuildDir prefers the platform output directory, then the workspace setting,
// then Build below the workspace root. Relative paths are taken from the workspace root.
func resolveBuildDir(ws *domain.Workspace, platform *domain.Platform, props *domain.Properties) string {
	dir := strings.TrimSpace(props.Substitute(platform.Definitions.OutputDirectory))
	if dir == "" {
		dir = ws.BuildDir
	}
	if dir == "" {
		dir = domain.DefaultBuildDirName
	}
	dir = filepath.ToSlash(dir)
	if !path.IsAbs(dir) && !filepath.IsAbs(dir) {
		dir = path.Join(filepath.ToSlash(ws.Root), dir)
	}
	return path.Clean(dir)
}

func selectPairs(ws *domain.Workspace, platform *domain.Platform, opts Options) ([]domain.BuildPair, error) {
	targets := filterFold(platform.Definitions.Targets, ws.Targets)
	targets = filterFold(targets, opts.Targets)

	tags := opts.ToolChains
	if len(tags) == 0 {
		tags = ws.ToolChains
	}

	pairs := make([]domain.BuildPair, 0, len(targets)*len(tags))
	for _, target := range targets {
		for _, tag := range tags {
			pairs = append(pairs, domain.BuildPair{
				Target:    target,
				ToolChain: tag,
				Family:    ws.FamilyOf(tag),
			})
		}
	}

	if len(pairs) == 0 {
		err := zerr.With(domain.ErrNoBuildPairs, "targets", strings.Join(platform.Definitions.Targets, " "))
		return nil, zerr.With(err, "tool_chains", strings.Join(tags, " "))
	}
	return pairs, nil
}

// filterFold keeps the values also present in keep, ignoring case. An empty keep list keeps everything.
func filterFold(values, keep []string) []string {
	if len(keep) == 0 {
		return values
	}
	var out []string
	for _, v := range values {
		if slices.ContainsFunc(keep, func(k string) bool { return strings.EqualFold(k, v) }) {
			out = append(out, v)
		}
	}
	return out
}

func (p *Pipeline) resolveOptions(_ context.Context, pc *Context) error {
	pc.PlatformOptions = options.Resolve(pc.Platform.BuildOptions, nil, options.WithDefaults(pc.Workspace.ToolsDef))
	return nil
}

func (p *Pipeline) bindModules(_ context.Context, pc *Context) error {
	pc.Modules = make([]domain.BoundModule, 0, len(pc.Platform.Modules))

	for _, ma := range pc.Platform.Modules {
		id := ma.ID
		baseName := domain.BaseNameOr(ma.OutputBaseName, id.Module)

		name, err := domain.ComputeOutputName(id.Arch, id.Module.GUID, baseName, id.Module.Type)
		if err != nil {
			return zerr.With(err, "module", id.String())
		}
		pc.Outputs.Put(id, name)

		pc.Modules = append(pc.Modules, domain.BoundModule{
			ID:         id,
			Options:    options.Resolve(pc.Platform.BuildOptions, ma.Options, options.WithDefaults(pc.Workspace.ToolsDef)),
			OutputName: name,
			Dir:        path.Dir(filepath.ToSlash(id.Module.Path)),
			Sources:    ma.Sources,
		})
	}
	return nil
}

func (p *Pipeline) assignVolumes(_ context.Context, pc *Context) error {
	for _, mod := range pc.Modules {
		pc.FVs.Assign(mod.ID.FvBinding, mod.ID)
	}

	declared := pc.Platform.ValidImageNames()
	for _, fv := range pc.FVs.Names() {
		if fv != domain.NullFV && !slices.Contains(declared, fv) {
			p.logger.Warn(fmt.Sprintf("firmware volume %s is bound by modules but not declared, no manifest is written", fv))
		}
	}

	return pc.Outputs.Covers(pc.FVs)
}

func (p *Pipeline) emit(ctx context.Context, pc *Context) error {
	fvNames := pc.Platform.ValidImageNames()

	for _, pair := range pc.Pairs {
		if err := p.emitPair(ctx, pc, pair, fvNames); err != nil {
			err = zerr.With(err, "target", pair.Target)
			return zerr.With(err, "tool_chain", pair.ToolChain)
		}
	}

	script, err := buildscript.Generate(buildscript.Input{
		Platform:    pc.Platform,
		Root:        filepath.ToSlash(pc.Workspace.Root),
		BuildDir:    pc.BuildDir,
		Pairs:       pc.Pairs,
		Modules:     pc.Modules,
		FVs:         pc.FVs,
		Tools:       pc.Workspace.BuildTools,
		FvImageTool: pc.Workspace.FvImageTool,
		Properties:  pc.Properties,
	})
	if err != nil {
		return err
	}

	target := domain.BuildScriptPath(pc.Platform.Header.Dir, pc.Platform.Header.Name)
	if _, err := p.writer.WriteFile(target, script); err != nil {
		err = zerr.Wrap(err, domain.ErrIOWriteFailure.Error())
		return zerr.With(err, "path", target)
	}
	pc.ScriptPath = target
	return nil
}

func (p *Pipeline) emitPair(ctx context.Context, pc *Context, pair domain.BuildPair, fvNames []string) error {
	ctx, span := p.tracer.Start(ctx, pair.Name())
	defer span.End()

	commonDir := pair.CommonDir(pc.BuildDir)
	fvDir := domain.FVDir(commonDir)

	props := pc.Properties.Clone()
	props.Set(domain.PropTarget, pair.Target)
	props.Set(domain.PropToolChain, pair.ToolChain)
	props.Set(domain.PropFVDir, fvDir)

	results, err := p.emitter.Emit(ctx, manifest.Request{
		FVNames:    fvNames,
		FVs:        pc.FVs,
		Outputs:    pc.Outputs,
		Sections:   pc.Platform,
		Globals:    pc.Platform.GlobalVariables,
		CommonDir:  commonDir,
		FVDir:      fvDir,
		Properties: props,
	})
	pc.Manifests = append(pc.Manifests, results...)
	if err != nil {
		span.RecordError(err)
		return err
	}

	for _, r := range results {
		_, _ = fmt.Fprintf(span, "%s\n", r.Path)
	}
	return nil
}
