package pipeline

import (
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/engine/manifest"
)

// Options narrows the build pairs a run generates.
type Options struct {
	// Targets filters the platform's build targets. Empty keeps all of them.
	Targets []string
	// ToolChains replaces the workspace tool chain tags when set.
	ToolChains []string
}

// Context holds every structure built while generating one platform.
// A Context is used by exactly one Run and discarded afterwards.
type Context struct {
	Workspace    *domain.Workspace
	PlatformPath string
	Options      Options

	Platform        *domain.Platform
	Properties      *domain.Properties
	BuildDir        string
	Pairs           []domain.BuildPair
	PlatformOptions *domain.ToolChainMap
	Modules         []domain.BoundModule
	FVs             *domain.FVIndex
	Outputs         *domain.OutputIndex
	Manifests       []manifest.Result
	ScriptPath      string

	stages domain.StageTracker
	ran    bool
}

// NewContext creates a fresh context for one platform descriptor.
func NewContext(ws *domain.Workspace, platformPath string, opts Options) *Context {
	return &Context{
		Workspace:    ws,
		PlatformPath: platformPath,
		Options:      opts,
		FVs:          domain.NewFVIndex(),
		Outputs:      domain.NewOutputIndex(),
	}
}

// Stage returns the last stage the context completed.
func (c *Context) Stage() domain.Stage {
	return c.stages.Current()
}

// ImageInvocations returns, for every build pair, one run of the image tool per declared
// volume. It returns nil until the manifests have been emitted.
func (c *Context) ImageInvocations(tool []string) [][]domain.Invocation {
	if len(tool) == 0 || c.Stage() != domain.StageEmitted {
		return nil
	}

	names := c.Platform.ValidImageNames()
	out := make([][]domain.Invocation, 0, len(c.Pairs))
	for _, pair := range c.Pairs {
		fvDir := domain.FVDir(pair.CommonDir(c.BuildDir))
		props := c.Properties.Clone()
		props.Set(domain.PropTarget, pair.Target)
		props.Set(domain.PropToolChain, pair.ToolChain)
		props.Set(domain.PropFVDir, fvDir)

		invs := make([]domain.Invocation, 0, len(names))
		for _, fv := range names {
			props.Set(domain.PropFVFilename, fv)
			cmd := make([]string, len(tool))
			for i, arg := range tool {
				cmd[i] = props.Substitute(arg)
			}
			invs = append(invs, domain.Invocation{
				Name:       pair.Name() + "/" + fv,
				Command:    cmd,
				WorkingDir: fvDir,
			})
		}
		out = append(out, invs)
	}
	return out
}
