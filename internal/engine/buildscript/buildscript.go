// Package buildscript renders the generated platform build script.
//
// The script uses the task file layout of the build runner: every module tool run and
// every firmware volume image is a task with explicit inputs, targets and dependencies.
package buildscript

import (
	"bytes"
	"path"

	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/engine/toolcmd"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Version is the task file format version written to every script.
const Version = "1"

// Script is the root of a generated build script.
type Script struct {
	Version string           `yaml:"version"`
	Project string           `yaml:"project"`
	Root    string           `yaml:"root"`
	Tasks   map[string]*Task `yaml:"tasks"`
}

// Task is one command of the build script.
type Task struct {
	Input       []string          `yaml:"input,omitempty"`
	Cmd         []string          `yaml:"cmd"`
	Target      []string          `yaml:"target,omitempty"`
	DependsOn   []string          `yaml:"dependsOn,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	WorkingDir  string            `yaml:"workingDir,omitempty"`
}

// Input is everything the build script is generated from.
type Input struct {
	Platform *domain.Platform
	// Root is the workspace root. Module directories and sources are relative to it.
	Root        string
	BuildDir    string
	Pairs       []domain.BuildPair
	Modules     []domain.BoundModule
	FVs         *domain.FVIndex
	Tools       []domain.ToolDefinition
	FvImageTool []string
	Properties  *domain.Properties
}

// Build assembles the script without encoding it.
func Build(in Input) (*Script, error) {
	script := &Script{
		Version: Version,
		Project: in.Platform.Header.Name,
		Root:    in.Root,
		Tasks:   make(map[string]*Task),
	}

	for _, pair := range in.Pairs {
		if err := addPair(script, in, pair); err != nil {
			err = zerr.With(err, "target", pair.Target)
			return nil, zerr.With(err, "tool_chain", pair.ToolChain)
		}
	}

	return script, nil
}

// Generate renders the script as YAML.
func Generate(in Input) ([]byte, error) {
	script, err := Build(in)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(script); err != nil {
		return nil, zerr.Wrap(err, "failed to encode build script")
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to encode build script")
	}
	return buf.Bytes(), nil
}

func addPair(script *Script, in Input, pair domain.BuildPair) error {
	commonDir := pair.CommonDir(in.BuildDir)
	fvDir := domain.FVDir(commonDir)

	pairProps := in.Properties.Clone()
	pairProps.Set(domain.PropTarget, pair.Target)
	pairProps.Set(domain.PropToolChain, pair.ToolChain)
	pairProps.Set(domain.PropFVDir, fvDir)

	// last tool task per module instance, used as the volume dependency
	lastTask := make(map[domain.FpdModuleKey]string, len(in.Modules))
	for _, mod := range in.Modules {
		name, err := addModule(script, in, pair, commonDir, pairProps, mod)
		if err != nil {
			return zerr.With(err, "module", mod.ID.String())
		}
		if name != "" {
			lastTask[mod.ID.Key()] = name
		}
	}

	var images []string
	if len(in.FvImageTool) > 0 {
		for _, fv := range in.Platform.ValidImageNames() {
			name := imageTaskName(pair, fv)
			props := pairProps.Clone()
			props.Set(domain.PropFVFilename, fv)

			var deps []string
			for _, id := range in.FVs.Modules(fv) {
				if dep, ok := lastTask[id.Key()]; ok {
					deps = append(deps, dep)
				}
			}

			script.Tasks[name] = &Task{
				Input:     []string{domain.ManifestPath(fvDir, fv)},
				Cmd:       substituteAll(in.FvImageTool, props),
				Target:    []string{path.Join(fvDir, fv+".fv")},
				DependsOn: deps,
			}
			images = append(images, name)
		}
	}

	script.Tasks[pair.Name()] = &Task{
		Cmd:       []string{},
		DependsOn: images,
	}
	return nil
}

// addModule adds the tool chain of one module and returns the name of its last task.
func addModule(
	script *Script,
	in Input,
	pair domain.BuildPair,
	commonDir string,
	pairProps *domain.Properties,
	mod domain.BoundModule,
) (string, error) {
	arch := mod.ID.Arch
	props := pairProps.Clone()
	props.Set(domain.PropArch, arch)
	props.Set(domain.PropModuleName, mod.ID.Module.Name)
	props.Set(domain.PropModuleDir, path.Join(in.Root, mod.Dir))
	props.Set(domain.PropOutputFile, commonDir+"/"+mod.OutputName)

	sources := make([]string, 0, len(mod.Sources))
	for _, src := range mod.Sources {
		sources = append(sources, path.Join(mod.Dir, src))
	}

	var prev string
	for _, tool := range in.Tools {
		command, ok := mod.Options.Get(pair.Query(arch, tool.Code, domain.AttributePath))
		if !ok || command == "" {
			command = tool.Code
		}
		flags, _ := mod.Options.Get(pair.Query(arch, tool.Code, domain.AttributeFlags))

		output := tool.OutputPattern
		if output == "" {
			output = "${" + domain.PropOutputFile + "}"
		}

		def := toolcmd.Definition{
			Command:      command,
			Family:       pair.Family,
			Args:         []string{flags},
			EndArgs:      tool.EndArgs,
			OutputFlag:   tool.OutputFlag,
			OutputFile:   output,
			IncludeFlag:  tool.IncludeFlag,
			IncludePaths: tool.IncludePaths,
			Libraries:    tool.Libraries,
		}
		if !tool.SkipSources {
			def.Sources = sources
		}

		argv, err := toolcmd.Assemble(def, props)
		if err != nil {
			return "", zerr.With(err, "tool_code", tool.Code)
		}

		name := toolTaskName(pair, mod.ID, tool.Code)
		task := &Task{
			Input:      sources,
			Cmd:        argv,
			Target:     []string{props.Substitute(output)},
			WorkingDir: mod.Dir,
		}
		if prev != "" {
			task.DependsOn = []string{prev}
		}
		script.Tasks[name] = task
		prev = name
	}

	return prev, nil
}

func toolTaskName(pair domain.BuildPair, id domain.FpdModuleIdentification, toolCode string) string {
	return pair.Name() + "." + id.Arch + "." + id.Module.Name + "." + toolCode
}

func imageTaskName(pair domain.BuildPair, fv string) string {
	return pair.Name() + ".fv." + fv
}

func substituteAll(args []string, props *domain.Properties) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = props.Substitute(a)
	}
	return out
}
