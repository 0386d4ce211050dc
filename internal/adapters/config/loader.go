// Package config provides the workspace configuration loader for fpdgen.
package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultModulePattern is used when the configuration lists no module patterns.
const DefaultModulePattern = "**/*.msa"

var validToolCodeRegex = regexp.MustCompile("^[A-Za-z0-9]+$")

// Loader implements ports.WorkspaceLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     afero.Fs
}

// NewLoader creates a new Loader reading from fs.
func NewLoader(logger ports.Logger, fs afero.Fs) *Loader {
	return &Loader{Logger: logger, FS: fs}
}

// Load finds fpdgen.yaml at or above cwd and returns the workspace it describes.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var cfg Workspace
	if err := l.readAndUnmarshalYAML(configPath, &cfg); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	ws, err := l.buildWorkspace(configPath, &cfg)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return ws, nil
}

// DiscoverRoot returns the directory holding fpdgen.yaml at or above cwd.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)

	for {
		candidate := filepath.Join(currentDir, domain.WorkspaceFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) buildWorkspace(configPath string, cfg *Workspace) (*domain.Workspace, error) {
	root := resolveRoot(configPath, cfg.Root)

	ws := &domain.Workspace{
		Root:           root,
		ConfigPath:     configPath,
		BuildDir:       cfg.BuildDir,
		ModulePatterns: cfg.Modules,
		ToolChains:     upper(cfg.ToolChains),
		Families:       make(map[string]string, len(cfg.Families)),
		Targets:        upper(cfg.Targets),
		Properties:     cfg.Properties,
		FvImageTool:    cfg.FvImageTool,
	}
	if len(ws.ModulePatterns) == 0 {
		ws.ModulePatterns = []string{DefaultModulePattern}
	}
	for tag, family := range cfg.Families {
		ws.Families[strings.ToUpper(tag)] = strings.ToUpper(family)
	}

	tools, err := buildTools(cfg.BuildTools)
	if err != nil {
		return nil, err
	}
	ws.BuildTools = tools

	if cfg.ToolsDef == "" {
		l.Logger.Debug("no tools definition configured, build options come from the platform only")
		return ws, nil
	}

	toolsDefPath := cfg.ToolsDef
	if !filepath.IsAbs(toolsDefPath) {
		toolsDefPath = filepath.Join(root, toolsDefPath)
	}
	table, err := l.loadToolsDef(toolsDefPath)
	if err != nil {
		return nil, err
	}
	ws.ToolsDef = table
	l.Logger.Debug(fmt.Sprintf("loaded %d tools definition entries from %s", table.Len(), toolsDefPath))

	return ws, nil
}

func (l *Loader) loadToolsDef(path string) (*domain.OptionTable, error) {
	f, err := l.FS.Open(path)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		return nil, zerr.With(err, "tools_def", path)
	}
	defer func() { _ = f.Close() }()

	table, err := ParseToolsDef(f)
	if err != nil {
		return nil, zerr.With(err, "tools_def", path)
	}
	return table, nil
}

func buildTools(dtos []*ToolDTO) ([]domain.ToolDefinition, error) {
	tools := make([]domain.ToolDefinition, 0, len(dtos))
	seen := make(map[string]bool, len(dtos))

	for _, dto := range dtos {
		if dto == nil {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(dto.Code))
		if !validToolCodeRegex.MatchString(code) {
			return nil, zerr.With(domain.ErrConfigParseFailed, "tool_code", dto.Code)
		}
		if seen[code] {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "duplicate build tool"), "tool_code", code)
		}
		seen[code] = true

		tools = append(tools, domain.ToolDefinition{
			Code:          code,
			OutputFlag:    dto.OutputFlag,
			IncludeFlag:   dto.IncludeFlag,
			EndArgs:       dto.EndArgs,
			IncludePaths:  dto.IncludePaths,
			Libraries:     dto.Libraries,
			OutputPattern: dto.OutputPattern,
			SkipSources:   dto.SkipSources,
		})
	}
	return tools, nil
}

func upper(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(strings.TrimSpace(v))
	}
	return out
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target any) error {
	configFile, err := afero.ReadFile(l.FS, configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
