package config

// Workspace represents the structure of the fpdgen.yaml configuration file.
type Workspace struct {
	Version     string            `yaml:"version"`
	Root        string            `yaml:"root"`
	BuildDir    string            `yaml:"buildDir"`
	Modules     []string          `yaml:"modules"`
	ToolsDef    string            `yaml:"toolsDef"`
	ToolChains  []string          `yaml:"toolChains"`
	Families    map[string]string `yaml:"families"`
	Targets     []string          `yaml:"targets"`
	Properties  map[string]string `yaml:"properties"`
	BuildTools  []*ToolDTO        `yaml:"buildTools"`
	FvImageTool []string          `yaml:"fvImageTool"`
}

// ToolDTO represents a build tool definition in the configuration.
type ToolDTO struct {
	Code          string   `yaml:"code"`
	OutputFlag    string   `yaml:"outputFlag"`
	IncludeFlag   string   `yaml:"includeFlag"`
	IncludePaths  []string `yaml:"includePaths"`
	EndArgs       []string `yaml:"endArgs"`
	Libraries     []string `yaml:"libraries"`
	OutputPattern string   `yaml:"outputPattern"`
	SkipSources   bool     `yaml:"skipSources"`
}
