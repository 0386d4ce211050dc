package domain

// BuildPair is one (build target, tool chain tag) combination generated for a platform.
type BuildPair struct {
	Target    string
	ToolChain string
	// Family is the tool chain family of the tag, empty when unknown.
	Family string
}

// Name returns the TARGET_TAG form used for directory and task names.
func (p BuildPair) Name() string {
	return p.Target + "_" + p.ToolChain
}

// CommonDir returns the common output directory of the pair below buildDir.
func (p BuildPair) CommonDir(buildDir string) string {
	return CommonOutputDir(buildDir, p.Target, p.ToolChain)
}

// Query returns a lookup for a tool attribute of the pair.
func (p BuildPair) Query(arch, toolCode, attribute string) Query {
	return Query{
		Target:    p.Target,
		TagName:   p.ToolChain,
		Family:    p.Family,
		Arch:      arch,
		ToolCode:  toolCode,
		Attribute: attribute,
	}
}

// BoundModule is a module instance after option resolution and output naming.
type BoundModule struct {
	ID FpdModuleIdentification
	// Options is the module's layered option map, shadowing the platform scope.
	Options *ToolChainMap
	// OutputName is relative to the common output directory.
	OutputName string
	// Dir is the module descriptor directory relative to the workspace root.
	Dir     string
	Sources []string
}
