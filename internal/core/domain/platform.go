package domain

import "slices"

// BuildMode selects where module intermediate files are placed.
type BuildMode string

const (
	// BuildModeUnified places all intermediate files below the common output directory.
	BuildModeUnified BuildMode = "UNIFIED"
	// BuildModeModule places intermediate files below each module's own directory.
	BuildModeModule BuildMode = "MODULE"
)

// FvImageType is the kind of an FvImage table in the platform descriptor.
type FvImageType string

const (
	// FvImageValidNames lists the firmware volumes to generate.
	FvImageValidNames FvImageType = "ValidImageNames"
	// FvImageOptions holds rows for the [options] section.
	FvImageOptions FvImageType = "Options"
	// FvImageAttributes holds rows for the [attributes] section.
	FvImageAttributes FvImageType = "Attributes"
	// FvImageComponents holds rows for the [components] section.
	FvImageComponents FvImageType = "Components"
)

// Known reports whether the image type is one the emitter understands.
func (t FvImageType) Known() bool {
	switch t {
	case FvImageValidNames, FvImageOptions, FvImageAttributes, FvImageComponents:
		return true
	default:
		return false
	}
}

// NameValue is an ordered name/value pair.
type NameValue struct {
	Name  string
	Value string
}

// FvImage is one FvImage table: rows that apply to every listed volume.
type FvImage struct {
	Type   FvImageType
	Names  []string
	Values []NameValue
}

// PlatformHeader holds the platform identity and location.
type PlatformHeader struct {
	Name        string
	GUID        string
	Version     string
	Description string
	// File is the descriptor path with forward slashes.
	File string
	// RelativeFile is File relative to the workspace root.
	RelativeFile string
	// Dir is the directory containing the descriptor.
	Dir string
	// RelativeDir is Dir relative to the workspace root.
	RelativeDir string
}

// PlatformDefinitions holds the global build settings of a platform.
type PlatformDefinitions struct {
	Archs           []string
	Targets         []string
	BuildMode       BuildMode
	OutputDirectory string
}

// ModuleAssociation is one module instance listed by the platform.
type ModuleAssociation struct {
	ID             FpdModuleIdentification
	OutputBaseName string
	Options        []OptionRow
	Sources        []string
}

// Platform is the typed form of a platform surface-area descriptor.
type Platform struct {
	Header          PlatformHeader
	Definitions     PlatformDefinitions
	GlobalVariables []NameValue
	FvImages        []FvImage
	Modules         []ModuleAssociation
	BuildOptions    []OptionRow
}

// ValidImageNames returns the firmware volumes the platform declares, in declaration order, without duplicates.
func (p *Platform) ValidImageNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, img := range p.FvImages {
		if img.Type != FvImageValidNames {
			continue
		}
		for _, name := range img.Names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// ImageRows returns the rows of every table of the given type that lists the volume, in document order.
// Volume names match exactly, as bindings and declarations do.
func (p *Platform) ImageRows(kind FvImageType, fvName string) []NameValue {
	var rows []NameValue
	for _, img := range p.FvImages {
		if img.Type != kind {
			continue
		}
		if slices.Contains(img.Names, fvName) {
			rows = append(rows, img.Values...)
		}
	}
	return rows
}

// ToolDefinition describes how to assemble the command line of one tool.
// The executable and flags come from the resolved options (PATH and FLAGS attributes).
type ToolDefinition struct {
	Code          string
	OutputFlag    string
	IncludeFlag   string
	EndArgs       []string
	IncludePaths  []string
	Libraries     []string
	OutputPattern string
	// SkipSources leaves the module sources off the command line.
	SkipSources bool
}

// Workspace is the loaded workspace configuration.
type Workspace struct {
	// Root is the absolute workspace directory.
	Root           string
	ConfigPath     string
	BuildDir       string
	ModulePatterns []string
	ToolChains     []string
	Families       map[string]string
	Targets        []string
	Properties     map[string]string
	BuildTools     []ToolDefinition
	FvImageTool    []string
	ToolsDef       *OptionTable
}

// FamilyOf returns the family of a tool chain tag: the workspace override first, then the tools definition.
func (w *Workspace) FamilyOf(tag string) string {
	if f, ok := w.Families[tag]; ok {
		return f
	}
	if w.ToolsDef != nil {
		if f, ok := w.ToolsDef.Get(ToolChainKey{ToolChain: tag, Attribute: AttributeFamily}); ok {
			return f
		}
	}
	return ""
}
