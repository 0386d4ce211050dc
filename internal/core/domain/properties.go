package domain

import (
	"maps"
	"regexp"
	"slices"
)

// Well known property names.
const (
	PropWorkspaceDir        = "WORKSPACE_DIR"
	PropPlatform            = "PLATFORM"
	PropPlatformFile        = "PLATFORM_FILE"
	PropPlatformDir         = "PLATFORM_DIR"
	PropPlatformRelativeDir = "PLATFORM_RELATIVE_DIR"
	PropBuildDir            = "BUILD_DIR"
	PropTarget              = "TARGET"
	PropToolChain           = "TOOLCHAIN"
	PropArch                = "ARCH"
	PropFVDir               = "FV_DIR"
	PropFVFilename          = "FV_FILENAME"
	PropModuleName          = "MODULE_NAME"
	PropModuleDir           = "MODULE_DIR"
	PropOutputFile          = "OUTPUT_FILE"
)

var propertyRef = regexp.MustCompile(`\$\{([^${}]+)\}`)

// Properties is a table of ${NAME} substitution values.
type Properties struct {
	values map[string]string
}

// NewProperties creates a Properties table holding a copy of the given values.
func NewProperties(values map[string]string) *Properties {
	p := &Properties{values: make(map[string]string, len(values))}
	maps.Copy(p.values, values)
	return p
}

// Set defines or overwrites a property.
func (p *Properties) Set(name, value string) {
	p.values[name] = value
}

// Get returns the value of a property.
func (p *Properties) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Clone returns an independent copy, used to scope per volume or per pair properties.
func (p *Properties) Clone() *Properties {
	return NewProperties(p.values)
}

// Names returns the property names in sorted order.
func (p *Properties) Names() []string {
	return slices.Sorted(maps.Keys(p.values))
}

// Substitute replaces ${NAME} references with property values. References to undefined
// properties are kept verbatim. Substitution is a single pass.
func (p *Properties) Substitute(s string) string {
	if p == nil {
		return s
	}
	return propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if v, ok := p.values[name]; ok {
			return v
		}
		return ref
	})
}
