package fpd

import "encoding/xml"

// Root element names of the descriptors.
const (
	PlatformRoot = "PlatformSurfaceArea"
	ModuleRoot   = "ModuleSurfaceArea"
)

// PlatformDoc is the subset of a platform descriptor fpdgen reads.
type PlatformDoc struct {
	XMLName     xml.Name       `xml:"PlatformSurfaceArea"`
	Header      PlatformHeader `xml:"PlatformHeader"`
	Definitions Definitions    `xml:"PlatformDefinitions"`
	FvImages    FvImages       `xml:"Flash>FvImages"`
	Modules     []ModuleSA     `xml:"FrameworkModules>ModuleSA"`
	Options     []OptionDTO    `xml:"BuildOptions>Options>Option"`
}

// PlatformHeader is the PlatformHeader element.
type PlatformHeader struct {
	Name        string `xml:"PlatformName"`
	GUID        string `xml:"GuidValue"`
	Version     string `xml:"Version"`
	Description string `xml:"Description"`
}

// Definitions is the PlatformDefinitions element.
type Definitions struct {
	Archs           string `xml:"SupportedArchitectures"`
	Targets         string `xml:"BuildTargets"`
	Intermediate    string `xml:"IntermediateDirectories"`
	OutputDirectory string `xml:"OutputDirectory"`
}

// FvImages is the Flash/FvImages element.
type FvImages struct {
	Globals []NameValueDTO `xml:"NameValue"`
	Images  []FvImageDTO   `xml:"FvImage"`
}

// FvImageDTO is one FvImage table.
type FvImageDTO struct {
	Type  string         `xml:"Type,attr"`
	Names []string       `xml:"FvImageNames"`
	Rows  []NameValueDTO `xml:"NameValue"`
	// Options holds rows nested in an FvImageOptions element.
	Options []NameValueDTO `xml:"FvImageOptions>NameValue"`
}

// NameValueDTO is a NameValue element.
type NameValueDTO struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:"Value,attr"`
}

// ModuleSA is one module association of the platform.
type ModuleSA struct {
	GUID         string          `xml:"ModuleGuid,attr"`
	Version      string          `xml:"ModuleVersion,attr"`
	SupArchList  string          `xml:"SupArchList,attr"`
	BuildOptions ModuleSAOptions `xml:"ModuleSaBuildOptions"`
}

// ModuleSAOptions is the ModuleSaBuildOptions element.
type ModuleSAOptions struct {
	FvBinding          string      `xml:"FvBinding"`
	OutputFileBasename string      `xml:"OutputFileBasename"`
	Options            []OptionDTO `xml:"Options>Option"`
}

// OptionDTO is one build option. The element text is the value.
type OptionDTO struct {
	BuildTargets    string `xml:"BuildTargets,attr"`
	ToolChainFamily string `xml:"ToolChainFamily,attr"`
	TagName         string `xml:"TagName,attr"`
	ToolCode        string `xml:"ToolCode,attr"`
	SupArchList     string `xml:"SupArchList,attr"`
	ToolAttribute   string `xml:"ToolAttribute,attr"`
	Value           string `xml:",chardata"`
}

// ModuleDoc is the subset of a module descriptor fpdgen reads.
type ModuleDoc struct {
	XMLName xml.Name      `xml:"ModuleSurfaceArea"`
	Header  ModuleHeader  `xml:"MsaHeader"`
	Sources []FilenameDTO `xml:"SourceFiles>Filename"`
}

// ModuleHeader is the MsaHeader element.
type ModuleHeader struct {
	Name    string `xml:"ModuleName"`
	Type    string `xml:"ModuleType"`
	GUID    string `xml:"GuidValue"`
	Version string `xml:"Version"`
}

// FilenameDTO is a source file, optionally limited to some architectures.
type FilenameDTO struct {
	SupArchList string `xml:"SupArchList,attr"`
	Path        string `xml:",chardata"`
}
