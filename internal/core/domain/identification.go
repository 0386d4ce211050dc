package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ModuleIdentification identifies a module descriptor (MSA) in the workspace.
// Two identifications are equal when their name, GUID and version match.
type ModuleIdentification struct {
	Name    string
	GUID    string
	Version string
	// Path is the descriptor path relative to the workspace root.
	Path string
	// Type is the module type exactly as declared; it is validated when the output name is computed.
	Type string
}

// Equal reports whether two identifications refer to the same module.
// GUIDs are compared by value, so letter case does not matter.
func (m ModuleIdentification) Equal(other ModuleIdentification) bool {
	return m.Name == other.Name &&
		m.Version == other.Version &&
		canonicalGUID(m.GUID) == canonicalGUID(other.GUID)
}

// String returns a human readable form used in logs and error metadata.
func (m ModuleIdentification) String() string {
	if m.Version == "" {
		return m.Name + " [" + m.GUID + "]"
	}
	return m.Name + " " + m.Version + " [" + m.GUID + "]"
}

// FpdModuleIdentification identifies one module instance within one platform build.
type FpdModuleIdentification struct {
	Module ModuleIdentification
	Arch   string
	// FvBinding is the raw binding keyword from the module association. It is not part of the identity.
	FvBinding string
}

// FpdModuleKey is the comparable identity of an FpdModuleIdentification.
type FpdModuleKey struct {
	Name    string
	GUID    string
	Version string
	Arch    InternedString
}

// Key returns the comparable identity of the module instance.
func (f FpdModuleIdentification) Key() FpdModuleKey {
	return FpdModuleKey{
		Name:    f.Module.Name,
		GUID:    canonicalGUID(f.Module.GUID),
		Version: f.Module.Version,
		Arch:    NewInternedString(f.Arch),
	}
}

// String returns a human readable form used in logs and error metadata.
func (f FpdModuleIdentification) String() string {
	return f.Module.String() + " for " + f.Arch
}

// ParseGUID validates a registry format GUID (8-4-4-4-12 hex digits).
func ParseGUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// canonicalGUID returns the lower-case canonical form of a GUID, or the trimmed
// lower-case input when it does not parse.
func canonicalGUID(s string) string {
	if id, err := ParseGUID(s); err == nil {
		return id.String()
	}
	return strings.ToLower(strings.TrimSpace(s))
}
