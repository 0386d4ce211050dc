package domain

import (
	"maps"
	"strings"
)

const (
	// Wildcard matches any value of a tool chain key element.
	Wildcard = "*"

	// AttributeFlags is the attribute carried by descriptor build options.
	AttributeFlags = "FLAGS"
	// AttributePath is the attribute naming a tool's executable.
	AttributePath = "PATH"
	// AttributeFamily is the attribute naming a tool chain tag's family.
	AttributeFamily = "FAMILY"
)

// OptionRow is one build option as declared in a descriptor or tools definition file.
type OptionRow struct {
	Target    string
	TagName   string
	Family    string
	Arch      string
	ToolCode  string
	Attribute string
	Value     string
}

// ToolChainKey addresses one value in an OptionTable. Empty elements are treated as Wildcard.
type ToolChainKey struct {
	Target    string
	ToolChain string
	Arch      string
	ToolCode  string
	Attribute string
}

// Normalize returns the key with blank elements replaced by Wildcard and surrounding space removed.
func (k ToolChainKey) Normalize() ToolChainKey {
	return ToolChainKey{
		Target:    normalizeElement(k.Target),
		ToolChain: normalizeElement(k.ToolChain),
		Arch:      normalizeElement(k.Arch),
		ToolCode:  normalizeElement(k.ToolCode),
		Attribute: normalizeElement(k.Attribute),
	}
}

// String renders the key in tools definition form: TARGET_TAG_ARCH_TOOLCODE_ATTRIBUTE.
func (k ToolChainKey) String() string {
	n := k.Normalize()
	return strings.Join([]string{n.Target, n.ToolChain, n.Arch, n.ToolCode, n.Attribute}, "_")
}

// matches reports whether the stored (possibly wildcarded) key covers the concrete query key.
func (k ToolChainKey) matches(q ToolChainKey) bool {
	return elementMatches(k.Target, q.Target) &&
		elementMatches(k.ToolChain, q.ToolChain) &&
		elementMatches(k.Arch, q.Arch) &&
		elementMatches(k.ToolCode, q.ToolCode) &&
		elementMatches(k.Attribute, q.Attribute)
}

// specificity counts the non-wildcard elements of the key.
func (k ToolChainKey) specificity() int {
	n := 0
	for _, e := range []string{k.Target, k.ToolChain, k.Arch, k.ToolCode, k.Attribute} {
		if e != Wildcard {
			n++
		}
	}
	return n
}

func normalizeElement(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Wildcard
	}
	return s
}

func elementMatches(stored, query string) bool {
	return stored == Wildcard || strings.EqualFold(stored, query)
}

// OptionTable is a flat table of tool chain values with wildcard aware lookup.
type OptionTable struct {
	values map[ToolChainKey]string
	seq    map[ToolChainKey]int
	next   int
}

// NewOptionTable creates an empty OptionTable.
func NewOptionTable() *OptionTable {
	return &OptionTable{
		values: make(map[ToolChainKey]string),
		seq:    make(map[ToolChainKey]int),
	}
}

// Put inserts or overwrites the value for the key.
func (t *OptionTable) Put(key ToolChainKey, value string) {
	key = key.Normalize()
	t.values[key] = value
	t.seq[key] = t.next
	t.next++
}

// Get returns the value of the most specific stored key matching the query key.
// Among equally specific matches the most recently put one wins.
func (t *OptionTable) Get(query ToolChainKey) (string, bool) {
	if t == nil {
		return "", false
	}
	query = query.Normalize()
	if v, ok := t.values[query]; ok {
		return v, true
	}

	var (
		best      ToolChainKey
		found     bool
		bestScore int
	)
	for key := range t.values {
		if !key.matches(query) {
			continue
		}
		score := key.specificity()
		if !found || score > bestScore || (score == bestScore && t.seq[key] > t.seq[best]) {
			best, bestScore, found = key, score, true
		}
	}
	if !found {
		return "", false
	}
	return t.values[best], true
}

// Len returns the number of stored keys.
func (t *OptionTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// Entries returns a copy of the stored key/value pairs.
func (t *OptionTable) Entries() map[ToolChainKey]string {
	if t == nil {
		return map[ToolChainKey]string{}
	}
	return maps.Clone(t.values)
}

// Equal reports whether both tables hold the same keys and values.
func (t *OptionTable) Equal(other *OptionTable) bool {
	return maps.Equal(t.Entries(), other.Entries())
}

// Layer identifies one precedence level of a ToolChainMap.
type Layer uint8

const (
	// LayerModuleTag holds module options keyed by a specific tool chain tag.
	LayerModuleTag Layer = iota
	// LayerModuleFamily holds module options keyed by a tool chain family.
	LayerModuleFamily
	// LayerPlatformTag holds platform options keyed by a specific tool chain tag.
	LayerPlatformTag
	// LayerPlatformFamily holds platform options keyed by a tool chain family.
	LayerPlatformFamily
	// LayerDefaults holds the workspace tools definition.
	LayerDefaults

	layerCount
)

var layerNames = [...]string{
	LayerModuleTag:      "module-tag",
	LayerModuleFamily:   "module-family",
	LayerPlatformTag:    "platform-tag",
	LayerPlatformFamily: "platform-family",
	LayerDefaults:       "tools-def",
}

// String returns the layer name.
func (l Layer) String() string {
	if l < layerCount {
		return layerNames[l]
	}
	return "unknown"
}

// familyKeyed reports whether the layer is keyed by tool chain family rather than tag.
func (l Layer) familyKeyed() bool {
	return l == LayerModuleFamily || l == LayerPlatformFamily
}

// Query is a fully specified tool chain lookup.
type Query struct {
	Target    string
	TagName   string
	Family    string
	Arch      string
	ToolCode  string
	Attribute string
}

// keyFor builds the lookup key for a layer: family layers are addressed by family, the others by tag.
func (q Query) keyFor(l Layer) ToolChainKey {
	toolChain := q.TagName
	if l.familyKeyed() {
		toolChain = q.Family
	}
	attr := q.Attribute
	if attr == "" {
		attr = AttributeFlags
	}
	return ToolChainKey{
		Target:    q.Target,
		ToolChain: toolChain,
		Arch:      q.Arch,
		ToolCode:  q.ToolCode,
		Attribute: attr,
	}
}

// ToolChainMap is a layered tool chain option lookup. Earlier layers shadow later ones.
type ToolChainMap struct {
	layers [layerCount]*OptionTable
}

// NewToolChainMap creates a ToolChainMap with empty layers.
func NewToolChainMap() *ToolChainMap {
	m := &ToolChainMap{}
	for i := range m.layers {
		m.layers[i] = NewOptionTable()
	}
	return m
}

// Put inserts or overwrites a value in the given layer.
func (m *ToolChainMap) Put(l Layer, key ToolChainKey, value string) {
	m.layers[l].Put(key, value)
}

// SetLayer replaces a whole layer. A nil table leaves the layer empty.
func (m *ToolChainMap) SetLayer(l Layer, t *OptionTable) {
	if t == nil {
		t = NewOptionTable()
	}
	m.layers[l] = t
}

// Layer returns the table backing a layer.
func (m *ToolChainMap) Layer(l Layer) *OptionTable {
	return m.layers[l]
}

// Lookup returns the value from the most specific layer defining the query, and that layer.
// An explicitly empty value is a hit: it overrides less specific layers with nothing.
// A query without a family only matches family rows stored with a wildcard family.
func (m *ToolChainMap) Lookup(q Query) (string, Layer, bool) {
	for l := Layer(0); l < layerCount; l++ {
		if v, ok := m.layers[l].Get(q.keyFor(l)); ok {
			return v, l, true
		}
	}
	return "", 0, false
}

// Get is Lookup without the layer.
func (m *ToolChainMap) Get(q Query) (string, bool) {
	v, _, ok := m.Lookup(q)
	return v, ok
}

// Len returns the number of entries over all layers.
func (m *ToolChainMap) Len() int {
	n := 0
	for _, t := range m.layers {
		n += t.Len()
	}
	return n
}

// Equal reports whether both maps hold the same entries in the same layers.
func (m *ToolChainMap) Equal(other *ToolChainMap) bool {
	for l := range m.layers {
		if !m.layers[l].Equal(other.layers[l]) {
			return false
		}
	}
	return true
}
