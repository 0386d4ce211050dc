package domain

import (
	"iter"
	"regexp"
	"strings"
)

// NullFV is the volume that receives modules without a firmware volume binding.
const NullFV = "NULL"

var fvSeparator = regexp.MustCompile(`[, \t]+`)

// SplitFvBinding splits a binding keyword into volume names.
// A blank keyword yields the NullFV sentinel; empty tokens are dropped.
func SplitFvBinding(keyword string) []string {
	if strings.TrimSpace(keyword) == "" {
		return []string{NullFV}
	}
	var names []string
	for _, name := range fvSeparator.Split(keyword, -1) {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return []string{NullFV}
	}
	return names
}

// moduleSet is an insertion ordered set of module instances.
type moduleSet struct {
	keys    map[FpdModuleKey]struct{}
	modules []FpdModuleIdentification
}

func (s *moduleSet) add(id FpdModuleIdentification) {
	key := id.Key()
	if _, ok := s.keys[key]; ok {
		return
	}
	s.keys[key] = struct{}{}
	s.modules = append(s.modules, id)
}

// FVIndex maps firmware volume names to the modules placed in them.
type FVIndex struct {
	volumes map[InternedString]*moduleSet
	order   []InternedString
}

// NewFVIndex creates an empty FVIndex.
func NewFVIndex() *FVIndex {
	return &FVIndex{volumes: make(map[InternedString]*moduleSet)}
}

// Assign places the module into every volume named by the binding keyword.
// Assigning the same module to a volume twice stores it once.
func (x *FVIndex) Assign(keyword string, id FpdModuleIdentification) {
	for _, name := range SplitFvBinding(keyword) {
		handle := NewInternedString(name)
		set, ok := x.volumes[handle]
		if !ok {
			set = &moduleSet{keys: make(map[FpdModuleKey]struct{})}
			x.volumes[handle] = set
			x.order = append(x.order, handle)
		}
		set.add(id)
	}
}

// Modules returns the modules of a volume in assignment order, or nil if the volume has none.
func (x *FVIndex) Modules(fvName string) []FpdModuleIdentification {
	set, ok := x.volumes[NewInternedString(fvName)]
	if !ok {
		return nil
	}
	out := make([]FpdModuleIdentification, len(set.modules))
	copy(out, set.modules)
	return out
}

// Contains reports whether the module is assigned to the volume.
func (x *FVIndex) Contains(fvName string, id FpdModuleIdentification) bool {
	set, ok := x.volumes[NewInternedString(fvName)]
	if !ok {
		return false
	}
	_, ok = set.keys[id.Key()]
	return ok
}

// Names returns the volume names in first-assignment order.
func (x *FVIndex) Names() []string {
	names := make([]string, len(x.order))
	for i, h := range x.order {
		names[i] = h.String()
	}
	return names
}

// VolumesOf returns the names of the volumes containing the module, in first-assignment order.
func (x *FVIndex) VolumesOf(id FpdModuleIdentification) []string {
	key := id.Key()
	var names []string
	for _, h := range x.order {
		if _, ok := x.volumes[h].keys[key]; ok {
			names = append(names, h.String())
		}
	}
	return names
}

// All yields every (volume, module) pair in volume order then assignment order.
func (x *FVIndex) All() iter.Seq2[string, FpdModuleIdentification] {
	return func(yield func(string, FpdModuleIdentification) bool) {
		for _, h := range x.order {
			for _, id := range x.volumes[h].modules {
				if !yield(h.String(), id) {
					return
				}
			}
		}
	}
}

// Len returns the number of volumes.
func (x *FVIndex) Len() int {
	return len(x.order)
}
