package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// OutputIndex maps module instances to their output file names relative to the common output directory.
type OutputIndex struct {
	names map[FpdModuleKey]string
	ids   []FpdModuleIdentification
}

// NewOutputIndex creates an empty OutputIndex.
func NewOutputIndex() *OutputIndex {
	return &OutputIndex{names: make(map[FpdModuleKey]string)}
}

// Put records the output name of a module instance, replacing any previous name.
func (o *OutputIndex) Put(id FpdModuleIdentification, name string) {
	key := id.Key()
	if _, ok := o.names[key]; !ok {
		o.ids = append(o.ids, id)
	}
	o.names[key] = name
}

// Get returns the output name of a module instance.
func (o *OutputIndex) Get(id FpdModuleIdentification) (string, bool) {
	name, ok := o.names[id.Key()]
	return name, ok
}

// All yields module instances and their output names in insertion order.
func (o *OutputIndex) All() iter.Seq2[FpdModuleIdentification, string] {
	return func(yield func(FpdModuleIdentification, string) bool) {
		for _, id := range o.ids {
			if !yield(id, o.names[id.Key()]) {
				return
			}
		}
	}
}

// ArchesFor returns every architecture the module is built for, in insertion order.
func (o *OutputIndex) ArchesFor(module ModuleIdentification) []string {
	var arches []string
	for _, id := range o.ids {
		if id.Module.Equal(module) {
			arches = append(arches, id.Arch)
		}
	}
	return arches
}

// Len returns the number of module instances.
func (o *OutputIndex) Len() int {
	return len(o.ids)
}

// Covers checks that every module placed in a firmware volume has an output name.
func (o *OutputIndex) Covers(fvs *FVIndex) error {
	for fv, id := range fvs.All() {
		if _, ok := o.names[id.Key()]; !ok {
			err := zerr.With(ErrOrphanedManifestEntry, "fv", fv)
			return zerr.With(err, "module", id.String())
		}
	}
	return nil
}
