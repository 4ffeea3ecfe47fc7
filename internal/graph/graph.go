package graph

import (
	"sort"

	"docmark/internal/doc"
	"docmark/internal/extractor"
)

// wellKnownTraits are interfaces declared outside the package that are still
// worth listing when an aggregate satisfies them.
var wellKnownTraits = map[string][]string{
	"error":        {"Error"},
	"fmt.Stringer": {"String"},
}

// Graph accumulates the units of one package so that methods declared in any
// file can be attached to their owning aggregate in a single pass.
type Graph struct {
	Package string
	units   []extractor.Unit

	// Index for faster lookup: aggregate name -> position in units.
	// The first declaration of a name owns the metadata.
	aggregates map[string]int
	traits     map[string]int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		aggregates: make(map[string]int),
		traits:     make(map[string]int),
	}
}

// AddFile adds every unit of an extracted file.
func (g *Graph) AddFile(f *extractor.File) {
	if f == nil {
		return
	}
	if g.Package == "" {
		g.Package = f.Package
	}
	for _, u := range f.Units {
		g.AddUnit(u)
	}
}

// AddUnit adds one unit and indexes it by name.
func (g *Graph) AddUnit(u extractor.Unit) {
	g.units = append(g.units, u)
	pos := len(g.units) - 1

	switch {
	case u.Record.Kind.IsAggregate():
		if _, ok := g.aggregates[u.Record.Name]; !ok {
			g.aggregates[u.Record.Name] = pos
		}
	case u.Record.Kind == doc.KindTrait:
		if _, ok := g.traits[u.Record.Name]; !ok {
			g.traits[u.Record.Name] = pos
		}
	}
}

// Len returns the number of units added so far.
func (g *Graph) Len() int { return len(g.units) }

// Link dispatches methods and constructors to their aggregates, computes the
// traits each aggregate satisfies and returns the top-level records in the
// order they were added. Methods whose receiver is not documented are dropped.
func (g *Graph) Link() []doc.Record {
	metas := make(map[string]*doc.AggregateMeta, len(g.aggregates))
	methodSets := make(map[string]map[string]bool, len(g.aggregates))
	for name := range g.aggregates {
		metas[name] = &doc.AggregateMeta{}
		methodSets[name] = make(map[string]bool)
	}

	records := make([]doc.Record, 0, len(g.units))
	owners := make(map[int]int, len(g.aggregates))
	for pos, u := range g.units {
		r := u.Record
		if r.Kind == doc.KindFunc {
			if u.Receiver != "" {
				if meta, ok := metas[u.Receiver]; ok {
					meta.AddMethod(r)
					methodSets[u.Receiver][r.Name] = true
				}
				continue
			}
			if meta, ok := metas[u.ResultType]; ok {
				r.Static = true
				meta.AddMethod(r)
				continue
			}
		}
		if r.Kind.IsAggregate() && g.aggregates[r.Name] == pos {
			owners[pos] = len(records)
		}
		records = append(records, r)
	}

	for _, name := range g.aggregateNames() {
		meta := metas[name]
		for _, trait := range g.traitNames() {
			if satisfies(methodSets[name], g.methodsOf(trait, nil)) {
				meta.AddTrait(trait)
			}
		}
		records[owners[g.aggregates[name]]].Meta = meta
	}
	return records
}

// aggregateNames returns aggregate names in declaration order.
func (g *Graph) aggregateNames() []string {
	return namesByPosition(g.aggregates)
}

// traitNames lists the package's traits in declaration order followed by the
// well-known ones in lexical order.
func (g *Graph) traitNames() []string {
	names := namesByPosition(g.traits)
	var known []string
	for name := range wellKnownTraits {
		if _, local := g.traits[name]; !local {
			known = append(known, name)
		}
	}
	sort.Strings(known)
	return append(names, known...)
}

// methodsOf resolves the full method list of a trait, following embedded
// interfaces declared in the package or known globally.
func (g *Graph) methodsOf(trait string, visiting map[string]bool) []string {
	if visiting == nil {
		visiting = make(map[string]bool)
	}
	if visiting[trait] {
		return nil
	}
	visiting[trait] = true

	pos, ok := g.traits[trait]
	if !ok {
		return wellKnownTraits[trait]
	}
	u := g.units[pos]
	methods := append([]string(nil), u.MethodNames...)
	for _, embed := range u.Embeds {
		methods = append(methods, g.methodsOf(embed, visiting)...)
	}
	return methods
}

func satisfies(have map[string]bool, required []string) bool {
	if len(required) == 0 {
		return false
	}
	for _, m := range required {
		if !have[m] {
			return false
		}
	}
	return true
}

func namesByPosition(index map[string]int) []string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return index[names[i]] < index[names[j]] })
	return names
}
