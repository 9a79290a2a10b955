package engine

import (
	"sort"

	"github.com/nic-ch/hierlint/internal/model"
)

// depGraph is the base-class dependency graph of one analysis unit.
// Edges point from a class to the bases it needs classified first.
type depGraph struct {
	order   []string                           // class names, input order
	classes map[string]*model.ClassDeclaration // by qualified name
	deps    map[string][]string                // bases declared in the unit
	unknown map[string][]string                // bases absent from the unit
}

// buildGraph indexes the unit. Classes in skip are excluded from
// scheduling but still resolvable by name, so their dependents are not
// dragged down with them.
func buildGraph(unit *model.Unit, skip map[string]bool) *depGraph {
	g := &depGraph{
		classes: make(map[string]*model.ClassDeclaration),
		deps:    make(map[string][]string),
		unknown: make(map[string][]string),
	}

	for i := range unit.Classes {
		decl := &unit.Classes[i]
		if skip[decl.Name] {
			continue
		}
		if _, dup := g.classes[decl.Name]; dup {
			continue
		}
		g.classes[decl.Name] = decl
		g.order = append(g.order, decl.Name)
	}

	for _, name := range g.order {
		for _, base := range g.classes[name].Bases {
			if _, present := g.classes[base.Name]; present {
				g.deps[name] = append(g.deps[name], base.Name)
			} else {
				g.unknown[name] = append(g.unknown[name], base.Name)
			}
		}
	}

	return g
}

// schedule computes the wave plan. Each wave holds classes whose bases
// are all resolved by earlier waves (topological readiness); cycles
// hold every strongly connected component of two or more classes, plus
// self-inheriting ones. Cycle members are not scheduled at all.
func (g *depGraph) schedule() (waves [][]string, cycles [][]string) {
	sccs := g.stronglyConnected()

	inCycle := make(map[string]bool)
	for _, scc := range sccs {
		if len(scc) > 1 || g.selfLoop(scc[0]) {
			sorted := append([]string(nil), scc...)
			sort.Strings(sorted)
			cycles = append(cycles, sorted)
			for _, name := range scc {
				inCycle[name] = true
			}
		}
	}

	// SCCs come out dependencies-first, so a single pass assigns levels.
	// Cycle members count as level 0: they resolve (to non-conforming)
	// before any wave runs.
	level := make(map[string]int)
	for _, scc := range sccs {
		if inCycle[scc[0]] {
			for _, name := range scc {
				level[name] = 0
			}
			continue
		}
		// Non-cycle components are singletons.
		name := scc[0]
		max := 0
		for _, dep := range g.deps[name] {
			if l := level[dep] + 1; l > max {
				max = l
			}
		}
		level[name] = max
	}

	byLevel := make(map[int][]string)
	maxLevel := 0
	for _, name := range g.order {
		if inCycle[name] {
			continue
		}
		l := level[name]
		byLevel[l] = append(byLevel[l], name)
		if l > maxLevel {
			maxLevel = l
		}
	}

	for l := 0; l <= maxLevel; l++ {
		if names := byLevel[l]; len(names) > 0 {
			sort.Strings(names)
			waves = append(waves, names)
		}
	}

	return waves, cycles
}

func (g *depGraph) selfLoop(name string) bool {
	for _, dep := range g.deps[name] {
		if dep == name {
			return true
		}
	}
	return false
}

// stronglyConnected is Tarjan's algorithm over the dependency edges.
// Components are emitted dependencies-first, which is exactly the
// resolution order the classifier needs.
func (g *depGraph) stronglyConnected() [][]string {
	index := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var sccs [][]string
	next := 0

	var strongconnect func(v string)
	strongconnect = func(v string) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.deps[v] {
			if _, seen := index[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, name := range g.order {
		if _, seen := index[name]; !seen {
			strongconnect(name)
		}
	}

	return sccs
}
