// Package typeindex resolves interface declarations and answers method-shape
// queries over their transitive extension closure. The lowering uses it to
// decide whether a synthesized accessor overrides an interface contract.
package typeindex

import (
	"github.com/derecord/derecord/internal/jast"
)

// Index is a registry of interface declarations keyed by simple name.
// Reads are safe for concurrent use once building is done.
type Index struct {
	interfaces map[string]*jast.Declaration

	// memo caches closure queries: "Iface\x00method" -> declared.
	memo map[string]bool
}

// New builds an index over every interface declaration in the given units.
// Non-interface declarations are ignored.
func New(units ...*jast.CompilationUnit) *Index {
	idx := &Index{
		interfaces: make(map[string]*jast.Declaration),
		memo:       make(map[string]bool),
	}
	for _, unit := range units {
		for _, decl := range unit.Decls {
			if decl.Kind == jast.KindInterface {
				idx.interfaces[decl.Name] = decl
			}
		}
	}
	return idx
}

// Lookup returns the interface declaration with the given simple name.
func (idx *Index) Lookup(name string) (*jast.Declaration, bool) {
	d, ok := idx.interfaces[name]
	return d, ok
}

// DeclaresNoArgMethod reports whether any interface in the transitive closure
// of the declaration's implemented capabilities declares a zero-argument
// method with the given name. The declaration itself is excluded: only
// ancestor contracts count.
//
// Unknown interface names resolve to nothing rather than failing; the caller
// may be rewriting a unit whose imports are outside the traversed set.
// Traversal is cycle-safe: a visited set guards against pathological
// extension graphs even though the language forbids true cycles.
func (idx *Index) DeclaresNoArgMethod(decl *jast.Declaration, name string) bool {
	visited := make(map[string]bool)
	for _, iface := range decl.Implements {
		if iface == decl.Name {
			continue
		}
		if found, _ := idx.declares(iface, name, visited); found {
			return true
		}
	}
	return false
}

// declares reports whether the interface or any of its ancestors declares a
// zero-argument method with the given name. complete is false when the
// exploration was truncated by the visited set; a truncated negative is not
// memoized, since the cut edges could still reach the method. Positives are
// always definitive.
func (idx *Index) declares(iface, method string, visited map[string]bool) (found, complete bool) {
	if visited[iface] {
		return false, false
	}
	visited[iface] = true

	key := iface + "\x00" + method
	if hit, ok := idx.memo[key]; ok {
		return hit, true
	}

	complete = true
	if decl, ok := idx.interfaces[iface]; ok {
		for _, m := range decl.Members {
			meth, ok := m.(*jast.Method)
			if ok && meth.Name == method && len(meth.Params) == 0 {
				found = true
				break
			}
		}
		if !found {
			for _, parent := range decl.Extends {
				parentFound, parentComplete := idx.declares(parent, method, visited)
				if !parentComplete {
					complete = false
				}
				if parentFound {
					found = true
					break
				}
			}
		}
	}

	if found || complete {
		idx.memo[key] = found
	}
	return found, complete
}
