package routing

import "sort"

// Presence is the set of generator ids present in the current graph. It is
// the only graph-shaped input the path resolver is allowed to see, which is
// what keeps routing a pure function of the blueprint's composition.
type Presence map[string]struct{}

// NewPresence builds a Presence set from the given generator ids.
func NewPresence(ids ...string) Presence {
	p := make(Presence, len(ids))
	for _, id := range ids {
		p[id] = struct{}{}
	}
	return p
}

// Has reports whether the given generator id is present in the graph.
func (p Presence) Has(id string) bool {
	_, ok := p[id]
	return ok
}

// Sorted returns the present generator ids in lexical order.
func (p Presence) Sorted() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
