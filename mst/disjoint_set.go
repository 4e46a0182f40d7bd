package mst

// DisjointSet is a union-find structure over string IDs with path
// compression and union by rank. It is not safe for concurrent use.
type DisjointSet struct {
	parent map[string]string
	rank   map[string]int
	sets   int
}

// NewDisjointSet creates one singleton set per id.
func NewDisjointSet(ids []string) *DisjointSet {
	ds := &DisjointSet{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		if _, ok := ds.parent[id]; ok {
			continue
		}
		ds.parent[id] = id
		ds.sets++
	}
	return ds
}

// Find returns the representative of id's set. Unknown IDs are their own root.
func (ds *DisjointSet) Find(id string) string {
	for {
		p, ok := ds.parent[id]
		if !ok || p == id {
			return id
		}
		// path halving
		gp := ds.parent[p]
		ds.parent[id] = gp
		id = gp
	}
}

// Union merges the sets of a and b and reports whether they were distinct.
func (ds *DisjointSet) Union(a, b string) bool {
	ra, rb := ds.Find(a), ds.Find(b)
	if ra == rb {
		return false
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}
	ds.sets--
	return true
}

// Sets returns the current number of disjoint sets.
func (ds *DisjointSet) Sets() int { return ds.sets }
