package thunderframe

import "strconv"

// nameGenerator hands out names unique within one sibling level. A taken name
// gets the first free suffix _2, _3, ... appended.
type nameGenerator struct {
	used map[string]struct{}
}

func newNameGenerator(taken ...string) *nameGenerator {
	g := &nameGenerator{used: make(map[string]struct{}, len(taken))}
	for _, n := range taken {
		g.used[n] = struct{}{}
	}
	return g
}

func (g *nameGenerator) unique(preferred string) string {
	name := preferred
	for k := 2; g.taken(name); k++ {
		name = preferred + "_" + strconv.Itoa(k)
	}
	g.used[name] = struct{}{}
	return name
}

func (g *nameGenerator) taken(name string) bool {
	_, ok := g.used[name]
	return ok
}

func (g *nameGenerator) reserve(name string) {
	g.used[name] = struct{}{}
}
