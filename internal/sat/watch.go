package sat

// watchIndex maps each literal to the set of clause ids currently watching
// it. Only clauses of size >= 2 participate. The index is the exact inverse
// of the clauses' watch positions: a clause of size >= 2 appears under
// exactly the two literals at its watch positions and nowhere else.
//
// Membership semantics only; iteration order over a literal's watch set must
// not affect correctness (propagation is confluent).
type watchIndex map[Literal]map[int]struct{}

func (w watchIndex) add(l Literal, id int) {
	set, ok := w[l]
	if !ok {
		set = make(map[int]struct{})
		w[l] = set
	}
	set[id] = struct{}{}
}

func (w watchIndex) remove(l Literal, id int) {
	delete(w[l], id)
}

// snapshot appends the ids watching l to buf and returns it. The propagator
// scans a snapshot rather than the live set so that watch moves performed
// mid-scan cannot invalidate the iteration.
func (w watchIndex) snapshot(l Literal, buf []int) []int {
	for id := range w[l] {
		buf = append(buf, id)
	}
	return buf
}

// watchClause registers clause id under the literals at its two watch positions.
func (s *Solver) watchClause(c *Clause, id int) {
	s.watches.add(c.lits[c.w1], id)
	s.watches.add(c.lits[c.w2], id)
}
