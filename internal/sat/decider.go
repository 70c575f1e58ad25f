package sat

import (
	"log"

	"github.com/rhartert/yagh"
)

// Decider is the capability set the CDCL loop depends on to pick decision
// literals. A concrete heuristic is selected at solver construction.
type Decider interface {
	// Step signals that a conflict occurred.
	Step()

	// Update is called with each newly learned clause.
	Update(c *Clause)

	// Decide returns an unassigned literal to branch on. The literal's
	// sign is the guessed truth value. Decide must only be called while
	// at least one variable is unassigned.
	Decide() Literal

	// Reinstate makes both literals of variable v candidates again. The
	// solver calls it when v is unassigned by backtracking.
	Reinstate(v int)
}

// Vsids ranks literals by an integer score: the number of input clauses the
// literal appears in, plus one for each occurrence in a learned clause.
// Scores only ever grow; there is no decay.
type Vsids struct {
	solver *Solver
	scores map[Literal]int

	// Heap keyed by literal index with negated scores as costs, so that
	// the cheapest entry is the highest-scored literal. The heap breaks
	// ties using the index of its elements, which makes low-numbered
	// variables win on equal scores. Entries are removed lazily: Decide
	// filters out literals whose variable was assigned since insertion.
	order *yagh.IntMap[int]

	counter int
}

// NewVsids returns a Vsids decider initialized from the solver's clauses.
// Both literals of every variable are seeded as candidates, so variables
// that appear in no clause still get decided (at score 0).
func NewVsids(s *Solver) Decider {
	vs := &Vsids{
		solver: s,
		scores: make(map[Literal]int),
		order:  yagh.New[int](0),
	}
	for _, c := range s.clauses {
		for _, l := range c.Literals() {
			vs.scores[l]++
		}
	}
	vs.order.GrowBy(2*s.NumVariables() + 2)
	for v := 1; v <= s.NumVariables(); v++ {
		vs.order.Put(Literal(v).index(), -vs.scores[Literal(v)])
		vs.order.Put(Literal(-v).index(), -vs.scores[Literal(-v)])
	}
	return vs
}

func (vs *Vsids) Step() {
	vs.counter++
}

// Update bumps the score of every literal of the learned clause and
// refreshes its heap position if it is still a candidate.
func (vs *Vsids) Update(c *Clause) {
	for _, l := range c.Literals() {
		vs.scores[l]++
		if vs.order.Contains(l.index()) {
			vs.order.Put(l.index(), -vs.scores[l])
		}
	}
}

// Decide pops candidates until it finds one whose variable is unassigned.
func (vs *Vsids) Decide() Literal {
	for {
		next, ok := vs.order.Pop()
		if !ok {
			log.Fatalln("decide called with no candidate literal")
		}
		l := literalAt(next.Elem)
		if vs.solver.assign[l.Var()].assigned() {
			continue // stale entry
		}
		return l
	}
}

// Reinstate re-adds both polarities of v at their current scores, unless
// already present.
func (vs *Vsids) Reinstate(v int) {
	pos, neg := Literal(v), Literal(-v)
	if !vs.order.Contains(pos.index()) {
		vs.order.Put(pos.index(), -vs.scores[pos])
	}
	if !vs.order.Contains(neg.index()) {
		vs.order.Put(neg.index(), -vs.scores[neg])
	}
}

// Sequential branches on the lowest-numbered unassigned variable with
// positive phase. It ignores conflicts and learned clauses, which makes it
// useful as a second point in the heuristic family when checking that
// verdicts do not depend on branching order.
type Sequential struct {
	solver *Solver
}

// NewSequential returns a Sequential decider for the given solver.
func NewSequential(s *Solver) Decider {
	return &Sequential{solver: s}
}

func (d *Sequential) Step()          {}
func (d *Sequential) Update(*Clause) {}
func (d *Sequential) Reinstate(int)  {}

func (d *Sequential) Decide() Literal {
	for v := 1; v <= d.solver.NumVariables(); v++ {
		if !d.solver.assign[v].assigned() {
			return Literal(v)
		}
	}
	log.Fatalln("decide called with no unassigned variable")
	return 0
}
