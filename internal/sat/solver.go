// Package sat implements a CDCL solver for propositional formulas in
// conjunctive normal form: unit propagation with two watched literals per
// clause, first-UIP conflict analysis by resolution, non-chronological
// backtracking, clause learning, and VSIDS-style branching.
package sat

import (
	"fmt"
	"log"
	"slices"
)

// Solver owns all solving state: the clause store (original and learned
// clauses, identified by insertion index), the per-variable assignment
// records, the watch index, the propagation queue, and the decision
// heuristic. A Solver is strictly single-threaded.
type Solver struct {
	// Clause store. Learned clauses append to it; ids are stable.
	clauses []*Clause

	// Number of clauses present when Solve started. Clauses beyond this
	// index are learned.
	inputClauses int

	// Assignment record per variable, indexed 1..numVars.
	assign []varState

	watches   watchIndex
	propQueue *Queue

	decider Decider
	opts    Options

	numVars     int
	numAssigned int

	// Current decision level and intra-level step counter.
	level int
	step  int

	model []Literal

	// Search statistics.
	TotalDecisions int64
	TotalConflicts int64

	// Shared buffers, reused across calls to avoid re-allocating.
	seenLits *ResetSet
	tmpIDs   []int
}

// Options configures a Solver.
type Options struct {
	// NewDecider builds the decision heuristic when Solve starts, once
	// all input clauses are in the store.
	NewDecider func(*Solver) Decider
}

var DefaultOptions = Options{
	NewDecider: NewVsids,
}

// NewSolver returns a solver for a formula over variables 1..numVars.
func NewSolver(numVars int, opts Options) *Solver {
	if opts.NewDecider == nil {
		opts.NewDecider = NewVsids
	}
	assign := make([]varState, numVars+1)
	for i := range assign {
		assign[i].level = -1
	}
	return &Solver{
		assign:    assign,
		watches:   make(watchIndex),
		propQueue: NewQueue(128),
		opts:      opts,
		numVars:   numVars,
		seenLits:  NewResetSet(2*numVars + 2),
	}
}

func (s *Solver) NumVariables() int { return s.numVars }
func (s *Solver) NumAssigns() int   { return s.numAssigned }
func (s *Solver) NumClauses() int   { return len(s.clauses) }

// NumLearnts returns the number of clauses learned so far.
func (s *Solver) NumLearnts() int {
	return len(s.clauses) - s.inputClauses
}

// AddClause adds an input clause to the store. The caller must deliver each
// clause as a set of distinct literals with no complementary pair; trivial
// preprocessing is the parser's responsibility. Clauses of size >= 2 start
// watching their first two literals.
func (s *Solver) AddClause(lits []Literal) error {
	for _, l := range lits {
		if l == 0 {
			return fmt.Errorf("zero literal in clause")
		}
		if l.Var() > s.numVars {
			return fmt.Errorf("literal %d out of range [1, %d]", l, s.numVars)
		}
	}
	c := NewClause(append([]Literal(nil), lits...))
	id := len(s.clauses)
	s.clauses = append(s.clauses, c)
	if c.Size() >= 2 {
		s.watchClause(c, id)
	}
	return nil
}

// conflict identifies a clause whose every literal is falsified and the
// variable whose attempted second assignment collided.
type conflict struct {
	clause   int
	variable int
}

// Solve runs the CDCL search. It returns True with a total model available
// through Model, or False if the formula is unsatisfiable.
func (s *Solver) Solve() LBool {
	s.inputClauses = len(s.clauses)
	s.decider = s.opts.NewDecider(s)

	if !s.initialCheck() {
		return False
	}

	for s.numAssigned < s.numVars {
		s.level++
		s.step = 0
		s.TotalDecisions++

		guess := s.decider.Decide()
		s.propQueue.Clear()
		s.setAssignment(guess, 0)
		s.propQueue.Push(guess)

		for confl := s.propagate(); confl != nil; confl = s.propagate() {
			s.TotalConflicts++
			s.decider.Step()

			backjump, learnt, ok := s.analyze(confl.clause)
			if !ok {
				return False
			}

			s.propQueue.Clear()
			maxStep := s.backtrack(backjump)
			s.level = backjump
			s.step = maxStep + 1
			s.learn(learnt)
		}
	}

	s.saveModel()
	return True
}

// initialCheck assigns the literal of every size-1 input clause at level 0
// and propagates. It returns false if the formula is unsatisfiable at the
// root, either directly (empty clause, contradicting units) or through
// propagation.
func (s *Solver) initialCheck() bool {
	s.level = 0
	s.step = 0
	s.propQueue.Clear()

	for _, c := range s.clauses {
		switch c.Size() {
		case 0:
			return false
		case 1:
			l := c.lits[0]
			switch s.litValue(l) {
			case False:
				return false
			case Unknown:
				s.setAssignment(l, 0)
				s.propQueue.Push(l)
			}
		}
	}
	return s.propagate() == nil
}

// propagate drains the queue of newly-true literals, extending the
// assignment by all unit-propagation consequences. It returns nil once
// every watched clause is satisfied, still has a non-falsified watch, or
// has propagated its last literal; or the first conflict found.
func (s *Solver) propagate() *conflict {
	for !s.propQueue.IsEmpty() {
		neg := s.propQueue.Pop().Opposite()

		// Scan a snapshot of the watch set: replacement moves mutate
		// the live set mid-scan.
		s.tmpIDs = s.watches.snapshot(neg, s.tmpIDs[:0])
		for _, id := range s.tmpIDs {
			c := s.clauses[id]

			// Look for a replacement watch among the unwatched
			// positions: any literal not currently false will do.
			replaced := false
			for i, lit := range c.lits {
				if c.watches(i) {
					continue
				}
				if s.litValue(lit) != False {
					c.rewatch(neg, i)
					s.watches.remove(neg, id)
					s.watches.add(lit, id)
					replaced = true
					break
				}
			}
			if replaced {
				continue
			}

			// No replacement: the clause is unit or conflicting on
			// its other watched literal.
			switch other := c.otherWatched(neg); s.litValue(other) {
			case Unknown:
				s.setAssignment(other, id)
				s.propQueue.Push(other)
			case False:
				return &conflict{clause: id, variable: other.Var()}
			}
		}
	}
	return nil
}

// analyze resolves the conflicting clause backward along antecedents until
// a single literal of the conflict level remains (the first UIP). It
// returns the level to backjump to and the learned clause, or ok == false
// if the conflict is at level 0 and the formula is unsatisfiable.
func (s *Solver) analyze(clauseID int) (backjump int, learnt []Literal, ok bool) {
	lits := s.clauses[clauseID].lits

	clauseLevel := -1
	for _, l := range lits {
		if lvl := s.assign[l.Var()].level; lvl > clauseLevel {
			clauseLevel = lvl
		}
	}
	if clauseLevel <= 0 {
		return 0, nil, false
	}

	learnt = append([]Literal(nil), lits...)
	for s.numLitsAtLevel(learnt, clauseLevel) > 1 {
		// Pick the most recently assigned variable at the conflict
		// level. The >= keeps the later literal on step ties, which
		// cannot happen within a level; it is a safety net only.
		maxStep := 0
		pivot := 0
		for _, l := range learnt {
			vs := &s.assign[l.Var()]
			if vs.level == clauseLevel && vs.step >= maxStep {
				pivot = l.Var()
				maxStep = vs.step
			}
		}
		antecedent := s.assign[pivot].antecedent
		learnt = s.resolve(learnt, s.clauses[antecedent].lits, pivot)
	}

	// Backjump to the second largest level in the clause, so that its
	// sole literal at the highest level becomes unit.
	largest, second := 0, 0
	for _, l := range learnt {
		switch lvl := s.assign[l.Var()].level; {
		case lvl > largest:
			second = largest
			largest = lvl
		case lvl > second:
			second = lvl
		}
	}
	return second, learnt, true
}

func (s *Solver) numLitsAtLevel(lits []Literal, level int) int {
	n := 0
	for _, l := range lits {
		if s.assign[l.Var()].level == level {
			n++
		}
	}
	return n
}

// resolve returns the resolvent of the two clauses on the pivot variable:
// the sorted union of both literal sets with both polarities of the pivot
// removed.
func (s *Solver) resolve(lits, other []Literal, pivot int) []Literal {
	s.seenLits.Clear()
	out := make([]Literal, 0, len(lits)+len(other))
	for _, part := range [2][]Literal{lits, other} {
		for _, l := range part {
			if l.Var() == pivot || s.seenLits.Contains(l.index()) {
				continue
			}
			s.seenLits.Add(l.index())
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return out
}

// backtrack unsets every variable assigned strictly above the given level
// and reinstates it as a branching candidate. It returns the maximum step
// among variables assigned at the target level, to seed the step counter
// for the literal forced by the learned clause.
func (s *Solver) backtrack(level int) int {
	if level < 0 {
		log.Fatalf("backtrack to negative level %d", level)
	}
	maxStep := 0
	for v := 1; v <= s.numVars; v++ {
		vs := &s.assign[v]
		switch {
		case vs.level > level:
			s.unsetAssignment(v)
			s.decider.Reinstate(v)
		case vs.level == level && vs.step > maxStep:
			maxStep = vs.step
		}
	}
	return maxStep
}

// learn inserts a just-learned clause into the store, assigns its watches,
// and forces its unit literal. After backtracking, the clause contains
// exactly one non-falsified literal (the UIP); the remainder are falsified
// at levels at or below the backjump level.
func (s *Solver) learn(lits []Literal) {
	id := len(s.clauses)
	c := NewClause(lits)

	if c.Size() == 1 {
		// Root-level unit; never enters the watch index.
		s.clauses = append(s.clauses, c)
		s.setAssignment(lits[0], id)
		s.propQueue.Push(lits[0])
		s.decider.Update(c)
		return
	}

	// Fill the watch slots, preferring literals that are unassigned or
	// satisfied; the remaining slot takes the next literal in scan order.
	// The two slots always end up on distinct positions.
	w1, w2 := -1, -1
	for i, l := range lits {
		if s.litValue(l) != False {
			if w1 < 0 {
				w1 = i
			} else if w2 < 0 {
				w2 = i
			}
		}
	}
	if w1 < 0 {
		log.Fatalf("learned clause %v has no non-falsified literal", c)
	}
	for i := range lits {
		if w2 >= 0 {
			break
		}
		if i != w1 {
			w2 = i
		}
	}
	if w1 == w2 {
		log.Fatalf("learned clause %v watches a single position %d", c, w1)
	}
	c.w1, c.w2 = w1, w2

	s.clauses = append(s.clauses, c)
	s.watchClause(c, id)

	// The clause is unit on its non-falsified watch: force it.
	forced := lits[w1]
	s.setAssignment(forced, id)
	s.propQueue.Push(forced)
	s.decider.Update(c)
}

func (s *Solver) saveModel() {
	model := make([]Literal, s.numVars)
	for v := 1; v <= s.numVars; v++ {
		vs := &s.assign[v]
		if !vs.assigned() {
			panic("not a model")
		}
		if vs.value {
			model[v-1] = Literal(v)
		} else {
			model[v-1] = Literal(-v)
		}
	}
	s.model = model
}

// Model returns the satisfying assignment found by the last successful
// Solve: position i-1 holds +i or -i reflecting the truth value of
// variable i. It returns nil if no model has been found.
func (s *Solver) Model() []Literal {
	return s.model
}

// Solve decides the satisfiability of the formula over variables
// 1..numVars with a default solver. On SAT it returns the model and true;
// on UNSAT, nil and false.
func Solve(clauses [][]Literal, numVars int) ([]Literal, bool, error) {
	s := NewSolver(numVars, DefaultOptions)
	for _, c := range clauses {
		if err := s.AddClause(c); err != nil {
			return nil, false, err
		}
	}
	if s.Solve() != True {
		return nil, false, nil
	}
	return s.Model(), true, nil
}
