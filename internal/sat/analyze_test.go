package sat

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		lits  []int
		other []int
		pivot int
		want  []Literal
	}{
		{
			name:  "basic",
			lits:  []int{1, -2, 3},
			other: []int{5, 2, 3},
			pivot: 2,
			want:  []Literal{1, 3, 5},
		},
		{
			name:  "binary",
			lits:  []int{1, 2},
			other: []int{2, -1},
			pivot: 1,
			want:  []Literal{2},
		},
		{
			name:  "toUnit",
			lits:  []int{-1, -2},
			other: []int{-1, 2},
			pivot: 2,
			want:  []Literal{-1},
		},
		{
			name:  "toEmpty",
			lits:  []int{1},
			other: []int{-1},
			pivot: 1,
			want:  []Literal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolver(8, DefaultOptions)
			got := s.resolve(mkLits(tt.lits), mkLits(tt.other), tt.pivot)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestResolve_setAlgebra checks against a reference set computation: the
// resolvent equals the union of both literal sets with every occurrence of
// the pivot variable removed.
func TestResolve_setAlgebra(t *testing.T) {
	const numVars = 6
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		formula := randomFormula(rng, numVars, 2)
		a, b := formula[0], formula[1]
		pivot := 1 + rng.Intn(numVars)

		s := NewSolver(numVars, DefaultOptions)
		got := s.resolve(mkLits(a), mkLits(b), pivot)

		want := map[Literal]struct{}{}
		for _, l := range append(append([]int{}, a...), b...) {
			if abs(l) != pivot {
				want[Literal(l)] = struct{}{}
			}
		}

		gotSet := map[Literal]struct{}{}
		for _, l := range got {
			if l.Var() == pivot {
				t.Fatalf("resolve(%v, %v, %d) contains the pivot: %v", a, b, pivot, got)
			}
			if _, ok := gotSet[l]; ok {
				t.Fatalf("resolve(%v, %v, %d) contains duplicate %v", a, b, pivot, l)
			}
			gotSet[l] = struct{}{}
		}
		if diff := cmp.Diff(want, gotSet); diff != "" {
			t.Errorf("resolve(%v, %v, %d) mismatch (-want +got):\n%s", a, b, pivot, diff)
		}
	}
}

// TestAnalyze_firstUIP drives the solver into a conflict with a known
// implication graph. Deciding variable 1 implies 2 and 3, which imply 4,
// which implies both 5 and 6, which conflict. Variable 4 is the first UIP,
// so the first learned clause must be its negation alone and the solver
// must jump back to level 0.
func TestAnalyze_firstUIP(t *testing.T) {
	clauses := [][]int{
		{-1, 2}, {-1, 3},
		{-2, -3, 4},
		{-4, 5}, {-4, 6},
		{-5, -6},
	}

	s := NewSolver(6, Options{NewDecider: NewSequential})
	for _, c := range clauses {
		if err := s.AddClause(mkLits(c)); err != nil {
			t.Fatalf("AddClause(%v): %s", c, err)
		}
	}

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %s, want %s", got, True)
	}
	if s.NumLearnts() == 0 {
		t.Fatal("NumLearnts() = 0, want > 0")
	}

	first := s.clauses[s.inputClauses]
	if diff := cmp.Diff([]Literal{-4}, first.Literals()); diff != "" {
		t.Errorf("first learned clause mismatch (-want +got):\n%s", diff)
	}
	if !satisfies(clauses, s.Model()) {
		t.Errorf("model %v does not satisfy the formula", s.Model())
	}
}

// TestSolve_rootConflict checks that a conflict among level-0 assignments
// reports unsatisfiability without any search.
func TestSolve_rootConflict(t *testing.T) {
	// Units force 1 and 2; propagation then falsifies every literal of
	// the last clause at level 0.
	s := newTestSolver(t, 2, [][]int{{1}, {2}, {-1, -2}})
	if got := s.Solve(); got != False {
		t.Errorf("Solve() = %s, want %s", got, False)
	}
}
